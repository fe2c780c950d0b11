package scraper

import (
	"errors"
	"fmt"
	"time"

	"vehiclecatalog/internal/browser"
)

// testOptions removes every pause so tests run instantly
func testOptions() Options {
	return Options{
		WaitTimeout:   50 * time.Millisecond,
		RetryAttempts: 5,
	}
}

type fakeElement struct {
	text     string
	attrs    map[string]string
	children func(selector string) []browser.Element
	onSelect func(i int) error
}

func (e *fakeElement) Elements(selector string) ([]browser.Element, error) {
	if e.children == nil {
		return nil, nil
	}
	return e.children(selector), nil
}

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) Attribute(name string) (string, error) { return e.attrs[name], nil }

func (e *fakeElement) Property(name string) (string, error) { return e.attrs[name], nil }

func (e *fakeElement) SelectIndex(i int) error {
	if e.onSelect == nil {
		return errors.New("not a select element")
	}
	return e.onSelect(i)
}

type fakeBrand struct {
	name   string
	url    string
	models map[string]string // display name -> data-url
	order  []string          // option order in the model dropdown
}

// fakeListingSite renders a brand list plus two dependent dropdowns
type fakeListingSite struct {
	brands   []fakeBrand
	selected int
	// failSelects[i] is how many more times selecting brand index i fails
	failSelects map[int]int
	selects     int
	visited     []string
}

func (s *fakeListingSite) Navigate(url string) error {
	s.visited = append(s.visited, url)
	return nil
}

func (s *fakeListingSite) Close() error { return nil }

func (s *fakeListingSite) Elements(selector string) ([]browser.Element, error) {
	switch selector {
	case brandListSelector:
		return []browser.Element{&fakeElement{children: func(sel string) []browser.Element {
			if sel != "a" {
				return nil
			}
			var anchors []browser.Element
			for _, b := range s.brands {
				anchors = append(anchors, &fakeElement{text: b.name, attrs: map[string]string{"href": b.url}})
			}
			return anchors
		}}}, nil
	case brandSelectSelector:
		return []browser.Element{&fakeElement{onSelect: func(i int) error {
			s.selects++
			if s.failSelects[i] > 0 {
				s.failSelects[i]--
				return fmt.Errorf("stale element reference")
			}
			if i > len(s.brands) {
				return fmt.Errorf("index %d out of range", i)
			}
			s.selected = i
			return nil
		}}}, nil
	case modelSelectSelector:
		return []browser.Element{&fakeElement{children: func(sel string) []browser.Element {
			if sel != "option" {
				return nil
			}
			options := []browser.Element{&fakeElement{text: "Select Model"}}
			if s.selected == 0 {
				return options
			}
			b := s.brands[s.selected-1]
			for _, name := range b.order {
				options = append(options, &fakeElement{text: name, attrs: map[string]string{"data-url": b.models[name]}})
			}
			return options
		}}}, nil
	}
	return nil, nil
}
