package browser

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StaticPage replays pre-rendered HTML documents keyed by URL.
// It has no script engine: selecting an option only marks it selected.
type StaticPage struct {
	docs    map[string]string
	current *goquery.Document
	// Visited records every navigation in order
	Visited []string
}

// NewStaticPage builds a page over url -> HTML documents
func NewStaticPage(docs map[string]string) *StaticPage {
	return &StaticPage{docs: docs}
}

func (p *StaticPage) Navigate(url string) error {
	p.Visited = append(p.Visited, url)
	html, ok := p.docs[url]
	if !ok {
		return fmt.Errorf("navigate to %s: no such document", url)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	p.current = doc
	return nil
}

func (p *StaticPage) Elements(selector string) ([]Element, error) {
	if p.current == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	return staticElements(p.current.Find(selector)), nil
}

func (p *StaticPage) Close() error {
	p.current = nil
	return nil
}

type staticElement struct {
	sel *goquery.Selection
}

func staticElements(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &staticElement{sel: s})
	})
	return out
}

func (e *staticElement) Elements(selector string) ([]Element, error) {
	return staticElements(e.sel.Find(selector)), nil
}

// Text approximates innerText: <br> and block ends become newlines
func (e *staticElement) Text() (string, error) {
	clone := e.sel.Clone()
	clone.Find("br").ReplaceWithHtml("\n")
	clone.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	lines := strings.Split(clone.Text(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

func (e *staticElement) Attribute(name string) (string, error) {
	value, _ := e.sel.Attr(name)
	return value, nil
}

func (e *staticElement) Property(name string) (string, error) {
	switch name {
	case "innerText":
		return e.Text()
	case "textContent":
		return e.sel.Text(), nil
	}
	return e.Attribute(name)
}

func (e *staticElement) SelectIndex(i int) error {
	options := e.sel.Find("option")
	if i < 0 || i >= options.Length() {
		return fmt.Errorf("select index %d out of range (%d options)", i, options.Length())
	}
	options.RemoveAttr("selected")
	options.Eq(i).SetAttr("selected", "selected")
	return nil
}
