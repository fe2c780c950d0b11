package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultWaitTimeout is the bounded wait used by the collectors
const DefaultWaitTimeout = 5 * time.Second

// pollInterval matches the polling cadence of a typical webdriver wait
const pollInterval = 500 * time.Millisecond

var (
	// ErrNotFound means no element matched a selector
	ErrNotFound = errors.New("element not found")
	// ErrTimeout means no element matched before a bounded wait elapsed.
	// errors.Is(err, ErrNotFound) also holds for it.
	ErrTimeout = fmt.Errorf("wait timed out: %w", ErrNotFound)
)

// Match selects how many elements WaitFor returns
type Match int

const (
	First Match = iota
	All
)

// Searcher is anything elements can be looked up under: a page or an element
type Searcher interface {
	Elements(selector string) ([]Element, error)
}

// Element is a handle on a rendered DOM element
type Element interface {
	Searcher
	// Text returns the rendered (inner) text
	Text() (string, error)
	// Attribute returns the raw attribute value, "" when absent
	Attribute(name string) (string, error)
	// Property returns a DOM property, e.g. the resolved "href"
	Property(name string) (string, error)
	// SelectIndex selects the option at index i of a <select> element
	SelectIndex(i int) error
}

// Page is a browser tab that can be pointed at URLs
type Page interface {
	Searcher
	Navigate(url string) error
	Close() error
}

// WaitFor polls root until at least one element matches selector or timeout elapses.
// It never retries beyond the timeout; callers own retry policy.
func WaitFor(ctx context.Context, root Searcher, selector string, timeout time.Duration, mode Match) ([]Element, error) {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	deadline := time.Now().Add(timeout)

	for {
		elements, err := root.Elements(selector)
		if err == nil && len(elements) > 0 {
			if mode == First {
				return elements[:1], nil
			}
			return elements, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%q after %v: %w", selector, timeout, ErrTimeout)
		}

		wait := pollInterval
		if remaining < wait {
			wait = remaining
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// WaitOne is WaitFor in First mode returning the single element
func WaitOne(ctx context.Context, root Searcher, selector string, timeout time.Duration) (Element, error) {
	elements, err := WaitFor(ctx, root, selector, timeout, First)
	if err != nil {
		return nil, err
	}
	return elements[0], nil
}

// Find returns the first element matching selector without waiting
func Find(root Searcher, selector string) (Element, error) {
	elements, err := root.Elements(selector)
	if err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("%q: %w", selector, ErrNotFound)
	}
	return elements[0], nil
}
