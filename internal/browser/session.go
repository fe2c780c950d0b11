package browser

import (
	"fmt"
	"log"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options configures a browser session
type Options struct {
	Visible bool   // show the browser window instead of running headless
	Bin     string // Chromium binary; looked up on PATH when empty
}

// Session owns one Chromium process and the single tab the collectors drive.
// It satisfies Page; Close releases the whole browser.
type Session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

// Acquire launches a browser and opens a stealth page
func Acquire(opts Options) (*Session, error) {
	bin := opts.Bin
	if bin == "" {
		bin, _ = launcher.LookPath()
	}

	l := launcher.New().
		Headless(!opts.Visible).
		Set("user-agent", userAgent).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("log-level", "3")
	if bin != "" {
		l = l.Bin(bin)
	}
	if opts.Visible {
		l = l.Set("start-maximized")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		b.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	mode := "headless"
	if opts.Visible {
		mode = "visible"
	}
	log.Printf("🌐 Browser session started (%s)", mode)

	return &Session{launcher: l, browser: b, page: page}, nil
}

// Navigate points the session's tab at url and waits for the load event
func (s *Session) Navigate(url string) error {
	return s.tab().Navigate(url)
}

// Elements returns every element on the current page matching selector
func (s *Session) Elements(selector string) ([]Element, error) {
	return s.tab().Elements(selector)
}

func (s *Session) tab() *rodPage {
	return &rodPage{page: s.page}
}

// Close shuts the browser down
func (s *Session) Close() error {
	var err error
	if s.page != nil {
		s.page.Close()
		s.page = nil
	}
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
	return err
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Navigate(url string) error {
	if err := p.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	if err := p.page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) Elements(selector string) ([]Element, error) {
	found, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(found), nil
}

type rodElement struct {
	el *rod.Element
}

func wrapElements(found rod.Elements) []Element {
	out := make([]Element, 0, len(found))
	for _, el := range found {
		out = append(out, &rodElement{el: el})
	}
	return out
}

func (e *rodElement) Elements(selector string) ([]Element, error) {
	found, err := e.el.Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(found), nil
}

func (e *rodElement) Text() (string, error) {
	return e.el.Text()
}

func (e *rodElement) Attribute(name string) (string, error) {
	value, err := e.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func (e *rodElement) Property(name string) (string, error) {
	value, err := e.el.Property(name)
	if err != nil {
		return "", err
	}
	if value.Nil() {
		return "", nil
	}
	return value.String(), nil
}

// selectIndexJS sets selectedIndex, which counts options across optgroups, and
// fires the events a user selection would. It returns the option count.
const selectIndexJS = `(i) => {
	const count = this.options.length
	if (i < 0 || i >= count) {
		return count
	}
	this.selectedIndex = i
	this.dispatchEvent(new Event('input', {bubbles: true}))
	this.dispatchEvent(new Event('change', {bubbles: true}))
	return count
}`

func (e *rodElement) SelectIndex(i int) error {
	res, err := e.el.Eval(selectIndexJS, i)
	if err != nil {
		return fmt.Errorf("select index %d: %w", i, err)
	}
	if count := res.Value.Int(); i < 0 || i >= count {
		return fmt.Errorf("select index %d out of range (%d options)", i, count)
	}
	return nil
}
