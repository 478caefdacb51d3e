package scraper

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// NavigationError wraps a renderer failure for one URL so the caller can
// log and skip that link without aborting the batch.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Renderer drives a single headless Chromium and returns rendered HTML
// for one URL at a time. Listing markup only materializes after
// client-side rendering.
type Renderer struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	browser     playwright.Browser
	page        playwright.Page
	initialized bool

	navTimeout  time.Duration
	settleDelay time.Duration
}

func NewRenderer(navTimeout, settleDelay time.Duration) *Renderer {
	return &Renderer{
		navTimeout:  navTimeout,
		settleDelay: settleDelay,
	}
}

func (r *Renderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	var err error
	r.pw, err = playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	r.browser, err = r.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	r.page, err = r.browser.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	r.initialized = true
	return nil
}

// Render navigates to url, waits for the DOM plus a fixed settle delay,
// and returns the page content. Failures come back as *NavigationError.
func (r *Renderer) Render(url string) (string, error) {
	if err := r.ensureBrowser(); err != nil {
		return "", err
	}

	_, err := r.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(r.navTimeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return "", &NavigationError{URL: url, Err: err}
	}

	// Let client-side rendering finish before snapshotting.
	r.page.WaitForTimeout(float64(r.settleDelay.Milliseconds()))

	html, err := r.page.Content()
	if err != nil {
		return "", &NavigationError{URL: url, Err: err}
	}
	return html, nil
}

func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.page != nil {
		r.page.Close()
		r.page = nil
	}
	if r.browser != nil {
		r.browser.Close()
	}
	if r.pw != nil {
		r.pw.Stop()
	}
	r.initialized = false
}
