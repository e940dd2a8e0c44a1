// Package browser wraps a single headless-Chrome session used for the
// whole crawl. One persistent session keeps cookies alive across pages,
// which paginated sites tend to rely on.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/piggiedev/miloscrap/internal/config"
	"github.com/piggiedev/miloscrap/internal/ui"
)

type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	log         *ui.Logger
}

// Launch starts headless Chrome and verifies it is reachable. The caller
// must Close the session on every exit path.
func Launch(parent context.Context, userAgent string, log *ui.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Running an empty task forces the browser process to start now, so
	// launch failures surface here instead of on the first page.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		log:         log,
	}, nil
}

// Close releases the browser process and its allocator.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// Navigate loads url and waits for the document body, bounded by timeout.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	return chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// Title returns the current document title.
func (s *Session) Title() (string, error) {
	var title string
	err := chromedp.Run(s.ctx, chromedp.Title(&title))
	return title, err
}

// Location returns the current navigated URL, which may differ from the
// requested one after redirects.
func (s *Session) Location() (string, error) {
	var loc string
	err := chromedp.Run(s.ctx, chromedp.Location(&loc))
	return loc, err
}

// HTML exports the rendered outer HTML of the current page.
func (s *Session) HTML() (string, error) {
	var html string
	err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

// AwaitNavigation polls for the page to navigate away from the given URL
// or for its title to stop looking like a challenge interstitial. Purely
// best-effort: it returns after the timeout whether or not anything
// happened, and the caller proceeds either way.
func (s *Session) AwaitNavigation(from string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(500 * time.Millisecond):
		}

		loc, err := s.Location()
		if err != nil {
			continue
		}
		if loc != from {
			s.log.Debugf("challenge wait: navigated to %s\n", loc)
			return
		}
		if title, err := s.Title(); err == nil && !config.IsChallengeTitle(title) {
			s.log.Debugf("challenge wait: title cleared\n")
			return
		}
	}
	s.log.Debugf("challenge wait: timed out after %s, proceeding anyway\n", timeout)
}
