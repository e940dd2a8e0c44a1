// Package downloader fetches single files over HTTPS, following redirects
// manually so the hop count can be bounded.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/piggiedev/miloscrap/internal/config"
)

// FailedError is returned when a download terminates on a non-2xx status.
type FailedError struct {
	URL    string
	Status int
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("download %s: HTTP %d", e.URL, e.Status)
}

type Client struct {
	hc  *http.Client
	log interface {
		Debugf(string, ...any)
	}
}

// New wraps an *http.Client whose redirect following is disabled
// (CheckRedirect returning http.ErrUseLastResponse); Fetch walks redirects
// itself.
func New(hc *http.Client, log interface{ Debugf(string, ...any) }) *Client {
	return &Client{hc: hc, log: log}
}

// Fetch downloads rawURL to dest and reports the bytes written. 3xx
// responses with a Location header are followed up to config.MaxRedirects
// hops, always writing to the same dest. On a non-2xx terminal status it
// returns a *FailedError. On a transport or write error any partially
// written dest is removed best-effort before the error is propagated. The
// file is flushed and closed before Fetch returns.
func (c *Client) Fetch(ctx context.Context, rawURL, dest string) (int64, error) {
	return c.fetch(ctx, rawURL, dest, 0)
}

func (c *Client) fetch(ctx context.Context, rawURL, dest string, redirects int) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		loc := resp.Header.Get("Location")
		if loc == "" {
			return 0, &FailedError{URL: rawURL, Status: resp.StatusCode}
		}
		if redirects >= config.MaxRedirects {
			return 0, fmt.Errorf("download %s: more than %d redirects", rawURL, config.MaxRedirects)
		}
		next := resolveLocation(rawURL, loc)
		if c.log != nil {
			c.log.Debugf("redirect %d: %s -> %s\n", resp.StatusCode, rawURL, next)
		}
		return c.fetch(ctx, next, dest, redirects+1)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &FailedError{URL: rawURL, Status: resp.StatusCode}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return written, fmt.Errorf("download %s: %w", rawURL, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(dest)
		return written, err
	}

	return written, nil
}

func resolveLocation(current, loc string) string {
	next, err := url.Parse(loc)
	if err != nil {
		return loc
	}
	if next.IsAbs() {
		return next.String()
	}
	base, err := url.Parse(current)
	if err != nil {
		return loc
	}
	return base.ResolveReference(next).String()
}
