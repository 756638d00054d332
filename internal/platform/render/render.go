// Package render provides a headless-Chromium fallback tier (go-rod) for
// pages whose ATS fingerprint only appears after client-side JavaScript
// runs — a plain net/http GET sees an empty shell. Used by
// internal/atsdetect's HTML-fingerprint stage (§4.3.4) when
// ENABLE_JS_RENDERING=true, never for the explicitly out-of-scope
// consumer-search-engine scraping.
package render

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Renderer launches one headless Chrome instance and serves Render calls
// against it; callers should keep one Renderer for the process lifetime
// rather than re-launching per request.
type Renderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// New launches headless Chrome. Call Close when done.
func New(timeout time.Duration) (*Renderer, error) {
	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, err
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return &Renderer{browser: browser, timeout: timeout}, nil
}

// Close shuts down the underlying browser process.
func (r *Renderer) Close() error {
	return r.browser.Close()
}

// Render navigates to url, waits for the page to settle, and returns the
// post-render DOM's outer HTML for fingerprinting.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	page, err := r.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Timeout(r.timeout)
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	return html, nil
}
