package atsdetect

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/platform/httpclient"
	"github.com/mpetrova/hirescout/internal/store/model"
	"golang.org/x/sync/errgroup"
)

// Cache is the subset of ports.Store the engine needs: detection results are
// memoized by domain, independent of the rest of the Store surface.
type Cache interface {
	CacheGet(ctx context.Context, domain string) (*model.ATSCacheEntry, error)
	CacheSet(ctx context.Context, entry *model.ATSCacheEntry) error
}

// JSRenderer is the subset of render.Renderer the engine needs: a headless-
// Chromium fallback for pages whose fingerprint only appears post-render.
type JSRenderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Engine is the ATSDetectionEngine (§4.3): it resolves a company's ATS
// provider and tenant token via cache lookup, concurrent API probing, HTML
// fingerprinting, a careers-path sweep, and LinkedIn fallback, in that order.
type Engine struct {
	Store         Cache
	ProbeClient   *http.Client
	CareersClient *http.Client

	// JSRenderer and EnableJSRendering gate an additional fingerprint pass
	// over JS-rendered DOMs, tried after a plain-HTTP fingerprint miss and
	// before the careers-path sweep. Nil/false skips the tier entirely.
	JSRenderer        JSRenderer
	EnableJSRendering bool
}

// NewEngine wires an Engine with the shared timeout-configured clients.
func NewEngine(store Cache) *Engine {
	return &Engine{
		Store:         store,
		ProbeClient:   httpclient.New(httpclient.ATSProbeTimeout),
		CareersClient: httpclient.New(httpclient.CareersFetchTimeout),
	}
}

// Detect runs the full detection pipeline for one company, per §4.3.
func (e *Engine) Detect(ctx context.Context, in Input) (Result, error) {
	if cached, err := e.Store.CacheGet(ctx, in.Domain); err != nil {
		return Result{}, err
	} else if cached != nil {
		return Result{
			Provider:        cached.ATSProvider,
			BoardToken:      cached.BoardToken,
			Confidence:      1.0,
			DetectionMethod: MethodCache,
		}, nil
	}

	tokens := CandidateTokens(in.CompanyName, in.Domain, "")

	if provider, token, ok := e.probeAPIs(ctx, in, tokens); ok {
		return e.finalize(ctx, in.Domain, Result{provider, token, 0.95, MethodAPIProbe})
	}

	homepages := e.fetchHomepages(ctx, in.Domain)

	if provider, token, ok := fingerprintHomepages(homepages); ok {
		confidence := 0.6
		if token != "" {
			confidence = 0.85
		}
		return e.finalize(ctx, in.Domain, Result{provider, token, confidence, MethodHTMLFingerprint})
	}

	if e.EnableJSRendering && e.JSRenderer != nil {
		if provider, token, ok := e.fingerprintRendered(ctx, in.Domain); ok {
			confidence := 0.6
			if token != "" {
				confidence = 0.85
			}
			return e.finalize(ctx, in.Domain, Result{provider, token, confidence, MethodHTMLFingerprint})
		}
	}

	if hit, ok := sweepCareersPaths(ctx, e.CareersClient, in.Domain); ok {
		return e.finalize(ctx, in.Domain, Result{hit.provider, hit.token, 0.85, MethodCareersSweep})
	}

	for _, html := range homepages {
		if slug := extractLinkedInSlug(html); slug != "" {
			return e.finalize(ctx, in.Domain, Result{model.ATSLinkedInOnly, slug, 0.6, MethodLinkedInFallback})
		}
	}

	return e.finalize(ctx, in.Domain, Result{model.ATSLinkedInOnly, "", 0.3, MethodDefaultFallback})
}

// probeAPIs fans out a GET to every (provider, token) candidate pair
// concurrently and resolves the first hit by provider priority, per §4.3.3.
func (e *Engine) probeAPIs(ctx context.Context, in Input, tokens []string) (model.ATSProvider, string, bool) {
	priority := OrderedByHint(in.TechnologiesHint)
	rank := make(map[model.ATSProvider]int, len(priority))
	for i, p := range priority {
		rank[p] = i
	}

	type hit struct {
		provider model.ATSProvider
		token    string
	}
	var hits []hit

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(60)
	results := make(chan hit, len(priority)*len(tokens))
	for _, provider := range priority {
		endpoint := Registry[provider]
		for _, token := range tokens {
			provider, endpoint, token := provider, endpoint, token
			g.Go(func() error {
				if probeOne(gctx, e.ProbeClient, endpoint, token) {
					results <- hit{provider, token}
				}
				return nil
			})
		}
	}
	_ = g.Wait()
	close(results)
	for h := range results {
		hits = append(hits, h)
	}

	if len(hits) == 0 {
		return "", "", false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if rank[h.provider] < rank[best.provider] {
			best = h
		}
	}
	return best.provider, best.token, true
}

// probeOne issues the probe GET for one (endpoint, token) pair. Any network
// error, non-200 status, or validator rejection is a miss, never an error:
// per §4.3.3's failure semantics, individual probe failures are swallowed.
func probeOne(ctx context.Context, client *http.Client, endpoint Endpoint, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.URL(token), nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return false
	}
	return endpoint.Validator(body)
}

func (e *Engine) finalize(ctx context.Context, domain string, r Result) (Result, error) {
	now := time.Now()
	entry := &model.ATSCacheEntry{
		Domain:      domain,
		ATSProvider: r.Provider,
		BoardToken:  r.BoardToken,
		DetectedAt:  now,
		ExpiresAt:   now.Add(model.DetectionTTL),
	}
	if err := e.Store.CacheSet(ctx, entry); err != nil {
		return Result{}, err
	}
	return r, nil
}

func (e *Engine) fetchHomepages(ctx context.Context, domain string) []string {
	urls := []string{"https://" + domain, "https://www." + domain}
	bodies := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			req, err := http.NewRequestWithContext(gctx, http.MethodGet, u, nil)
			if err != nil {
				return nil
			}
			resp, err := e.CareersClient.Do(req)
			if err != nil {
				return nil
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return nil
			}
			body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			if err != nil {
				return nil
			}
			bodies[i] = string(body)
			return nil
		})
	}
	_ = g.Wait()
	return bodies
}

// fingerprintRendered retries the homepage fingerprint against the
// JS-rendered DOM, for shell pages a plain GET can't see through. A render
// error is a miss, not a pipeline failure — the sweep tier still runs.
func (e *Engine) fingerprintRendered(ctx context.Context, domain string) (model.ATSProvider, string, bool) {
	urls := []string{"https://" + domain, "https://www." + domain}
	for _, u := range urls {
		html, err := e.JSRenderer.Render(ctx, u)
		if err != nil || html == "" {
			continue
		}
		if provider, token, ok := fingerprintMatch(html); ok {
			return provider, token, true
		}
	}
	return "", "", false
}

func fingerprintHomepages(homepages []string) (model.ATSProvider, string, bool) {
	for _, html := range homepages {
		if html == "" {
			continue
		}
		if provider, token, ok := fingerprintMatch(html); ok {
			return provider, token, true
		}
	}
	return "", "", false
}
