package atsdetect

import (
	"context"
	"io"
	"net/http"

	"github.com/mpetrova/hirescout/internal/store/model"
	"golang.org/x/sync/errgroup"
)

// priorityCareersPaths and secondaryCareersPaths are the two tiers probed by
// the careers-path sweep, §4.3.5.
var priorityCareersPaths = []string{"/careers", "/jobs", "/join"}
var secondaryCareersPaths = []string{"/about/careers", "/company/careers", "/join-us", "/work-with-us"}

type careersHit struct {
	provider model.ATSProvider
	token    string
}

// sweepCareersPaths probes the priority tier concurrently, falling back to
// the secondary tier only if the priority tier yields nothing.
func sweepCareersPaths(ctx context.Context, client *http.Client, domain string) (careersHit, bool) {
	urls := make([]string, 0, len(priorityCareersPaths)+2)
	for _, p := range priorityCareersPaths {
		urls = append(urls, "https://"+domain+p)
	}
	urls = append(urls, "https://careers."+domain, "https://jobs."+domain)

	if hit, ok := probeCareersURLs(ctx, client, urls); ok {
		return hit, true
	}

	secondary := make([]string, 0, len(secondaryCareersPaths))
	for _, p := range secondaryCareersPaths {
		secondary = append(secondary, "https://"+domain+p)
	}
	return probeCareersURLs(ctx, client, secondary)
}

func probeCareersURLs(ctx context.Context, client *http.Client, urls []string) (careersHit, bool) {
	results := make([]*careersHit, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			hit, ok := fetchAndFingerprint(ctx, client, u)
			if ok {
				results[i] = &hit
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r != nil {
			return *r, true
		}
	}
	return careersHit{}, false
}

func fetchAndFingerprint(ctx context.Context, client *http.Client, url string) (careersHit, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return careersHit{}, false
	}
	resp, err := client.Do(req)
	if err != nil {
		return careersHit{}, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return careersHit{}, false
	}

	if provider, token, ok := fingerprintMatch(resp.Request.URL.String()); ok {
		return careersHit{provider: provider, token: token}, true
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return careersHit{}, false
	}
	if provider, token, ok := fingerprintMatch(string(body)); ok {
		return careersHit{provider: provider, token: token}, true
	}
	return careersHit{}, false
}
