package robots

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Checker caches one robots.txt document per domain for the lifetime of a
// single orchestrator invocation, the same scope the original gave its
// in-process dict cache.
type Checker struct {
	HTTPClient *http.Client
	Logger     *zap.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewChecker(httpClient *http.Client, logger *zap.Logger) *Checker {
	return &Checker{HTTPClient: httpClient, Logger: logger, cache: make(map[string]cacheEntry)}
}

// CanFetch reports whether rawURL may be fetched per its domain's
// robots.txt. A fetch failure or missing robots.txt is treated as allowed,
// matching the original's fail-open policy.
func (c *Checker) CanFetch(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}

	doc := c.document(ctx, parsed.Scheme, parsed.Host)
	if doc == nil {
		return true
	}
	return doc.canFetch(UserAgent, rawURL)
}

// CrawlDelay returns the Crawl-delay directive for domain's most specific
// matching group, if any was fetched and cached.
func (c *Checker) CrawlDelay(domain string) (time.Duration, bool) {
	c.mu.Lock()
	entry, ok := c.cache[domain]
	c.mu.Unlock()
	if !ok || entry.doc == nil {
		return 0, false
	}
	seconds, ok := entry.doc.crawlDelay(UserAgent)
	if !ok {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

// ClearCache drops every cached robots.txt document.
func (c *Checker) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

func (c *Checker) document(ctx context.Context, scheme, domain string) *document {
	c.mu.Lock()
	entry, ok := c.cache[domain]
	c.mu.Unlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.doc
	}

	if scheme == "" {
		scheme = "https"
	}
	robotsURL := fmt.Sprintf("%s://%s/robots.txt", scheme, domain)

	doc, ttl := c.fetch(ctx, robotsURL, domain)

	c.mu.Lock()
	c.cache[domain] = cacheEntry{doc: doc, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()

	return doc
}

func (c *Checker) fetch(ctx context.Context, robotsURL, domain string) (*document, time.Duration) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, FailureCacheTTL
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Warn("robots: fetch failed", zap.String("domain", domain), zap.Error(err))
		return nil, FailureCacheTTL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.Logger.Debug("robots: robots.txt not found", zap.String("domain", domain), zap.Int("status", resp.StatusCode))
		return nil, DefaultCacheTTL
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, FailureCacheTTL
	}

	return parseRobotsTxt(string(body)), DefaultCacheTTL
}
