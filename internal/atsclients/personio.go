package atsclients

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/mpetrova/hirescout/internal/errs"
)

// PersonioClient scrapes https://{token}.jobs.personio.de/ — Personio does
// not expose a JSON jobs API on the career-page host, only anchor tags
// linking to individual postings, so this client is HTML-based per the
// spec §4.4 table (no department/location/description/posting_date).
type PersonioClient struct {
	HTTPClient *http.Client
	Token      string
}

var personioJobLinkRe = regexp.MustCompile(`(?is)<a[^>]+href="([^"]*?/job/(\d+)[^"]*)"[^>]*>(.*?)</a>`)
var tagStripRe = regexp.MustCompile(`(?s)<[^>]+>`)

func (c *PersonioClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://%s.jobs.personio.de/", c.Token))
}

func (c *PersonioClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "personio.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "personio.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "personio.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "personio.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	body := make([]byte, 0, 1<<20)
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		body = append(body, buf[:n]...)
		if readErr != nil {
			break
		}
	}

	return parsePersonioHTML(c.Token, string(body)), nil
}

func parsePersonioHTML(token, html string) []JobPosting {
	matches := personioJobLinkRe.FindAllStringSubmatch(html, -1)
	seen := map[string]bool{}
	var postings []JobPosting
	for _, m := range matches {
		href, id, linkText := m[1], m[2], m[3]
		if seen[id] {
			continue
		}
		seen[id] = true

		title := strings.TrimSpace(tagStripRe.ReplaceAllString(linkText, " "))
		title = strings.Join(strings.Fields(title), " ")
		if title == "" {
			continue
		}

		jobURL := href
		if strings.HasPrefix(jobURL, "/") {
			jobURL = fmt.Sprintf("https://%s.jobs.personio.de%s", token, jobURL)
		}

		postings = append(postings, JobPosting{
			ExternalID: id,
			Title:      title,
			JobURL:     jobURL,
		})
	}
	return postings
}

// ValidatePersonioResponse requires at least one parseable job link.
func ValidatePersonioResponse(token string, body []byte) bool {
	return len(parsePersonioHTML(token, string(body))) > 0
}
