package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// WorkableClient fetches https://apply.workable.com/api/v1/widget/accounts/{token}.
type WorkableClient struct {
	HTTPClient *http.Client
	Token      string
}

type workableResponse struct {
	Jobs []struct {
		Shortcode   string `json:"shortcode"`
		Title       string `json:"title"`
		Department  string `json:"department"`
		Description string `json:"description"`
		PublishedOn string `json:"published_on"`
		City        string `json:"city"`
		State       string `json:"state"`
		Country     string `json:"country"`
	} `json:"jobs"`
}

func (c *WorkableClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://apply.workable.com/api/v1/widget/accounts/%s", c.Token))
}

func (c *WorkableClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "workable.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "workable.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "workable.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "workable.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body workableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "workable.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		location := strings.TrimSpace(strings.Join(filterEmpty(j.City, j.State, j.Country), ", "))
		var posted *time.Time
		if t, err := time.Parse("2006-01-02", j.PublishedOn); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  j.Shortcode,
			Title:       j.Title,
			Department:  j.Department,
			Location:    location,
			Description: j.Description,
			JobURL:      fmt.Sprintf("https://apply.workable.com/%s/j/%s/", c.Token, j.Shortcode),
			PostingDate: posted,
		})
	}

	return postings, nil
}

func filterEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateWorkableResponse requires a jobs array with at least one entry.
func ValidateWorkableResponse(body []byte) bool {
	var parsed workableResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed.Jobs) > 0
}
