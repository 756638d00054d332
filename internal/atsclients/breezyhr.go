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

// BreezyHRClient fetches https://{token}.breezy.hr/json.
type BreezyHRClient struct {
	HTTPClient *http.Client
	Token      string
}

type breezyPosting struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Department struct {
		Name string `json:"name"`
	} `json:"department"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
}

func (c *BreezyHRClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://%s.breezy.hr/json", c.Token))
}

func (c *BreezyHRClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "breezyhr.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "breezyhr.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "breezyhr.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "breezyhr.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body []breezyPosting
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "breezyhr.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body))
	for _, j := range body {
		location := strings.TrimSpace(strings.Join(filterEmpty(j.City, j.State, j.Country), ", "))
		var posted *time.Time
		if t, err := time.Parse(time.RFC3339, j.PublishedDate); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  j.ID,
			Title:       j.Name,
			Department:  j.Department.Name,
			Location:    location,
			Description: j.Description,
			JobURL:      j.URL,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateBreezyHRResponse requires a non-empty JSON array.
func ValidateBreezyHRResponse(body []byte) bool {
	var parsed []breezyPosting
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed) > 0
}
