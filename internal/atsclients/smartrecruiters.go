package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// SmartRecruitersClient fetches https://api.smartrecruiters.com/v1/companies/{token}/postings.
type SmartRecruitersClient struct {
	HTTPClient *http.Client
	Token      string
}

type smartRecruitersResponse struct {
	Content []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Ref  string `json:"ref"`
		Department struct {
			Label string `json:"label"`
		} `json:"department"`
		Location struct {
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"location"`
		ReleasedDate string `json:"releasedDate"`
	} `json:"content"`
}

func (c *SmartRecruitersClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", c.Token))
}

func (c *SmartRecruitersClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "smartrecruiters.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "smartrecruiters.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "smartrecruiters.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "smartrecruiters.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body smartRecruitersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "smartrecruiters.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body.Content))
	for _, j := range body.Content {
		location := j.Location.City
		if j.Location.Country != "" {
			location = location + ", " + j.Location.Country
		}
		jobURL := j.Ref
		if jobURL == "" {
			jobURL = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", c.Token, j.ID)
		}
		var posted *time.Time
		if t, err := time.Parse(time.RFC3339, j.ReleasedDate); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  j.ID,
			Title:       j.Name,
			Department:  j.Department.Label,
			Location:    location,
			Description: "",
			JobURL:      jobURL,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateSmartRecruitersResponse requires a content array with an entry.
func ValidateSmartRecruitersResponse(body []byte) bool {
	var parsed smartRecruitersResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed.Content) > 0
}
