package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// AshbyClient fetches https://api.ashbyhq.com/posting-api/job-board/{token}.
type AshbyClient struct {
	HTTPClient *http.Client
	Token      string
}

type ashbyResponse struct {
	Jobs []struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		DepartmentName string `json:"departmentName"`
		LocationName   string `json:"locationName"`
		DescriptionHTML string `json:"descriptionHtml"`
		DescriptionPlain string `json:"descriptionPlain"`
		JobURL         string `json:"jobUrl"`
		PublishedDate  string `json:"publishedDate"`
	} `json:"jobs"`
}

func (c *AshbyClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://api.ashbyhq.com/posting-api/job-board/%s", c.Token))
}

func (c *AshbyClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "ashby.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "ashby.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "ashby.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "ashby.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body ashbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "ashby.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		desc := j.DescriptionPlain
		if desc == "" {
			desc = j.DescriptionHTML
		}
		var posted *time.Time
		if t, err := time.Parse(time.RFC3339, j.PublishedDate); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  j.ID,
			Title:       j.Title,
			Department:  j.DepartmentName,
			Location:    j.LocationName,
			Description: desc,
			JobURL:      j.JobURL,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateAshbyResponse requires a jobs array with at least one entry.
func ValidateAshbyResponse(body []byte) bool {
	var parsed ashbyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed.Jobs) > 0
}
