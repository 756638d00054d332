package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// GreenhouseClient fetches https://boards-api.greenhouse.io/v1/boards/{token}/jobs.
type GreenhouseClient struct {
	HTTPClient *http.Client
	Token      string
}

type greenhouseResponse struct {
	Jobs []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		AbsoluteURL string `json:"absolute_url"`
		UpdatedAt   string `json:"updated_at"`
		Content     string `json:"content"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
		Departments []struct {
			Name string `json:"name"`
		} `json:"departments"`
	} `json:"jobs"`
}

func (c *GreenhouseClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	url := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", c.Token)
	return c.fetchFrom(ctx, url)
}

func (c *GreenhouseClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "greenhouse.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "greenhouse.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "greenhouse.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "greenhouse.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body greenhouseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "greenhouse.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body.Jobs))
	for _, j := range body.Jobs {
		dept := ""
		if len(j.Departments) > 0 {
			dept = j.Departments[0].Name
		}
		var posted *time.Time
		if t, err := time.Parse(time.RFC3339, j.UpdatedAt); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  fmt.Sprintf("%d", j.ID),
			Title:       j.Title,
			Department:  dept,
			Location:    j.Location.Name,
			Description: j.Content,
			JobURL:      j.AbsoluteURL,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateGreenhouseResponse implements the §4.3.2 response validator:
// genuine evidence requires a non-empty jobs array.
func ValidateGreenhouseResponse(body []byte) bool {
	var parsed greenhouseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed.Jobs) > 0
}
