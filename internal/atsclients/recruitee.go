package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// RecruiteeClient fetches https://{token}.recruitee.com/api/offers/.
type RecruiteeClient struct {
	HTTPClient *http.Client
	Token      string
}

type recruiteeResponse struct {
	Offers []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		Department  string `json:"department"`
		Location    string `json:"location"`
		Description string `json:"description"`
		CareersURL  string `json:"careers_url"`
		CreatedAt   string `json:"created_at"`
	} `json:"offers"`
}

func (c *RecruiteeClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://%s.recruitee.com/api/offers/", c.Token))
}

func (c *RecruiteeClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "recruitee.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "recruitee.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "recruitee.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "recruitee.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	var body recruiteeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.New(errs.ParseFailed, "recruitee.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(body.Offers))
	for _, j := range body.Offers {
		jobURL := j.CareersURL
		if jobURL == "" {
			jobURL = fmt.Sprintf("https://%s.recruitee.com/o/%d", c.Token, j.ID)
		}
		var posted *time.Time
		if t, err := time.Parse(time.RFC3339, j.CreatedAt); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  fmt.Sprintf("%d", j.ID),
			Title:       j.Title,
			Department:  j.Department,
			Location:    j.Location,
			Description: j.Description,
			JobURL:      jobURL,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateRecruiteeResponse requires an offers array with an entry.
func ValidateRecruiteeResponse(body []byte) bool {
	var parsed recruiteeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed.Offers) > 0
}
