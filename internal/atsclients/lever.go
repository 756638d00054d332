package atsclients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// LeverClient fetches https://api.lever.co/v0/postings/{token}, paginating
// via offset in pages of 50 until a short page arrives, per spec §4.4.
type LeverClient struct {
	HTTPClient *http.Client
	Token      string
}

const leverPageSize = 50

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"`
	Categories struct {
		Department string `json:"department"`
		Location   string `json:"location"`
	} `json:"categories"`
	DescriptionPlain string `json:"descriptionPlain"`
}

func (c *LeverClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://api.lever.co/v0/postings/%s", c.Token))
}

func (c *LeverClient) fetchFrom(ctx context.Context, baseURL string) ([]JobPosting, error) {
	var all []JobPosting
	offset := 0

	for {
		url := fmt.Sprintf("%s?mode=json&skip=%d&limit=%d", baseURL, offset, leverPageSize)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, errs.New(errs.Programmer, "lever.FetchJobs", err)
		}

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return nil, errs.New(errs.Transient, "lever.FetchJobs", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			return all, nil
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, errs.New(errs.Transient, "lever.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, errs.New(errs.ParseFailed, "lever.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
		}

		var page []leverPosting
		decodeErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, errs.New(errs.ParseFailed, "lever.FetchJobs", decodeErr)
		}

		for _, p := range page {
			posted := time.UnixMilli(p.CreatedAt)
			all = append(all, JobPosting{
				ExternalID:  p.ID,
				Title:       p.Text,
				Department:  p.Categories.Department,
				Location:    p.Categories.Location,
				Description: p.DescriptionPlain,
				JobURL:      p.HostedURL,
				PostingDate: &posted,
			})
		}

		if len(page) < leverPageSize {
			break
		}
		offset += leverPageSize
	}

	return all, nil
}

// ValidateLeverResponse requires a non-empty JSON array.
func ValidateLeverResponse(body []byte) bool {
	var parsed []leverPosting
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false
	}
	return len(parsed) > 0
}
