package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// ManifestTTL bounds how long a signed manifest stays valid, long enough
// to cover network retries on a slow upload without living past the
// batch's relevance.
const ManifestTTL = 10 * time.Minute

// Client POSTs a Payload to the website's upload-leads endpoint.
type Client struct {
	HTTPClient     *http.Client
	URL            string
	APIKey         string
	ManifestSecret string
}

// NewClient builds a Client; HTTPClient defaults to http.DefaultClient's
// timeout semantics are the caller's responsibility (internal/platform/httpclient.New
// is expected at the call site).
func NewClient(httpClient *http.Client, url, apiKey, manifestSecret string) *Client {
	return &Client{HTTPClient: httpClient, URL: url, APIKey: apiKey, ManifestSecret: manifestSecret}
}

// Result is the parsed response body on a 200.
type Result struct {
	Message string         `json:"message"`
	Stats   map[string]any `json:"stats"`
}

// Upload POSTs payload, signing leadsCount/runID into the X-Lead-Manifest
// header when ManifestSecret is set.
func (c *Client) Upload(ctx context.Context, payload Payload, runID string) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.New(errs.Programmer, "upload.Upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errs.New(errs.Programmer, "upload.Upload", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	if c.ManifestSecret != "" {
		manifest, err := SignManifest(c.ManifestSecret, len(payload.Leads), runID, ManifestTTL)
		if err != nil {
			return nil, errs.New(errs.Programmer, "upload.Upload", err)
		}
		req.Header.Set("X-Lead-Manifest", manifest)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "upload.Upload", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.Transient, "upload.Upload", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody)))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errs.New(errs.ParseFailed, "upload.Upload", err)
	}
	return &result, nil
}
