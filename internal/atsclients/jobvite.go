package atsclients

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
)

// JobviteClient fetches the Jobvite RSS/XML feed at
// https://jobs.jobvite.com/rss/{token}.xml. The feed has been observed
// mixing prefixed and unprefixed tags within one document (spec §9); the
// decode below is deliberately lenient about which ID tag is present,
// taking jvid and falling back to guid rather than requiring one of them.
type JobviteClient struct {
	HTTPClient *http.Client
	Token      string
}

type jobviteFeed struct {
	Channel struct {
		Items []jobviteItem `xml:"item"`
	} `xml:"channel"`
}

type jobviteItem struct {
	JVID        string `xml:"jvid"`
	GUID        string `xml:"guid"`
	Title       string `xml:"title"`
	Category    string `xml:"category"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	Location    string `xml:"location"`
	PubDate     string `xml:"pubDate"`
}

func (c *JobviteClient) FetchJobs(ctx context.Context) ([]JobPosting, error) {
	return c.fetchFrom(ctx, fmt.Sprintf("https://jobs.jobvite.com/rss/%s.xml", c.Token))
}

func (c *JobviteClient) fetchFrom(ctx context.Context, url string) ([]JobPosting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "jobvite.FetchJobs", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "jobvite.FetchJobs", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, errs.New(errs.Transient, "jobvite.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.ParseFailed, "jobvite.FetchJobs", fmt.Errorf("status %d", resp.StatusCode))
	}

	decoder := xml.NewDecoder(resp.Body)
	// Tolerate unknown/prefixed namespaces instead of failing the decode.
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var feed jobviteFeed
	if err := decoder.Decode(&feed); err != nil {
		return nil, errs.New(errs.ParseFailed, "jobvite.FetchJobs", err)
	}

	postings := make([]JobPosting, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		externalID := item.JVID
		if externalID == "" {
			externalID = item.GUID
		}
		var posted *time.Time
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			posted = &t
		} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			posted = &t
		}
		postings = append(postings, JobPosting{
			ExternalID:  externalID,
			Title:       item.Title,
			Department:  item.Category,
			Location:    item.Location,
			Description: item.Description,
			JobURL:      item.Link,
			PostingDate: posted,
		})
	}

	return postings, nil
}

// ValidateJobviteResponse requires at least one <job> or <item> tag.
func ValidateJobviteResponse(body []byte) bool {
	if bytes.Contains(body, []byte("<job>")) || bytes.Contains(body, []byte("<job ")) {
		return true
	}
	var feed jobviteFeed
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.Strict = false
	if err := decoder.Decode(&feed); err != nil {
		return false
	}
	return len(feed.Channel.Items) > 0
}
