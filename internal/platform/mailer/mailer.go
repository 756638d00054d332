// Package mailer sends the optional end-of-run digest email via Resend,
// the way the teacher's go.mod declares resend-go/v2 without the teacher
// ever sending mail itself — here it backs orchestrator step 12's
// operational notification, distinct from the explicitly out-of-scope
// icebreaker-copywriting feature.
package mailer

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Client sends the run-digest email. A blank APIKey or To makes Send a
// no-op so callers don't need to branch on whether mail is configured.
type Client struct {
	client *resend.Client
	from   string
	to     string
}

// New builds a Client; a blank apiKey or to disables Send entirely.
func New(apiKey, from, to string) *Client {
	if apiKey == "" || to == "" {
		return &Client{}
	}
	return &Client{client: resend.NewClient(apiKey), from: from, to: to}
}

// Digest is the run summary rendered into the email body.
type Digest struct {
	RunID            string
	CompaniesSeen    int
	CompaniesSkipped int
	TotalNewJobs     int
	TotalRemovedJobs int
	EnrichmentRun    bool
	Duration         string
}

// SendDigest emails one run's summary. A no-op Client silently succeeds.
func (c *Client) SendDigest(d Digest) error {
	if c.client == nil {
		return nil
	}
	_, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    c.from,
		To:      []string{c.to},
		Subject: fmt.Sprintf("hirescout run %s: %d new, %d removed", d.RunID, d.TotalNewJobs, d.TotalRemovedJobs),
		Html:    digestHTML(d),
	})
	return err
}

func digestHTML(d Digest) string {
	return fmt.Sprintf(`<h2>Run %s</h2>
<ul>
<li>Companies seen: %d</li>
<li>Companies skipped (already seen): %d</li>
<li>New jobs: %d</li>
<li>Removed jobs: %d</li>
<li>Enrichment ran: %t</li>
<li>Duration: %s</li>
</ul>`, d.RunID, d.CompaniesSeen, d.CompaniesSkipped, d.TotalNewJobs, d.TotalRemovedJobs, d.EnrichmentRun, d.Duration)
}
