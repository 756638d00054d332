package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobviteFeedXML = `<?xml version="1.0"?>
<rss><channel>
<item>
<jvid>j-100</jvid>
<title>Account Executive</title>
<category>Sales</category>
<location>Remote</location>
<description>desc</description>
<link>https://jobs.jobvite.com/acme/job/j-100</link>
<pubDate>Mon, 02 Mar 2026 00:00:00 +0000</pubDate>
</item>
</channel></rss>`

func TestJobviteClient_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobviteFeedXML))
	}))
	defer srv.Close()

	client := &JobviteClient{HTTPClient: srv.Client(), Token: "acme"}
	jobs, err := client.fetchFrom(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j-100", jobs[0].ExternalID)
	assert.Equal(t, "Sales", jobs[0].Department)
	require.NotNil(t, jobs[0].PostingDate)
}

func TestValidateJobviteResponse(t *testing.T) {
	assert.True(t, ValidateJobviteResponse([]byte(jobviteFeedXML)))
	assert.False(t, ValidateJobviteResponse([]byte(`<rss><channel></channel></rss>`)))
}
