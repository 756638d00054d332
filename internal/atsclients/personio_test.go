package atsclients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personioHTML = `
<html><body>
<a href="/job/123">Marketing Coordinator</a>
<a href="/job/123">Marketing Coordinator</a>
<a href="https://acme.jobs.personio.de/job/456?display=full">IT Support Specialist</a>
</body></html>`

func TestPersonioClient_FetchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(personioHTML))
	}))
	defer srv.Close()

	client := &PersonioClient{HTTPClient: srv.Client(), Token: "acme"}
	jobs, err := client.fetchFrom(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "123", jobs[0].ExternalID)
	assert.Equal(t, "Marketing Coordinator", jobs[0].Title)
	assert.Equal(t, "https://acme.jobs.personio.de/job/123", jobs[0].JobURL)
}

func TestParsePersonioHTML_DeduplicatesByID(t *testing.T) {
	postings := parsePersonioHTML("acme", personioHTML)
	assert.Len(t, postings, 2)
}

func TestValidatePersonioResponse(t *testing.T) {
	assert.True(t, ValidatePersonioResponse("acme", []byte(personioHTML)))
	assert.False(t, ValidatePersonioResponse("acme", []byte(`<html><body>no jobs here</body></html>`)))
}
