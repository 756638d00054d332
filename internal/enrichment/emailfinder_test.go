package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSplitName(t *testing.T) {
	first, last := splitName("Jane Doe")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = splitName("Madonna")
	assert.Equal(t, "Madonna", first)
	assert.Equal(t, "", last)

	first, last = splitName("Mary Jane Watson")
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Jane Watson", last)
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "acme.com", extractDomain("https://www.acme.com/careers"))
	assert.Equal(t, "acme.com", extractDomain("acme.com"))
	assert.Equal(t, "", extractDomain(""))
}

func TestEmailFinder_FindEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[{"email":"jane@acme.com","linkedin_url":"https://linkedin.com/in/jane","title":"CEO"},null],"unique_enriched_records":1,"missing_records":1}`))
	}))
	defer srv.Close()

	finder := &EmailFinder{HTTPClient: srv.Client(), APIKey: "key", BatchSize: 10, Logger: zap.NewNop(), url: srv.URL}

	decisionMakers := []DecisionMakerResult{
		{CompanyName: "Acme", PersonName: "Jane Doe"},
		{CompanyName: "Beta Corp", PersonName: "No Match"},
	}
	results, err := finder.FindEmails(context.Background(), decisionMakers, map[string]string{"Acme": "acme.com"})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "jane@acme.com", results[0].Email)
	assert.Equal(t, "no match found in Apollo", results[1].NotFoundReason)
}

func TestEmailFinder_SkipsDecisionMakersWithNoPersonName(t *testing.T) {
	finder := &EmailFinder{HTTPClient: http.DefaultClient, APIKey: "key", BatchSize: 10, Logger: zap.NewNop()}
	results, err := finder.FindEmails(context.Background(), []DecisionMakerResult{{CompanyName: "Acme"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestEmailFinder_DisabledWithoutAPIKey(t *testing.T) {
	finder := &EmailFinder{HTTPClient: http.DefaultClient, Logger: zap.NewNop()}
	results, err := finder.FindEmails(context.Background(), []DecisionMakerResult{{CompanyName: "Acme", PersonName: "Jane Doe"}}, nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}
