package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileMetroRotationState_RoundTripsAndWraps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := &FileMetroRotationState{Path: path}

	idx, err := state.NextIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.NoError(t, state.Advance(context.Background(), 3))

	idx, err = state.NextIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
}

func TestAggregatorSearchAdapter_FetchCandidates_DedupsAndRespectsBudget(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"jobs_results":[
			{"title":"Marketing Manager","company_name":"Acme","location":"NYC","apply_options":[{"link":"https://acme.com/jobs/1"}],"detected_extensions":{"posted_at":"today"}},
			{"title":"Marketing Manager","company_name":"Acme","location":"NYC","apply_options":[{"link":"https://acme.com/jobs/1"}],"detected_extensions":{"posted_at":"today"}}
		]}`))
	}))
	defer srv.Close()

	state := &FileMetroRotationState{Path: filepath.Join(t.TempDir(), "state.json")}
	adapter := NewAggregatorSearchAdapter(srv.Client(), "key", "marketing", []string{"NYC", "SF", "LA"}, 2, 1, state, zap.NewNop())
	adapter.url = srv.URL

	candidates, err := adapter.FetchCandidates(time.Time{})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Acme", candidates[0].Name)
	require.Len(t, candidates[0].JobListings, 1)
	assert.Equal(t, 1, calls, "max_searches=1 should stop after the first metro")
}

func TestParseRelativePostedAt(t *testing.T) {
	now := time.Now()

	assert.WithinDuration(t, now, parseRelativePostedAt("just now"), time.Hour)
	assert.WithinDuration(t, now.AddDate(0, 0, -1), parseRelativePostedAt("Yesterday"), time.Hour)
	assert.WithinDuration(t, now.AddDate(0, 0, -2), parseRelativePostedAt("2 days ago"), time.Hour)
	assert.WithinDuration(t, now.AddDate(0, 0, -14), parseRelativePostedAt("2 weeks ago"), time.Hour)
	assert.True(t, parseRelativePostedAt("unparseable").IsZero())
}
