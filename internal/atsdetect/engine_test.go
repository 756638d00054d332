package atsdetect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mpetrova/hirescout/internal/platform/httpclient"
	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	cached    *model.ATSCacheEntry
	cacheGetErr error
	set       []*model.ATSCacheEntry
}

func (s *stubStore) CacheGet(ctx context.Context, domain string) (*model.ATSCacheEntry, error) {
	return s.cached, s.cacheGetErr
}
func (s *stubStore) CacheSet(ctx context.Context, entry *model.ATSCacheEntry) error {
	s.set = append(s.set, entry)
	return nil
}
func (s *stubStore) CacheClearExpired(ctx context.Context) (int, error) { return 0, nil }

func TestEngine_Detect_CacheHitSkipsNetwork(t *testing.T) {
	store := &stubStore{cached: &model.ATSCacheEntry{
		Domain:      "acme.com",
		ATSProvider: model.ATSGreenhouse,
		BoardToken:  "acme",
		ExpiresAt:   time.Now().Add(time.Hour),
	}}
	engine := &Engine{Store: store, ProbeClient: httpclient.New(time.Second), CareersClient: httpclient.New(time.Second)}

	result, err := engine.Detect(context.Background(), Input{CompanyName: "Acme", Domain: "acme.com"})

	require.NoError(t, err)
	assert.Equal(t, model.ATSGreenhouse, result.Provider)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, MethodCache, result.DetectionMethod)
}

func TestEngine_Detect_AllTiersMissFallsBackToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := &stubStore{}
	engine := &Engine{Store: store, ProbeClient: srv.Client(), CareersClient: srv.Client()}

	original := Registry[model.ATSGreenhouse]
	Registry[model.ATSGreenhouse] = Endpoint{
		Provider:  model.ATSGreenhouse,
		URL:       func(token string) string { return srv.URL },
		Validator: func(body []byte) bool { return false },
	}
	defer func() { Registry[model.ATSGreenhouse] = original }()

	result, err := engine.Detect(context.Background(), Input{CompanyName: "Acme", Domain: "127.0.0.1.nip.io"})

	require.NoError(t, err)
	assert.Equal(t, model.ATSLinkedInOnly, result.Provider)
	assert.Equal(t, MethodDefaultFallback, result.DetectionMethod)
	require.Len(t, store.set, 1)
}
