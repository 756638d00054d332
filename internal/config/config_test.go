package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_HOST", "localhost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hirescout", cfg.Database.DBName)
	assert.Equal(t, 60, cfg.Source.RelevanceThreshold)
	assert.Equal(t, 10, cfg.Enrichment.ApolloBatchSize)
	assert.Equal(t, 5, cfg.Enrichment.AnthropicBatchSize)
	assert.True(t, cfg.Enrichment.EnableDecisionMakerLookup)
	assert.False(t, cfg.ATS.EnableJSRendering)
	assert.Equal(t, 2*time.Second, cfg.ATS.DelayBetweenCompanies)
}

func TestLoad_RequiresDBHost(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	os.Clearenv()
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("RELEVANCE_THRESHOLD", "75")
	os.Setenv("ENABLE_JS_RENDERING", "true")
	os.Setenv("MAX_SEARCHES_PER_RUN", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 75, cfg.Source.RelevanceThreshold)
	assert.True(t, cfg.ATS.EnableJSRendering)
	assert.Equal(t, 10, cfg.Source.MaxSearchesPerRun)
}
