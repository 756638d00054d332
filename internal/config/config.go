package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Log        LogConfig
	S3         S3Config
	ATS        ATSConfig
	Enrichment EnrichmentConfig
	Source     SourceConfig
	Upload     UploadConfig
	Sentry     SentryConfig
	Mailer     MailerConfig
}

// ServerConfig holds process-level configuration (not an HTTP server).
// "Env" is reported to Sentry as the environment name; log verbosity and
// format come from LogConfig instead.
type ServerConfig struct {
	Env string
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration. Repurposed from session auth into
// the upload verb's manifest signer (see internal/upload).
type JWTConfig struct {
	ManifestSecret string
	ManifestExpiry time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// S3Config holds S3 storage configuration, used by the optional
// `export --s3` artifact upload.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// ATSConfig governs the detection engine and ATS clients.
type ATSConfig struct {
	HTTPTimeout          time.Duration
	DelayBetweenRequests time.Duration
	DelayBetweenCompanies time.Duration
	EnableJSRendering    bool
}

// EnrichmentConfig governs the DecisionMakerFinder and EmailFinder.
type EnrichmentConfig struct {
	AnthropicAPIKey           string
	AnthropicModel            string
	AnthropicBatchSize        int
	ApolloAPIKey              string
	ApolloBatchSize           int
	EnableDecisionMakerLookup bool
	EnableEmailLookup         bool
	EnableJobVerification     bool
	JobVerificationTimeout    time.Duration
	JobVerificationBatchSize  int
}

// SourceConfig governs the three SourceAdapters.
type SourceConfig struct {
	SerpAPIKey         string
	MaxSearchesPerRun  int
	MetrosPerRun       int
	MaxEmployeeCount   int
	RelevanceThreshold int
	SearchQuery        string
	Metros             []string
	CuratedCSVPath     string
	ReadmeURL          string
}

// UploadConfig governs the `upload` CLI verb.
type UploadConfig struct {
	LeadsAPIKey string
	VercelAPIURL string
}

// SentryConfig governs internal/platform/errtrack.
type SentryConfig struct {
	DSN string
}

// MailerConfig governs the optional end-of-run digest email.
type MailerConfig struct {
	ResendAPIKey string
	NotifyFrom   string
	NotifyTo     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Env: getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", ""),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "hirescout"),
			Password:        getEnv("DB_PASSWORD", "hirescout"),
			DBName:          getEnv("DB_NAME", "hirescout"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			ManifestSecret: getEnv("LEADS_UPLOAD_API_KEY", ""),
			ManifestExpiry: getEnvAsDuration("JWT_MANIFEST_EXPIRY", 10*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Bucket:    getEnv("S3_EXPORT_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		ATS: ATSConfig{
			HTTPTimeout:           getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
			DelayBetweenRequests:  getEnvAsDuration("DELAY_BETWEEN_REQUESTS", 500*time.Millisecond),
			DelayBetweenCompanies: getEnvAsDuration("DELAY_BETWEEN_COMPANIES", 2*time.Second),
			EnableJSRendering:     getEnvAsBool("ENABLE_JS_RENDERING", false),
		},
		Enrichment: EnrichmentConfig{
			AnthropicAPIKey:           getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicModel:            getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
			AnthropicBatchSize:        getEnvAsInt("GEMINI_BATCH_SIZE", 5),
			ApolloAPIKey:              getEnv("APOLLO_API_KEY", ""),
			ApolloBatchSize:           getEnvAsInt("APOLLO_BATCH_SIZE", 10),
			EnableDecisionMakerLookup: getEnvAsBool("ENABLE_DECISION_MAKER_LOOKUP", true),
			EnableEmailLookup:         getEnvAsBool("ENABLE_EMAIL_LOOKUP", true),
			EnableJobVerification:     getEnvAsBool("ENABLE_JOB_VERIFICATION", false),
			JobVerificationTimeout:    getEnvAsDuration("JOB_VERIFICATION_TIMEOUT", 10*time.Second),
			JobVerificationBatchSize:  getEnvAsInt("JOB_VERIFICATION_BATCH_SIZE", 10),
		},
		Source: SourceConfig{
			SerpAPIKey:         getEnv("SERPAPI_API_KEY", ""),
			MaxSearchesPerRun:  getEnvAsInt("MAX_SEARCHES_PER_RUN", 50),
			MetrosPerRun:       getEnvAsInt("METROS_PER_RUN", 5),
			MaxEmployeeCount:   getEnvAsInt("MAX_EMPLOYEE_COUNT", 500),
			RelevanceThreshold: getEnvAsInt("RELEVANCE_THRESHOLD", 60),
			SearchQuery:        getEnv("SEARCH_QUERY", "marketing manager jobs"),
			Metros:             getEnvAsList("SEARCH_METROS", []string{"New York, NY", "San Francisco, CA", "Austin, TX", "Chicago, IL", "Boston, MA"}),
			CuratedCSVPath:     getEnv("CURATED_CSV_PATH", ""),
			ReadmeURL:          getEnv("REPO_LISTING_README_URL", ""),
		},
		Upload: UploadConfig{
			LeadsAPIKey:  getEnv("LEADS_UPLOAD_API_KEY", ""),
			VercelAPIURL: getEnv("VERCEL_API_URL", ""),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
		Mailer: MailerConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			NotifyFrom:   getEnv("NOTIFY_EMAIL_FROM", "hirescout@reports.local"),
			NotifyTo:     getEnv("NOTIFY_EMAIL_TO", ""),
		},
	}

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}

	return cfg, nil
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the Redis address.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
