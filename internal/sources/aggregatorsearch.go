package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
	redisclient "github.com/mpetrova/hirescout/internal/platform/redis"
	"go.uber.org/zap"
)

const serpAPISearchURL = "https://serpapi.com/search"

// MetroRotationState persists the next-metro-index cursor across runs
// (spec §4.7), either as a small JSON file or, when Redis is configured, as
// a single key — the cheaper of the two for a counter this small.
type MetroRotationState interface {
	NextIndex(ctx context.Context) (int, error)
	Advance(ctx context.Context, newIndex int) error
}

// FileMetroRotationState stores the cursor in a JSON file, matching the
// original's plain state_path.json convention.
type FileMetroRotationState struct {
	Path string
}

type fileRotationState struct {
	NextIndex int `json:"next_index"`
}

func (s *FileMetroRotationState) NextIndex(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var state fileRotationState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, nil
	}
	return state.NextIndex, nil
}

func (s *FileMetroRotationState) Advance(ctx context.Context, newIndex int) error {
	data, err := json.Marshal(fileRotationState{NextIndex: newIndex})
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// RedisMetroRotationState stores the cursor as a single Redis key, used
// instead of the file when REDIS_HOST is configured.
type RedisMetroRotationState struct {
	Client *redisclient.Client
	Key    string
}

func (s *RedisMetroRotationState) NextIndex(ctx context.Context) (int, error) {
	val, err := s.Client.Get(ctx, s.Key).Result()
	if err != nil {
		return 0, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, nil
	}
	return n, nil
}

func (s *RedisMetroRotationState) Advance(ctx context.Context, newIndex int) error {
	return s.Client.Set(ctx, s.Key, strconv.Itoa(newIndex), 0).Err()
}

// AggregatorSearchAdapter issues paid-search-API queries for a job title
// across a rotating set of metros, deduplicating within a run. Ported from
// serpapi_client.py, speaking SerpAPI's REST endpoint directly since no Go
// client for it appears anywhere in the examples pack.
type AggregatorSearchAdapter struct {
	HTTPClient  *http.Client
	APIKey      string
	Query       string
	AllMetros   []string
	MetrosPerRun int
	MaxSearches int
	State       MetroRotationState
	Logger      *zap.Logger

	url string // overridable in tests; defaults to serpAPISearchURL
}

func NewAggregatorSearchAdapter(httpClient *http.Client, apiKey, query string, allMetros []string, metrosPerRun, maxSearches int, state MetroRotationState, logger *zap.Logger) *AggregatorSearchAdapter {
	return &AggregatorSearchAdapter{
		HTTPClient:   httpClient,
		APIKey:       apiKey,
		Query:        query,
		AllMetros:    allMetros,
		MetrosPerRun: metrosPerRun,
		MaxSearches:  maxSearches,
		State:        state,
		Logger:       logger,
	}
}

func (a *AggregatorSearchAdapter) endpoint() string {
	if a.url != "" {
		return a.url
	}
	return serpAPISearchURL
}

// FetchCandidates searches the next metros in rotation and returns one
// CompanyCandidate per distinct (company_name, title) pair whose posting
// date is on or after dateFilter.
func (a *AggregatorSearchAdapter) FetchCandidates(dateFilter time.Time) ([]CompanyCandidate, error) {
	ctx := context.Background()
	metros, err := a.nextMetros(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	byKey := make(map[string]*CompanyCandidate)
	var order []string
	searchesUsed := 0

	for _, metro := range metros {
		if searchesUsed >= a.MaxSearches {
			a.Logger.Warn("aggregatorsearch: search budget exhausted", zap.Int("max_searches", a.MaxSearches))
			break
		}
		listings, err := a.searchOne(ctx, metro)
		searchesUsed++
		if err != nil {
			a.Logger.Warn("aggregatorsearch: search failed", zap.String("metro", metro), zap.Error(err))
			continue
		}

		for _, l := range listings {
			if !l.postingDate.IsZero() && l.postingDate.Before(dateFilter) {
				continue
			}
			dedupKey := strings.ToLower(strings.TrimSpace(l.companyName)) + "|||" + strings.ToLower(strings.TrimSpace(l.title))
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true

			candKey := strings.ToLower(l.companyName)
			cand, ok := byKey[candKey]
			if !ok {
				cand = &CompanyCandidate{Name: l.companyName}
				byKey[candKey] = cand
				order = append(order, candKey)
			}
			cand.JobListings = append(cand.JobListings, JobListing{
				Title:       l.title,
				URL:         l.jobURL,
				Location:    l.location,
				PostingDate: l.postingDate,
			})
		}
		a.Logger.Info("aggregatorsearch: metro searched",
			zap.Int("search_number", searchesUsed), zap.String("metro", metro), zap.Int("results", len(listings)))
	}

	candidates := make([]CompanyCandidate, 0, len(order))
	for _, k := range order {
		candidates = append(candidates, *byKey[k])
	}
	return candidates, nil
}

// nextMetros picks the next MetrosPerRun metros from the rotation and
// advances the persisted cursor, wrapping around the metro list.
func (a *AggregatorSearchAdapter) nextMetros(ctx context.Context) ([]string, error) {
	if len(a.AllMetros) == 0 {
		return nil, nil
	}
	nextIndex, err := a.State.NextIndex(ctx)
	if err != nil {
		nextIndex = 0
	}

	total := len(a.AllMetros)
	selected := make([]string, 0, a.MetrosPerRun)
	for i := 0; i < a.MetrosPerRun; i++ {
		selected = append(selected, a.AllMetros[(nextIndex+i)%total])
	}

	newIndex := (nextIndex + a.MetrosPerRun) % total
	if err := a.State.Advance(ctx, newIndex); err != nil {
		a.Logger.Warn("aggregatorsearch: failed to persist rotation state", zap.Error(err))
	}
	return selected, nil
}

type serpJobListing struct {
	title       string
	companyName string
	location    string
	jobURL      string
	postingDate time.Time
}

type serpJobsResponse struct {
	Error      string `json:"error"`
	JobResults []struct {
		Title       string `json:"title"`
		CompanyName string `json:"company_name"`
		Location    string `json:"location"`
		ApplyOptions []struct {
			Link string `json:"link"`
		} `json:"apply_options"`
		DetectedExtensions struct {
			PostedAt string `json:"posted_at"`
		} `json:"detected_extensions"`
	} `json:"jobs_results"`
}

func (a *AggregatorSearchAdapter) searchOne(ctx context.Context, metro string) ([]serpJobListing, error) {
	q := url.Values{}
	q.Set("engine", "google_jobs")
	q.Set("q", a.Query)
	q.Set("location", metro)
	q.Set("chips", "date_posted:week")
	q.Set("api_key", a.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errs.New(errs.Programmer, "aggregatorsearch.searchOne", err)
	}

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, errs.New(errs.Transient, "aggregatorsearch.searchOne", err)
	}
	defer resp.Body.Close()

	var parsed serpJobsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errs.New(errs.ParseFailed, "aggregatorsearch.searchOne", err)
	}
	if parsed.Error != "" {
		return nil, errs.New(errs.Transient, "aggregatorsearch.searchOne", fmt.Errorf("serpapi error: %s", parsed.Error))
	}

	listings := make([]serpJobListing, 0, len(parsed.JobResults))
	for _, j := range parsed.JobResults {
		var jobURL string
		if len(j.ApplyOptions) > 0 {
			jobURL = j.ApplyOptions[0].Link
		}
		listings = append(listings, serpJobListing{
			title:       j.Title,
			companyName: j.CompanyName,
			location:    j.Location,
			jobURL:      jobURL,
			postingDate: parseRelativePostedAt(j.DetectedExtensions.PostedAt),
		})
	}
	return listings, nil
}

var (
	relDaysRe  = regexp.MustCompile(`(\d+)\s*day`)
	relWeeksRe = regexp.MustCompile(`(\d+)\s*week`)
)

// parseRelativePostedAt converts a SerpAPI "posted_at" string like
// "2 days ago", "yesterday", "today", "3 weeks ago" into an absolute date.
// Returns the zero Time when the string doesn't match a known pattern.
func parseRelativePostedAt(postedAt string) time.Time {
	text := strings.ToLower(strings.TrimSpace(postedAt))
	if text == "" {
		return time.Time{}
	}
	now := time.Now()

	if strings.Contains(text, "today") || strings.Contains(text, "just") || strings.Contains(text, "hour") {
		return now
	}
	if strings.Contains(text, "yesterday") {
		return now.AddDate(0, 0, -1)
	}
	if m := relDaysRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -n)
	}
	if m := relWeeksRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, -7*n)
	}
	return time.Time{}
}
