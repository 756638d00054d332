package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mpetrova/hirescout/internal/errs"
	"go.uber.org/zap"
)

// boldLinkRe extracts a bold markdown link: **[Text](URL)**.
var boldLinkRe = regexp.MustCompile(`\*\*\[(.+?)\]\((.+?)\)\*\*`)

// skipDomains are hosts that can appear as a company cell's link target but
// are never the company's own site, so can't seed ATS detection.
var skipDomains = map[string]bool{
	"linkedin.com": true,
	"github.com":   true,
	"twitter.com":  true,
	"facebook.com": true,
}

// RepositoryListingAdapter fetches a markdown README from a hosted
// repository (e.g. GitHub's contents API) and parses the fenced job-listing
// table it contains, following jobright-ai-style new-grad listing repos
// (spec §4.7, ported from github_scraper.py).
type RepositoryListingAdapter struct {
	HTTPClient *http.Client
	ReadmeURL  string // e.g. https://api.github.com/repos/<owner>/<repo>/readme
	Logger     *zap.Logger
}

func NewRepositoryListingAdapter(httpClient *http.Client, readmeURL string, logger *zap.Logger) *RepositoryListingAdapter {
	return &RepositoryListingAdapter{HTTPClient: httpClient, ReadmeURL: readmeURL, Logger: logger}
}

// FetchCandidates returns one CompanyCandidate per distinct company found in
// the table, each carrying every JobListing row posted on or after
// dateFilter. A zero dateFilter returns everything parsed.
func (a *RepositoryListingAdapter) FetchCandidates(dateFilter time.Time) ([]CompanyCandidate, error) {
	content, err := a.fetchReadme(context.Background())
	if err != nil {
		return nil, err
	}

	rows := parseListingTable(content)

	byDomain := make(map[string]*CompanyCandidate)
	var order []string
	for _, row := range rows {
		if row.companyDomain == "" {
			continue
		}
		if !row.datePosted.IsZero() && row.datePosted.Before(dateFilter) {
			continue
		}
		cand, ok := byDomain[row.companyDomain]
		if !ok {
			cand = &CompanyCandidate{Name: row.companyName, Domain: row.companyDomain, Website: row.companyURL}
			byDomain[row.companyDomain] = cand
			order = append(order, row.companyDomain)
		}
		cand.JobListings = append(cand.JobListings, JobListing{
			Title:       row.jobTitle,
			URL:         row.jobURL,
			Location:    row.location,
			WorkModel:   row.workModel,
			PostingDate: row.datePosted,
		})
	}

	candidates := make([]CompanyCandidate, 0, len(order))
	for _, domain := range order {
		candidates = append(candidates, *byDomain[domain])
	}
	return candidates, nil
}

func (a *RepositoryListingAdapter) fetchReadme(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.ReadmeURL, nil)
	if err != nil {
		return "", errs.New(errs.Programmer, "repositorylisting.fetchReadme", err)
	}
	req.Header.Set("Accept", "application/vnd.github.raw+json")
	req.Header.Set("User-Agent", "hirescout/1.0")

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return "", errs.New(errs.Transient, "repositorylisting.fetchReadme", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", errs.New(errs.Transient, "repositorylisting.fetchReadme", fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return "", errs.New(errs.ParseFailed, "repositorylisting.fetchReadme", fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", errs.New(errs.Transient, "repositorylisting.fetchReadme", err)
	}
	return string(body), nil
}

type listingRow struct {
	companyName   string
	companyURL    string
	companyDomain string
	jobTitle      string
	jobURL        string
	location      string
	workModel     string
	datePosted    time.Time
}

// parseListingTable finds the table between TABLE_START/TABLE_END markers
// and parses every data row, carrying a company cell forward across ↳ rows.
func parseListingTable(content string) []listingRow {
	lines := strings.Split(content, "\n")

	startIdx, endIdx := -1, -1
	for i, line := range lines {
		if strings.Contains(line, "TABLE_START") {
			startIdx = i
		} else if strings.Contains(line, "TABLE_END") {
			endIdx = i
			break
		}
	}
	if startIdx == -1 || endIdx == -1 {
		return nil
	}

	var tableLines []string
	for _, line := range lines[startIdx+1 : endIdx] {
		stripped := strings.TrimSpace(line)
		if stripped == "" || !strings.HasPrefix(stripped, "|") {
			continue
		}
		if strings.Contains(stripped, "Company") || strings.Contains(stripped, "-----") {
			continue
		}
		tableLines = append(tableLines, stripped)
	}

	var rows []listingRow
	var prevName, prevURL, prevDomain string
	for _, line := range tableLines {
		row, ok := parseListingRow(line, prevName, prevURL, prevDomain)
		if !ok {
			continue
		}
		rows = append(rows, row)
		prevName, prevURL, prevDomain = row.companyName, row.companyURL, row.companyDomain
	}
	return rows
}

// splitTableRow splits a markdown table row by | while respecting bracket
// and paren depth, since a markdown link [text](url) may itself contain |.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var current strings.Builder
	bracketDepth, parenDepth := 0, 0

	for _, ch := range line {
		switch ch {
		case '[':
			bracketDepth++
			current.WriteRune(ch)
		case ']':
			bracketDepth--
			current.WriteRune(ch)
		case '(':
			parenDepth++
			current.WriteRune(ch)
		case ')':
			parenDepth--
			current.WriteRune(ch)
		case '|':
			if bracketDepth == 0 && parenDepth == 0 {
				cells = append(cells, strings.TrimSpace(current.String()))
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		cells = append(cells, strings.TrimSpace(current.String()))
	}
	return cells
}

func parseListingRow(line, prevName, prevURL, prevDomain string) (listingRow, bool) {
	cells := splitTableRow(line)
	if len(cells) < 5 {
		return listingRow{}, false
	}

	companyCell, jobCell, location, workModel, dateStr := cells[0], cells[1], cells[2], cells[3], cells[4]

	var companyName, companyURL, companyDomain string
	if strings.Contains(companyCell, "↳") {
		companyName, companyURL, companyDomain = prevName, prevURL, prevDomain
	} else if m := boldLinkRe.FindStringSubmatch(companyCell); m != nil {
		companyName, companyURL = m[1], m[2]
		companyDomain = extractCompanyDomain(companyURL)
	} else {
		companyName = strings.TrimSpace(strings.ReplaceAll(companyCell, "**", ""))
	}

	if companyName == "" || companyDomain == "" {
		return listingRow{}, false
	}

	var jobTitle, jobURL string
	if m := boldLinkRe.FindStringSubmatch(jobCell); m != nil {
		jobTitle, jobURL = m[1], m[2]
	} else {
		jobTitle = strings.TrimSpace(strings.ReplaceAll(jobCell, "**", ""))
	}

	datePosted, ok := parseListingDate(dateStr)
	if !ok {
		return listingRow{}, false
	}

	return listingRow{
		companyName:   companyName,
		companyURL:    companyURL,
		companyDomain: companyDomain,
		jobTitle:      jobTitle,
		jobURL:        jobURL,
		location:      location,
		workModel:     workModel,
		datePosted:    datePosted,
	}, true
}

// extractCompanyDomain strips www. and rejects known social-media hosts,
// which can't be used to seed ATS detection.
func extractCompanyDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	withScheme := rawURL
	if !strings.HasPrefix(withScheme, "http") {
		withScheme = "https://" + withScheme
	}
	parsed, err := url.Parse(withScheme)
	if err != nil {
		return ""
	}
	domain := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	if skipDomains[domain] {
		return ""
	}
	return domain
}

// parseListingDate parses "MMM DD" against the current year, rolling back
// one year if the result lands more than 30 days in the future (handles the
// Dec->Jan rollover when the table is read early in a new year).
func parseListingDate(dateStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}

	now := time.Now()
	parsed, err := time.Parse("Jan 2 2006", fmt.Sprintf("%s %d", dateStr, now.Year()))
	if err != nil {
		return time.Time{}, false
	}

	if parsed.Sub(now) > 30*24*time.Hour {
		parsed = parsed.AddDate(-1, 0, 0)
	}
	return parsed, true
}
