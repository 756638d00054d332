package sources

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mpetrova/hirescout/internal/platform/docparse"
	"go.uber.org/zap"
)

// CuratedCSVAdapter streams CompanyCandidates from a hand-curated CSV of
// company/website pairs (spec §4.7). Column names are resolved once via
// CuratedCSVColumns so operators can use whatever header names their sheet
// export already has.
type CuratedCSVAdapter struct {
	Reader io.Reader
	Logger *zap.Logger
}

func NewCuratedCSVAdapter(r io.Reader, logger *zap.Logger) *CuratedCSVAdapter {
	return &CuratedCSVAdapter{Reader: r, Logger: logger}
}

// FetchCandidates ignores dateFilter: a curated CSV has no posting dates of
// its own, only the companies to seed into the pipeline.
func (a *CuratedCSVAdapter) FetchCandidates(dateFilter time.Time) ([]CompanyCandidate, error) {
	cr := csv.NewReader(a.Reader)
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("curatedcsv: read header: %w", err)
	}
	columns := CuratedCSVColumns.Resolve(headers)

	var candidates []CompanyCandidate
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			a.Logger.Warn("curatedcsv: skipping malformed row", zap.Error(err))
			continue
		}

		fields := make(map[string]string)
		for i, v := range row {
			if name, ok := columns[i]; ok {
				fields[name] = strings.TrimSpace(v)
			}
		}

		if fields["name"] == "" {
			continue
		}

		candidate := CompanyCandidate{
			Name:     fields["name"],
			Website:  fields["website"],
			Domain:   normalizeDomain(fields["website"]),
			Industry: fields["industry"],
			Keywords: splitKeywords(fields["keywords"]),
		}

		if raw := fields["employee_count"]; raw != "" {
			if n, ok := parseEmployeeCount(raw); ok {
				candidate.EmployeeCount = &n
			}
		}

		if path := fields["collateral_path"]; path != "" {
			text, err := docparse.ExtractText(path)
			if err != nil {
				a.Logger.Warn("curatedcsv: collateral extraction failed",
					zap.String("company", candidate.Name), zap.String("path", path), zap.Error(err))
			} else {
				candidate.CollateralText = text
			}
		}

		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// normalizeDomain lowercases a Website cell, strips any http(s):// scheme,
// a leading www. and everything from the first / ? or #; the returned
// domain carries no scheme (spec §4.7).
func normalizeDomain(website string) string {
	if website == "" {
		return ""
	}
	domain := strings.ToLower(strings.TrimSpace(website))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// parseEmployeeCount strips thousands-separator commas before parsing.
func parseEmployeeCount(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	n, err := strconv.Atoi(strings.TrimSpace(cleaned))
	if err != nil {
		return 0, false
	}
	return n, true
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' })
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
