package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// RolePriority names the acceptable target roles in strict priority order,
// read top-to-bottom into the prompt, per spec §4.6.
type RolePriority []string

// MSPRolePriority and MarketingRolePriority are the two variants spec §4.6
// names explicitly.
var MSPRolePriority = RolePriority{
	"Owner, CEO, Founder, President, or Co-Founder",
	"VP of Sales, Sales Director, or Chief Revenue Officer",
	"VP of Marketing, Marketing Director, or CMO",
}

var MarketingRolePriority = RolePriority{
	"Owner, CEO, Founder, or President",
	"VP of Sales",
	"VP of Marketing",
}

var ITRolePriority = RolePriority{
	"Owner or CEO",
	"IT Director or CTO",
	"Office Manager or Operations Manager",
}

const decisionMakerPromptTemplate = `You have access to web search. For each company listed below, identify the single most appropriate decision maker responsible for sales, marketing, or overall business growth.

Use this strict priority order:
%s

Use only publicly verifiable sources (LinkedIn profiles, company "About" or "Team" pages, press articles). Do not guess or hallucinate. If you cannot confidently identify a person, set person_name to "Not confidently identifiable" and explain why in the reason field.

Do not return multiple people per company, do not list alternatives, and do not select individual contributors. Exclude recruiters, HR, engineers, designers, consultants, and former employees.

Also classify the company's industry from this closed list: %s. Estimate the current employee count as an integer if discoverable.

Return your results as a JSON array. Each element must be an object with these exact keys:
- "company_name": string
- "person_name": string (or "Not confidently identifiable")
- "title": string or null
- "source_url": string or null (LinkedIn or other proof URL)
- "confidence": "High" or "Medium"
- "employee_count": integer or null
- "industry": string or null
- "reason": string or null (only if person not found)

Companies:
%s`

// DecisionMakerFinder is the LLM+search-grounded decision-maker lookup of
// spec §4.6, backed by Claude's web-search tool.
type DecisionMakerFinder struct {
	client    anthropic.Client
	model     string
	batchSize int
	logger    *zap.Logger
	enabled   bool
}

// NewDecisionMakerFinder builds a finder; an empty apiKey disables lookups
// (Find returns a not-found-reason result for every input without calling
// out to Anthropic), matching the teacher's enabled-flag pattern.
func NewDecisionMakerFinder(apiKey, model string, batchSize int, logger *zap.Logger) *DecisionMakerFinder {
	if batchSize <= 0 {
		batchSize = 5
	}
	if apiKey == "" {
		return &DecisionMakerFinder{model: model, batchSize: batchSize, logger: logger, enabled: false}
	}
	return &DecisionMakerFinder{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		batchSize: batchSize,
		logger:    logger,
		enabled:   true,
	}
}

// Find looks up decision makers for companies, batching per f.batchSize.
func (f *DecisionMakerFinder) Find(ctx context.Context, companies []CompanyInput, priority RolePriority) ([]DecisionMakerResult, error) {
	if !f.enabled {
		results := make([]DecisionMakerResult, len(companies))
		for i, c := range companies {
			results[i] = DecisionMakerResult{CompanyName: c.CompanyName, NotFoundReason: "decision-maker lookup disabled"}
		}
		return results, nil
	}

	var all []DecisionMakerResult
	for start := 0; start < len(companies); start += f.batchSize {
		end := start + f.batchSize
		if end > len(companies) {
			end = len(companies)
		}
		batch := companies[start:end]

		var batchResults []DecisionMakerResult
		err := RetryDo(ctx, DefaultMaxAttempts, DefaultBaseDelay, IsRateLimited, func() error {
			r, callErr := f.processBatch(ctx, batch, priority)
			if callErr != nil {
				return callErr
			}
			batchResults = r
			return nil
		})
		if err != nil {
			f.logger.Warn("decision maker batch failed", zap.Error(err), zap.Int("batch_start", start))
			for _, c := range batch {
				batchResults = append(batchResults, DecisionMakerResult{
					CompanyName:    c.CompanyName,
					NotFoundReason: fmt.Sprintf("API error: %v", err),
				})
			}
		}
		all = append(all, batchResults...)
	}
	return all, nil
}

func (f *DecisionMakerFinder) processBatch(ctx context.Context, batch []CompanyInput, priority RolePriority) ([]DecisionMakerResult, error) {
	var lines strings.Builder
	for _, c := range batch {
		if c.Website != "" {
			fmt.Fprintf(&lines, "- %s (%s)\n", c.CompanyName, c.Website)
		} else {
			fmt.Fprintf(&lines, "- %s\n", c.CompanyName)
		}
	}

	var priorityLines strings.Builder
	for i, p := range priority {
		fmt.Fprintf(&priorityLines, "%d. %s\n", i+1, p)
	}

	prompt := fmt.Sprintf(decisionMakerPromptTemplate, priorityLines.String(), strings.Join(IndustryVocabulary, ", "), lines.String())

	resp, err := f.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(f.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{OfWebSearchTool20250305: &anthropic.WebSearchTool20250305Param{Name: "web_search"}},
		},
	})
	if err != nil {
		return nil, err
	}

	var raw strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			raw.WriteString(block.Text)
		}
	}

	if raw.Len() == 0 {
		out := make([]DecisionMakerResult, len(batch))
		for i, c := range batch {
			out[i] = DecisionMakerResult{CompanyName: c.CompanyName, NotFoundReason: "empty LLM response"}
		}
		return out, nil
	}

	return parseDecisionMakerResponse(raw.String(), batch), nil
}

type decisionMakerEntry struct {
	CompanyName   string `json:"company_name"`
	PersonName    string `json:"person_name"`
	Title         string `json:"title"`
	SourceURL     string `json:"source_url"`
	Confidence    string `json:"confidence"`
	EmployeeCount any    `json:"employee_count"`
	Industry      string `json:"industry"`
	Reason        string `json:"reason"`
}

// parseDecisionMakerResponse implements the tolerant parsing cascade of
// spec §4.6: direct JSON parse, fenced-block strip, longest well-formed
// array substring, then a per-company regex sweep.
func parseDecisionMakerResponse(raw string, batch []CompanyInput) []DecisionMakerResult {
	names := make(map[string]bool, len(batch))
	for _, c := range batch {
		names[c.CompanyName] = true
	}

	entries := tryParseJSONArray(raw)
	byCompany := make(map[string]DecisionMakerResult, len(batch))

	if entries != nil {
		for _, e := range entries {
			matched := matchCompanyName(e.CompanyName, names)
			if matched == "" {
				continue
			}
			byCompany[matched] = decisionMakerResultFromEntry(matched, e)
		}
	} else {
		byCompany = regexParseDecisionMakers(raw, names)
	}

	out := make([]DecisionMakerResult, 0, len(batch))
	for _, c := range batch {
		if r, ok := byCompany[c.CompanyName]; ok {
			out = append(out, r)
			continue
		}
		truncated := raw
		if len(truncated) > 500 {
			truncated = truncated[:500]
		}
		out = append(out, DecisionMakerResult{
			CompanyName:    c.CompanyName,
			NotFoundReason: "not found in LLM response",
			RawText:        truncated,
		})
	}
	return out
}

func decisionMakerResultFromEntry(matched string, e decisionMakerEntry) DecisionMakerResult {
	result := DecisionMakerResult{
		CompanyName: matched,
		PersonName:  e.PersonName,
		Title:       e.Title,
		SourceURL:   e.SourceURL,
		Confidence:  e.Confidence,
	}
	if strings.Contains(strings.ToLower(e.PersonName), "not confidently") {
		result.NotFoundReason = e.Reason
		if result.NotFoundReason == "" {
			result.NotFoundReason = e.PersonName
		}
		result.PersonName = ""
	}
	if count := coerceEmployeeCount(e.EmployeeCount); count != nil {
		result.EmployeeCount = count
	}
	if e.Industry != "" {
		industry := coerceIndustry(e.Industry)
		result.Industry = &industry
	}
	return result
}

func coerceEmployeeCount(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &i
		}
	}
	return nil
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func coerceIndustry(v string) string {
	for _, allowed := range IndustryVocabulary {
		if strings.EqualFold(allowed, v) {
			return allowed
		}
	}
	return "Other"
}

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\[.*?\\])\\s*```")
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*?\](?:\s*` + "```" + `|\s*$|\s*\[)`)

func tryParseJSONArray(text string) []decisionMakerEntry {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		if len(lines) > 2 {
			cleaned = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		}
	}

	var direct []decisionMakerEntry
	if err := json.Unmarshal([]byte(cleaned), &direct); err == nil {
		return direct
	}

	var best []decisionMakerEntry
	for _, m := range jsonArrayRe.FindAllString(text, -1) {
		var parsed []decisionMakerEntry
		if err := json.Unmarshal([]byte(m), &parsed); err == nil && len(parsed) > len(best) {
			best = parsed
		}
	}
	if best != nil {
		return best
	}

	for _, m := range fencedBlockRe.FindAllStringSubmatch(text, -1) {
		var parsed []decisionMakerEntry
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil && len(parsed) > len(best) {
			best = parsed
		}
	}
	return best
}

func matchCompanyName(name string, candidates map[string]bool) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for candidate := range candidates {
		cl := strings.ToLower(candidate)
		if cl == lower {
			return candidate
		}
	}
	for candidate := range candidates {
		cl := strings.ToLower(candidate)
		if strings.Contains(lower, cl) || strings.Contains(cl, lower) {
			return candidate
		}
	}
	return ""
}

var (
	personRe = regexp.MustCompile(`(?i)(?:name|person|decision maker)[:\s]*([A-Z][a-z]+ [A-Z][a-z]+(?:\s[A-Z][a-z]+)?)`)
	titleRe  = regexp.MustCompile(`(?i)(?:title|role|position)[:\s]*(.+?)(?:\n|,|$)`)
	urlRe    = regexp.MustCompile(`(?i)(?:source|url|link)[:\s]*(https?://\S+)`)
	confRe   = regexp.MustCompile(`(?i)confidence[:\s]*(high|medium)`)
)

// regexParseDecisionMakers is the final fallback when no well-formed JSON
// array could be extracted from the LLM response.
func regexParseDecisionMakers(text string, names map[string]bool) map[string]DecisionMakerResult {
	out := make(map[string]DecisionMakerResult, len(names))
	for name := range names {
		pattern := regexp.MustCompile(`(?is)` + regexp.QuoteMeta(name) + `[:\s-]*(.+?)(?:\n\n|\n-|\z)`)
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		block := strings.TrimSpace(m[1])

		if strings.Contains(strings.ToLower(block), "not confidently") {
			reason := block
			if len(reason) > 200 {
				reason = reason[:200]
			}
			out[name] = DecisionMakerResult{CompanyName: name, NotFoundReason: reason, RawText: block}
			continue
		}

		result := DecisionMakerResult{CompanyName: name, RawText: block}
		if m := personRe.FindStringSubmatch(block); m != nil {
			result.PersonName = strings.TrimSpace(m[1])
		}
		if m := titleRe.FindStringSubmatch(block); m != nil {
			result.Title = strings.TrimSpace(m[1])
		}
		if m := urlRe.FindStringSubmatch(block); m != nil {
			result.SourceURL = strings.TrimSpace(m[1])
		}
		if m := confRe.FindStringSubmatch(block); m != nil {
			result.Confidence = capitalize(m[1])
		}
		out[name] = result
	}
	return out
}
