package relevance

import "strings"

// Category constants for results that short-circuit before a signal match.
const (
	CategoryExcluded = "excluded"
	CategoryNoSignal = "no_signal"
)

// Result is the RelevanceScorer's explicit result type, replacing the
// tuple returns of the original Python scorer per the pattern
// re-architecture notes.
type Result struct {
	Score      int
	Category   string
	Matched    []string
	IsRelevant bool
}

// Scorer scores (title, description) pairs against a RoleProfile.
type Scorer struct {
	Profile   RoleProfile
	Threshold int
}

// New constructs a Scorer with the given threshold (spec default 60).
func New(profile RoleProfile, threshold int) *Scorer {
	return &Scorer{Profile: profile, Threshold: threshold}
}

// Score implements the five-step algorithm from spec §4.2:
//  1. lowercase/trim the title
//  2. exclusion dominates
//  3. first occurring required signal, else no_signal
//  4. category lookup + secondary-keyword refinement
//  5. base 80 + up to 20 description boost
func (s *Scorer) Score(title, description string) Result {
	normalized := strings.ToLower(strings.TrimSpace(title))

	if _, excluded := containsAny(normalized, s.Profile.Exclusions); excluded {
		return Result{Score: 0, Category: CategoryExcluded, Matched: nil, IsRelevant: false}
	}

	signal, found := firstOccurringSignal(normalized, s.Profile.Signals)
	if !found {
		return Result{Score: 0, Category: CategoryNoSignal, Matched: nil, IsRelevant: false}
	}

	category := s.Profile.SignalToCategory[signal]
	category = refineCategory(normalized, category)

	base := 80
	boost := descriptionBoost(description, s.Profile.DescriptionBoostKeywords)
	score := base + boost
	if score > 100 {
		score = 100
	}

	return Result{
		Score:      score,
		Category:   category,
		Matched:    []string{signal},
		IsRelevant: score >= s.Threshold,
	}
}

// firstOccurringSignal returns the signal with the lowest match index in
// title, not the first signal in list order — spec §4.2 step 3 says "the
// first occurring required signal".
func firstOccurringSignal(title string, signals []string) (string, bool) {
	bestIdx := -1
	var best string
	for _, sig := range signals {
		idx := strings.Index(title, sig)
		if idx == -1 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			best = sig
		}
	}
	return best, bestIdx != -1
}

// refineCategory upgrades/biases the looked-up category using secondary
// keywords in the title, per spec §4.2 step 4.
func refineCategory(title, category string) string {
	switch {
	case strings.Contains(title, "director") || strings.Contains(title, "vp") || strings.Contains(title, "head of"):
		return marketingLeadershipOr(category, "marketing_leadership")
	case strings.Contains(title, "product marketing"):
		return "product_marketing"
	}

	for _, kw := range []struct {
		term string
		cat  string
	}{
		{"brand", "brand"},
		{"content", "content"},
		{"social", "social_media"},
		{"seo", "seo"},
		{"paid", "paid_media"},
		{"ppc", "paid_media"},
		{"lifecycle", "lifecycle"},
		{"retention", "retention"},
	} {
		if strings.Contains(title, kw.term) {
			return kw.cat
		}
	}

	return category
}

// marketingLeadershipOr avoids forcing every leadership title into the
// marketing-specific leadership bucket when the category is already a
// non-marketing leadership one (e.g. it_leadership, sales_leadership).
func marketingLeadershipOr(category, fallback string) string {
	if strings.HasSuffix(category, "_leadership") {
		return category
	}
	return fallback
}

func descriptionBoost(description string, keywords []string) int {
	lower := strings.ToLower(description)
	hits := 0
	for _, kw := range keywords {
		hits += strings.Count(lower, kw)
	}
	boost := hits * 4
	if boost > 20 {
		boost = 20
	}
	return boost
}
