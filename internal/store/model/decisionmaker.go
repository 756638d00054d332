package model

// Confidence is the DecisionMakerFinder's self-reported certainty for a
// match; the spec recognizes exactly these two labels.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
)

// NotConfidentlyIdentifiable is the sentinel person_name the LLM emits when
// it refuses to guess. It is never written as a DecisionMaker row; callers
// preserve it as NotFoundReason instead.
const NotConfidentlyIdentifiable = "Not confidently identifiable"

// DecisionMaker is the single current enriched contact for a company. At
// most one row per CompanyID (conflict target for UpsertDecisionMaker).
type DecisionMaker struct {
	ID           string
	CompanyID    string
	PersonName   string
	Title        string
	SourceURL    string
	Confidence   Confidence
	Email        *string
	LinkedInURL  *string
}
