// Package enrichment finds decision makers and their email addresses for
// companies already surfaced by the pipeline, per spec §4.6. DecisionMakerFinder
// wraps a search-grounded LLM call; EmailFinder wraps Apollo's bulk people
// enrichment endpoint. Both share the retry combinator in retry.go.
package enrichment

// CompanyInput is one company submitted to DecisionMakerFinder.
type CompanyInput struct {
	CompanyName string
	Website     string
}

// DecisionMakerResult is one LLM-produced decision-maker lookup, tolerant of
// a refused/unidentifiable outcome via NotFoundReason.
type DecisionMakerResult struct {
	CompanyName     string
	PersonName      string
	Title           string
	SourceURL       string
	Confidence      string // "High" or "Medium"
	EmployeeCount   *int
	Industry        *string
	NotFoundReason  string
	RawText         string
}

// NotConfidentlyIdentifiable is the sentinel PersonName value the LLM prompt
// instructs the model to emit when it refuses to guess, per spec §4.6.
const NotConfidentlyIdentifiable = "Not confidently identifiable"

// IndustryVocabulary is the closed set of industry classifications the
// decision-maker prompt may request; any other value is coerced to "Other".
var IndustryVocabulary = []string{
	"Technology", "Healthcare", "Finance", "Manufacturing", "Retail",
	"Professional Services", "Real Estate", "Construction", "Education",
	"Hospitality", "Other",
}

// EmailLookupResult is one Apollo bulk_match result for a decision maker.
type EmailLookupResult struct {
	CompanyName    string
	PersonName     string
	Email          string
	LinkedInURL    string
	ApolloTitle    string
	NotFoundReason string
}
