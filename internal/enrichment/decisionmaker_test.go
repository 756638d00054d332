package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecisionMakerResponse_DirectJSON(t *testing.T) {
	raw := `[{"company_name":"Acme Robotics","person_name":"Jane Doe","title":"CEO","source_url":"https://linkedin.com/in/janedoe","confidence":"High","employee_count":42,"industry":"Technology"}]`
	batch := []CompanyInput{{CompanyName: "Acme Robotics"}}

	results := parseDecisionMakerResponse(raw, batch)

	require.Len(t, results, 1)
	assert.Equal(t, "Jane Doe", results[0].PersonName)
	assert.Equal(t, "High", results[0].Confidence)
	require.NotNil(t, results[0].EmployeeCount)
	assert.Equal(t, 42, *results[0].EmployeeCount)
	require.NotNil(t, results[0].Industry)
	assert.Equal(t, "Technology", *results[0].Industry)
}

func TestParseDecisionMakerResponse_FencedCodeBlock(t *testing.T) {
	raw := "```json\n[{\"company_name\":\"Acme\",\"person_name\":\"Not confidently identifiable\",\"reason\":\"no public record\"}]\n```"
	batch := []CompanyInput{{CompanyName: "Acme"}}

	results := parseDecisionMakerResponse(raw, batch)

	require.Len(t, results, 1)
	assert.Empty(t, results[0].PersonName)
	assert.Equal(t, "no public record", results[0].NotFoundReason)
}

func TestParseDecisionMakerResponse_UnmatchedCompanyFallsThroughToNotFound(t *testing.T) {
	raw := `[{"company_name":"Totally Different Corp","person_name":"Jane Doe"}]`
	batch := []CompanyInput{{CompanyName: "Acme Robotics"}}

	results := parseDecisionMakerResponse(raw, batch)

	require.Len(t, results, 1)
	assert.Equal(t, "Acme Robotics", results[0].CompanyName)
	assert.Equal(t, "not found in LLM response", results[0].NotFoundReason)
}

func TestParseDecisionMakerResponse_RegexFallback(t *testing.T) {
	raw := "Acme Robotics: person_name: John Smith, title: Owner, confidence: High\n\n"
	batch := []CompanyInput{{CompanyName: "Acme Robotics"}}

	results := parseDecisionMakerResponse(raw, batch)

	require.Len(t, results, 1)
	assert.Equal(t, "John Smith", results[0].PersonName)
	assert.Equal(t, "High", results[0].Confidence)
}

func TestCoerceIndustry_UnknownBecomesOther(t *testing.T) {
	assert.Equal(t, "Other", coerceIndustry("Widget Manufacturing Consortium"))
	assert.Equal(t, "Technology", coerceIndustry("technology"))
}

func TestMatchCompanyName_CaseInsensitiveAndSubstring(t *testing.T) {
	candidates := map[string]bool{"Acme Robotics": true}
	assert.Equal(t, "Acme Robotics", matchCompanyName("acme robotics", candidates))
	assert.Equal(t, "Acme Robotics", matchCompanyName("Acme Robotics Inc", candidates))
	assert.Equal(t, "", matchCompanyName("Totally Unrelated", candidates))
}
