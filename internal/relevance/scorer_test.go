package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_ExclusionDominates(t *testing.T) {
	s := New(MarketingProfile, 60)

	result := s.Score("Engineering Manager, Marketing Platform", "")

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, CategoryExcluded, result.Category)
	assert.False(t, result.IsRelevant)
}

func TestScorer_NoSignal(t *testing.T) {
	s := New(MarketingProfile, 60)

	result := s.Score("Office Manager", "")

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, CategoryNoSignal, result.Category)
}

func TestScorer_BaseScore(t *testing.T) {
	s := New(MarketingProfile, 60)

	result := s.Score("Marketing Manager", "")

	assert.Equal(t, 80, result.Score)
	assert.True(t, result.IsRelevant)
}

func TestScorer_DescriptionBoostCapsAt20(t *testing.T) {
	s := New(MarketingProfile, 60)

	desc := "marketing campaign brand content seo growth acquisition funnel conversion analytics strategy " +
		"marketing campaign brand content seo growth acquisition funnel conversion analytics strategy"
	result := s.Score("Marketing Manager", desc)

	assert.Equal(t, 100, result.Score)
}

func TestScorer_LeadershipRefinement(t *testing.T) {
	s := New(MarketingProfile, 60)

	result := s.Score("Director of Marketing", "")

	assert.Equal(t, "marketing_leadership", result.Category)
}

func TestScorer_Totality(t *testing.T) {
	s := New(MarketingProfile, 60)

	titles := []string{
		"Marketing Manager", "Software Engineer", "", "   ",
		"SEO Specialist", "Director of Marketing", "Warehouse Associate",
	}
	for _, title := range titles {
		result := s.Score(title, "some description text")
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		assert.Equal(t, result.Score >= 60, result.IsRelevant)
	}
}

func TestScorer_ITProfile(t *testing.T) {
	s := New(ITProfile, 60)

	result := s.Score("IT Director", "")

	assert.True(t, result.IsRelevant)
	assert.Equal(t, "it_leadership", result.Category)
}

func TestScorer_SalesProfile(t *testing.T) {
	s := New(SalesProfile, 60)

	result := s.Score("VP of Sales", "")

	assert.True(t, result.IsRelevant)
	assert.Equal(t, "sales_leadership", result.Category)
}
