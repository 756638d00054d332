package atsdetect

import (
	"testing"

	"github.com/mpetrova/hirescout/internal/store/model"
	"github.com/stretchr/testify/assert"
)

func TestOrderedByHint_PromotesHintedProvider(t *testing.T) {
	ordered := OrderedByHint([]string{"lever"})
	assert.Equal(t, model.ATSLever, ordered[0])
	assert.Equal(t, model.ATSGreenhouse, ordered[1])
}

func TestOrderedByHint_NoHintMatchesDefault(t *testing.T) {
	ordered := OrderedByHint(nil)
	assert.Equal(t, DefaultPriority, ordered)
}

func TestOrderedByHint_IgnoresUnknownHint(t *testing.T) {
	ordered := OrderedByHint([]string{"not-a-real-ats"})
	assert.Equal(t, DefaultPriority, ordered)
}

func TestRegistry_CoversAllNineProviders(t *testing.T) {
	assert.Len(t, Registry, 9)
	for _, p := range DefaultPriority {
		_, ok := Registry[p]
		assert.True(t, ok, "missing registry entry for %s", p)
	}
}
