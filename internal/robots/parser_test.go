package robots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRobotsTxt_WildcardGroupDisallowsPrefix(t *testing.T) {
	doc := parseRobotsTxt("User-agent: *\nDisallow: /admin\nDisallow: /private\n")

	assert.False(t, doc.canFetch(UserAgent, "https://acme.com/admin/users"))
	assert.True(t, doc.canFetch(UserAgent, "https://acme.com/careers"))
}

func TestParseRobotsTxt_SpecificAgentOverridesWildcard(t *testing.T) {
	doc := parseRobotsTxt("User-agent: *\nDisallow: /\n\nUser-agent: hirescout\nDisallow: /admin\n")

	assert.True(t, doc.canFetch(UserAgent, "https://acme.com/careers"))
	assert.False(t, doc.canFetch(UserAgent, "https://acme.com/admin"))
	assert.False(t, doc.canFetch("SomeOtherBot", "https://acme.com/careers"))
}

func TestParseRobotsTxt_LongestRuleWins(t *testing.T) {
	doc := parseRobotsTxt("User-agent: *\nDisallow: /careers\nAllow: /careers/public\n")

	assert.True(t, doc.canFetch(UserAgent, "https://acme.com/careers/public/role"))
	assert.False(t, doc.canFetch(UserAgent, "https://acme.com/careers/private"))
}

func TestParseRobotsTxt_CrawlDelay(t *testing.T) {
	doc := parseRobotsTxt("User-agent: *\nCrawl-delay: 2.5\n")

	delay, ok := doc.crawlDelay(UserAgent)
	assert.True(t, ok)
	assert.Equal(t, 2.5, delay)
}

func TestParseRobotsTxt_EmptyBodyAllowsEverything(t *testing.T) {
	doc := parseRobotsTxt("")
	assert.True(t, doc.canFetch(UserAgent, "https://acme.com/anything"))
}
