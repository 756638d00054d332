// Package relevance implements the deterministic title/description
// classifier (RelevanceScorer) that separates marketing/IT/sales roles
// from adjacent roles using explicit signal and exclusion lists, per the
// original `relevance_scorer.py` family ported from MarketingListDiscovery,
// ITMSPDiscovery, and AgencySalesDiscovery.
package relevance

import "strings"

// RoleProfile parameterizes the scorer for one role family: the required
// signal list, the category each signal maps to, and the exclusion list
// that dominates over any signal match.
type RoleProfile struct {
	Name             string
	Signals          []string
	SignalToCategory map[string]string
	Exclusions       []string
	// DescriptionBoostKeywords are counted in the lowercased description
	// for the up-to-20-point boost.
	DescriptionBoostKeywords []string
}

// MarketingProfile is ported from
// MarketingListDiscovery/core/relevance_scorer.py: the reference
// implementation spec.md §4.2 describes directly.
var MarketingProfile = RoleProfile{
	Name: "marketing",
	Signals: []string{
		"marketing", "seo", "ppc", "copywriter", "social media",
		"brand manager", "demand gen", "paid media", "growth marketing",
		"cmo", "chief marketing", "public relations",
		"communications manager", "media buyer",
	},
	SignalToCategory: map[string]string{
		"marketing":               "marketing_generalist",
		"seo":                     "seo",
		"ppc":                     "paid_media",
		"copywriter":              "content",
		"social media":            "social_media",
		"brand manager":           "brand",
		"demand gen":              "demand_generation",
		"paid media":              "paid_media",
		"growth marketing":        "growth",
		"cmo":                     "marketing_leadership",
		"chief marketing":         "marketing_leadership",
		"public relations":        "pr",
		"communications manager":  "communications",
		"media buyer":             "paid_media",
	},
	Exclusions: []string{
		"engineer", "engineering", "developer", "software", "warehouse",
		"driver", "nurse", "accountant", "attorney", "paralegal",
		"mechanic", "electrician", "plumber", "teacher", "custodian",
	},
	DescriptionBoostKeywords: []string{
		"marketing", "campaign", "brand", "content", "seo", "growth",
		"acquisition", "funnel", "conversion", "analytics", "strategy",
	},
}

// ITProfile is the IT/MSP variant, parallel in shape to MarketingProfile,
// ported from ITMSPDiscovery's relevance layer.
var ITProfile = RoleProfile{
	Name: "it",
	Signals: []string{
		"it director", "it manager", "systems administrator",
		"network administrator", "helpdesk", "help desk", "cto",
		"chief technology officer", "infrastructure manager",
		"it support", "msp", "managed services",
	},
	SignalToCategory: map[string]string{
		"it director":              "it_leadership",
		"it manager":                "it_leadership",
		"systems administrator":     "sysadmin",
		"network administrator":     "sysadmin",
		"helpdesk":                  "support",
		"help desk":                 "support",
		"cto":                       "it_leadership",
		"chief technology officer":  "it_leadership",
		"infrastructure manager":    "infrastructure",
		"it support":                "support",
		"msp":                       "msp",
		"managed services":          "msp",
	},
	Exclusions: []string{
		"warehouse", "driver", "nurse", "accountant", "attorney",
		"paralegal", "mechanic", "electrician", "plumber", "teacher",
		"custodian", "marketing", "copywriter",
	},
	DescriptionBoostKeywords: []string{
		"infrastructure", "network", "security", "systems", "support",
		"helpdesk", "cloud", "server", "endpoint", "compliance",
	},
}

// SalesProfile is the agency-sales variant, ported from
// AgencySalesDiscovery's relevance layer.
var SalesProfile = RoleProfile{
	Name: "sales",
	Signals: []string{
		"vp sales", "vp of sales", "sales director", "account executive",
		"business development", "sales manager", "chief revenue officer",
		"cro", "head of sales", "sales leadership",
	},
	SignalToCategory: map[string]string{
		"vp sales":              "sales_leadership",
		"vp of sales":           "sales_leadership",
		"sales director":        "sales_leadership",
		"account executive":     "individual_contributor",
		"business development":  "business_development",
		"sales manager":         "sales_leadership",
		"chief revenue officer": "sales_leadership",
		"cro":                   "sales_leadership",
		"head of sales":         "sales_leadership",
		"sales leadership":      "sales_leadership",
	},
	Exclusions: []string{
		"warehouse", "driver", "nurse", "accountant", "attorney",
		"paralegal", "mechanic", "electrician", "plumber", "teacher",
		"customer service", "retail sales associate", "cashier",
	},
	DescriptionBoostKeywords: []string{
		"pipeline", "quota", "revenue", "prospecting", "closing",
		"negotiation", "territory", "outbound", "forecast", "crm",
	},
}

func containsAny(haystack string, needles []string) (string, bool) {
	lower := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return n, true
		}
	}
	return "", false
}
