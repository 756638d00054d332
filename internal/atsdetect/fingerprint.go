package atsdetect

import (
	"regexp"

	"github.com/mpetrova/hirescout/internal/store/model"
)

// fingerprintRule matches an ATS's embedded widget URL or script reference
// in homepage/careers-page HTML, optionally capturing the tenant token.
type fingerprintRule struct {
	Provider model.ATSProvider
	Pattern  *regexp.Regexp
}

// fingerprints is the per-ATS regex list used by HTML fingerprinting
// (§4.3.4) and the careers-path sweep (§4.3.5). Capture group 1, when
// present, is the tenant token.
var fingerprints = []fingerprintRule{
	{model.ATSGreenhouse, regexp.MustCompile(`boards\.greenhouse\.io/(?:embed/job_board\?for=|)([a-zA-Z0-9_-]+)`)},
	{model.ATSLever, regexp.MustCompile(`jobs\.lever\.co/([a-zA-Z0-9_-]+)`)},
	{model.ATSAshby, regexp.MustCompile(`jobs\.ashbyhq\.com/([a-zA-Z0-9_-]+)`)},
	{model.ATSWorkable, regexp.MustCompile(`apply\.workable\.com/([a-zA-Z0-9_-]+)`)},
	{model.ATSSmartRecruiters, regexp.MustCompile(`jobs\.smartrecruiters\.com/([a-zA-Z0-9_-]+)`)},
	{model.ATSRecruitee, regexp.MustCompile(`([a-zA-Z0-9_-]+)\.recruitee\.com`)},
	{model.ATSBreezyHR, regexp.MustCompile(`([a-zA-Z0-9_-]+)\.breezy\.hr`)},
	{model.ATSPersonio, regexp.MustCompile(`([a-zA-Z0-9_-]+)\.jobs\.personio\.de`)},
	{model.ATSJobvite, regexp.MustCompile(`jobs\.jobvite\.com/(?:rss/)?([a-zA-Z0-9_-]+)`)},
}

// linkedInSlugRe extracts a LinkedIn company slug embedded in homepage HTML.
var linkedInSlugRe = regexp.MustCompile(`linkedin\.com/company/([a-zA-Z0-9_-]+)`)

// fingerprintMatch scans html against the registry of ATS fingerprints and
// returns the first hit with its captured token, if any.
func fingerprintMatch(html string) (provider model.ATSProvider, token string, ok bool) {
	for _, f := range fingerprints {
		m := f.Pattern.FindStringSubmatch(html)
		if m == nil {
			continue
		}
		captured := ""
		if len(m) > 1 {
			captured = m[1]
		}
		return f.Provider, captured, true
	}
	return "", "", false
}

func extractLinkedInSlug(html string) string {
	m := linkedInSlugRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return m[1]
}
