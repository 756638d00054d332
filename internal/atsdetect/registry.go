package atsdetect

import (
	"fmt"

	"github.com/mpetrova/hirescout/internal/atsclients"
	"github.com/mpetrova/hirescout/internal/store/model"
)

// Endpoint is one entry of the static ATS endpoint registry (§4.3.2): a URL
// builder for the provider's jobs endpoint and the validator that decides
// whether a 200 body is genuine tenant evidence.
type Endpoint struct {
	Provider  model.ATSProvider
	URL       func(token string) string
	Validator func(body []byte) bool
}

// DefaultPriority is the empirically-ordered provider priority used to break
// ties among simultaneous probe hits, per spec §4.3.3.
var DefaultPriority = []model.ATSProvider{
	model.ATSGreenhouse,
	model.ATSLever,
	model.ATSAshby,
	model.ATSWorkable,
	model.ATSSmartRecruiters,
	model.ATSRecruitee,
	model.ATSBreezyHR,
	model.ATSPersonio,
	model.ATSJobvite,
}

// Registry is the static table of supported ATS families, keyed by provider.
var Registry = map[model.ATSProvider]Endpoint{
	model.ATSGreenhouse: {
		Provider:  model.ATSGreenhouse,
		URL:       func(token string) string { return fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", token) },
		Validator: atsclients.ValidateGreenhouseResponse,
	},
	model.ATSLever: {
		Provider:  model.ATSLever,
		URL:       func(token string) string { return fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", token) },
		Validator: atsclients.ValidateLeverResponse,
	},
	model.ATSAshby: {
		Provider:  model.ATSAshby,
		URL:       func(token string) string { return fmt.Sprintf("https://api.ashbyhq.com/posting-api/job-board/%s", token) },
		Validator: atsclients.ValidateAshbyResponse,
	},
	model.ATSWorkable: {
		Provider:  model.ATSWorkable,
		URL:       func(token string) string { return fmt.Sprintf("https://apply.workable.com/api/v1/widget/accounts/%s", token) },
		Validator: atsclients.ValidateWorkableResponse,
	},
	model.ATSSmartRecruiters: {
		Provider:  model.ATSSmartRecruiters,
		URL:       func(token string) string { return fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", token) },
		Validator: atsclients.ValidateSmartRecruitersResponse,
	},
	model.ATSRecruitee: {
		Provider:  model.ATSRecruitee,
		URL:       func(token string) string { return fmt.Sprintf("https://%s.recruitee.com/api/offers/", token) },
		Validator: atsclients.ValidateRecruiteeResponse,
	},
	model.ATSBreezyHR: {
		Provider:  model.ATSBreezyHR,
		URL:       func(token string) string { return fmt.Sprintf("https://%s.breezy.hr/json", token) },
		Validator: atsclients.ValidateBreezyHRResponse,
	},
	model.ATSPersonio: {
		Provider: model.ATSPersonio,
		URL:      func(token string) string { return fmt.Sprintf("https://%s.jobs.personio.de/", token) },
		Validator: func(body []byte) bool {
			return atsclients.ValidatePersonioResponse("", body)
		},
	},
	model.ATSJobvite: {
		Provider:  model.ATSJobvite,
		URL:       func(token string) string { return fmt.Sprintf("https://jobs.jobvite.com/rss/%s.xml", token) },
		Validator: atsclients.ValidateJobviteResponse,
	},
}

// OrderedByHint returns DefaultPriority with any provider named in hint
// (case-sensitive match against model.ATSProvider values) moved to the front,
// preserving the hinted order and then the remaining default order.
func OrderedByHint(hint []string) []model.ATSProvider {
	hinted := make(map[model.ATSProvider]bool, len(hint))
	ordered := make([]model.ATSProvider, 0, len(DefaultPriority))
	for _, h := range hint {
		p := model.ATSProvider(h)
		if _, ok := Registry[p]; ok && !hinted[p] {
			hinted[p] = true
			ordered = append(ordered, p)
		}
	}
	for _, p := range DefaultPriority {
		if !hinted[p] {
			ordered = append(ordered, p)
		}
	}
	return ordered
}
