package atsclients

import (
	"fmt"
	"net/http"

	"github.com/mpetrova/hirescout/internal/store/model"
)

// NewClient builds the Client for provider, bound to token. Used by the
// orchestrator once ATSDetectionEngine has resolved a company's provider,
// so job-fetching doesn't have to re-derive the per-provider URL shape the
// detection registry already knows.
func NewClient(provider model.ATSProvider, token string, httpClient *http.Client) (Client, error) {
	switch provider {
	case model.ATSGreenhouse:
		return &GreenhouseClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSLever:
		return &LeverClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSAshby:
		return &AshbyClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSWorkable:
		return &WorkableClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSJobvite:
		return &JobviteClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSSmartRecruiters:
		return &SmartRecruitersClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSRecruitee:
		return &RecruiteeClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSBreezyHR:
		return &BreezyHRClient{HTTPClient: httpClient, Token: token}, nil
	case model.ATSPersonio:
		return &PersonioClient{HTTPClient: httpClient, Token: token}, nil
	default:
		return nil, fmt.Errorf("atsclients: no client for provider %q", provider)
	}
}
