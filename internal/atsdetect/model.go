// Package atsdetect implements the ATSDetectionEngine: given a company name
// and domain, it determines which hosted ATS platform (if any) backs the
// company's careers page and the per-tenant token needed to query it.
package atsdetect

import "github.com/mpetrova/hirescout/internal/store/model"

// DetectionMethod records which stage of the engine produced a Result.
type DetectionMethod string

const (
	MethodCache             DetectionMethod = "cache"
	MethodAPIProbe          DetectionMethod = "api_probe"
	MethodHTMLFingerprint   DetectionMethod = "html_fingerprint"
	MethodCareersSweep      DetectionMethod = "careers_sweep"
	MethodLinkedInFallback  DetectionMethod = "linkedin_fallback"
	MethodDefaultFallback   DetectionMethod = "default_fallback"
)

// Result is the outcome of Detect for one company.
type Result struct {
	Provider        model.ATSProvider
	BoardToken      string
	Confidence      float64
	DetectionMethod DetectionMethod
}

// Input is the subject of detection.
type Input struct {
	CompanyName      string
	Domain           string
	TechnologiesHint []string // provider names named by an external source, highest probe priority
}
