package model

import "errors"

var (
	// ErrCompanyNotFound is returned when a company domain has no row.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrJobNotFound is returned when a job id has no row.
	ErrJobNotFound = errors.New("job not found")

	// ErrDecisionMakerNotFound is returned when a company has no enriched
	// decision maker row.
	ErrDecisionMakerNotFound = errors.New("decision maker not found")

	// ErrConflict wraps a constraint violation (unique index or foreign
	// key) surfaced by the underlying driver.
	ErrConflict = errors.New("store conflict")

	// ErrDomainRequired is returned when UpsertCompany is called with an
	// empty normalized domain.
	ErrDomainRequired = errors.New("company domain is required")
)

// ErrorCode represents a stable, loggable error classification.
type ErrorCode string

const (
	CodeCompanyNotFound       ErrorCode = "COMPANY_NOT_FOUND"
	CodeJobNotFound           ErrorCode = "JOB_NOT_FOUND"
	CodeDecisionMakerNotFound ErrorCode = "DECISION_MAKER_NOT_FOUND"
	CodeConflict              ErrorCode = "STORE_CONFLICT"
	CodeDomainRequired        ErrorCode = "DOMAIN_REQUIRED"
	CodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

// GetErrorCode maps a Store error to its stable code.
func GetErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrCompanyNotFound):
		return CodeCompanyNotFound
	case errors.Is(err, ErrJobNotFound):
		return CodeJobNotFound
	case errors.Is(err, ErrDecisionMakerNotFound):
		return CodeDecisionMakerNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrDomainRequired):
		return CodeDomainRequired
	default:
		return CodeInternalError
	}
}
