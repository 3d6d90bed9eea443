package jikan

import (
	"errors"
	"fmt"

	"aniexo/internal/observability/metrics"
	catUC "aniexo/internal/usecase/catalog"
)

// UpstreamError describes a failed call to the catalog API. Kind is one of
// the catalog.ErrUpstream* sentinels; Err is the underlying cause.
type UpstreamError struct {
	Kind       error
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jikan %s: %v (status %d): %v", e.Endpoint, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("jikan %s: %v: %v", e.Endpoint, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *UpstreamError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// outcome maps an error to the upstream metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, errRejected):
		return metrics.OutcomeRejected
	case errors.Is(err, catUC.ErrUpstreamRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, catUC.ErrUpstreamParse):
		return metrics.OutcomeParseError
	default:
		return metrics.OutcomeUnavailable
	}
}

var (
	// errRejected marks calls refused by the open circuit.
	errRejected = errors.New("circuit open")
	// errAdmission marks calls that never left the outbound limiter.
	errAdmission = errors.New("rate limiter wait")
)
