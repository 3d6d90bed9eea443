// Package catalog provides the anime catalog use cases.
// It composes the upstream catalog port with the response cache to serve
// the trending, upcoming, underrated, featured, detail, search, news, genre
// and mood-recommendation views.
package catalog

import "errors"

// Sentinel errors for catalog use case operations.
var (
	// ErrInvalidAnimeID indicates that the provided anime ID is invalid.
	// Anime IDs must be positive integers.
	ErrInvalidAnimeID = errors.New("invalid anime ID")

	// ErrEmptySearch indicates that neither a query nor a genre was supplied.
	ErrEmptySearch = errors.New("missing search query or genre")

	// ErrAnimeNotFound indicates that the upstream has no record for the ID.
	ErrAnimeNotFound = errors.New("anime not found")
)

// Upstream failure kinds. Upstream implementations wrap one of these so the
// route layer can choose a status code with errors.Is.
var (
	// ErrUpstreamRateLimited means the upstream kept answering 429 after every retry.
	ErrUpstreamRateLimited = errors.New("upstream rate limited")

	// ErrUpstreamUnavailable covers network failures, non-2xx statuses other
	// than 429, and an open circuit.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamParse means the upstream answered with a body that is not the
	// expected JSON.
	ErrUpstreamParse = errors.New("upstream response could not be parsed")

	// ErrGenreResolutionFailed means a genre name had no upstream match. It
	// is only logged; the caller falls back to a text query.
	ErrGenreResolutionFailed = errors.New("genre resolution failed")
)
