package http

import (
	"net/http"

	"aniexo/internal/handler/http/respond"
)

const (
	maxAuthHeaderBytes = 8 << 10
	maxPathBytes       = 2 << 10
	maxQueryBytes      = 4 << 10
)

// InputValidation rejects oversized Authorization headers, paths and query strings
// before they reach a handler.
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				respond.Fail(w, http.StatusBadRequest, "Authorization header too large")
				return
			}
			if len(r.URL.Path) > maxPathBytes || len(r.URL.RawQuery) > maxQueryBytes {
				respond.Fail(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
