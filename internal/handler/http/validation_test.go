package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputValidation(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		auth     string
		wantCode int
		wantBody string
	}{
		{name: "通常リクエスト", target: "/api/anime/search?q=naruto", auth: "Bearer abc", wantCode: http.StatusOK},
		{name: "Authorizationヘッダー過大", target: "/api/auth/me", auth: "Bearer " + strings.Repeat("a", 9000), wantCode: http.StatusBadRequest, wantBody: `{"success":false,"error":"Authorization header too large"}`},
		{name: "パス過大", target: "/" + strings.Repeat("a", 3000), wantCode: http.StatusRequestURITooLong, wantBody: `{"success":false,"error":"URI too long"}`},
		{name: "クエリ過大", target: "/api/anime/search?q=" + strings.Repeat("a", 5000), wantCode: http.StatusRequestURITooLong, wantBody: `{"success":false,"error":"URI too long"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := InputValidation()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
