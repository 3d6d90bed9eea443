package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aniexo/internal/domain/entity"
	"aniexo/internal/usecase/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ──────────────────────────────── スタブ ──────────────────────────────── */

type stubAccounts struct {
	user        *entity.User
	registerErr error
	authErr     error
	getErr      error
	gotInput    library.RegisterInput
}

func (s *stubAccounts) Register(_ context.Context, in library.RegisterInput) (*entity.User, error) {
	s.gotInput = in
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubAccounts) Authenticate(context.Context, string, string) (*entity.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubAccounts) Get(context.Context, int64) (*entity.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.user, nil
}

type sessionEnvelope struct {
	Success bool       `json:"success"`
	Data    SessionDTO `json:"data"`
	Error   string     `json:"error"`
}

func newMux(accounts AccountService) (*http.ServeMux, *TokenIssuer) {
	ti := NewTokenIssuer(testSecret, time.Hour)
	mux := http.NewServeMux()
	Register(mux, &Handler{Accounts: accounts, Tokens: ti})
	return mux, ti
}

func do(mux http.Handler, method, target, body string, prepare ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, p := range prepare {
		p(req)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

var spike = &entity.User{ID: 1, Username: "spike", Email: "spike@bebop.example", PasswordHash: "$2a$10$secret", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

/* ──────────────────────────────── 1. Register ──────────────────────────────── */

func TestHandler_Register(t *testing.T) {
	accounts := &stubAccounts{user: spike}
	mux, ti := newMux(accounts)

	rec := do(mux, http.MethodPost, "/api/auth/register", `{"username":"spike","email":"spike@bebop.example","password":"see-you-space-cowboy"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "spike", env.Data.User.Username)
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
	assert.Equal(t, library.RegisterInput{Username: "spike", Email: "spike@bebop.example", Password: "see-you-space-cowboy"}, accounts.gotInput)

	id, _, err := ti.Parse(env.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, env.Data.Token, cookies[0].Value)
}

func TestHandler_Register_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"不正JSON", `{`, nil, http.StatusBadRequest, "Invalid request body"},
		{"検証エラー", `{"username":"ab","password":"x"}`, &entity.ValidationError{Field: "username", Message: "username must be between 3 and 32 characters"}, http.StatusBadRequest, "username must be between 3 and 32 characters"},
		{"重複", `{"username":"spike","password":"longenough"}`, library.ErrUsernameTaken, http.StatusConflict, "Username already exists"},
		{"内部エラー", `{"username":"spike","password":"longenough"}`, errors.New("pq: password=hunter2 connection refused"), http.StatusInternalServerError, "Failed to register user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newMux(&stubAccounts{user: spike, registerErr: tt.err})

			rec := do(mux, http.MethodPost, "/api/auth/register", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.wantMsg+`"}`, rec.Body.String())
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

/* ──────────────────────────────── 2. Login / Logout ──────────────────────────────── */

func TestHandler_Login(t *testing.T) {
	mux, _ := newMux(&stubAccounts{user: spike})

	rec := do(mux, http.MethodPost, "/api/auth/login", `{"username":"spike","password":"see-you-space-cowboy"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var env sessionEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, int64(1), env.Data.User.ID)
	assert.NotEmpty(t, env.Data.Token)
}

func TestHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"パスワード欠落", `{"username":"spike"}`, nil, http.StatusBadRequest, "Username and password are required"},
		{"認証失敗", `{"username":"spike","password":"wrong"}`, library.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
		{"内部エラー", `{"username":"spike","password":"pw"}`, errors.New("db down"), http.StatusInternalServerError, "Failed to login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newMux(&stubAccounts{user: spike, authErr: tt.err})
			rec := do(mux, http.MethodPost, "/api/auth/login", tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tt.wantMsg+`"}`, rec.Body.String())
		})
	}
}

func TestHandler_Logout_ClearsCookie(t *testing.T) {
	mux, _ := newMux(&stubAccounts{})

	rec := do(mux, http.MethodPost, "/api/auth/logout", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

/* ──────────────────────────────── 3. Me ──────────────────────────────── */

func TestHandler_Me(t *testing.T) {
	accounts := &stubAccounts{user: spike}
	mux, ti := newMux(accounts)
	token := issue(t, ti, 1)
	withToken := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }

	rec := do(mux, http.MethodGet, "/api/auth/me", "", withToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":1,"username":"spike","email":"spike@bebop.example","createdAt":"2026-01-01T00:00:00Z"}}`, rec.Body.String())

	rec = do(mux, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	accounts.getErr = library.ErrUserNotFound
	rec = do(mux, http.MethodGet, "/api/auth/me", "", withToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"User not found. Please login again."}`, rec.Body.String())
}
