package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"aniexo/internal/handler/http/respond"
)

// CookieName is the session cookie set by login and register.
const CookieName = "token"

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID   int64
	Username string
}

// FromContext returns the principal set by Required or Optional.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

var errNoToken = errors.New("missing token")

// Required rejects requests without a valid token with a 401 envelope.
func Required(tokens *TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := authenticate(tokens, r)
		if errors.Is(err, errNoToken) {
			RecordTokenRejection("missing")
			respond.Fail(w, http.StatusUnauthorized, "Authentication required. Please login.")
			return
		}
		if err != nil {
			RecordTokenRejection("invalid")
			respond.Fail(w, http.StatusUnauthorized, "Invalid token. Please login again.")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// Optional attaches the principal when a valid token is present and
// otherwise serves the request anonymously.
func Optional(tokens *TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, err := authenticate(tokens, r); err == nil {
			r = r.WithContext(WithPrincipal(r.Context(), p))
		}
		next.ServeHTTP(w, r)
	})
}

func authenticate(tokens *TokenIssuer, r *http.Request) (Principal, error) {
	raw := bearerToken(r)
	if raw == "" {
		return Principal{}, errNoToken
	}
	id, claims, err := tokens.Parse(raw)
	if err != nil {
		return Principal{}, err
	}
	return Principal{UserID: id, Username: claims.Username}, nil
}

// bearerToken prefers the Authorization header over the session cookie.
func bearerToken(r *http.Request) string {
	const prefix = "Bearer "
	if h := r.Header.Get("Authorization"); h != "" {
		if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
			return strings.TrimSpace(h[len(prefix):])
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}
