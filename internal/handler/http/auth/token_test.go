package auth

import (
	"testing"
	"time"

	"aniexo/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "k8s-injected-0f9d2c7b1e4a6d3c9b8a7f6e5d4c3b2a"

func frozenIssuer(at time.Time) *TokenIssuer {
	ti := NewTokenIssuer(testSecret, 0)
	ti.now = func() time.Time { return at }
	return ti
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	ti := frozenIssuer(now)

	token, exp, err := ti.Issue(&entity.User{ID: 42, Username: "spike"})
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), exp)

	id, claims, err := ti.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "spike", claims.Username)
}

func TestTokenIssuer_Expired(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	ti := frozenIssuer(now)
	token, _, err := ti.Issue(&entity.User{ID: 1, Username: "faye"})
	require.NoError(t, err)

	ti.now = func() time.Time { return now.Add(8 * 24 * time.Hour) }
	_, _, err = ti.Parse(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_RejectsForeignTokens(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Hour)

	otherKey, _, err := NewTokenIssuer("another-secret-that-is-long-enough-xyz", time.Hour).Issue(&entity.User{ID: 1})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	badSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"別の鍵":     otherKey,
		"alg=none": none,
		"exp欠落":   noExp,
		"sub不正":   badSub,
		"形式不正":    "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ti.Parse(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
