package library_test

import (
	"context"
	"errors"
	"testing"

	"aniexo/internal/domain/entity"
	"aniexo/internal/usecase/library"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccounts() (*library.Accounts, *stubUsers) {
	users := newStubUsers()
	return &library.Accounts{Users: users, Cost: bcrypt.MinCost}, users
}

func TestAccounts_Register(t *testing.T) {
	a, users := newAccounts()

	u, err := a.Register(context.Background(), library.RegisterInput{
		Username: "  spike ",
		Email:    "spike@bebop.example",
		Password: "see-you-space-cowboy",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "spike", u.Username)
	assert.NotEqual(t, "see-you-space-cowboy", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.byID[1].PasswordHash), []byte("see-you-space-cowboy")))
}

func TestAccounts_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    library.RegisterInput
		field string
	}{
		{"ユーザー名が短い", library.RegisterInput{Username: "ab", Password: "longenough"}, "username"},
		{"メール形式不正", library.RegisterInput{Username: "spike", Email: "not-an-email", Password: "longenough"}, "email"},
		{"パスワードが短い", library.RegisterInput{Username: "spike", Password: "short"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newAccounts()
			_, err := a.Register(context.Background(), tt.in)

			var ve *entity.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestAccounts_Register_RejectsShortUsername(t *testing.T) {
	a, users := newAccounts()

	_, err := a.Register(context.Background(), library.RegisterInput{Username: "ed", Password: "radical-edward"})

	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)
	assert.Contains(t, ve.Message, "between 3 and 32")
	assert.Empty(t, users.byID, "rejected registrations must not be stored")
}

func TestAccounts_Register_EmailOptional(t *testing.T) {
	a, _ := newAccounts()
	u, err := a.Register(context.Background(), library.RegisterInput{Username: "faye", Password: "valentine"})
	require.NoError(t, err)
	assert.Empty(t, u.Email)
}

func TestAccounts_Register_Duplicate(t *testing.T) {
	a, _ := newAccounts()
	in := library.RegisterInput{Username: "jet", Password: "black-dog"}

	_, err := a.Register(context.Background(), in)
	require.NoError(t, err)
	_, err = a.Register(context.Background(), in)

	assert.ErrorIs(t, err, library.ErrUsernameTaken)
}

func TestAccounts_Authenticate(t *testing.T) {
	a, _ := newAccounts()
	_, err := a.Register(context.Background(), library.RegisterInput{Username: "edward", Password: "radical-edward"})
	require.NoError(t, err)

	u, err := a.Authenticate(context.Background(), "edward", "radical-edward")
	require.NoError(t, err)
	assert.Equal(t, "edward", u.Username)

	_, err = a.Authenticate(context.Background(), "edward", "wrong-password")
	assert.ErrorIs(t, err, library.ErrInvalidCredentials)

	_, err = a.Authenticate(context.Background(), "ein", "radical-edward")
	assert.ErrorIs(t, err, library.ErrInvalidCredentials)
}

func TestAccounts_Authenticate_RepositoryError(t *testing.T) {
	a, users := newAccounts()
	users.err = errors.New("connection refused")

	_, err := a.Authenticate(context.Background(), "edward", "radical-edward")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, library.ErrInvalidCredentials)
}

func TestAccounts_Get(t *testing.T) {
	a, _ := newAccounts()
	created, err := a.Register(context.Background(), library.RegisterInput{Username: "vicious", Password: "red-dragon"})
	require.NoError(t, err)

	got, err := a.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "vicious", got.Username)

	_, err = a.Get(context.Background(), 404)
	assert.ErrorIs(t, err, library.ErrUserNotFound)
}
