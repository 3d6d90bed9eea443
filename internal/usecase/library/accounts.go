package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aniexo/internal/domain/entity"
	"aniexo/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the payload of POST /api/auth/register. Email is optional.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Accounts registers and authenticates users. Passwords are stored as bcrypt hashes.
type Accounts struct {
	Users repository.UserRepository
	Cost  int // bcrypt cost; zero means bcrypt.DefaultCost
}

// dummyHash is compared against when the username is unknown so that both
// failure paths spend one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("aniexo-dummy-password"), bcrypt.MinCost)

// Register validates the input, hashes the password and creates the user.
func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := entity.ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if in.Email != "" {
		if err := entity.ValidateEmail(in.Email); err != nil {
			return nil, err
		}
	}
	if err := entity.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := a.Users.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user when username and password match.
func (a *Accounts) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := a.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, entity.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Get loads the account a verified token refers to.
func (a *Accounts) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := a.Users.GetByID(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (a *Accounts) cost() int {
	if a.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return a.Cost
}
