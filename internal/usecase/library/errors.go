// Package library implements accounts and the per-user favorites and watch
// history that sit beside the anime catalog.
package library

import "errors"

var (
	// ErrUsernameTaken indicates that registration hit an existing username or email.
	ErrUsernameTaken = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned for both unknown users and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound indicates that a token refers to a deleted account.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyFavorite indicates a duplicate (user, anime) favorite.
	ErrAlreadyFavorite = errors.New("anime already exists in favorites")

	// ErrFavoriteNotFound indicates that there was nothing to remove.
	ErrFavoriteNotFound = errors.New("favorite not found")
)
