package repository

import (
	"context"

	"aniexo/internal/domain/entity"
)

// UserRepository persists accounts. Lookups return entity.ErrNotFound for
// missing rows and Create returns entity.ErrConflict for a taken username or email.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
