package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aniexo/internal/domain/entity"
	"aniexo/internal/observability/metrics"
	"aniexo/internal/repository"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Create(ctx context.Context, user *entity.User) error {
	defer observe("users.create", time.Now())

	const query = `
INSERT INTO users (username, email, password_hash)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		user.Username, nullString(user.Email), user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("Create: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	defer observe("users.get_by_id", time.Now())

	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE id = $1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return u, nil
}

func (repo *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	defer observe("users.get_by_username", time.Now())

	const query = `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE username = $1`
	u, err := scanUser(repo.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("GetByUsername: %w", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*entity.User, error) {
	var (
		u     entity.User
		email sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
