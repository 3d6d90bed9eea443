package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aniexo/internal/domain/entity"
	"aniexo/internal/repository"
)

type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) repository.FavoriteRepository {
	return &FavoriteRepo{db: db}
}

func (repo *FavoriteRepo) List(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	defer observe("favorites.list", time.Now())

	const query = `
SELECT id, user_id, anime_id, anime_title, anime_image, created_at
FROM favorites
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	favs := make([]*entity.Favorite, 0, 16)
	for rows.Next() {
		var f entity.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.AnimeID, &f.AnimeTitle, &f.AnimeImage, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		favs = append(favs, &f)
	}
	return favs, rows.Err()
}

func (repo *FavoriteRepo) Add(ctx context.Context, fav *entity.Favorite) error {
	defer observe("favorites.add", time.Now())

	const query = `
INSERT INTO favorites (user_id, anime_id, anime_title, anime_image)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query,
		fav.UserID, fav.AnimeID, fav.AnimeTitle, fav.AnimeImage,
	).Scan(&fav.ID, &fav.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("Add: %w", entity.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (repo *FavoriteRepo) Remove(ctx context.Context, userID, animeID int64) (bool, error) {
	defer observe("favorites.remove", time.Now())

	const query = `DELETE FROM favorites WHERE user_id = $1 AND anime_id = $2`
	res, err := repo.db.ExecContext(ctx, query, userID, animeID)
	if err != nil {
		return false, fmt.Errorf("Remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("Remove: %w", err)
	}
	return n > 0, nil
}
