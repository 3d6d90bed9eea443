package repository

import (
	"context"

	"aniexo/internal/domain/entity"
)

// FavoriteRepository stores per-user bookmarks, unique per (user, anime).
type FavoriteRepository interface {
	List(ctx context.Context, userID int64) ([]*entity.Favorite, error)
	// Add returns entity.ErrConflict when the anime is already a favorite.
	Add(ctx context.Context, fav *entity.Favorite) error
	// Remove reports whether a row was deleted.
	Remove(ctx context.Context, userID, animeID int64) (bool, error)
}

// HistoryRepository stores the titles a user has opened, newest first.
type HistoryRepository interface {
	List(ctx context.Context, userID int64, limit int) ([]*entity.HistoryEntry, error)
	// Record inserts the entry or bumps viewed_at when the anime is already present.
	Record(ctx context.Context, entry *entity.HistoryEntry) error
	Clear(ctx context.Context, userID int64) error
	AnimeIDs(ctx context.Context, userID int64) ([]int64, error)
}
