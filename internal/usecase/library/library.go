package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aniexo/internal/domain/entity"
	"aniexo/internal/repository"
)

// DefaultHistoryLimit is the number of history entries returned by ListHistory.
const DefaultHistoryLimit = 50

// FavoriteInput is the payload of POST /api/favorites.
type FavoriteInput struct {
	AnimeID    int64
	AnimeTitle string
	AnimeImage string
}

// HistoryInput is the payload of POST /api/history.
type HistoryInput struct {
	AnimeID    int64
	AnimeTitle string
}

// Library manages a user's favorites and watch history.
type Library struct {
	Favorites    repository.FavoriteRepository
	History      repository.HistoryRepository
	HistoryLimit int
}

func (l *Library) ListFavorites(ctx context.Context, userID int64) ([]*entity.Favorite, error) {
	favs, err := l.Favorites.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// AddFavorite stores the title for the user. A second add of the same anime
// returns ErrAlreadyFavorite.
func (l *Library) AddFavorite(ctx context.Context, userID int64, in FavoriteInput) (*entity.Favorite, error) {
	in.AnimeTitle = strings.TrimSpace(in.AnimeTitle)
	if err := entity.ValidateAnimeID(in.AnimeID); err != nil {
		return nil, err
	}
	if err := entity.ValidateAnimeTitle(in.AnimeTitle); err != nil {
		return nil, err
	}

	fav := &entity.Favorite{
		UserID:     userID,
		AnimeID:    in.AnimeID,
		AnimeTitle: in.AnimeTitle,
		AnimeImage: in.AnimeImage,
	}
	if err := l.Favorites.Add(ctx, fav); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrAlreadyFavorite
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return fav, nil
}

func (l *Library) RemoveFavorite(ctx context.Context, userID, animeID int64) error {
	if err := entity.ValidateAnimeID(animeID); err != nil {
		return err
	}
	removed, err := l.Favorites.Remove(ctx, userID, animeID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if !removed {
		return ErrFavoriteNotFound
	}
	return nil
}

func (l *Library) ListHistory(ctx context.Context, userID int64) ([]*entity.HistoryEntry, error) {
	limit := l.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := l.History.List(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// RecordView adds the title to the history or moves it to the top.
func (l *Library) RecordView(ctx context.Context, userID int64, in HistoryInput) (*entity.HistoryEntry, error) {
	in.AnimeTitle = strings.TrimSpace(in.AnimeTitle)
	if err := entity.ValidateAnimeID(in.AnimeID); err != nil {
		return nil, err
	}
	if err := entity.ValidateAnimeTitle(in.AnimeTitle); err != nil {
		return nil, err
	}

	entry := &entity.HistoryEntry{UserID: userID, AnimeID: in.AnimeID, AnimeTitle: in.AnimeTitle}
	if err := l.History.Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("record view: %w", err)
	}
	return entry, nil
}

func (l *Library) ClearHistory(ctx context.Context, userID int64) error {
	if err := l.History.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// WatchedIDs returns every anime id in the user's history. Used to exclude
// already-seen titles from recommendations.
func (l *Library) WatchedIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := l.History.AnimeIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("watched ids: %w", err)
	}
	return ids, nil
}
