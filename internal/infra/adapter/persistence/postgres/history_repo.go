package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"aniexo/internal/domain/entity"
	"aniexo/internal/repository"
)

type HistoryRepo struct{ db *sql.DB }

func NewHistoryRepo(db *sql.DB) repository.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (repo *HistoryRepo) List(ctx context.Context, userID int64, limit int) ([]*entity.HistoryEntry, error) {
	defer observe("history.list", time.Now())

	const query = `
SELECT id, user_id, anime_id, anime_title, viewed_at
FROM watch_history
WHERE user_id = $1
ORDER BY viewed_at DESC, id DESC
LIMIT $2`
	rows, err := repo.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.HistoryEntry, 0, limit)
	for rows.Next() {
		var h entity.HistoryEntry
		if err := rows.Scan(&h.ID, &h.UserID, &h.AnimeID, &h.AnimeTitle, &h.ViewedAt); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		entries = append(entries, &h)
	}
	return entries, rows.Err()
}

func (repo *HistoryRepo) Record(ctx context.Context, entry *entity.HistoryEntry) error {
	defer observe("history.record", time.Now())

	const query = `
INSERT INTO watch_history (user_id, anime_id, anime_title)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, anime_id)
DO UPDATE SET viewed_at = now(), anime_title = EXCLUDED.anime_title
RETURNING id, viewed_at`
	if err := repo.db.QueryRowContext(ctx, query,
		entry.UserID, entry.AnimeID, entry.AnimeTitle,
	).Scan(&entry.ID, &entry.ViewedAt); err != nil {
		return fmt.Errorf("Record: %w", err)
	}
	return nil
}

func (repo *HistoryRepo) Clear(ctx context.Context, userID int64) error {
	defer observe("history.clear", time.Now())

	if _, err := repo.db.ExecContext(ctx, `DELETE FROM watch_history WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("Clear: %w", err)
	}
	return nil
}

func (repo *HistoryRepo) AnimeIDs(ctx context.Context, userID int64) ([]int64, error) {
	defer observe("history.anime_ids", time.Now())

	rows, err := repo.db.QueryContext(ctx, `SELECT anime_id FROM watch_history WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("AnimeIDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("AnimeIDs: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
