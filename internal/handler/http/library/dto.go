// Package library serves the per-user favorites and watch history routes.
// Field names are snake_case to match the stored rows the web client reads.
package library

import (
	"time"

	"aniexo/internal/domain/entity"
)

type favoriteRequest struct {
	AnimeID    int64  `json:"anime_id" example:"5114"`
	AnimeTitle string `json:"anime_title" example:"Fullmetal Alchemist: Brotherhood"`
	AnimeImage string `json:"anime_image" example:"https://cdn.myanimelist.net/images/anime/1208/94745.jpg"`
}

type historyRequest struct {
	AnimeID    int64  `json:"anime_id" example:"5114"`
	AnimeTitle string `json:"anime_title" example:"Fullmetal Alchemist: Brotherhood"`
}

// FavoriteDTO is one bookmarked title.
type FavoriteDTO struct {
	ID         int64     `json:"id"`
	AnimeID    int64     `json:"anime_id"`
	AnimeTitle string    `json:"anime_title"`
	AnimeImage string    `json:"anime_image"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryDTO is one viewed title.
type HistoryDTO struct {
	ID         int64     `json:"id"`
	AnimeID    int64     `json:"anime_id"`
	AnimeTitle string    `json:"anime_title"`
	ViewedAt   time.Time `json:"viewed_at"`
}

func toFavoriteDTO(f *entity.Favorite) FavoriteDTO {
	return FavoriteDTO{ID: f.ID, AnimeID: f.AnimeID, AnimeTitle: f.AnimeTitle, AnimeImage: f.AnimeImage, CreatedAt: f.CreatedAt}
}

func toHistoryDTO(h *entity.HistoryEntry) HistoryDTO {
	return HistoryDTO{ID: h.ID, AnimeID: h.AnimeID, AnimeTitle: h.AnimeTitle, ViewedAt: h.ViewedAt}
}
