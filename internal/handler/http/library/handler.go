package library

import (
	"context"
	"errors"
	"net/http"

	"aniexo/internal/domain/entity"
	"aniexo/internal/handler/http/auth"
	"aniexo/internal/handler/http/pathutil"
	"aniexo/internal/handler/http/respond"
	libUC "aniexo/internal/usecase/library"
)

// Service is the subset of libUC.Library the handlers use.
type Service interface {
	ListFavorites(ctx context.Context, userID int64) ([]*entity.Favorite, error)
	AddFavorite(ctx context.Context, userID int64, in libUC.FavoriteInput) (*entity.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, animeID int64) error
	ListHistory(ctx context.Context, userID int64) ([]*entity.HistoryEntry, error)
	RecordView(ctx context.Context, userID int64, in libUC.HistoryInput) (*entity.HistoryEntry, error)
	ClearHistory(ctx context.Context, userID int64) error
}

// Handler serves /api/favorites and /api/history.
type Handler struct {
	Svc Service
}

// Register mounts the routes on mux behind auth.Required.
func Register(mux *http.ServeMux, h *Handler, tokens *auth.TokenIssuer) {
	protect := func(f http.HandlerFunc) http.Handler { return auth.Required(tokens, f) }

	mux.Handle("GET /api/favorites", protect(h.ListFavorites))
	mux.Handle("POST /api/favorites", protect(h.AddFavorite))
	mux.Handle("DELETE /api/favorites/{animeId}", protect(h.RemoveFavorite))

	mux.Handle("GET /api/history", protect(h.ListHistory))
	mux.Handle("POST /api/history", protect(h.RecordView))
	mux.Handle("DELETE /api/history", protect(h.ClearHistory))
}

// ListFavorites お気に入り一覧
// @Summary      お気に入り一覧
// @Description  ログインユーザーのお気に入りを新しい順に返します
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]FavoriteDTO} "お気に入り一覧"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/favorites [get]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	favs, err := h.Svc.ListFavorites(r.Context(), p.UserID)
	if err != nil {
		fail(w, err, "Failed to fetch favorites")
		return
	}

	out := make([]FavoriteDTO, 0, len(favs))
	for _, f := range favs {
		out = append(out, toFavoriteDTO(f))
	}
	respond.OK(w, http.StatusOK, out)
}

// AddFavorite お気に入り追加
// @Summary      お気に入り追加
// @Tags         favorites
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body favoriteRequest true "作品"
// @Success      201 {object} respond.Envelope{data=FavoriteDTO} "追加済み"
// @Failure      400 {object} respond.Envelope "入力が不正"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      409 {object} respond.Envelope "登録済み"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/favorites [post]
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, _ := auth.FromContext(r.Context())
	fav, err := h.Svc.AddFavorite(r.Context(), p.UserID, libUC.FavoriteInput{
		AnimeID:    req.AnimeID,
		AnimeTitle: req.AnimeTitle,
		AnimeImage: req.AnimeImage,
	})
	if err != nil {
		fail(w, err, "Failed to add favorite")
		return
	}
	respond.OK(w, http.StatusCreated, toFavoriteDTO(fav))
}

// RemoveFavorite お気に入り削除
// @Summary      お気に入り削除
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Param        animeId path int true "作品ID"
// @Success      200 {object} respond.Envelope "削除済み"
// @Failure      400 {object} respond.Envelope "IDが不正"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      404 {object} respond.Envelope "未登録"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/favorites/{animeId} [delete]
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	animeID, err := pathutil.ParseID(r.PathValue("animeId"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid anime ID")
		return
	}

	p, _ := auth.FromContext(r.Context())
	if err := h.Svc.RemoveFavorite(r.Context(), p.UserID, animeID); err != nil {
		fail(w, err, "Failed to remove favorite")
		return
	}
	respond.OK(w, http.StatusOK, nil)
}

// ListHistory 視聴履歴一覧
// @Summary      視聴履歴一覧
// @Description  直近 50 件の閲覧履歴を新しい順に返します
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]HistoryDTO} "視聴履歴"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/history [get]
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	entries, err := h.Svc.ListHistory(r.Context(), p.UserID)
	if err != nil {
		fail(w, err, "Failed to fetch watch history")
		return
	}

	out := make([]HistoryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryDTO(e))
	}
	respond.OK(w, http.StatusOK, out)
}

// RecordView 視聴履歴追加
// @Summary      視聴履歴追加
// @Description  作品を履歴に追加します。既にある場合は閲覧日時を更新します
// @Tags         history
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body historyRequest true "作品"
// @Success      201 {object} respond.Envelope{data=HistoryDTO} "記録済み"
// @Failure      400 {object} respond.Envelope "入力が不正"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/history [post]
func (h *Handler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req historyRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, _ := auth.FromContext(r.Context())
	entry, err := h.Svc.RecordView(r.Context(), p.UserID, libUC.HistoryInput{
		AnimeID:    req.AnimeID,
		AnimeTitle: req.AnimeTitle,
	})
	if err != nil {
		fail(w, err, "Failed to add to watch history")
		return
	}
	respond.OK(w, http.StatusCreated, toHistoryDTO(entry))
}

// ClearHistory 視聴履歴削除
// @Summary      視聴履歴削除
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} respond.Envelope "削除済み"
// @Failure      401 {object} respond.Envelope "未認証"
// @Failure      500 {object} respond.Envelope "サーバーエラー"
// @Router       /api/history [delete]
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.FromContext(r.Context())
	if err := h.Svc.ClearHistory(r.Context(), p.UserID); err != nil {
		fail(w, err, "Failed to clear watch history")
		return
	}
	respond.OK(w, http.StatusOK, nil)
}

// fail maps usecase errors to envelopes; msg is used for unexpected errors.
func fail(w http.ResponseWriter, err error, msg string) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Fail(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, libUC.ErrAlreadyFavorite):
		respond.Fail(w, http.StatusConflict, "Anime already exists in favorites")
	case errors.Is(err, libUC.ErrFavoriteNotFound):
		respond.Fail(w, http.StatusNotFound, "Favorite not found")
	default:
		respond.SafeError(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, msg, err))
	}
}
