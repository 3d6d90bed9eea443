// Package anime serves the public catalog routes under /api/anime, /api/genres
// and /api/recommendations.
package anime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"aniexo/internal/domain/entity"
	"aniexo/internal/handler/http/auth"
	"aniexo/internal/handler/http/pathutil"
	"aniexo/internal/handler/http/respond"
	"aniexo/internal/usecase/catalog"
)

// RetryAfterSeconds is sent with 503 responses caused by upstream rate limiting.
const RetryAfterSeconds = 60

// Catalog is the subset of catalog.Service the handlers use.
type Catalog interface {
	Trending(ctx context.Context) ([]entity.AnimeSummary, error)
	Upcoming(ctx context.Context) ([]entity.AnimeSummary, error)
	Underrated(ctx context.Context) ([]entity.AnimeSummary, error)
	Featured(ctx context.Context) (*entity.AnimeDetail, error)
	AnimeByID(ctx context.Context, id int64) (*entity.AnimeDetail, error)
	News(ctx context.Context) ([]entity.NewsItem, error)
	Genres(ctx context.Context) ([]entity.GenreRef, error)
	Search(ctx context.Context, query, genre string) ([]entity.AnimeSummary, error)
	RecommendByMood(ctx context.Context, req catalog.MoodRequest) ([]entity.AnimeSummary, error)
}

// WatchHistory returns the ids a user has viewed.
type WatchHistory interface {
	WatchedIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Handler serves the catalog routes.
type Handler struct {
	Catalog Catalog

	// History and Tokens are optional. When both are set, signed-in callers of
	// /api/recommendations never get titles from their watch history.
	History WatchHistory
	Tokens  *auth.TokenIssuer

	Logger *slog.Logger
}

// FallbackGenres is served by /api/genres when the upstream cannot be reached.
var FallbackGenres = []entity.GenreRef{
	{ID: 1, Name: "Action"},
	{ID: 2, Name: "Adventure"},
	{ID: 4, Name: "Comedy"},
	{ID: 8, Name: "Drama"},
	{ID: 10, Name: "Fantasy"},
}

// Register mounts the catalog routes and the /api/ catch-all on mux.
func Register(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/anime/trending", h.Trending)
	mux.HandleFunc("GET /api/anime/upcoming", h.Upcoming)
	mux.HandleFunc("GET /api/anime/underrated", h.Underrated)
	mux.HandleFunc("GET /api/anime/featured", h.Featured)
	mux.HandleFunc("GET /api/anime/news", h.News)
	mux.HandleFunc("GET /api/anime/search", h.Search)
	mux.HandleFunc("GET /api/anime/{id}", h.Get)
	mux.HandleFunc("GET /api/genres", h.Genres)

	var recommend http.Handler = http.HandlerFunc(h.Recommend)
	if h.Tokens != nil {
		recommend = auth.Optional(h.Tokens, recommend)
	}
	mux.Handle("GET /api/recommendations", recommend)

	mux.HandleFunc("/api/", NotFound)
}

// NotFound answers unknown /api routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	respond.Fail(w, http.StatusNotFound, "API endpoint not found")
}

// Trending 放送中の人気作品
// @Summary      放送中の人気作品
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]entity.AnimeSummary} "作品一覧"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Failure      503 {object} respond.Envelope "上流のレート制限"
// @Router       /api/anime/trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "trending anime", h.Catalog.Trending)
}

// Upcoming 放送予定の作品
// @Summary      放送予定のアニメ
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]entity.AnimeSummary} "作品一覧"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Failure      503 {object} respond.Envelope "上流のレート制限"
// @Router       /api/anime/upcoming [get]
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "upcoming anime", h.Catalog.Upcoming)
}

// Underrated 隠れた名作
// @Summary      隠れた名作
// @Description  完結済みでスコア 7.5 以上の作品をスコア順に最大 10 件返します
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]entity.AnimeSummary} "作品一覧"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Failure      503 {object} respond.Envelope "上流のレート制限"
// @Router       /api/anime/underrated [get]
func (h *Handler) Underrated(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "underrated anime", h.Catalog.Underrated)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, what string, fetch func(context.Context) ([]entity.AnimeSummary, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to fetch "+what)
		return
	}
	respond.OK(w, http.StatusOK, nonNil(items))
}

// Featured 注目作品
// @Summary      注目作品
// @Description  人気上位からランダムに選んだ 1 作品の詳細を返します
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=entity.AnimeDetail} "作品詳細"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Failure      503 {object} respond.Envelope "上流のレート制限"
// @Router       /api/anime/featured [get]
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Catalog.Featured(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to fetch featured anime")
		return
	}
	respond.OK(w, http.StatusOK, detail)
}

// News ニュース
// @Summary      ニュース
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]entity.NewsItem} "ニュース"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Router       /api/anime/news [get]
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	news, err := h.Catalog.News(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to fetch anime news")
		return
	}
	if news == nil {
		news = []entity.NewsItem{}
	}
	respond.OK(w, http.StatusOK, news)
}

// Get 作品詳細
// @Summary      作品詳細
// @Tags         anime
// @Produce      json
// @Param        id path int true "作品ID"
// @Success      200 {object} respond.Envelope{data=entity.AnimeDetail} "作品詳細"
// @Failure      400 {object} respond.Envelope "IDが不正"
// @Failure      404 {object} respond.Envelope "作品なし"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Router       /api/anime/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := pathutil.ParseID(raw)
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid anime ID")
		return
	}

	detail, err := h.Catalog.AnimeByID(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to fetch anime with ID "+strconv.FormatInt(id, 10))
		return
	}
	respond.OK(w, http.StatusOK, detail)
}

// Search 検索
// @Summary      作品検索
// @Description  q と genre の少なくとも一方が必要です。genre は名前で指定します
// @Tags         anime
// @Produce      json
// @Param        q     query string false "キーワード"
// @Param        genre query string false "ジャンル名"
// @Success      200 {object} respond.Envelope{data=[]entity.AnimeSummary} "検索結果"
// @Failure      400 {object} respond.Envelope "条件なし"
// @Failure      500 {object} respond.Envelope "検索失敗"
// @Router       /api/anime/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.Catalog.Search(r.Context(), q.Get("q"), q.Get("genre"))
	if err != nil {
		h.fail(w, err, "Failed to search anime")
		return
	}
	respond.OK(w, http.StatusOK, nonNil(items))
}

// Genres ジャンル一覧
// @Summary      ジャンル一覧
// @Description  上流に到達できない場合は固定のジャンル一覧を返します
// @Tags         anime
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]entity.GenreRef} "ジャンル一覧"
// @Router       /api/genres [get]
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Catalog.Genres(r.Context())
	if err != nil {
		h.logger().Warn("serving fallback genres",
			slog.String("error", respond.SanitizeError(err)))
		respond.OK(w, http.StatusOK, FallbackGenres)
		return
	}
	if genres == nil {
		genres = []entity.GenreRef{}
	}
	respond.OK(w, http.StatusOK, genres)
}

// Recommend 気分別おすすめ
// @Summary      気分別おすすめ
// @Description  ログイン中は視聴履歴の作品も除外します
// @Tags         anime
// @Produce      json
// @Param        mood    query string false "気分 (happy, sad, excited, ...)"
// @Param        genres  query string false "優先ジャンル (カンマ区切り)"
// @Param        exclude query string false "除外する作品ID (カンマ区切り)"
// @Success      200 {object} respond.Envelope{data=[]entity.AnimeSummary} "おすすめ"
// @Failure      400 {object} respond.Envelope "除外IDが不正"
// @Failure      500 {object} respond.Envelope "取得失敗"
// @Router       /api/recommendations [get]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	exclude, err := pathutil.ParseIDList(q.Get("exclude"))
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid exclude list")
		return
	}

	req := catalog.MoodRequest{
		Mood:    q.Get("mood"),
		Genres:  splitList(q.Get("genres")),
		History: exclude,
	}
	if p, ok := auth.FromContext(r.Context()); ok && h.History != nil {
		watched, err := h.History.WatchedIDs(r.Context(), p.UserID)
		if err != nil {
			h.logger().Warn("watch history unavailable for recommendations",
				slog.Int64("user_id", p.UserID),
				slog.String("error", respond.SanitizeError(err)))
		}
		req.History = append(req.History, watched...)
	}

	items, err := h.Catalog.RecommendByMood(r.Context(), req)
	if err != nil {
		h.fail(w, err, "Failed to fetch recommendations")
		return
	}
	respond.OK(w, http.StatusOK, nonNil(items))
}

// fail maps catalog errors to envelopes; msg is used for everything the
// client cannot act on.
func (h *Handler) fail(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidAnimeID):
		respond.Fail(w, http.StatusBadRequest, "Invalid anime ID")
	case errors.Is(err, catalog.ErrEmptySearch):
		respond.Fail(w, http.StatusBadRequest, "Missing search query or genre")
	case errors.Is(err, catalog.ErrAnimeNotFound):
		respond.Fail(w, http.StatusNotFound, "Anime not found")
	case errors.Is(err, catalog.ErrUpstreamRateLimited):
		h.logger().Warn("upstream rate limit exhausted",
			slog.String("error", respond.SanitizeError(err)))
		w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		respond.Fail(w, http.StatusServiceUnavailable, "Service busy, please retry later")
	default:
		respond.SafeError(w, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, msg, err))
	}
}

func (h *Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func nonNil(items []entity.AnimeSummary) []entity.AnimeSummary {
	if items == nil {
		return []entity.AnimeSummary{}
	}
	return items
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
