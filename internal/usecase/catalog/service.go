package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"

	"aniexo/internal/config"
	"aniexo/internal/domain/entity"
	"aniexo/pkg/cache"
)

// Cache keys for the fixed views.
const (
	KeyTrending   = "trending"
	KeyUpcoming   = "upcoming"
	KeyUnderrated = "underrated"
	KeyFeatured   = "featured"
	KeyNews       = "news"
	KeyGenres     = "genres"
)

const (
	trendingLimit     = 20
	upcomingLimit     = 10
	underratedFetch   = 20
	underratedKeep    = 10
	underratedMinimum = 7.5
	featuredPool      = 5
	searchLimit       = 24
	newsLimit         = 3

	// DefaultNewsReferenceID is Cowboy Bebop, whose feed carries general news.
	DefaultNewsReferenceID int64 = 1
)

// Service provides the catalog views. Every public operation is served from
// the cache when a fresh entry exists.
type Service struct {
	Upstream Upstream
	Cache    *cache.Memory
	Moods    *config.MoodTable

	// NewsReferenceID is the title whose news feed backs News.
	NewsReferenceID int64

	// Pick returns a uniformly random index in [0, n). nil uses math/rand/v2.
	Pick func(n int) int
}

// NewService creates a Service with the default mood table and news reference.
func NewService(upstream Upstream, c *cache.Memory) *Service {
	return &Service{
		Upstream:        upstream,
		Cache:           c,
		Moods:           config.DefaultMoodTable(),
		NewsReferenceID: DefaultNewsReferenceID,
	}
}

// AnimeKey returns the cache key for a detail record.
func AnimeKey(id int64) string {
	return "anime_" + strconv.FormatInt(id, 10)
}

// SearchKey returns the cache key for a search.
func SearchKey(query, genre string) string {
	return "search_" + query + "_" + genre
}

// Trending returns currently airing titles ordered by popularity.
func (s *Service) Trending(ctx context.Context) ([]entity.AnimeSummary, error) {
	return cache.Cached(ctx, s.Cache, KeyTrending, s.fetchTrending)
}

// Upcoming returns not-yet-aired titles ordered by popularity.
func (s *Service) Upcoming(ctx context.Context) ([]entity.AnimeSummary, error) {
	return cache.Cached(ctx, s.Cache, KeyUpcoming, s.fetchUpcoming)
}

// Underrated returns the top-scored finished titles.
func (s *Service) Underrated(ctx context.Context) ([]entity.AnimeSummary, error) {
	return cache.Cached(ctx, s.Cache, KeyUnderrated, s.fetchUnderrated)
}

// Featured returns the full record of one of the five most popular titles,
// chosen at random.
func (s *Service) Featured(ctx context.Context) (*entity.AnimeDetail, error) {
	return cache.Cached(ctx, s.Cache, KeyFeatured, s.fetchFeatured)
}

// AnimeByID returns the full record for id.
func (s *Service) AnimeByID(ctx context.Context, id int64) (*entity.AnimeDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidAnimeID
	}
	return cache.Cached(ctx, s.Cache, AnimeKey(id), func(ctx context.Context) (*entity.AnimeDetail, error) {
		detail, err := s.Upstream.AnimeDetail(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get anime %d: %w", id, err)
		}
		return detail, nil
	})
}

// News returns the first three news items of the reference title.
func (s *Service) News(ctx context.Context) ([]entity.NewsItem, error) {
	return cache.Cached(ctx, s.Cache, KeyNews, s.fetchNews)
}

// Genres returns the upstream genre list.
func (s *Service) Genres(ctx context.Context) ([]entity.GenreRef, error) {
	return cache.Cached(ctx, s.Cache, KeyGenres, s.fetchGenres)
}

// View names accepted by Refresh.
const (
	ViewTrending   = KeyTrending
	ViewUpcoming   = KeyUpcoming
	ViewUnderrated = KeyUnderrated
	ViewGenres     = KeyGenres
	ViewNews       = KeyNews
)

// Refresh refetches a fixed view and overwrites its cache entry even when the
// current entry is still fresh.
func (s *Service) Refresh(ctx context.Context, view string) error {
	var err error
	switch view {
	case ViewTrending:
		_, err = cache.Refresh(ctx, s.Cache, KeyTrending, s.fetchTrending)
	case ViewUpcoming:
		_, err = cache.Refresh(ctx, s.Cache, KeyUpcoming, s.fetchUpcoming)
	case ViewUnderrated:
		_, err = cache.Refresh(ctx, s.Cache, KeyUnderrated, s.fetchUnderrated)
	case ViewGenres:
		_, err = cache.Refresh(ctx, s.Cache, KeyGenres, s.fetchGenres)
	case ViewNews:
		_, err = cache.Refresh(ctx, s.Cache, KeyNews, s.fetchNews)
	default:
		return fmt.Errorf("refresh: unknown view %q", view)
	}
	return err
}

func (s *Service) fetchTrending(ctx context.Context) ([]entity.AnimeSummary, error) {
	items, err := s.Upstream.ListAnime(ctx, Query{
		Status:  "airing",
		OrderBy: OrderByPopularity,
		Sort:    SortAsc,
		Limit:   trendingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list trending anime: %w", err)
	}
	return items, nil
}

func (s *Service) fetchUpcoming(ctx context.Context) ([]entity.AnimeSummary, error) {
	items, err := s.Upstream.ListAnime(ctx, Query{
		Status:  "upcoming",
		OrderBy: OrderByPopularity,
		Sort:    SortAsc,
		Limit:   upcomingLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming anime: %w", err)
	}
	return items, nil
}

func (s *Service) fetchUnderrated(ctx context.Context) ([]entity.AnimeSummary, error) {
	minScore := underratedMinimum
	items, err := s.Upstream.ListAnime(ctx, Query{
		Status:   "complete",
		MinScore: &minScore,
		OrderBy:  OrderByScore,
		Sort:     SortDesc,
		Limit:    underratedFetch,
	})
	if err != nil {
		return nil, fmt.Errorf("list underrated anime: %w", err)
	}

	sorted := make([]entity.AnimeSummary, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return scoreOf(sorted[i]) > scoreOf(sorted[j])
	})
	if len(sorted) > underratedKeep {
		sorted = sorted[:underratedKeep]
	}
	return sorted, nil
}

func (s *Service) fetchFeatured(ctx context.Context) (*entity.AnimeDetail, error) {
	pool, err := s.Upstream.ListAnime(ctx, Query{
		OrderBy: OrderByPopularity,
		Sort:    SortAsc,
		Limit:   featuredPool,
	})
	if err != nil {
		return nil, fmt.Errorf("list featured candidates: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("list featured candidates: %w", ErrAnimeNotFound)
	}

	pick := s.Pick
	if pick == nil {
		pick = rand.IntN
	}
	chosen := pool[pick(len(pool))]

	return s.AnimeByID(ctx, chosen.ID)
}

func (s *Service) fetchNews(ctx context.Context) ([]entity.NewsItem, error) {
	ref := s.NewsReferenceID
	if ref <= 0 {
		ref = DefaultNewsReferenceID
	}
	items, err := s.Upstream.AnimeNews(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	if len(items) > newsLimit {
		items = items[:newsLimit]
	}
	return items, nil
}

func (s *Service) fetchGenres(ctx context.Context) ([]entity.GenreRef, error) {
	genres, err := s.Upstream.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return genres, nil
}

// scoreOf orders unscored titles last.
func scoreOf(a entity.AnimeSummary) float64 {
	if a.Score == nil {
		return -1
	}
	return *a.Score
}
