package catalog

import (
	"context"
	"strconv"
	"strings"

	"aniexo/internal/domain/entity"
)

// Sort orders accepted by the upstream listing endpoint.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Listing orderings used by the catalog views.
const (
	OrderByPopularity = "popularity"
	OrderByScore      = "score"
)

// Query is a listing request against the upstream catalog. Zero fields are
// omitted from the upstream request.
type Query struct {
	Status   string
	OrderBy  string
	Sort     string
	MinScore *float64
	Q        string
	GenreIDs []int64
	Limit    int
}

// Key renders the query deterministically for use in cache keys.
func (q Query) Key() string {
	var b strings.Builder
	b.WriteString("status=" + q.Status)
	b.WriteString("&order_by=" + q.OrderBy)
	b.WriteString("&sort=" + q.Sort)
	if q.MinScore != nil {
		b.WriteString("&min_score=" + strconv.FormatFloat(*q.MinScore, 'f', -1, 64))
	}
	b.WriteString("&q=" + q.Q)
	if len(q.GenreIDs) > 0 {
		ids := make([]string, len(q.GenreIDs))
		for i, id := range q.GenreIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		b.WriteString("&genres=" + strings.Join(ids, ","))
	}
	b.WriteString("&limit=" + strconv.Itoa(q.Limit))
	return b.String()
}

// Upstream is the catalog port. Implementations return records already
// mapped to the internal schema, and wrap failures with one of the
// ErrUpstream* kinds.
type Upstream interface {
	ListAnime(ctx context.Context, q Query) ([]entity.AnimeSummary, error)
	AnimeDetail(ctx context.Context, id int64) (*entity.AnimeDetail, error)
	AnimeNews(ctx context.Context, id int64) ([]entity.NewsItem, error)
	Genres(ctx context.Context) ([]entity.GenreRef, error)
}
