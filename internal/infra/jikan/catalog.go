package jikan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"aniexo/internal/domain/entity"
	catUC "aniexo/internal/usecase/catalog"
)

// Catalog implements catalog.Upstream on top of Client.
type Catalog struct {
	client *Client
}

// NewCatalog creates a Catalog.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

var _ catUC.Upstream = (*Catalog)(nil)

// ListAnime calls /anime with the non-zero query fields.
func (c *Catalog) ListAnime(ctx context.Context, q catUC.Query) ([]entity.AnimeSummary, error) {
	body, err := c.client.Fetch(ctx, "/anime", listValues(q))
	if err != nil {
		return nil, err
	}
	items, err := decodeList(body, ToSummary)
	if err != nil {
		return nil, parseError("/anime", err)
	}
	return items, nil
}

// AnimeDetail calls /anime/{id}/full. An upstream 404 is reported as
// catalog.ErrAnimeNotFound.
func (c *Catalog) AnimeDetail(ctx context.Context, id int64) (*entity.AnimeDetail, error) {
	path := fmt.Sprintf("/anime/%d/full", id)
	body, err := c.client.Fetch(ctx, path, nil)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %w", catUC.ErrAnimeNotFound, err)
		}
		return nil, err
	}
	raw, err := decodeOne[rawAnime](body)
	if err != nil {
		return nil, parseError("/anime/:id/full", err)
	}
	detail := ToDetail(raw)
	return &detail, nil
}

// AnimeNews calls /anime/{id}/news.
func (c *Catalog) AnimeNews(ctx context.Context, id int64) ([]entity.NewsItem, error) {
	body, err := c.client.Fetch(ctx, fmt.Sprintf("/anime/%d/news", id), nil)
	if err != nil {
		return nil, err
	}
	items, err := decodeList(body, ToNewsItem)
	if err != nil {
		return nil, parseError("/anime/:id/news", err)
	}
	return items, nil
}

// Genres calls /genres/anime.
func (c *Catalog) Genres(ctx context.Context) ([]entity.GenreRef, error) {
	body, err := c.client.Fetch(ctx, "/genres/anime", nil)
	if err != nil {
		return nil, err
	}
	genres, err := decodeList(body, ToGenreRef)
	if err != nil {
		return nil, parseError("/genres/anime", err)
	}
	return genres, nil
}

func listValues(q catUC.Query) url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.OrderBy != "" {
		v.Set("order_by", q.OrderBy)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.MinScore != nil {
		v.Set("min_score", strconv.FormatFloat(*q.MinScore, 'f', -1, 64))
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if len(q.GenreIDs) > 0 {
		ids := make([]string, len(q.GenreIDs))
		for i, id := range q.GenreIDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		v.Set("genres", strings.Join(ids, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func isNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}

func parseError(endpoint string, err error) error {
	return &UpstreamError{Kind: catUC.ErrUpstreamParse, Endpoint: endpoint, Err: err}
}
