package jikan

import (
	"context"
	"net/http"
	"testing"

	catUC "aniexo/internal/usecase/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── フェイク Jikan サーバー ───────── */

func newFakeCatalog(t *testing.T, routes map[string]string) (*Catalog, *[]*http.Request) {
	t.Helper()
	var seen []*http.Request
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Clone(context.Background()))
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"status":404}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	c, _ := newTestClient(t, mux)
	return NewCatalog(c), &seen
}

func TestCatalog_ListAnime_QueryString(t *testing.T) {
	cat, seen := newFakeCatalog(t, map[string]string{
		"/anime": `{"data":[{"mal_id":1,"title":"Cowboy Bebop","genres":[{"mal_id":1,"name":"Action"}]}]}`,
	})

	minScore := 7.5
	items, err := cat.ListAnime(context.Background(), catUC.Query{
		Status:   "complete",
		OrderBy:  catUC.OrderByScore,
		Sort:     catUC.SortDesc,
		MinScore: &minScore,
		Q:        "bebop",
		GenreIDs: []int64{1, 24},
		Limit:    20,
	})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cowboy Bebop", items[0].Title)
	assert.Equal(t, []string{"Action"}, items[0].Genres)

	require.Len(t, *seen, 1)
	q := (*seen)[0].URL.Query()
	assert.Equal(t, "complete", q.Get("status"))
	assert.Equal(t, "score", q.Get("order_by"))
	assert.Equal(t, "desc", q.Get("sort"))
	assert.Equal(t, "7.5", q.Get("min_score"))
	assert.Equal(t, "bebop", q.Get("q"))
	assert.Equal(t, "1,24", q.Get("genres"))
	assert.Equal(t, "20", q.Get("limit"))
}

func TestCatalog_ListAnime_OmitsZeroFields(t *testing.T) {
	cat, seen := newFakeCatalog(t, map[string]string{"/anime": `{"data":[]}`})

	items, err := cat.ListAnime(context.Background(), catUC.Query{OrderBy: catUC.OrderByPopularity})

	require.NoError(t, err)
	assert.NotNil(t, items)
	q := (*seen)[0].URL.Query()
	assert.Equal(t, "popularity", q.Get("order_by"))
	for _, k := range []string{"status", "sort", "min_score", "q", "genres", "limit"} {
		assert.False(t, q.Has(k), "unexpected %s parameter", k)
	}
}

func TestCatalog_AnimeDetail(t *testing.T) {
	cat, seen := newFakeCatalog(t, map[string]string{
		"/anime/21/full": `{"data":{"mal_id":21,"title":"One Piece","airing":true,"trailer":{"youtube_id":"abc"}}}`,
	})

	d, err := cat.AnimeDetail(context.Background(), 21)

	require.NoError(t, err)
	assert.Equal(t, int64(21), d.ID)
	assert.True(t, d.IsAiring)
	require.NotNil(t, d.Trailer)
	assert.Equal(t, "abc", d.Trailer.YouTubeID)
	assert.Equal(t, "/anime/21/full", (*seen)[0].URL.Path)
}

func TestCatalog_AnimeDetail_NotFound(t *testing.T) {
	cat, _ := newFakeCatalog(t, map[string]string{})

	_, err := cat.AnimeDetail(context.Background(), 999999)

	assert.ErrorIs(t, err, catUC.ErrAnimeNotFound)
}

func TestCatalog_AnimeDetail_MissingData(t *testing.T) {
	cat, _ := newFakeCatalog(t, map[string]string{"/anime/3/full": `{"data":null}`})

	_, err := cat.AnimeDetail(context.Background(), 3)

	assert.ErrorIs(t, err, catUC.ErrUpstreamParse)
}

func TestCatalog_AnimeNews(t *testing.T) {
	cat, _ := newFakeCatalog(t, map[string]string{
		"/anime/1/news": `{"pagination":{},"data":[
			{"mal_id":10,"title":"A","url":"https://x/10","date":"2024-01-01","excerpt":"e"},
			{"mal_id":11,"title":"B","url":"https://x/11","date":"2024-01-02","excerpt":"f","images":{"jpg":{"image_url":"https://i/11.jpg"}}}
		]}`,
	})

	items, err := cat.AnimeNews(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "", items[0].ImageURL)
	assert.Equal(t, "https://i/11.jpg", items[1].ImageURL)
	assert.Equal(t, "https://x/11", items[1].SourceURL)
}

func TestCatalog_Genres(t *testing.T) {
	cat, _ := newFakeCatalog(t, map[string]string{
		"/genres/anime": `{"data":[{"mal_id":1,"name":"Action","count":5000},{"mal_id":4,"name":"Comedy"}]}`,
	})

	genres, err := cat.Genres(context.Background())

	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, int64(4), genres[1].ID)
	assert.Equal(t, "Comedy", genres[1].Name)
}

func TestCatalog_ParseErrorOnWrongShape(t *testing.T) {
	cat, _ := newFakeCatalog(t, map[string]string{"/genres/anime": `{"data":{"unexpected":true}}`})

	_, err := cat.Genres(context.Background())

	assert.ErrorIs(t, err, catUC.ErrUpstreamParse)
}
