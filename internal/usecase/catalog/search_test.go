package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"aniexo/internal/domain/entity"
	catUC "aniexo/internal/usecase/catalog"
)

func TestService_Search_QueryConstruction(t *testing.T) {
	tests := []struct {
		name  string
		query string
		genre string
		want  catUC.Query
	}{
		{
			name:  "text only",
			query: "frieren",
			want:  catUC.Query{Q: "frieren", OrderBy: "popularity", Sort: "asc", Limit: 24},
		},
		{
			name:  "genre resolves to id",
			genre: "Action",
			want:  catUC.Query{OrderBy: "popularity", Sort: "asc", Limit: 24, GenreIDs: []int64{1}},
		},
		{
			name:  "genre match ignores case",
			genre: "slice of life",
			want:  catUC.Query{OrderBy: "popularity", Sort: "asc", Limit: 24, GenreIDs: []int64{36}},
		},
		{
			name:  "text and genre",
			query: "one piece",
			genre: "Adventure",
			want:  catUC.Query{Q: "one piece", OrderBy: "popularity", Sort: "asc", Limit: 24, GenreIDs: []int64{2}},
		},
		{
			name:  "unknown genre becomes the query",
			genre: "Xyzzy",
			want:  catUC.Query{Q: "Xyzzy", OrderBy: "popularity", Sort: "asc", Limit: 24},
		},
		{
			name:  "unknown genre is appended to the query",
			query: "naruto",
			genre: "Xyzzy",
			want:  catUC.Query{Q: "naruto Xyzzy", OrderBy: "popularity", Sort: "asc", Limit: 24},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := &fakeUpstream{genres: defaultGenres}
			svc := newService(up)

			if _, err := svc.Search(context.Background(), tt.query, tt.genre); err != nil {
				t.Fatalf("Search() err = %v", err)
			}
			if len(up.queries) != 1 {
				t.Fatalf("upstream list calls = %d, want 1", len(up.queries))
			}
			if diff := cmp.Diff(tt.want, up.queries[0]); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestService_Search_CacheHitSkipsUpstream(t *testing.T) {
	up := &fakeUpstream{
		genres: defaultGenres,
		list:   func(catUC.Query) []entity.AnimeSummary { return summaries(52991) },
	}
	svc := newService(up)

	first, err := svc.Search(context.Background(), "frieren", "Adventure")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Search(context.Background(), "frieren", "Adventure")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result differs (-first +second):\n%s", diff)
	}
	if len(up.queries) != 1 {
		t.Errorf("upstream list calls = %d, want 1", len(up.queries))
	}
	if up.genreHits != 1 {
		t.Errorf("upstream genre calls = %d, want 1", up.genreHits)
	}
}

func TestService_Search_Empty(t *testing.T) {
	up := &fakeUpstream{}
	svc := newService(up)

	_, err := svc.Search(context.Background(), "  ", "")
	if !errors.Is(err, catUC.ErrEmptySearch) {
		t.Errorf("Search() err = %v, want ErrEmptySearch", err)
	}
	if len(up.queries) != 0 {
		t.Errorf("upstream should not be called, got %d calls", len(up.queries))
	}
}

func TestService_Search_GenreListFailurePropagates(t *testing.T) {
	up := &fakeUpstream{err: catUC.ErrUpstreamRateLimited}
	svc := newService(up)

	_, err := svc.Search(context.Background(), "", "Action")
	if !errors.Is(err, catUC.ErrUpstreamRateLimited) {
		t.Errorf("Search() err = %v, want ErrUpstreamRateLimited", err)
	}
}

func TestSearchKey(t *testing.T) {
	if got := catUC.SearchKey("naruto", "Action"); got != "search_naruto_Action" {
		t.Errorf("SearchKey() = %q", got)
	}
	if got := catUC.AnimeKey(21); got != "anime_21" {
		t.Errorf("AnimeKey() = %q", got)
	}
}
