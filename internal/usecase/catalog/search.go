package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aniexo/internal/domain/entity"
	"aniexo/pkg/cache"
)

// Search returns titles matching a free-text query and/or a genre name.
//
// The genre name is resolved against the upstream genre list without regard
// to case. When it does not match any genre, it is appended to the text
// query instead so the search still returns something useful.
func (s *Service) Search(ctx context.Context, query, genre string) ([]entity.AnimeSummary, error) {
	query = strings.TrimSpace(query)
	genre = strings.TrimSpace(genre)
	if query == "" && genre == "" {
		return nil, ErrEmptySearch
	}

	return cache.Cached(ctx, s.Cache, SearchKey(query, genre), func(ctx context.Context) ([]entity.AnimeSummary, error) {
		q := Query{
			Q:       query,
			OrderBy: OrderByPopularity,
			Sort:    SortAsc,
			Limit:   searchLimit,
		}

		if genre != "" {
			id, ok, err := s.resolveGenre(ctx, []string{genre})
			if err != nil {
				return nil, fmt.Errorf("search anime: %w", err)
			}
			if ok {
				q.GenreIDs = []int64{id}
			} else {
				q.Q = foldIntoQuery(query, genre)
			}
		}

		items, err := s.Upstream.ListAnime(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("search anime: %w", err)
		}
		return items, nil
	})
}

// resolveGenre returns the id of the first name that matches an upstream
// genre. ok is false when none match; that case is logged, not returned as an
// error.
func (s *Service) resolveGenre(ctx context.Context, names []string) (id int64, ok bool, err error) {
	if len(names) == 0 {
		return 0, false, nil
	}

	genres, err := s.Genres(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("resolve genre: %w", err)
	}

	for _, name := range names {
		for _, g := range genres {
			if strings.EqualFold(g.Name, name) {
				return g.ID, true, nil
			}
		}
	}

	slog.Debug("genre name has no upstream match",
		slog.Any("names", names),
		slog.String("error", ErrGenreResolutionFailed.Error()))
	return 0, false, nil
}

func foldIntoQuery(query, genre string) string {
	if query == "" {
		return genre
	}
	return query + " " + genre
}
