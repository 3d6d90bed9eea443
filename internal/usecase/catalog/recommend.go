package catalog

import (
	"context"
	"fmt"
	"strings"

	"aniexo/internal/config"
	"aniexo/internal/domain/entity"
	"aniexo/pkg/cache"
)

const (
	recommendLimit    = 12
	recommendMinimum  = 6
	recommendBackfill = 10
)

// MoodRequest is the input to RecommendByMood.
type MoodRequest struct {
	// Mood is a keyword such as "happy" or "curious". Unknown values use the
	// default mood.
	Mood string

	// Genres are caller preferences, tried before the mood's own genres.
	Genres []string

	// History holds ids the caller has already watched; they are never
	// returned.
	History []int64
}

// RecommendByMood returns up to twelve titles matching the mood's policy.
//
// Watched titles are removed. When fewer than six remain, trending titles
// that are neither watched nor already present are appended until the list
// holds ten.
func (s *Service) RecommendByMood(ctx context.Context, req MoodRequest) ([]entity.AnimeSummary, error) {
	q, err := s.moodQuery(ctx, req)
	if err != nil {
		return nil, err
	}

	candidates, err := cache.Cached(ctx, s.Cache, "recommend_"+q.Key(), func(ctx context.Context) ([]entity.AnimeSummary, error) {
		items, err := s.Upstream.ListAnime(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("list mood candidates: %w", err)
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(req.History)+recommendLimit)
	for _, id := range req.History {
		excluded[id] = struct{}{}
	}

	result := make([]entity.AnimeSummary, 0, recommendLimit)
	for _, a := range candidates {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		excluded[a.ID] = struct{}{}
		result = append(result, a)
	}

	if len(result) < recommendMinimum {
		trending, err := s.Trending(ctx)
		if err != nil {
			return nil, fmt.Errorf("backfill recommendations: %w", err)
		}
		for _, a := range trending {
			if len(result) >= recommendBackfill {
				break
			}
			if _, skip := excluded[a.ID]; skip {
				continue
			}
			excluded[a.ID] = struct{}{}
			result = append(result, a)
		}
	}

	if len(result) > recommendLimit {
		result = result[:recommendLimit]
	}
	return result, nil
}

// moodQuery builds the upstream listing query for req.
func (s *Service) moodQuery(ctx context.Context, req MoodRequest) (Query, error) {
	moods := s.Moods
	if moods == nil {
		moods = config.DefaultMoodTable()
	}
	_, policy := moods.Lookup(req.Mood)

	minScore := policy.MinScore
	q := Query{
		MinScore: &minScore,
		OrderBy:  policy.OrderBy,
		Sort:     policy.Sort,
		Limit:    recommendLimit,
	}

	id, ok, err := s.resolveGenre(ctx, mergeGenres(req.Genres, policy.Genres))
	if err != nil {
		return Query{}, fmt.Errorf("recommend by mood: %w", err)
	}
	if ok {
		q.GenreIDs = []int64{id}
	}
	return q, nil
}

// mergeGenres returns caller genres followed by policy genres, without blanks
// or case-insensitive duplicates.
func mergeGenres(preferred, policy []string) []string {
	seen := make(map[string]struct{}, len(preferred)+len(policy))
	out := make([]string, 0, len(preferred)+len(policy))
	for _, list := range [][]string{preferred, policy} {
		for _, g := range list {
			g = strings.TrimSpace(g)
			key := strings.ToLower(g)
			if g == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
