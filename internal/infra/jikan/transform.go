package jikan

import (
	"encoding/json"
	"fmt"

	"aniexo/internal/domain/entity"
)

// ToSummary maps a raw listing record to the card view.
func ToSummary(r rawAnime) entity.AnimeSummary {
	return entity.AnimeSummary{
		ID:           r.MalID,
		Title:        r.Title,
		ImageURL:     imageURL(r.Images),
		Score:        r.Score,
		Genres:       names(r.Genres),
		Studios:      names(r.Studios),
		Type:         r.Type,
		Season:       r.Season,
		Year:         r.Year,
		EpisodeCount: r.Episodes,
	}
}

// ToDetail maps a raw /anime/{id}/full record.
func ToDetail(r rawAnime) entity.AnimeDetail {
	d := entity.AnimeDetail{
		AnimeSummary:   ToSummary(r),
		TitleEnglish:   r.TitleEnglish,
		TitleJapanese:  r.TitleJapanese,
		Synopsis:       r.Synopsis,
		Status:         r.Status,
		IsAiring:       r.Airing,
		Duration:       r.Duration,
		RatingLabel:    r.Rating,
		SourceMaterial: r.Source,
		Relations:      make([]entity.Relation, 0, len(r.Relations)),
	}
	if r.Aired != nil {
		d.AiredFrom = r.Aired.From
		d.AiredTo = r.Aired.To
	}
	if t := r.Trailer; t != nil && (deref(t.YouTubeID) != "" || deref(t.URL) != "") {
		d.Trailer = &entity.Trailer{YouTubeID: deref(t.YouTubeID), URL: deref(t.URL)}
	}
	for _, rel := range r.Relations {
		entries := make([]entity.RelatedEntry, 0, len(rel.Entry))
		for _, e := range rel.Entry {
			entries = append(entries, entity.RelatedEntry{ID: e.MalID, Name: e.Name, Type: e.Type})
		}
		d.Relations = append(d.Relations, entity.Relation{RelationType: rel.Relation, Entries: entries})
	}
	return d
}

// ToNewsItem maps a raw news article.
func ToNewsItem(r rawNews) entity.NewsItem {
	return entity.NewsItem{
		ID:            r.MalID,
		Title:         r.Title,
		Excerpt:       r.Excerpt,
		PublishedDate: r.Date,
		ImageURL:      imageURL(r.Images),
		SourceURL:     r.URL,
	}
}

// ToGenreRef maps a raw genre.
func ToGenreRef(r rawNamed) entity.GenreRef {
	return entity.GenreRef{ID: r.MalID, Name: r.Name}
}

// decodeList unmarshals a {"data": [...]} body and maps each element.
// A missing or null data array yields an empty, non-nil slice.
func decodeList[R, T any](body []byte, mapFn func(R) T) ([]T, error) {
	var env envelope[[]R]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	out := make([]T, 0)
	if env.Data == nil {
		return out, nil
	}
	for _, r := range *env.Data {
		out = append(out, mapFn(r))
	}
	return out, nil
}

// decodeOne unmarshals a {"data": {...}} body. A missing data object is an error.
func decodeOne[R any](body []byte) (R, error) {
	var env envelope[R]
	var zero R
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("decode record: %w", err)
	}
	if env.Data == nil {
		return zero, fmt.Errorf("decode record: missing data")
	}
	return *env.Data, nil
}

func imageURL(img *rawImages) string {
	if img == nil || img.JPG == nil {
		return ""
	}
	return deref(img.JPG.ImageURL)
}

func names(in []rawNamed) []string {
	out := make([]string, 0, len(in))
	for _, n := range in {
		out = append(out, n.Name)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
