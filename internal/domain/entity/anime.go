// Package entity defines the core domain entities and validation logic for the application.
// It contains the catalog records served to clients (anime, news, genres) and the
// account records persisted for signed-in users, along with their validation rules
// and domain-specific errors.
package entity

// AnimeSummary is the card-sized view of a title used by every list endpoint.
// Optional upstream fields are pointers so that "unknown" is distinguishable
// from zero.
type AnimeSummary struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	ImageURL     string   `json:"imageUrl"`
	Score        *float64 `json:"score"`
	Genres       []string `json:"genres"`
	Studios      []string `json:"studios"`
	Type         *string  `json:"type"`
	Season       *string  `json:"season"`
	Year         *int     `json:"year"`
	EpisodeCount *int     `json:"episodeCount"`
}

// AnimeDetail is the full record for a single title.
type AnimeDetail struct {
	AnimeSummary

	TitleEnglish   *string    `json:"titleEnglish"`
	TitleJapanese  *string    `json:"titleJapanese"`
	Synopsis       *string    `json:"synopsis"`
	Status         *string    `json:"status"`
	IsAiring       bool       `json:"isAiring"`
	AiredFrom      *string    `json:"airedFrom"`
	AiredTo        *string    `json:"airedTo"`
	Duration       *string    `json:"duration"`
	RatingLabel    *string    `json:"ratingLabel"`
	SourceMaterial *string    `json:"sourceMaterial"`
	Trailer        *Trailer   `json:"trailer"`
	Relations      []Relation `json:"relations"`
}

// Trailer points at a promotional video. It is nil on AnimeDetail when the
// upstream record has neither a video id nor a URL.
type Trailer struct {
	YouTubeID string `json:"youtubeId"`
	URL       string `json:"url"`
}

// Relation groups related entries by relationship (Sequel, Prequel, ...).
type Relation struct {
	RelationType string         `json:"relationType"`
	Entries      []RelatedEntry `json:"entries"`
}

// RelatedEntry is one item inside a Relation. Type is the upstream entry kind
// ("anime", "manga").
type RelatedEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// NewsItem is a news article attached to a title.
type NewsItem struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	PublishedDate string `json:"publishedDate"`
	ImageURL      string `json:"imageUrl"`
	SourceURL     string `json:"sourceUrl"`
}

// GenreRef maps a genre name to the upstream genre id.
type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IDs returns the ids of items in order.
func IDs(items []AnimeSummary) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}
