package jikan

// The raw* types mirror the subset of the Jikan v4 payloads that the
// transformer reads. Optional rawAnime fields are pointers or slices so that
// a missing key and a zero value stay distinguishable; news and genre fields
// fall back to the empty string.

type envelope[T any] struct {
	Data *T `json:"data"`
}

type rawImages struct {
	JPG *struct {
		ImageURL *string `json:"image_url"`
	} `json:"jpg"`
}

type rawNamed struct {
	MalID int64  `json:"mal_id"`
	Name  string `json:"name"`
}

type rawAired struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type rawTrailer struct {
	YouTubeID *string `json:"youtube_id"`
	URL       *string `json:"url"`
}

type rawRelatedEntry struct {
	MalID int64  `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
}

type rawRelation struct {
	Relation string            `json:"relation"`
	Entry    []rawRelatedEntry `json:"entry"`
}

type rawAnime struct {
	MalID         int64         `json:"mal_id"`
	Title         string        `json:"title"`
	TitleEnglish  *string       `json:"title_english"`
	TitleJapanese *string       `json:"title_japanese"`
	Images        *rawImages    `json:"images"`
	Score         *float64      `json:"score"`
	Genres        []rawNamed    `json:"genres"`
	Studios       []rawNamed    `json:"studios"`
	Type          *string       `json:"type"`
	Season        *string       `json:"season"`
	Year          *int          `json:"year"`
	Episodes      *int          `json:"episodes"`
	Status        *string       `json:"status"`
	Airing        bool          `json:"airing"`
	Aired         *rawAired     `json:"aired"`
	Duration      *string       `json:"duration"`
	Rating        *string       `json:"rating"`
	Source        *string       `json:"source"`
	Synopsis      *string       `json:"synopsis"`
	Trailer       *rawTrailer   `json:"trailer"`
	Relations     []rawRelation `json:"relations"`
}

type rawNews struct {
	MalID   int64      `json:"mal_id"`
	URL     string     `json:"url"`
	Title   string     `json:"title"`
	Date    string     `json:"date"`
	Excerpt string     `json:"excerpt"`
	Images  *rawImages `json:"images"`
}
