package entity

import "time"

// User is a registered account.
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Favorite is a title a user bookmarked. Title and image are denormalised so
// the list renders without an upstream call.
type Favorite struct {
	ID         int64
	UserID     int64
	AnimeID    int64
	AnimeTitle string
	AnimeImage string
	CreatedAt  time.Time
}

// HistoryEntry records that a user opened a title's detail page.
type HistoryEntry struct {
	ID         int64
	UserID     int64
	AnimeID    int64
	AnimeTitle string
	ViewedAt   time.Time
}
