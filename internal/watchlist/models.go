package watchlist

import "time"

// Entry is a single saved title for one user.
type Entry struct {
	ID        int64
	UserID    int64
	CatalogID int64
	Title     string
	MediaKind string
	Synopsis  string
	Watched   bool
	AddedAt   time.Time
}

// Stats aggregates one user's watchlist counts.
type Stats struct {
	Total     int
	Watched   int
	Unwatched int
}

// DatabaseHealth captures diagnostic information about the watchlist database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	Error            string
}
