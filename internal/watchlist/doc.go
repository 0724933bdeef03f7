// Package watchlist persists per-user watchlist entries in SQLite.
//
// Each entry records a catalog match for one user. The pair (user_id,
// catalog_id) is unique, so re-adding a title a user already saved is a
// no-op reported through the created flag rather than an error. Watched is
// one-way; nothing in the store flips an entry back to unwatched.
package watchlist
