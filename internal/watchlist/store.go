package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"filmlog/internal/config"
)

// ErrNotFound marks lookups that matched nothing the caller owns.
var ErrNotFound = errors.New("watchlist: entry not found")

// Store manages watchlist persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the watchlist database and applies
// migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "watchlist.db"))
}

// OpenPath opens the database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// timestampLayout is RFC 3339 with fixed-width nanoseconds so stored
// timestamps compare chronologically as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Add inserts a catalog match for one user. The created flag reports whether
// a row was written; a duplicate (user_id, catalog_id) pair leaves the store
// untouched and returns false.
func (s *Store) Add(ctx context.Context, userID, catalogID int64, title, mediaKind, synopsis string) (bool, error) {
	timestamp := formatTimestamp(time.Now())

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO movies (user_id, catalog_id, title, media_kind, synopsis, watched, added_at)
         VALUES (?, ?, ?, ?, ?, 0, ?)
         ON CONFLICT (user_id, catalog_id) DO NOTHING`,
		userID,
		catalogID,
		title,
		mediaKind,
		synopsis,
		timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListUnwatched returns the user's unwatched entries, newest first.
func (s *Store) ListUnwatched(ctx context.Context, userID int64) ([]Entry, error) {
	return s.list(ctx, userID, false)
}

// ListAll returns every entry for the user, watched included, newest first.
func (s *Store) ListAll(ctx context.Context, userID int64) ([]Entry, error) {
	return s.list(ctx, userID, true)
}

func (s *Store) list(ctx context.Context, userID int64, includeWatched bool) ([]Entry, error) {
	query := `SELECT id, user_id, catalog_id, title, media_kind, synopsis, watched, added_at
              FROM movies WHERE user_id = ?`
	if !includeWatched {
		query += " AND watched = 0"
	}
	query += " ORDER BY added_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// GetByID fetches a single entry owned by the user.
func (s *Store) GetByID(ctx context.Context, userID, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, catalog_id, title, media_kind, synopsis, watched, added_at
         FROM movies WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarkWatchedByID flips one entry to watched. The entry must belong to the
// user; marking someone else's entry, or a missing one, returns ErrNotFound.
// Already-watched entries are left alone and reported as found.
func (s *Store) MarkWatchedByID(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(
		ctx,
		"UPDATE movies SET watched = 1 WHERE id = ? AND user_id = ?",
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark watched: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkWatchedByTitleFragment flips every entry whose title contains the
// fragment, case-insensitively, and returns the titles it matched.
// Case folding happens in Go; SQLite's LOWER only folds ASCII, which would
// miss Cyrillic titles entirely. Already-watched matches are reported again,
// like MarkWatchedByID. ErrNotFound reports that nothing matched.
func (s *Store) MarkWatchedByTitleFragment(ctx context.Context, userID int64, fragment string) ([]string, error) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil, ErrNotFound
	}

	ids, err := s.matchTitleFragment(ctx, userID, fragment)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`UPDATE movies SET watched = 1
         WHERE user_id = ? AND id IN (`+placeholders+`)
         RETURNING title`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("mark watched: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan marked title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate marked titles: %w", err)
	}
	return titles, nil
}

func (s *Store) matchTitleFragment(ctx context.Context, userID int64, loweredFragment string) ([]int64, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, title FROM movies WHERE user_id = ? ORDER BY id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("match titles: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if strings.Contains(strings.ToLower(title), loweredFragment) {
			ids = append(ids, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return ids, nil
}

// Stats returns the user's entry counts grouped by watched state.
func (s *Store) Stats(ctx context.Context, userID int64) (Stats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT watched, COUNT(1) FROM movies WHERE user_id = ? GROUP BY watched",
		userID,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("watchlist stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var watched int
		var count int
		if err := rows.Scan(&watched, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		stats.Total += count
		if watched != 0 {
			stats.Watched += count
		} else {
			stats.Unwatched += count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

// CheckHealth returns diagnostic information about the watchlist database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("watchlist database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat watchlist database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("watchlist database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("watchlist database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping watchlist database: %w", err)
	}
	health.DatabaseReadable = true

	var tableName string
	row := s.db.QueryRowContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'movies'")
	if err := row.Scan(&tableName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return health, nil
		}
		health.Error = err.Error()
		return health, fmt.Errorf("query table info: %w", err)
	}
	health.TableExists = true

	return health, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var watched int
	var addedAt string
	if err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.CatalogID,
		&entry.Title,
		&entry.MediaKind,
		&entry.Synopsis,
		&watched,
		&addedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, sql.ErrNoRows
		}
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.Watched = watched != 0
	if parsed, err := time.Parse(time.RFC3339Nano, addedAt); err == nil {
		entry.AddedAt = parsed
	}
	return entry, nil
}
