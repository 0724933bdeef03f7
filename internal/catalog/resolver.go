// Package catalog resolves candidate title strings against the TMDB catalog.
//
// Resolution is deliberately simple: one multi-search per candidate, first
// ranked result whose type is movie or TV wins, no secondary scoring and no
// caching. Misses are represented by ErrNoMatch so callers can drop the
// candidate without treating it as a failure.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filmlog/internal/catalog/tmdb"
)

// ErrNoMatch reports that the catalog has no eligible record for a candidate.
var ErrNoMatch = errors.New("no catalog match")

// Media kinds stored on resolved records.
const (
	KindMovie  = "movie"
	KindSeries = "series"
)

// Resolved is the projection of a catalog record captured at resolution time.
type Resolved struct {
	CatalogID int64
	Title     string
	MediaKind string
	Synopsis  string
}

// Resolver maps candidate strings to canonical catalog records.
type Resolver struct {
	searcher tmdb.Searcher
}

// NewResolver creates a resolver backed by the supplied TMDB searcher.
func NewResolver(searcher tmdb.Searcher) (*Resolver, error) {
	if searcher == nil {
		return nil, errors.New("catalog resolver requires a searcher")
	}
	return &Resolver{searcher: searcher}, nil
}

// Resolve looks up a candidate and returns the first ranked movie or series
// result. Returns ErrNoMatch when the result set is empty or contains no
// eligible type.
func (r *Resolver) Resolve(ctx context.Context, candidate string) (Resolved, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return Resolved{}, errors.New("candidate must not be empty")
	}

	resp, err := r.searcher.SearchMulti(ctx, candidate)
	if err != nil {
		return Resolved{}, fmt.Errorf("catalog search %q: %w", candidate, err)
	}

	for _, result := range resp.Results {
		kind, ok := mediaKind(result.MediaType)
		if !ok {
			continue
		}
		return Resolved{
			CatalogID: result.ID,
			Title:     result.DisplayName(),
			MediaKind: kind,
			Synopsis:  result.Overview,
		}, nil
	}
	return Resolved{}, fmt.Errorf("%w: %q", ErrNoMatch, candidate)
}

// mediaKind maps a TMDB media_type tag to a stored media kind. People and
// other types are not eligible.
func mediaKind(mediaType string) (string, bool) {
	switch mediaType {
	case "movie":
		return KindMovie, true
	case "tv":
		return KindSeries, true
	default:
		return "", false
	}
}
