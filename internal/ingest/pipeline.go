// Package ingest composes extraction, catalog resolution, and the watchlist
// store into the per-message pipeline.
package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"filmlog/internal/catalog"
)

// Resolver matches one candidate string against the catalog.
type Resolver interface {
	Resolve(ctx context.Context, candidate string) (catalog.Resolved, error)
}

// Saver is the slice of the watchlist store the pipeline writes through.
type Saver interface {
	Add(ctx context.Context, userID, catalogID int64, title, mediaKind, synopsis string) (bool, error)
}

// Extractor produces candidate titles from message text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// Pipeline turns one message into zero or more watchlist entries.
type Pipeline struct {
	extractor Extractor
	resolver  Resolver
	store     Saver
	logger    *slog.Logger
}

// NewPipeline wires the three stages together.
func NewPipeline(extractor Extractor, resolver Resolver, store Saver, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{extractor: extractor, resolver: resolver, store: store, logger: logger}
}

// Ingest extracts candidates from text, resolves each against the catalog,
// and saves the matches for userID. It returns the titles that were newly
// added; candidates without a catalog match, and duplicates the user already
// saved, are absent from the result. Unresolvable lookups are dropped per
// candidate; store failures abort the run.
func (p *Pipeline) Ingest(ctx context.Context, userID int64, text string) ([]string, error) {
	ingestID := uuid.NewString()
	logger := p.logger.With("ingest_id", ingestID, "user_id", userID)

	candidates, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, &Error{Kind: KindExtraction, Op: "extract", Err: err}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	logger.Debug("extracted candidates", "count", len(candidates))

	var added []string
	for _, candidate := range candidates {
		resolved, err := p.resolver.Resolve(ctx, candidate)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return added, &Error{Kind: KindResolution, Op: "resolve", Err: ctxErr}
			}
			if errors.Is(err, catalog.ErrNoMatch) {
				logger.Debug("no catalog match", "candidate", candidate)
			} else {
				logger.Warn("catalog lookup failed", "candidate", candidate, "error", err)
			}
			continue
		}

		created, err := p.store.Add(ctx, userID, resolved.CatalogID, resolved.Title, resolved.MediaKind, resolved.Synopsis)
		if err != nil {
			return added, &Error{Kind: KindStore, Op: "add entry", Err: err}
		}
		if created {
			logger.Info("added entry", "title", resolved.Title, "catalog_id", resolved.CatalogID, "media_kind", resolved.MediaKind)
			added = append(added, resolved.Title)
		} else {
			logger.Debug("duplicate entry skipped", "title", resolved.Title, "catalog_id", resolved.CatalogID)
		}
	}

	return added, nil
}
