package catalog_test

import (
	"context"
	"errors"
	"testing"

	"filmlog/internal/catalog"
	"filmlog/internal/catalog/tmdb"
)

type stubSearcher struct {
	response *tmdb.Response
	err      error
	queries  []string
}

func (s *stubSearcher) SearchMulti(_ context.Context, query string) (*tmdb.Response, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func TestResolvePicksFirstEligibleResult(t *testing.T) {
	searcher := &stubSearcher{response: &tmdb.Response{Results: []tmdb.Result{
		{ID: 1, Name: "Walter White", MediaType: "person"},
		{ID: 1396, Name: "Breaking Bad", Overview: "Chemistry teacher.", MediaType: "tv"},
		{ID: 7, Title: "Breaking Bad Movie", MediaType: "movie"},
	}}}
	resolver, err := catalog.NewResolver(searcher)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	resolved, err := resolver.Resolve(context.Background(), "Breaking Bad")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.CatalogID != 1396 {
		t.Fatalf("expected first eligible result, got %+v", resolved)
	}
	if resolved.MediaKind != catalog.KindSeries {
		t.Fatalf("expected series kind, got %q", resolved.MediaKind)
	}
	if resolved.Title != "Breaking Bad" {
		t.Fatalf("unexpected title %q", resolved.Title)
	}
}

func TestResolveMovieKind(t *testing.T) {
	searcher := &stubSearcher{response: &tmdb.Response{Results: []tmdb.Result{
		{ID: 157336, Title: "Интерстеллар", Overview: "Космос.", MediaType: "movie"},
	}}}
	resolver, _ := catalog.NewResolver(searcher)

	resolved, err := resolver.Resolve(context.Background(), "Интерстеллар")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.MediaKind != catalog.KindMovie {
		t.Fatalf("expected movie kind, got %q", resolved.MediaKind)
	}
}

func TestResolveNoEligibleType(t *testing.T) {
	searcher := &stubSearcher{response: &tmdb.Response{Results: []tmdb.Result{
		{ID: 2, Name: "Somebody", MediaType: "person"},
	}}}
	resolver, _ := catalog.NewResolver(searcher)

	_, err := resolver.Resolve(context.Background(), "Somebody")
	if !errors.Is(err, catalog.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolveEmptyResultSet(t *testing.T) {
	searcher := &stubSearcher{response: &tmdb.Response{}}
	resolver, _ := catalog.NewResolver(searcher)

	_, err := resolver.Resolve(context.Background(), "zzzzz")
	if !errors.Is(err, catalog.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolvePropagatesSearchErrors(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("boom")}
	resolver, _ := catalog.NewResolver(searcher)

	_, err := resolver.Resolve(context.Background(), "Heat")
	if err == nil || errors.Is(err, catalog.ErrNoMatch) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestResolveRejectsEmptyCandidate(t *testing.T) {
	resolver, _ := catalog.NewResolver(&stubSearcher{response: &tmdb.Response{}})
	if _, err := resolver.Resolve(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty candidate")
	}
}
