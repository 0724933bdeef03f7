package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filmlog/internal/config"
)

// Pattern candidates must have a trimmed rune length strictly inside these bounds.
const (
	patternMinLen = 2
	patternMaxLen = 50
)

var (
	// Titles quoted with guillemets or straight quotes.
	quotedRe = regexp.MustCompile(`[«"]([^»"]+)[»"]`)
	// Runs of two or more consecutive capitalized Latin words, the usual shape
	// of untranslated foreign titles in Russian chat.
	titleCaseRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
	// Fragment separators after a trigger word: commas, newlines, and the
	// standalone conjunctions "и"/"and".
	fragmentSplitRe = regexp.MustCompile(`,|\n|\s+и\s+|\s+and\s+`)
)

var titleCaser = cases.Title(language.Und)

// PatternExtractor collects candidates with quote, Title Case, and
// trigger-word heuristics. It is stateless and safe for concurrent use.
type PatternExtractor struct {
	triggers []string
}

var _ Extractor = (*PatternExtractor)(nil)

// NewPatternExtractor creates a pattern extractor with the supplied trigger
// words. Empty input falls back to the repository defaults.
func NewPatternExtractor(triggers []string) *PatternExtractor {
	if len(triggers) == 0 {
		triggers = config.DefaultTriggerWords()
	}
	lowered := make([]string, 0, len(triggers))
	for _, trigger := range triggers {
		trigger = strings.ToLower(strings.TrimSpace(trigger))
		if trigger != "" {
			lowered = append(lowered, trigger)
		}
	}
	return &PatternExtractor{triggers: lowered}
}

// Extract returns the deduplicated candidates found in text.
func (e *PatternExtractor) Extract(_ context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	set := newCandidateSet(patternMinLen, patternMaxLen)

	for _, match := range quotedRe.FindAllStringSubmatch(text, -1) {
		set.add(match[1])
	}
	for _, match := range titleCaseRe.FindAllString(text, -1) {
		set.add(match)
	}
	e.collectTriggerFragments(text, set)

	return set.values, nil
}

// collectTriggerFragments takes the text after the first occurrence of each
// trigger word, splits it into fragments, and title-cases the survivors.
func (e *PatternExtractor) collectTriggerFragments(text string, set *candidateSet) {
	lowered := strings.ToLower(text)
	for _, trigger := range e.triggers {
		idx := strings.Index(lowered, trigger)
		if idx < 0 {
			continue
		}
		rest := lowered[idx+len(trigger):]
		for _, fragment := range fragmentSplitRe.Split(rest, -1) {
			set.add(titleCaser.String(strings.TrimSpace(fragment)))
		}
	}
}

// candidateSet deduplicates candidates and enforces the length bounds.
// Values keep insertion order.
type candidateSet struct {
	minLen int
	maxLen int
	seen   map[string]struct{}
	values []string
}

func newCandidateSet(minLen, maxLen int) *candidateSet {
	return &candidateSet{minLen: minLen, maxLen: maxLen, seen: make(map[string]struct{})}
}

func (s *candidateSet) add(candidate string) {
	candidate = strings.TrimSpace(candidate)
	length := utf8.RuneCountInString(candidate)
	if length <= s.minLen || length >= s.maxLen {
		return
	}
	if _, ok := s.seen[candidate]; ok {
		return
	}
	s.seen[candidate] = struct{}{}
	s.values = append(s.values, candidate)
}
