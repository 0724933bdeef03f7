package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"filmlog/internal/config"
	"filmlog/internal/services/llm"
)

// Model candidates get a slightly wider length bound than pattern ones
// because the model returns full titles rather than raw fragments.
const (
	modelMinLen = 2
	modelMaxLen = 60
)

// Completer is the slice of the chat-completion client the extractor needs.
type Completer interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ModelExtractor asks a chat-completion model for the titles in a message.
// Service failures and undecodable payloads degrade to an empty candidate
// list; only context cancellation surfaces as an error.
type ModelExtractor struct {
	completer Completer
	banned    []string
	logger    *slog.Logger
}

var _ Extractor = (*ModelExtractor)(nil)

// NewModelExtractor creates a model extractor. Empty banned falls back to the
// repository defaults.
func NewModelExtractor(completer Completer, banned []string, logger *slog.Logger) *ModelExtractor {
	if len(banned) == 0 {
		banned = config.DefaultBannedWords()
	}
	lowered := make([]string, 0, len(banned))
	for _, word := range banned {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			lowered = append(lowered, word)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelExtractor{completer: completer, banned: lowered, logger: logger}
}

type titlesPayload struct {
	Titles []string `json:"titles"`
}

// Extract returns the filtered titles reported by the model.
func (e *ModelExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	content, err := e.completer.CompleteJSON(ctx, titleExtractionSystemPrompt, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		e.logger.Warn("title extraction request failed", "error", err)
		return nil, nil
	}

	var payload titlesPayload
	if err := llm.DecodeLLMJSON(content, &payload); err != nil {
		e.logger.Warn("title extraction returned undecodable payload", "error", err)
		return nil, nil
	}

	set := newCandidateSet(modelMinLen, modelMaxLen)
	for _, title := range payload.Titles {
		if e.isBanned(title) {
			continue
		}
		set.add(title)
	}
	return set.values, nil
}

func (e *ModelExtractor) isBanned(title string) bool {
	lowered := strings.ToLower(title)
	for _, word := range e.banned {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
