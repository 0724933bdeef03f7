package extract

import (
	"context"
	"fmt"
	"log/slog"

	"filmlog/internal/config"
	"filmlog/internal/logging"
	"filmlog/internal/services/llm"
)

// Extractor produces deduplicated candidate title strings from message text.
// Implementations must treat empty or malformed text as a no-op yielding an
// empty slice, never an error.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// FromConfig builds the extractor selected by extraction.strategy.
func FromConfig(cfg *config.Config, logger *slog.Logger) (Extractor, error) {
	switch cfg.Extraction.Strategy {
	case config.StrategyPattern:
		return NewPatternExtractor(cfg.Extraction.TriggerWords), nil
	case config.StrategyLLM:
		client := llm.NewClient(llm.Config(cfg.GetLLM()))
		return NewModelExtractor(client, cfg.Extraction.BannedWords, logging.WithComponent(logger, "extract")), nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q", cfg.Extraction.Strategy)
	}
}
