package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateExtraction(); err != nil {
		return err
	}
	if err := c.validateTelegram(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	if c.TMDB.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/filmlog/config.toml"
		}
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'filmlog config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateExtraction() error {
	switch c.Extraction.Strategy {
	case StrategyPattern:
		return nil
	case StrategyLLM:
		if c.LLM.APIKey == "" {
			return errors.New("llm.api_key must be set when extraction.strategy is \"llm\"")
		}
		return nil
	default:
		return fmt.Errorf("extraction.strategy must be %q or %q, got %q", StrategyPattern, StrategyLLM, c.Extraction.Strategy)
	}
}

func (c *Config) validateTelegram() error {
	if c.Telegram.PollTimeoutSeconds <= 0 {
		return errors.New("telegram.poll_timeout_seconds must be positive")
	}
	if c.Telegram.MessagesPerSecond <= 0 {
		return errors.New("telegram.messages_per_second must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
