package config

const (
	defaultDataDir             = "~/.local/share/filmlog"
	defaultLogDir              = "~/.local/share/filmlog/logs"
	defaultTelegramBaseURL     = "https://api.telegram.org"
	defaultTelegramPollTimeout = 30
	defaultTelegramSendRate    = 1.0
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBLanguage        = "ru-RU"
	defaultLLMBaseURL          = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel            = "google/gemini-3-flash-preview"
	defaultLLMTimeoutSeconds   = 30
	defaultExtractionStrategy  = StrategyPattern
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Extraction strategy names accepted in extraction.strategy.
const (
	StrategyPattern = "pattern"
	StrategyLLM     = "llm"
)

// DefaultTriggerWords are the phrases that introduce recommendation fragments
// in casual chat. Localized for the Russian-speaking chats the bot grew up in.
func DefaultTriggerWords() []string {
	return []string{"посмотреть", "глянуть", "советовали", "рекомендовали", "watch", "check out", "recommended"}
}

// DefaultBannedWords mark meta-commentary the model extractor must reject.
func DefaultBannedWords() []string {
	return []string{"review", "обзор", "трейлер", "trailer", "саундтрек", "soundtrack"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Telegram: Telegram{
			BaseURL:            defaultTelegramBaseURL,
			PollTimeoutSeconds: defaultTelegramPollTimeout,
			MessagesPerSecond:  defaultTelegramSendRate,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			TimeoutSeconds: defaultLLMTimeoutSeconds,
		},
		Extraction: Extraction{
			Strategy:     defaultExtractionStrategy,
			TriggerWords: DefaultTriggerWords(),
			BannedWords:  DefaultBannedWords(),
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Added:          true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
