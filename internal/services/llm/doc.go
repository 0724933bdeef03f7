// Package llm provides an OpenAI-compatible chat-completion client used by
// model-assisted title extraction.
//
// The client sends a system prompt plus the raw chat message to the configured
// model with deterministic sampling and a JSON-only response format, and
// returns the textual content of the first choice. DecodeLLMJSON tolerates the
// usual model formatting quirks (code fences, prose around the JSON object).
//
// Requests are made exactly once with a conservative timeout; callers decide
// how to degrade when the model is unreachable or returns garbage.
package llm
