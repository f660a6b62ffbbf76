package manager

import (
	"context"
	"strings"

	"chatbotd/internal/engine"
)

// chatParams is the fixed sampling configuration for every completion. The
// stop sequences keep the model from hallucinating a new conversation turn.
// No seed is set, so identical inputs are not guaranteed identical outputs.
var chatParams = engine.Params{
	MaxTokens:   200,
	Temperature: 0.7,
	TopK:        40,
	TopP:        0.95,
	Stop:        []string{"### User:", "\n###"},
}

// Chat generates a reply for one user message. The message is assumed to be
// validated and trimmed by the caller. Errors are typed: unavailable maps to
// 503 at the HTTP layer, everything else to a generic 500 with the engine
// detail kept server-side.
func (m *Manager) Chat(ctx context.Context, message string) (string, error) {
	if !m.handle.IsReady() {
		return "", unavailableError{reason: m.handle.Reason()}
	}
	prompt := BuildPrompt(message)
	res, err := m.handle.engine.Complete(ctx, prompt, chatParams)
	if err != nil {
		m.log.Error().Err(err).Msg("inference failed")
		return "", inferenceError{err: err}
	}
	text, err := parseResult(res)
	if err != nil {
		m.log.Error().Err(err).Msg("unexpected engine output shape")
		return "", err
	}
	m.conv.Info().Str("user", message).Str("assistant", text).Msg("conversation")
	return text, nil
}

// parseResult validates the engine's output shape instead of silently
// defaulting: a result with no choices is an error, not an empty reply.
func parseResult(res engine.Result) (string, error) {
	if len(res.Choices) == 0 {
		return "", badOutputError{}
	}
	return strings.TrimSpace(res.Choices[0].Text), nil
}
