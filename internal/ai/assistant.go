// Package ai provides optional AI assistance for drafting product copy.
// The assistant is a producer-side convenience; nothing in the upload
// pipeline depends on it.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/config"
)

// ErrDisabled is returned when no API key was configured.
var ErrDisabled = errors.New("AI assistance is disabled (no API key configured)")

// Assistant generates product titles and descriptions through the OpenAI
// chat API. A zero-key configuration yields a disabled assistant whose
// methods return ErrDisabled.
type Assistant struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewAssistant creates an assistant from the AI configuration.
func NewAssistant(cfg config.AIConfig, logger *slog.Logger) *Assistant {
	a := &Assistant{
		model:  cfg.Model,
		logger: logger.With("component", "ai_assistant"),
	}
	if a.model == "" {
		a.model = openai.GPT3Dot5Turbo
	}

	if cfg.OpenAIAPIKey == "" {
		logger.Warn("no OpenAI API key configured, AI assistance disabled")
		return a
	}

	a.client = openai.NewClient(cfg.OpenAIAPIKey)
	return a
}

// Enabled reports whether the assistant can serve requests.
func (a *Assistant) Enabled() bool {
	return a.client != nil
}

// GenerateTitles produces up to n product title suggestions for the given
// product prompt.
func (a *Assistant) GenerateTitles(ctx context.Context, prompt string, n int) ([]string, error) {
	if !a.Enabled() {
		return nil, ErrDisabled
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		MaxTokens:   100,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a product title generator for e-commerce. Generate compelling product titles.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Generate %d product titles for: %s", n, prompt),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("title generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("title generation returned no choices")
	}

	titles := parseTitles(resp.Choices[0].Message.Content, n)
	a.logger.Debug("generated titles", "prompt", prompt, "count", len(titles))
	return titles, nil
}

// GenerateDescription produces an SEO-friendly description for a product
// title. productType gives the model context, e.g. "mug" or "poster".
func (a *Assistant) GenerateDescription(ctx context.Context, title, productType string) (string, error) {
	if !a.Enabled() {
		return "", ErrDisabled
	}
	if productType == "" {
		productType = "product"
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		MaxTokens:   300,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a product description writer for e-commerce. Write SEO-friendly product descriptions.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Write a detailed product description for this %s: %s\nInclude features, benefits, and specifications in a professional tone.",
					productType, title),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("description generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("description generation returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseTitles splits the model's line-per-title answer and strips any
// leading "1. " style numbering.
func parseTitles(content string, limit int) []string {
	var titles []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if prefix, rest, found := strings.Cut(line, ". "); found && isListNumber(prefix) {
			line = rest
		}
		titles = append(titles, line)
		if len(titles) == limit {
			break
		}
	}
	return titles
}

// isListNumber reports whether s is the numeral part of a "1. " style
// list prefix. Anything non-numeric, like the "Mr" in "Mr. Coffee", is
// part of the title itself.
func isListNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
