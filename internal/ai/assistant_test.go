package ai

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAssistantDisabledWithoutKey(t *testing.T) {
	t.Parallel()

	assistant := NewAssistant(config.AIConfig{}, testLogger())

	assert.False(t, assistant.Enabled())

	_, err := assistant.GenerateTitles(context.Background(), "ceramic mug", 3)
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = assistant.GenerateDescription(context.Background(), "Ceramic Mug", "mug")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestAssistantEnabledWithKey(t *testing.T) {
	t.Parallel()

	assistant := NewAssistant(config.AIConfig{OpenAIAPIKey: "sk-test"}, testLogger())

	assert.True(t, assistant.Enabled())
}

func TestParseTitles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		limit   int
		want    []string
	}{
		{
			name:    "numbered list",
			content: "1. Artisan Ceramic Mug\n2. Handmade Coffee Cup\n3. Rustic Stoneware Mug",
			limit:   3,
			want:    []string{"Artisan Ceramic Mug", "Handmade Coffee Cup", "Rustic Stoneware Mug"},
		},
		{
			name:    "plain lines with blanks",
			content: "Artisan Ceramic Mug\n\nHandmade Coffee Cup\n",
			limit:   3,
			want:    []string{"Artisan Ceramic Mug", "Handmade Coffee Cup"},
		},
		{
			name:    "limit truncates",
			content: "1. One\n2. Two\n3. Three\n4. Four",
			limit:   2,
			want:    []string{"One", "Two"},
		},
		{
			name:    "abbreviation is not numbering",
			content: "Mr. Coffee Travel Mug\nDr. Brew Pour-Over Kit",
			limit:   3,
			want:    []string{"Mr. Coffee Travel Mug", "Dr. Brew Pour-Over Kit"},
		},
		{
			name:    "numbered title keeps its own abbreviation",
			content: "1. Mr. Coffee Travel Mug",
			limit:   1,
			want:    []string{"Mr. Coffee Travel Mug"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := parseTitles(tc.content, tc.limit)
			require.Equal(t, tc.want, got)
		})
	}
}
