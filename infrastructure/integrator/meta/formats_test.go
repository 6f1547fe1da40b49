package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/channel-sync-api/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestResolveFormat_PrecedenciaDeFallback(t *testing.T) {
	tests := []struct {
		name      string
		placement domain.PreviewPlacement
		expected  string
	}{
		{
			name: "tripla exata vence o fallback parcial",
			placement: domain.PreviewPlacement{
				Publisher: strPtr("instagram"),
				Device:    strPtr("mobile"),
				Position:  strPtr("story"),
			},
			expected: "INSTAGRAM_STORY",
		},
		{
			name: "posicionamento desconhecido cai no fallback do publisher",
			placement: domain.PreviewPlacement{
				Publisher: strPtr("instagram"),
				Device:    strPtr("tv"),
				Position:  strPtr("explore"),
			},
			expected: "INSTAGRAM_STANDARD",
		},
		{
			name: "somente device usa o fallback de device",
			placement: domain.PreviewPlacement{
				Device: strPtr("mobile"),
			},
			expected: "MOBILE_FEED_STANDARD",
		},
		{
			name: "somente position usa o fallback de position",
			placement: domain.PreviewPlacement{
				Position: strPtr("story"),
			},
			expected: "INSTAGRAM_STORY",
		},
		{
			name:      "nenhum campo usa o padrão curinga",
			placement: domain.PreviewPlacement{},
			expected:  "DESKTOP_FEED_STANDARD",
		},
		{
			name: "publisher desconhecido em todos os níveis usa o padrão curinga",
			placement: domain.PreviewPlacement{
				Publisher: strPtr("tiktok"),
				Position:  strPtr("splash"),
			},
			expected: "DESKTOP_FEED_STANDARD",
		},
		{
			name: "normalização de caixa e espaços",
			placement: domain.PreviewPlacement{
				Publisher: strPtr("  Instagram "),
				Device:    strPtr("MOBILE"),
				Position:  strPtr("Reels"),
			},
			expected: "INSTAGRAM_REELS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, width, height := resolveFormat(tt.placement)

			assert.Equal(t, tt.expected, format)
			assert.Greater(t, width, 0)
			assert.Greater(t, height, 0)
		})
	}
}

func TestResolveFormat_DimensoesPorFormato(t *testing.T) {
	format, width, height := resolveFormat(domain.PreviewPlacement{
		Publisher: strPtr("facebook"),
		Device:    strPtr("desktop"),
		Position:  strPtr("right_hand_column"),
	})

	assert.Equal(t, "RIGHT_COLUMN_STANDARD", format)
	assert.Equal(t, 254, width)
	assert.Equal(t, 133, height)
}
