package meta

import (
	"strings"

	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// formatKey é a tripla (publisher, device, position) da busca de formato.
// Campo vazio funciona como curinga.
type formatKey struct {
	publisher string
	device    string
	position  string
}

// previewFormats mapeia posicionamentos para o ad_format da Graph API.
// Tabela imutável, construída uma vez na carga do pacote.
var previewFormats = map[formatKey]string{
	{"facebook", "desktop", "feed"}:              "DESKTOP_FEED_STANDARD",
	{"facebook", "mobile", "feed"}:               "MOBILE_FEED_STANDARD",
	{"facebook", "mobile", "story"}:              "FACEBOOK_STORY_MOBILE",
	{"facebook", "desktop", "right_hand_column"}: "RIGHT_COLUMN_STANDARD",
	{"instagram", "mobile", "feed"}:              "INSTAGRAM_STANDARD",
	{"instagram", "mobile", "story"}:             "INSTAGRAM_STORY",
	{"instagram", "mobile", "reels"}:             "INSTAGRAM_REELS",
	{"messenger", "mobile", ""}:                  "MESSENGER_MOBILE_INBOX_MEDIA",
	{"audience_network", "mobile", ""}:           "MOBILE_BANNER",

	// Fallbacks parciais
	{"facebook", "", ""}:  "DESKTOP_FEED_STANDARD",
	{"instagram", "", ""}: "INSTAGRAM_STANDARD",
	{"", "mobile", ""}:    "MOBILE_FEED_STANDARD",
	{"", "desktop", ""}:   "DESKTOP_FEED_STANDARD",
	{"", "", "story"}:     "INSTAGRAM_STORY",

	// Curinga total
	{}: "DESKTOP_FEED_STANDARD",
}

// formatDimensions sobrescreve as dimensões de renderização por formato
var formatDimensions = map[string][2]int{
	"DESKTOP_FEED_STANDARD":        {502, 720},
	"MOBILE_FEED_STANDARD":         {320, 570},
	"FACEBOOK_STORY_MOBILE":        {360, 640},
	"RIGHT_COLUMN_STANDARD":        {254, 133},
	"INSTAGRAM_STANDARD":           {320, 540},
	"INSTAGRAM_STORY":              {360, 640},
	"INSTAGRAM_REELS":              {360, 640},
	"MESSENGER_MOBILE_INBOX_MEDIA": {320, 480},
	"MOBILE_BANNER":                {320, 100},
}

var defaultDimensions = [2]int{502, 720}

// resolveFormat resolve o formato de pré-visualização com precedência de
// fallback: tripla exata, depois duas das três preenchidas, depois uma, por
// fim o padrão totalmente curinga.
func resolveFormat(placement domain.PreviewPlacement) (string, int, int) {
	publisher := normalizePlacementField(placement.Publisher)
	device := normalizePlacementField(placement.Device)
	position := normalizePlacementField(placement.Position)

	candidates := []formatKey{
		{publisher, device, position},
		{publisher, device, ""},
		{publisher, "", position},
		{"", device, position},
		{publisher, "", ""},
		{"", device, ""},
		{"", "", position},
		{},
	}

	for _, key := range candidates {
		if format, ok := previewFormats[key]; ok {
			width, height := dimensionsFor(format)
			return format, width, height
		}
	}

	// Inalcançável enquanto a tabela tiver a entrada curinga total
	width, height := defaultDimensions[0], defaultDimensions[1]
	return "DESKTOP_FEED_STANDARD", width, height
}

func dimensionsFor(format string) (int, int) {
	if dims, ok := formatDimensions[format]; ok {
		return dims[0], dims[1]
	}
	return defaultDimensions[0], defaultDimensions[1]
}

func normalizePlacementField(value *string) string {
	if value == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*value))
}
