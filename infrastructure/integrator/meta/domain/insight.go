package metadomain

// InsightRow é a linha de insight no nível de anúncio, com os breakdowns de
// dispositivo, publisher e posição. A Graph API serializa métricas numéricas
// como strings.
type InsightRow struct {
	AdID              string `json:"ad_id"`
	DateStart         string `json:"date_start"`
	DevicePlatform    string `json:"device_platform,omitempty"`
	PublisherPlatform string `json:"publisher_platform,omitempty"`
	PlatformPosition  string `json:"platform_position,omitempty"`
	Impressions       string `json:"impressions,omitempty"`
	Spend             string `json:"spend,omitempty"`
	Clicks            string `json:"clicks,omitempty"`
}

type InsightsPage struct {
	Data   []InsightRow `json:"data"`
	Paging *Paging      `json:"paging,omitempty"`
}
