package lidomain

// Estados do export assíncrono de analytics no lado do LinkedIn
const (
	ExportStatusPending    = "PENDING"
	ExportStatusProcessing = "PROCESSING"
	ExportStatusCompleted  = "COMPLETED"
	ExportStatusFailed     = "FAILED"
	ExportStatusCancelled  = "CANCELLED"
)

// Export é a tarefa assíncrona de exportação de analytics
type Export struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// DateRangeDay é a data decomposta usada nas respostas de analytics
type DateRangeDay struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// AnalyticsRow é uma linha diária do export, pivotada por criativo. Custo vem
// como decimal em string.
type AnalyticsRow struct {
	Creative  string `json:"creative"`
	DateRange struct {
		Start DateRangeDay `json:"start"`
	} `json:"dateRange"`
	Impressions         int64  `json:"impressions"`
	CostInLocalCurrency string `json:"costInLocalCurrency,omitempty"`
	Clicks              *int64 `json:"clicks,omitempty"`
}

type AnalyticsPage struct {
	Elements []AnalyticsRow `json:"elements"`
}
