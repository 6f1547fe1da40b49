package rddomain

// Estados do relatório assíncrono no lado do Reddit
const (
	ReportStatusPending   = "PENDING"
	ReportStatusRunning   = "RUNNING"
	ReportStatusSuccess   = "SUCCESS"
	ReportStatusError     = "ERROR"
	ReportStatusCancelled = "CANCELLED"
)

type Report struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ReportResponse struct {
	Data Report `json:"data"`
}

// ReportRow é uma linha diária do relatório, por anúncio. O gasto vem em
// microcurrency (milionésimos da moeda da conta).
type ReportRow struct {
	AdID        string `json:"ad_id"`
	Date        string `json:"date"`
	Impressions int64  `json:"impressions"`
	SpendMicros int64  `json:"spend_micros"`
	Clicks      *int64 `json:"clicks,omitempty"`
}

type ReportResultsPage struct {
	Data       []ReportRow `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}
