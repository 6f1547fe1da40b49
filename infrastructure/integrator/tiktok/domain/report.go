package ttdomain

// Estados da tarefa de relatório no lado do TikTok
const (
	TaskStatusQueuing    = "QUEUING"
	TaskStatusProcessing = "PROCESSING"
	TaskStatusSuccess    = "SUCCESS"
	TaskStatusFailed     = "FAILED"
	TaskStatusCanceled   = "CANCELED"
)

type CreateTaskData struct {
	TaskID string `json:"task_id"`
}

type CheckTaskData struct {
	Status string `json:"status"`
}

// ReportRow é uma linha diária do relatório, dimensionada por anúncio e dia.
// As métricas vêm serializadas como strings.
type ReportRow struct {
	Dimensions struct {
		AdID        string `json:"ad_id"`
		StatTimeDay string `json:"stat_time_day"`
	} `json:"dimensions"`
	Metrics struct {
		Impressions string `json:"impressions"`
		Spend       string `json:"spend"`
		Clicks      string `json:"clicks,omitempty"`
	} `json:"metrics"`
}

type ReportPage struct {
	List     []ReportRow `json:"list"`
	PageInfo *PageInfo   `json:"page_info,omitempty"`
}
