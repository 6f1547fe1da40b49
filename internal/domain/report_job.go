package domain

// ReportJobStatus é o estado de um relatório assíncrono no lado do canal
type ReportJobStatus string

const (
	ReportJobStatusQueuing    ReportJobStatus = "QUEUING"
	ReportJobStatusProcessing ReportJobStatus = "PROCESSING"
	ReportJobStatusSuccess    ReportJobStatus = "SUCCESS"
	ReportJobStatusFailed     ReportJobStatus = "FAILED"
	ReportJobStatusCanceled   ReportJobStatus = "CANCELED"
)

// IsTerminal indica se o status encerra o ciclo de vida do job
func (s ReportJobStatus) IsTerminal() bool {
	return s == ReportJobStatusSuccess || s == ReportJobStatusFailed || s == ReportJobStatusCanceled
}

// ReportJob é o registro efêmero de um relatório assíncrono em andamento.
// Vive no conjunto compartilhado com TTL, nunca no banco relacional. O campo
// Initial propaga se a sincronização que originou o job é a primeira da conta,
// o que define a janela de insights no processamento.
type ReportJob struct {
	ChannelType ChannelType     `json:"channel_type"`
	AdAccountID string          `json:"ad_account_id"`
	TaskID      string          `json:"task_id"`
	Status      ReportJobStatus `json:"status"`
	Initial     bool            `json:"initial"`
}
