package dispatch

import (
	"context"

	"github.com/vfg2006/channel-sync-api/internal/domain"
)

// Message são os parâmetros de execução de um processamento de relatório
// despachado para fora do orquestrador
type Message struct {
	ChannelType domain.ChannelType `json:"channel_type"`
	AdAccountID string             `json:"ad_account_id"`
	TaskID      string             `json:"task_id"`
	Initial     bool               `json:"initial"`
}

// Dispatcher envia mensagens de processamento em modo fire-and-forget: o
// chamador nunca espera o resultado, mas falhas de envio são retornadas para
// que fiquem visíveis nos logs do orquestrador
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
	DispatchBatch(ctx context.Context, msgs []Message) error
}
