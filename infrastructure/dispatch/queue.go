package dispatch

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// QueueDispatcher publica as mensagens em uma lista do Redis que funciona
// como fila durável; um worker de processamento em lote consome do outro lado
type QueueDispatcher struct {
	client   redis.UniversalClient
	queueKey string
}

func NewQueueDispatcher(client redis.UniversalClient, queueKey string) *QueueDispatcher {
	return &QueueDispatcher{
		client:   client,
		queueKey: queueKey,
	}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, msg Message) error {
	return d.DispatchBatch(ctx, []Message{msg})
}

func (d *QueueDispatcher) DispatchBatch(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	payloads := make([]interface{}, 0, len(msgs))
	for _, msg := range msgs {
		raw, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("erro ao serializar mensagem de despacho: %w", err)
		}
		payloads = append(payloads, raw)
	}

	// RPUSH em lote é atômico: ou todas as mensagens entram, ou nenhuma
	if err := d.client.RPush(ctx, d.queueKey, payloads...).Err(); err != nil {
		return fmt.Errorf("erro ao publicar mensagens na fila %s: %w", d.queueKey, err)
	}

	return nil
}
