package jobstore

import (
	"context"
	"time"
)

// Store é o contrato do conjunto compartilhado com TTL por membro. É o único
// recurso mutável compartilhado entre instâncias do orquestrador, então toda
// mutação precisa ser uma operação atômica do lado do armazenamento.
type Store interface {
	// SetAdd adiciona um membro ao conjunto com expiração própria
	SetAdd(ctx context.Context, key, member string, ttl time.Duration) error
	// SetRemove remove um membro e informa se ele ainda existia. O retorno
	// false significa que outra instância removeu primeiro.
	SetRemove(ctx context.Context, key, member string) (bool, error)
	// SetGetAll retorna os membros não expirados do conjunto
	SetGetAll(ctx context.Context, key string) ([]string, error)

	// Get/Set são o cache genérico de idempotência (pré-visualizações)
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
