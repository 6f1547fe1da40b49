package jobstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implementa Store sobre sorted sets do Redis: o score de cada
// membro é o instante de expiração em unix. Membros vencidos são podados
// antes de qualquer leitura, então um TTL por membro não depende do TTL da
// chave inteira.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) SetAdd(ctx context.Context, key, member string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()

	if err := s.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(expiresAt),
		Member: member,
	}).Err(); err != nil {
		return fmt.Errorf("erro ao adicionar membro ao conjunto %s: %w", key, err)
	}

	return nil
}

func (s *RedisStore) SetRemove(ctx context.Context, key, member string) (bool, error) {
	removed, err := s.client.ZRem(ctx, key, member).Result()
	if err != nil {
		return false, fmt.Errorf("erro ao remover membro do conjunto %s: %w", key, err)
	}

	return removed > 0, nil
}

func (s *RedisStore) SetGetAll(ctx context.Context, key string) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	// Poda os membros expirados antes de ler; ambos os comandos são atômicos
	// no servidor, então leituras concorrentes nunca veem membro vencido
	if err := s.client.ZRemRangeByScore(ctx, key, "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("erro ao podar membros expirados de %s: %w", key, err)
	}

	members, err := s.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []string{}, nil
		}
		return nil, fmt.Errorf("erro ao listar membros de %s: %w", key, err)
	}

	return members, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("erro ao ler chave %s: %w", key, err)
	}

	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}

	return nil
}
