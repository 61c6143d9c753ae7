package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient cria o cliente redis usado pelas chaves de idempotência
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RedisStore guarda as chaves de idempotência no redis
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore cria um RedisStore; ttl <= 0 usa DefaultTTL
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Reserve marca a chave como em curso com SETNX
func (s *RedisStore) Reserve(ctx context.Context, key, fingerprint string) (int64, bool, error) {
	k := saleKey(key)
	for i := 0; i < 2; i++ {
		ok, err := s.rdb.SetNX(ctx, k, pendingEntry(fingerprint), s.ttl).Result()
		if err != nil {
			return 0, false, fmt.Errorf("falha ao reservar chave: %w", err)
		}
		if ok {
			return 0, true, nil
		}

		val, err := s.rdb.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			// expirou entre o SETNX e o GET
			continue
		}
		if err != nil {
			return 0, false, fmt.Errorf("falha ao ler chave: %w", err)
		}
		return resolve(val, fingerprint)
	}
	return 0, false, nil
}

// Complete associa a chave à venda registrada
func (s *RedisStore) Complete(ctx context.Context, key, fingerprint string, saleID int64) error {
	if err := s.rdb.Set(ctx, saleKey(key), completedEntry(saleID, fingerprint), s.ttl).Err(); err != nil {
		return fmt.Errorf("falha ao gravar chave: %w", err)
	}
	return nil
}

// Release libera a chave após uma falha
func (s *RedisStore) Release(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, saleKey(key)).Err(); err != nil {
		return fmt.Errorf("falha ao liberar chave: %w", err)
	}
	return nil
}

// Ping verifica a conexão com o redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
