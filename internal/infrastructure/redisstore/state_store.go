// Package redisstore guarda el estado persistido de cliente en Redis, con TTL
// opcional: los listados en caché son pistas y pueden expirar.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

const keyPrefix = "ladger:state:"

// NewClient crea y valida la conexión go-redis.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// StateStore implementación Redis de repository.StateStore.
type StateStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewStateStore construye el store. ttl = 0 no expira.
func NewStateStore(rdb redis.UniversalClient, ttl time.Duration) *StateStore {
	return &StateStore{rdb: rdb, ttl: ttl}
}

func redisKey(namespace, key string) string {
	return keyPrefix + namespace + ":" + key
}

// Get implementa repository.StateStore.
func (s *StateStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, redisKey(namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return b, nil
}

// Set implementa repository.StateStore.
func (s *StateStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := s.rdb.Set(ctx, redisKey(namespace, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete implementa repository.StateStore.
func (s *StateStore) Delete(ctx context.Context, namespace, key string) error {
	if err := s.rdb.Del(ctx, redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Clear borra todas las claves del namespace recorriéndolas con SCAN.
func (s *StateStore) Clear(ctx context.Context, namespace string) error {
	iter := s.rdb.Scan(ctx, 0, keyPrefix+namespace+":*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis clear %s: %w", namespace, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %s: %w", namespace, err)
	}
	if len(batch) > 0 {
		if err := s.rdb.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis clear %s: %w", namespace, err)
		}
	}
	return nil
}
