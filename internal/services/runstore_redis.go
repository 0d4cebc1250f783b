package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const runKeyPrefix = "run:"

// RedisRunStore keeps runs in redis so replicas can share them. Expiry is
// redis-side via key TTL.
type RedisRunStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRunStore(client *redis.Client, ttl time.Duration) *RedisRunStore {
	return &RedisRunStore{client: client, ttl: ttl}
}

func runKey(runID string) string {
	return runKeyPrefix + runID
}

func (s *RedisRunStore) Save(ctx context.Context, run *StoredRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	if err := s.client.Set(ctx, runKey(run.RunID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}
	return nil
}

func (s *RedisRunStore) Get(ctx context.Context, runID string) (*StoredRun, error) {
	data, err := s.client.Get(ctx, runKey(runID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to read run: %w", err)
	}
	var run StoredRun
	if err := json.Unmarshal([]byte(data), &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}

func (s *RedisRunStore) Delete(ctx context.Context, runID string) error {
	if err := s.client.Del(ctx, runKey(runID)).Err(); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

func (s *RedisRunStore) Close() error {
	return s.client.Close()
}
