package undo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps undo slots in Redis, letting slots outlive a process
// restart and be shared across replicas.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, prefix: "undo:"}, nil
}

func (s *RedisStore) key(ownerID int64) string {
	return fmt.Sprintf("%s%d", s.prefix, ownerID)
}

func (s *RedisStore) Put(ctx context.Context, ownerID int64, action Action) error {
	data, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("marshal undo action: %w", err)
	}
	if err := s.client.Set(ctx, s.key(ownerID), data, 0).Err(); err != nil {
		return fmt.Errorf("save undo action: %w", err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, ownerID int64) (*Action, error) {
	data, err := s.client.GetDel(ctx, s.key(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("take undo action: %w", err)
	}

	var action Action
	if err := json.Unmarshal([]byte(data), &action); err != nil {
		return nil, fmt.Errorf("unmarshal undo action: %w", err)
	}
	return &action, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
