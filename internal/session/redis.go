package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/AyushmanGupta21/lung-cancer-classification/internal/diagnosis"
)

// Dial connects to redis and verifies the connection before the
// dashboard starts serving.
func Dial(ctx context.Context, addr, password string, db int) (*redisv9.Client, error) {
	client := redisv9.NewClient(&redisv9.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}
	return client, nil
}

type redisStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

// NewRedisStore returns a store that survives dashboard restarts. The
// TTL keeps entries ephemeral; expired sessions simply start over.
func NewRedisStore(client *redisv9.Client, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Save(ctx context.Context, sessionID string, result *diagnosis.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal session result failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session result failed: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*diagnosis.Result, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session result failed: %w", err)
	}

	var result diagnosis.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false, fmt.Errorf("unmarshal session result failed: %w", err)
	}
	return &result, true, nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete session result failed: %w", err)
	}
	return nil
}

func (s *redisStore) key(sessionID string) string {
	return fmt.Sprintf("dashboard:result:%s", sessionID)
}
