package concierge

import (
	"context"
	"encoding/json"
	"time"

	"growthquest/models"

	"github.com/redis/go-redis/v9"
)

const conciergeContextPrefix = "concierge:ctx:"

// ContextStore keeps per-user conversation context between messages.
type ContextStore interface {
	Get(ctx context.Context, userID string) (*models.ConciergeContext, error)
	Set(ctx context.Context, userID string, cc *models.ConciergeContext) error
	Clear(ctx context.Context, userID string) error
}

// RedisContextStore keeps per-user conversation context between messages,
// expiring idle conversations after the TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, userID string) (*models.ConciergeContext, error) {
	key := conciergeContextPrefix + userID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ConciergeContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cc models.ConciergeContext
	if err := json.Unmarshal([]byte(data), &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, userID string, cc *models.ConciergeContext) error {
	key := conciergeContextPrefix + userID
	b, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, userID string) error {
	key := conciergeContextPrefix + userID
	return s.client.Del(ctx, key).Err()
}
