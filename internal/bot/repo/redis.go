package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JIoffe/LearnAI-Bootcamp/internal/bot/model"
	errx "github.com/JIoffe/LearnAI-Bootcamp/internal/core/error"
	logx "github.com/JIoffe/LearnAI-Bootcamp/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStateRepository stores one JSON snapshot per conversation with an
// idle TTL. Expiry simply makes the conversation look fresh again.
type RedisStateRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisStateRepository(rdb redis.Cmdable, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisStateRepository) stateKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:state", conversationID)
}

func (r *RedisStateRepository) Load(ctx context.Context, conversationID string) (*model.Snapshot, error) {
	key := r.stateKey(conversationID)

	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.NewSnapshot(), nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load conversation snapshot from redis")
		return nil, errx.WrapRedis(err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		// Corrupt state is treated as a fresh conversation, not an error.
		logx.Warn().Err(err).Str("key", key).Msg("discarding undecodable conversation snapshot")
		return model.NewSnapshot(), nil
	}
	return &snap, nil
}

func (r *RedisStateRepository) Save(ctx context.Context, conversationID string, snap *model.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		logx.Error().Err(err).Str("conversationID", conversationID).Msg("failed to marshal conversation snapshot")
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := r.stateKey(conversationID)
	if err := r.rdb.Set(ctx, key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to store conversation snapshot in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisStateRepository) Clear(ctx context.Context, conversationID string) error {
	key := r.stateKey(conversationID)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete conversation snapshot from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.StateRepository = (*RedisStateRepository)(nil)
