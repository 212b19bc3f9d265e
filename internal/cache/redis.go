package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/models"
)

const redisKeyPrefix = "ctx:"

// Redis stores contexts as JSON with a server-side TTL, letting several API
// instances share one cache. All failures degrade to a miss; the cache never
// surfaces an error to the aggregator.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedis wraps a connected client. A non-positive ttl falls back to
// DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Redis{client: client, ttl: ttl, logger: logger.Sugar()}
}

func (r *Redis) Get(ctx context.Context, key string) (*models.PlayerContext, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warnw("redis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var pc models.PlayerContext
	if err := json.Unmarshal(data, &pc); err != nil {
		r.logger.Warnw("redis cache entry undecodable, treating as miss", "key", key, "error", err)
		return nil, false
	}
	return &pc, true
}

func (r *Redis) Set(ctx context.Context, key string, pc *models.PlayerContext) {
	data, err := json.Marshal(pc)
	if err != nil {
		r.logger.Errorw("context not serializable", "key", key, "error", err)
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		r.logger.Warnw("redis cache write failed", "key", key, "error", err)
	}
}
