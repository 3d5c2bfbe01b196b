package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/skaldic/campaign-engine/pkg/state"
)

const campaignKeyPrefix = "campaign:"

// RedisStorage keeps campaign documents in Redis, one key per campaign.
// Documents have no TTL; campaigns outlive sessions by design.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis-backed campaign store.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return &StoreUnavailableError{Op: "ping", Err: err}
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	const maxRetries = 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return &StoreUnavailableError{Op: "connect", Err: fmt.Errorf("redis did not become available after %d attempts", maxRetries)}
}

func (r *RedisStorage) SaveCampaign(ctx context.Context, id uuid.UUID, cs *state.CampaignState) error {
	cs.LastUpdated = time.Now().UTC()

	data, err := json.Marshal(cs)
	if err != nil {
		r.logger.Error("Failed to marshal campaign", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	// A single SET replaces the whole document; Redis keeps it atomic.
	key := campaignKeyPrefix + id.String()
	if err := r.client.Set(ctx, key, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save campaign", "uuid", id, "error", err)
		return &StoreUnavailableError{Op: "save", Err: err}
	}
	return nil
}

func (r *RedisStorage) LoadCampaign(ctx context.Context, id uuid.UUID) (*state.CampaignState, error) {
	key := campaignKeyPrefix + id.String()
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			r.logger.Warn("Campaign not found", "uuid", id)
			return nil, nil
		}
		r.logger.Error("Failed to load campaign", "uuid", id, "error", err)
		return nil, &StoreUnavailableError{Op: "load", Err: err}
	}

	decoded, err := DecodeDocument([]byte(data))
	if err != nil {
		return nil, &DocumentCorruptError{Key: key, Err: err}
	}

	var cs state.CampaignState
	if err := json.Unmarshal(decoded, &cs); err != nil {
		r.logger.Error("Failed to unmarshal campaign", "uuid", id, "error", err)
		return nil, &DocumentCorruptError{Key: key, Err: err}
	}
	return &cs, nil
}

func (r *RedisStorage) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	key := campaignKeyPrefix + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete campaign", "uuid", id, "error", err)
		return &StoreUnavailableError{Op: "delete", Err: err}
	}
	return nil
}

func (r *RedisStorage) ListCampaigns(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	iter := r.client.Scan(ctx, 0, campaignKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		id, err := uuid.Parse(iter.Val()[len(campaignKeyPrefix):])
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, &StoreUnavailableError{Op: "list", Err: err}
	}
	return ids, nil
}
