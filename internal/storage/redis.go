package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
)

// encounterKeyPrefix namespaces saved encounters in Redis.
const encounterKeyPrefix = "encounter:"

// RedisStorage implements the Storage interface using Redis for saved
// encounters and the filesystem for static resources (monsters, PCs)
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
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

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
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

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Encounter operations (Redis-backed)

// SaveEncounter stores a snapshot under the slug of its name. Saving a
// name whose slug already exists replaces that snapshot. Saved
// encounters do not expire.
func (r *RedisStorage) SaveEncounter(ctx context.Context, snap encounter.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal encounter", "name", snap.Name, "error", err)
		return fmt.Errorf("failed to marshal encounter: %w", err)
	}

	key := encounterKeyPrefix + encounter.Slug(snap.Name)
	cmd := r.client.Set(ctx, key, string(data), 0)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save encounter", "name", snap.Name, "error", err)
		return fmt.Errorf("failed to save encounter: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadEncounter(ctx context.Context, slug string) (*encounter.Snapshot, error) {
	key := encounterKeyPrefix + slug
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Encounter not found", "slug", slug)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load encounter", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to load encounter: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		r.logger.Warn("Encounter not found", "slug", slug)
		return nil, nil
	}

	var snap encounter.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		r.logger.Error("Failed to unmarshal encounter", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to unmarshal encounter: %w", err)
	}

	return &snap, nil
}

// ListEncounters returns every saved snapshot, most recently saved
// first. Entries that fail to decode are skipped and logged rather
// than failing the listing.
func (r *RedisStorage) ListEncounters(ctx context.Context) ([]encounter.Snapshot, error) {
	snapshots := []encounter.Snapshot{}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, encounterKeyPrefix+"*", 100).Result()
		if err != nil {
			r.logger.Error("Failed to scan encounter keys", "error", err)
			return nil, fmt.Errorf("failed to list encounters: %w", err)
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err != nil {
				if err == redis.Nil {
					continue // deleted between scan and get
				}
				r.logger.Error("Failed to load encounter", "key", key, "error", err)
				return nil, fmt.Errorf("failed to list encounters: %w", err)
			}

			var snap encounter.Snapshot
			if err := json.Unmarshal([]byte(data), &snap); err != nil {
				r.logger.Warn("Skipping unreadable encounter", "key", key, "error", err)
				continue
			}
			snapshots = append(snapshots, snap)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].SavedAt.After(snapshots[j].SavedAt)
	})

	return snapshots, nil
}

func (r *RedisStorage) DeleteEncounter(ctx context.Context, slug string) error {
	key := encounterKeyPrefix + slug
	cmd := r.client.Del(ctx, key)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete encounter", "slug", slug, "error", err)
		return fmt.Errorf("failed to delete encounter: %w", err)
	}
	return nil
}
