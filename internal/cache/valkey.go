package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"railbird/internal/models"
)

// statsTTL keeps stats fresh enough for a polling floor screen while
// shielding Postgres from per-refresh count queries.
const statsTTL = 5 * time.Second

type ValkeyClient struct {
	client      *redis.Client
	authHashKey string
}

func NewValkeyClient() (*ValkeyClient, error) {
	addr := os.Getenv("VALKEY_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	password := os.Getenv("VALKEY_PASSWORD")
	authHashKey := os.Getenv("VALKEY_AUTH_HASH_KEY")
	if authHashKey == "" {
		authHashKey = "players:auth"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client:      rdb,
		authHashKey: authHashKey,
	}, nil
}

func authCacheKey(email, passwordHash string) string {
	return base64.StdEncoding.EncodeToString([]byte(email + ":" + passwordHash))
}

// GetPlayerByAuth returns the cached player record for a credential pair.
func (v *ValkeyClient) GetPlayerByAuth(ctx context.Context, email, passwordHash string) (*models.Player, error) {
	raw, err := v.client.HGet(ctx, v.authHashKey, authCacheKey(email, passwordHash)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("player not found in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal([]byte(raw), &player); err != nil {
		return nil, fmt.Errorf("invalid player record in cache: %w", err)
	}

	return &player, nil
}

// SetPlayerAuth stores a verified credential pair for fast auth lookups.
func (v *ValkeyClient) SetPlayerAuth(ctx context.Context, email, passwordHash string, player *models.Player) error {
	raw, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}
	return v.client.HSet(ctx, v.authHashKey, authCacheKey(email, passwordHash), string(raw)).Err()
}

func statsKey(sessionID int64, gameType string) string {
	return fmt.Sprintf("stats:%d:%s", sessionID, gameType)
}

// GetGameStatsRaw returns the cached stats JSON for one game offering.
func (v *ValkeyClient) GetGameStatsRaw(ctx context.Context, sessionID int64, gameType string) ([]byte, error) {
	raw, err := v.client.Get(ctx, statsKey(sessionID, gameType)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("stats not cached")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return raw, nil
}

// SetGameStats caches the stats payload for one game offering.
func (v *ValkeyClient) SetGameStats(ctx context.Context, sessionID int64, gameType string, stats interface{}) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return v.client.Set(ctx, statsKey(sessionID, gameType), raw, statsTTL).Err()
}

// InvalidateGameStats drops the cached stats after a reservation write.
func (v *ValkeyClient) InvalidateGameStats(ctx context.Context, sessionID int64, gameType string) error {
	return v.client.Del(ctx, statsKey(sessionID, gameType)).Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
