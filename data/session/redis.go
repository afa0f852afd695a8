package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"zlib_opds_proxy/internal/model"
)

// LoadFromRedis reads the same JSON cookie document the login step writes,
// but from a shared redis key instead of the local filesystem. Useful when
// the browser automation runs on another host.
func LoadFromRedis(ctx context.Context, rdb *redis.Client, key string) (*Store, error) {
	op := "session.LoadFromRedis"

	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			slog.Warn("cookie key not found in redis, starting with empty session", slog.String("op", op), slog.String("key", key))
			return NewStore(nil), nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var creds []model.SessionCredential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("unmarshal cookies from redis: %w", err)
	}

	slog.Info("loaded session credentials", slog.String("op", op), slog.String("key", key), slog.Int("count", len(creds)))

	return NewStore(creds), nil
}
