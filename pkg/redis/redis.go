package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/marketloop/marketloop-backend/config"
	"github.com/marketloop/marketloop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// RevokeSessionToken marks a session token as revoked until its natural expiry.
// Revocation state lives in Redis so logout survives process restarts.
func RevokeSessionToken(ctx context.Context, token string, expiry time.Duration) error {
	logger.Debug("Revoking session token", map[string]interface{}{
		"expiry": expiry.String(),
	})

	key := fmt.Sprintf("revoked:%s", token)
	if err := client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to revoke session token", err, nil)
		return err
	}

	logger.Debug("Session token revoked", nil)
	return nil
}

// IsSessionTokenRevoked checks whether a session token has been revoked.
// When Redis was never initialized the check is skipped.
func IsSessionTokenRevoked(ctx context.Context, token string) (bool, error) {
	if client == nil {
		return false, nil
	}

	key := fmt.Sprintf("revoked:%s", token)
	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check session token revocation", err, nil)
		return false, err
	}

	return val == "revoked", nil
}
