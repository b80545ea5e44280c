package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const blacklistSet = "mail:blacklist"

// Init initializes the Redis connection.
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

// GetClient returns the Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection.
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// MailBlacklist answers membership checks against the fraud team's mail
// blacklist set. The set holds full addresses and bare domains.
type MailBlacklist struct {
	client *redis.Client
}

// NewMailBlacklist builds a blacklist checker over an existing client.
func NewMailBlacklist(client *redis.Client) *MailBlacklist {
	return &MailBlacklist{client: client}
}

// IsBlacklisted reports whether the address or its domain is blocked.
func (b *MailBlacklist) IsBlacklisted(ctx context.Context, mail string) (bool, error) {
	members := []string{mail}
	if at := indexOfAt(mail); at >= 0 {
		members = append(members, mail[at+1:])
	}

	for _, member := range members {
		found, err := b.client.SIsMember(ctx, blacklistSet, member).Result()
		if err != nil {
			logger.Error("Failed to check mail blacklist", err, nil)
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// Block adds an address or domain to the blacklist set.
func (b *MailBlacklist) Block(ctx context.Context, member string) error {
	return b.client.SAdd(ctx, blacklistSet, member).Err()
}

func indexOfAt(mail string) int {
	for i := len(mail) - 1; i >= 0; i-- {
		if mail[i] == '@' {
			return i
		}
	}
	return -1
}
