package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache is a Cache backed by a Valkey server, for deployments running
// more than one API instance.
type ValkeyCache struct {
	client valkey.Client
}

// NewValkeyCache connects to Valkey and verifies the connection.
func NewValkeyCache(addr string) (*ValkeyCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pingCmd := client.B().Ping().Build()
	if err := client.Do(ctx, pingCmd).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Valkey: %w", err)
	}

	slog.Info("Initialized Valkey cache", "address", addr)
	return &ValkeyCache{client: client}, nil
}

func (v *ValkeyCache) Get(ctx context.Context, key string) (string, bool) {
	cmd := v.client.B().Get().Key(key).Build()
	value, err := v.client.Do(ctx, cmd).ToString()
	if err != nil {
		// Missing key and transport errors are both cache misses.
		return "", false
	}
	return value, true
}

func (v *ValkeyCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	cmd := v.client.B().Set().Key(key).Value(value).Ex(ttl).Build()
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

func (v *ValkeyCache) Close() {
	v.client.Close()
}
