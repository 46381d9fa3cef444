package redis

import (
	"context"
	"fmt"
	"parcels/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

func CreateClientAndPing(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
