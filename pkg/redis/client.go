package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init connects the package client to the Redis named by url and verifies the
// connection with a ping
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return err
	}

	if password != "" {
		opts.Password = password
	}

	client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.Ping(ctx).Err()
}

// SetClient swaps the package client, letting tests point it at miniredis
func SetClient(c *redis.Client) {
	client = c
}

// GetClient exposes the package client
func GetClient() *redis.Client {
	return client
}

// Set writes key with a TTL
func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return client.Set(ctx, key, value, expiration).Err()
}

// Get reads key, returning redis.Nil wrapped as an error when absent
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del drops key
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX writes key only when it is absent, reporting whether the write won
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, expiration).Result()
}
