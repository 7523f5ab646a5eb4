package testutil

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for xredis.Client.
type MockRedisClient struct {
	mutex  sync.Mutex
	values map[string]string
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.values[key]
	return ok, nil
}

func (c *MockRedisClient) Get(ctx context.Context, key string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, ok := c.values[key]
	if !ok {
		return "", redis.Nil
	}

	return value, nil
}

func (c *MockRedisClient) Set(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.values == nil {
		c.values = map[string]string{}
	}

	c.values[key] = value
	return nil
}
