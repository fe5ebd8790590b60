package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

// RedisAddrEnv points integration tests at an already running Redis instead
// of starting a container. The selected database is flushed on cleanup.
const RedisAddrEnv = "DEADLINE_TEST_REDIS_ADDR"

func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	if addr := os.Getenv(RedisAddrEnv); addr != "" {
		return connectExisting(ctx, t, addr)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}

func connectExisting(ctx context.Context, t *testing.T, addr string) (*redis.Client, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   15,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s unreachable: %v", addr, err)
	}

	cleanup := func() {
		if err := client.FlushDB(ctx).Err(); err != nil {
			t.Logf("failed to flush redis: %v", err)
		}
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
	}

	return client, cleanup
}
