package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const maxWaitDuration = 30 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
	Redis   *miniredis.Miniredis
}

// New - starts an in-process Redis and a client connected to it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx := testContext(t, maxWaitDuration)
	server := miniredis.RunT(t)

	client, err := connect(ctx, server.Addr())
	if err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	st := newSuite(t, client)
	st.Redis = server

	return ctx, st
}

// NewLogger - logger for tests, silent below warnings.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func testContext(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// connect - opens a client to addr; the client is closed again when the ping fails.
func connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", addr, err)
	}

	return client, nil
}

// newSuite - wraps a connected client and closes it when the test ends.
func newSuite(t *testing.T, client *redis.Client) *Suite {
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("could not close redis client: %v", err)
		}
	})

	return &Suite{
		T:       t,
		Logger:  NewLogger(),
		Storage: client,
	}
}
