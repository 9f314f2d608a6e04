//go:build integration

package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL     = 120
	containerMaxWait = 120 * time.Second

	redisImage = "redis"
	redisTag   = "alpine"
	redisPort  = "6379/tcp"
)

// NewDocker - same as New, but against a Redis container. Built only with the integration tag.
func NewDocker(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx := testContext(t, containerMaxWait)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = containerMaxWait

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("could not purge redis container: %v", err)
		}
	})

	// hard kill in case cleanup never runs
	_ = resource.Expire(containerTTL)

	var client *redis.Client
	err = pool.Retry(func() error {
		var connErr error
		client, connErr = connect(ctx, resource.GetHostPort(redisPort))
		return connErr
	})
	if err != nil {
		t.Fatalf("redis container never became ready: %v", err)
	}

	return ctx, newSuite(t, client)
}
