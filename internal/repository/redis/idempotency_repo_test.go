package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepositoryUnreachable(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewIdempotencyRepository(client)
	assert.Equal(t, "redis", repo.Name())

	_, err := repo.Claim(context.Background(), "abc", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claim idempotency key")

	err = repo.Complete(context.Background(), "abc", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "complete idempotency key")

	err = repo.Release(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release idempotency key")
}
