package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "contact:idem:"

// Values stored under an idempotency key.
const (
	statePending = "pending"
	stateDone    = "done"
)

type idempotencyRepository struct {
	client goredis.UniversalClient
}

// NewIdempotencyRepository stores idempotency keys as Redis keys with a TTL
func NewIdempotencyRepository(client goredis.UniversalClient) domain.IdempotencyRepository {
	return &idempotencyRepository{client: client}
}

func (r *idempotencyRepository) Name() string {
	return "redis"
}

func (r *idempotencyRepository) Claim(ctx context.Context, key string, ttl time.Duration) (domain.ClaimStatus, error) {
	ok, err := r.client.SetNX(ctx, idempotencyKeyPrefix+key, statePending, ttl).Result()
	if err != nil {
		return domain.ClaimPending, fmt.Errorf("claim idempotency key: %w", err)
	}
	if ok {
		return domain.ClaimAcquired, nil
	}

	state, err := r.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	switch {
	case errors.Is(err, goredis.Nil):
		// Released or expired between SETNX and GET; the caller may retry.
		return domain.ClaimPending, nil
	case err != nil:
		return domain.ClaimPending, fmt.Errorf("read idempotency key: %w", err)
	case state == stateDone:
		return domain.ClaimCompleted, nil
	default:
		return domain.ClaimPending, nil
	}
}

func (r *idempotencyRepository) Complete(ctx context.Context, key string, ttl time.Duration) error {
	if err := r.client.Set(ctx, idempotencyKeyPrefix+key, stateDone, ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (r *idempotencyRepository) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
