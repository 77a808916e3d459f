package memory

import (
	"context"
	"sync"
	"time"

	"portfolio-backend/internal/domain"
)

type idempotencyEntry struct {
	expires time.Time
	done    bool
}

type idempotencyRepository struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	now     func() time.Time
}

// NewIdempotencyRepository keeps idempotency keys in process memory.
// Used when Redis is not configured.
func NewIdempotencyRepository() domain.IdempotencyRepository {
	return newIdempotencyRepository(time.Now)
}

func newIdempotencyRepository(now func() time.Time) *idempotencyRepository {
	return &idempotencyRepository{
		entries: make(map[string]idempotencyEntry),
		now:     now,
	}
}

func (r *idempotencyRepository) Name() string {
	return "memory"
}

func (r *idempotencyRepository) Claim(_ context.Context, key string, ttl time.Duration) (domain.ClaimStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if entry, ok := r.entries[key]; ok {
		if entry.done {
			return domain.ClaimCompleted, nil
		}
		return domain.ClaimPending, nil
	}
	r.entries[key] = idempotencyEntry{expires: now.Add(ttl)}
	return domain.ClaimAcquired, nil
}

func (r *idempotencyRepository) Complete(_ context.Context, key string, ttl time.Duration) error {
	r.mu.Lock()
	r.entries[key] = idempotencyEntry{expires: r.now().Add(ttl), done: true}
	r.mu.Unlock()
	return nil
}

func (r *idempotencyRepository) Release(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

// sweep drops expired keys; callers hold mu.
func (r *idempotencyRepository) sweep(now time.Time) {
	for k, entry := range r.entries {
		if !now.Before(entry.expires) {
			delete(r.entries, k)
		}
	}
}
