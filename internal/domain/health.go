package domain

import "context"

// HealthUsecase reports the state of the process dependencies
type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}
