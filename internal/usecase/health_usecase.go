package usecase

import (
	"context"
	"strconv"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
)

type healthUsecase struct {
	transport   email.Transport
	idempotency domain.IdempotencyRepository
}

func NewHealthUsecase(transport email.Transport, idempotency domain.IdempotencyRepository) domain.HealthUsecase {
	return &healthUsecase{
		transport:   transport,
		idempotency: idempotency,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	provider := "none"
	if u.transport != nil {
		provider = u.transport.Name()
	}
	store := "none"
	if u.idempotency != nil {
		store = u.idempotency.Name()
	}

	return map[string]string{
		"status":            "ok",
		"mail_provider":     provider,
		"mail_configured":   strconv.FormatBool(u.transport != nil),
		"idempotency_store": store,
	}
}
