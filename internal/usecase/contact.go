package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/email"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"
)

// ContactSettings carries the addresses and limits used by the contact usecase
type ContactSettings struct {
	OwnerEmail     string // Notification recipient
	OwnerName      string // Acknowledgement signature
	SendTimeout    time.Duration
	IdempotencyTTL time.Duration
	Now            func() time.Time
}

// ContactSettingsFromConfig derives ContactSettings from the process config
func ContactSettingsFromConfig(cfg *config.Config) ContactSettings {
	return ContactSettings{
		OwnerEmail:     cfg.ContactEmailTo,
		OwnerName:      cfg.OwnerName,
		SendTimeout:    cfg.MailSendTimeout,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Now:            time.Now,
	}
}

// pendingGrace is added to the worst case send time of a submission.
const pendingGrace = 30 * time.Second

type contactUsecase struct {
	transport   email.Transport
	idempotency domain.IdempotencyRepository
	settings    ContactSettings
}

// NewContactUsecase creates a new contact usecase. transport may be nil when
// mail is disabled; idempotency may be nil to turn deduplication off.
func NewContactUsecase(transport email.Transport, idempotency domain.IdempotencyRepository, settings ContactSettings) domain.ContactUsecase {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	return &contactUsecase{
		transport:   transport,
		idempotency: idempotency,
		settings:    settings,
	}
}

// SendContactMessage validates the contact request and sends both emails
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest, idempotencyKey string) (*domain.ContactResult, error) {
	name := strings.TrimSpace(req.Name)
	senderEmail := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if missing := validation.MissingFields(name, senderEmail, message); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFields, strings.Join(missing, ", "))
	}
	if errs := validation.ValidateContact(name, senderEmail, message); len(errs) > 0 {
		return nil, errs
	}

	if uc.transport == nil {
		return nil, domain.ErrMailerNotConfigured
	}

	notification, acknowledgement, err := uc.compose(name, senderEmail, message)
	if err != nil {
		return nil, err
	}

	claimed := false
	if idempotencyKey != "" && uc.idempotency != nil {
		status, err := uc.idempotency.Claim(ctx, idempotencyKey, uc.pendingTTL())
		switch {
		case err != nil:
			logger.Log.WarnContext(ctx, "Idempotency store unavailable, sending without deduplication",
				"store", uc.idempotency.Name(),
				"request_id", domain.RequestIDFromContext(ctx),
				"error", err)
		case status == domain.ClaimCompleted:
			logger.Log.InfoContext(ctx, "Duplicate contact submission ignored",
				"request_id", domain.RequestIDFromContext(ctx))
			return &domain.ContactResult{Duplicate: true}, nil
		case status == domain.ClaimPending:
			logger.Log.InfoContext(ctx, "Contact submission already in progress",
				"request_id", domain.RequestIDFromContext(ctx))
			return nil, domain.ErrSubmissionInProgress
		default:
			claimed = true
		}
	}

	// The key outlives the request, so store updates ignore cancellation.
	storeCtx := context.WithoutCancel(ctx)
	if err := uc.dispatch(ctx, notification, acknowledgement); err != nil {
		if claimed {
			// Let the client retry with the same key.
			if relErr := uc.idempotency.Release(storeCtx, idempotencyKey); relErr != nil {
				logger.Log.WarnContext(ctx, "Failed to release idempotency key", "error", relErr)
			}
		}
		return nil, err
	}

	if claimed {
		if err := uc.idempotency.Complete(storeCtx, idempotencyKey, uc.settings.IdempotencyTTL); err != nil {
			logger.Log.WarnContext(ctx, "Failed to complete idempotency key", "error", err)
		}
	}

	return &domain.ContactResult{}, nil
}

// pendingTTL bounds how long a claimed key blocks retries when the holder
// never completes or releases it.
func (uc *contactUsecase) pendingTTL() time.Duration {
	if uc.settings.SendTimeout <= 0 {
		return uc.settings.IdempotencyTTL
	}
	ttl := 2*uc.settings.SendTimeout + pendingGrace
	if uc.settings.IdempotencyTTL > 0 && ttl > uc.settings.IdempotencyTTL {
		return uc.settings.IdempotencyTTL
	}
	return ttl
}

// compose renders the owner notification and the submitter acknowledgement
func (uc *contactUsecase) compose(name, senderEmail, message string) (*email.Message, *email.Message, error) {
	notificationHTML, err := email.RenderNotification(email.NotificationData{
		SenderName:  name,
		SenderEmail: senderEmail,
		Message:     message,
		SentAt:      uc.settings.Now(),
	})
	if err != nil {
		return nil, nil, err
	}

	acknowledgementHTML, err := email.RenderAcknowledgement(email.AcknowledgementData{
		SenderName: name,
		Message:    message,
		OwnerName:  uc.settings.OwnerName,
	})
	if err != nil {
		return nil, nil, err
	}

	notification := &email.Message{
		To:      []string{uc.settings.OwnerEmail},
		ReplyTo: senderEmail,
		Subject: email.NotificationSubject(name),
		HTML:    notificationHTML,
	}
	acknowledgement := &email.Message{
		To:      []string{senderEmail},
		Subject: email.AcknowledgementSubject,
		HTML:    acknowledgementHTML,
	}
	return notification, acknowledgement, nil
}

// dispatch sends the notification, then the acknowledgement. The
// acknowledgement is skipped when the notification fails.
func (uc *contactUsecase) dispatch(ctx context.Context, notification, acknowledgement *email.Message) error {
	if err := uc.send(ctx, domain.StageNotification, notification); err != nil {
		return err
	}
	return uc.send(ctx, domain.StageAcknowledgement, acknowledgement)
}

func (uc *contactUsecase) send(ctx context.Context, stage domain.DispatchStage, msg *email.Message) error {
	sendCtx := ctx
	if uc.settings.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, uc.settings.SendTimeout)
		defer cancel()
	}

	if err := uc.transport.Send(sendCtx, msg); err != nil {
		logger.Log.ErrorContext(ctx, "Contact email dispatch failed",
			"stage", stage,
			"provider", uc.transport.Name(),
			"to", msg.To,
			"request_id", domain.RequestIDFromContext(ctx),
			"error", err)
		return &domain.DispatchError{Stage: stage, Err: err}
	}

	logger.Log.InfoContext(ctx, "Contact email sent",
		"stage", stage,
		"provider", uc.transport.Name(),
		"request_id", domain.RequestIDFromContext(ctx))
	return nil
}
