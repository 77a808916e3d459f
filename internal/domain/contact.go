package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" example:"Jane Doe"`
	Email   string `json:"email" example:"jane@example.com"`
	Message string `json:"message" example:"Hello, I would like to discuss a project."`
}

// ContactResult describes what happened to an accepted submission
type ContactResult struct {
	// Duplicate is set when the idempotency key was already used and
	// nothing was sent this time.
	Duplicate bool
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and sends the owner
	// notification followed by the submitter acknowledgement.
	// idempotencyKey may be empty.
	SendContactMessage(ctx context.Context, req *ContactRequest, idempotencyKey string) (*ContactResult, error)
}

var (
	// ErrMissingFields is returned when name, email or message is blank.
	ErrMissingFields = errors.New("missing required fields")
	// ErrMailerNotConfigured is returned when no mail transport is available.
	ErrMailerNotConfigured = errors.New("email service is not configured")
	// ErrSubmissionInProgress is returned when another request holding the
	// same idempotency key has not finished sending yet.
	ErrSubmissionInProgress = errors.New("submission with this idempotency key is in progress")
)

// DispatchStage names the message that was being sent when dispatch failed.
type DispatchStage string

const (
	StageNotification    DispatchStage = "notification"
	StageAcknowledgement DispatchStage = "acknowledgement"
)

// DispatchError wraps a transport failure with the stage it happened in.
type DispatchError struct {
	Stage DispatchStage
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// ClaimStatus is the outcome of claiming an idempotency key.
type ClaimStatus int

const (
	// ClaimAcquired means the key was free. The caller must Complete or
	// Release it.
	ClaimAcquired ClaimStatus = iota
	// ClaimPending means another request holds the key and is still sending.
	ClaimPending
	// ClaimCompleted means the submission under this key was delivered.
	ClaimCompleted
)

// IdempotencyRepository remembers idempotency keys for a limited time
type IdempotencyRepository interface {
	// Claim marks key as pending for ttl unless it is already held, in which
	// case the status of the holder is returned.
	Claim(ctx context.Context, key string, ttl time.Duration) (ClaimStatus, error)
	// Complete marks key as delivered for ttl.
	Complete(ctx context.Context, key string, ttl time.Duration) error
	// Release forgets key so a later request may claim it again.
	Release(ctx context.Context, key string) error
	// Name identifies the backing store.
	Name() string
}
