// Package contactform drives a contact form submission: local validation,
// an optional confirmation step, a single POST to the mail relay and the
// resulting success or failure state.
package contactform

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio-backend/pkg/validation"

	"github.com/google/uuid"
)

// Messages placed in the submit slot of Errors.
const (
	MessageSendFailed   = "Failed to send message. Please try again later."
	MessageNetworkError = "Network error. Please try again."
)

var (
	// ErrBusy is returned by Submit while a submission is awaiting
	// confirmation or in flight.
	ErrBusy = errors.New("contactform: submission already in progress")
	// ErrNotAwaitingConfirmation is returned by Confirm outside the
	// confirmation step.
	ErrNotAwaitingConfirmation = errors.New("contactform: no submission awaiting confirmation")
	// ErrUnknownField is returned by UpdateField for fields other than
	// name, email and message.
	ErrUnknownField = errors.New("contactform: unknown field")
)

// Submission is the payload sent to the relay.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Snapshot is a consistent copy of the form state.
type Snapshot struct {
	State      State
	Submission Submission
	Errors     validation.Errors
}

// Form holds one contact form instance. It is safe for concurrent use.
type Form struct {
	endpoint       string
	client         *http.Client
	confirm        bool
	successDisplay time.Duration
	timeout        time.Duration
	onChange       func(Snapshot)

	mu             sync.Mutex
	state          State
	submission     Submission
	errors         validation.Errors
	idempotencyKey string
	resetTimer     *time.Timer
	generation     uint64
}

// New creates a Form posting to endpoint, e.g.
// "https://example.com/api/send-email".
func New(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint:       endpoint,
		client:         http.DefaultClient,
		confirm:        true,
		successDisplay: defaultSuccessDisplay,
		timeout:        defaultTimeout,
		errors:         validation.Errors{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns a copy of the current state.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// UpdateField stores value and clears that field's error. Other fields are
// not re-validated.
func (f *Form) UpdateField(field, value string) error {
	f.mu.Lock()
	switch field {
	case validation.FieldName:
		f.submission.Name = value
	case validation.FieldEmail:
		f.submission.Email = value
	case validation.FieldMessage:
		f.submission.Message = value
	default:
		f.mu.Unlock()
		return ErrUnknownField
	}
	delete(f.errors, field)
	// New content is a new submission as far as deduplication goes.
	f.idempotencyKey = ""
	if f.state == StateFailed {
		f.state = StateIdle
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
	return nil
}

// Validate checks the current fields without changing any state.
func (f *Form) Validate() validation.Errors {
	f.mu.Lock()
	sub := f.submission
	f.mu.Unlock()
	return Validate(sub)
}

// Validate applies the contact rules to sub. The result is empty when sub
// is valid.
func Validate(sub Submission) validation.Errors {
	return validation.ValidateContact(sub.Name, sub.Email, sub.Message)
}

// Submit validates the fields. Invalid input sets field errors and returns
// StateInvalid without any network call. Valid input moves to
// StateAwaitingConfirmation, or sends immediately when confirmation is off.
func (f *Form) Submit(ctx context.Context) (State, error) {
	f.mu.Lock()
	if f.state.Busy() {
		f.mu.Unlock()
		return f.State(), ErrBusy
	}
	f.stopResetTimerLocked()
	delete(f.errors, validation.FieldSubmit)
	f.state = StateValidating
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	f.mu.Lock()
	errs := Validate(f.submission)
	if len(errs) > 0 {
		f.errors = errs
		f.state = StateInvalid
		invalid := f.snapshotLocked()
		f.state = StateIdle
		idle := f.snapshotLocked()
		f.mu.Unlock()

		f.notify(invalid)
		f.notify(idle)
		return StateInvalid, nil
	}

	if f.confirm {
		f.state = StateAwaitingConfirmation
		snap = f.snapshotLocked()
		f.mu.Unlock()
		f.notify(snap)
		return StateAwaitingConfirmation, nil
	}

	return f.sendLocked(ctx)
}

// Confirm sends the submission waiting in StateAwaitingConfirmation.
func (f *Form) Confirm(ctx context.Context) (State, error) {
	f.mu.Lock()
	if f.state != StateAwaitingConfirmation {
		state := f.state
		f.mu.Unlock()
		return state, ErrNotAwaitingConfirmation
	}
	return f.sendLocked(ctx)
}

// Cancel leaves the confirmation step without sending. It reports whether
// there was anything to cancel.
func (f *Form) Cancel() bool {
	f.mu.Lock()
	if f.state != StateAwaitingConfirmation {
		f.mu.Unlock()
		return false
	}
	f.state = StateIdle
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
	return true
}

// Dismiss hides the success state before the display delay runs out.
func (f *Form) Dismiss() bool {
	f.mu.Lock()
	if f.state != StateSucceeded {
		f.mu.Unlock()
		return false
	}
	f.stopResetTimerLocked()
	f.state = StateIdle
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
	return true
}

// sendLocked is entered with mu held and releases it before the request.
func (f *Form) sendLocked(ctx context.Context) (State, error) {
	f.state = StateSending
	if f.idempotencyKey == "" {
		f.idempotencyKey = uuid.NewString()
	}
	sub := Submission{
		Name:    strings.TrimSpace(f.submission.Name),
		Email:   strings.TrimSpace(f.submission.Email),
		Message: strings.TrimSpace(f.submission.Message),
	}
	key := f.idempotencyKey
	snap := f.snapshotLocked()
	f.mu.Unlock()
	f.notify(snap)

	res := f.post(ctx, sub, key)

	f.mu.Lock()
	if res.ok {
		f.submission = Submission{}
		f.errors = validation.Errors{}
		f.idempotencyKey = ""
		f.state = StateSucceeded
		f.scheduleResetLocked()
	} else {
		for field, msg := range res.fields {
			f.errors[field] = msg
		}
		f.errors[validation.FieldSubmit] = res.message
		f.state = StateFailed
	}
	state := f.state
	snap = f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
	return state, nil
}

func (f *Form) scheduleResetLocked() {
	f.generation++
	if f.successDisplay <= 0 {
		return
	}
	gen := f.generation
	f.resetTimer = time.AfterFunc(f.successDisplay, func() {
		f.mu.Lock()
		if f.generation != gen || f.state != StateSucceeded {
			f.mu.Unlock()
			return
		}
		f.state = StateIdle
		f.resetTimer = nil
		snap := f.snapshotLocked()
		f.mu.Unlock()
		f.notify(snap)
	})
}

func (f *Form) stopResetTimerLocked() {
	f.generation++
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{
		State:      f.state,
		Submission: f.submission,
		Errors:     f.errors.Clone(),
	}
}

func (f *Form) notify(snap Snapshot) {
	if f.onChange != nil {
		f.onChange(snap)
	}
}
