package contactform

import (
	"net/http"
	"time"
)

const (
	defaultSuccessDisplay = 4 * time.Second
	// Longer than the relay's two sends at their default 20s limit.
	defaultTimeout        = 45 * time.Second
)

// Option configures a Form.
type Option func(*Form)

// WithHTTPClient sets the client used for the submission request.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		if c != nil {
			f.client = c
		}
	}
}

// WithConfirmation toggles the explicit confirmation step. It is on by
// default: Submit stops in StateAwaitingConfirmation and Confirm sends.
func WithConfirmation(enabled bool) Option {
	return func(f *Form) {
		f.confirm = enabled
	}
}

// WithSuccessDisplay sets how long StateSucceeded lasts before the form
// reverts to StateIdle on its own. Zero keeps it until Dismiss.
func WithSuccessDisplay(d time.Duration) Option {
	return func(f *Form) {
		f.successDisplay = d
	}
}

// WithTimeout bounds a single submission request.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) {
		f.timeout = d
	}
}

// WithOnChange registers a callback invoked after every state or error
// change. It runs outside the form lock and may call back into the Form.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Form) {
		f.onChange = fn
	}
}
