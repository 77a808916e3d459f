package contactform

// State is the position of a Form in its submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateAwaitingConfirmation
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Busy reports whether the submit control is disabled in this state.
func (s State) Busy() bool {
	return s == StateValidating || s == StateSending || s == StateAwaitingConfirmation
}
