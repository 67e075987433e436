package model

// State represents the phase of the route request controller
type State string

const (
	// StateIdle means the controller waits for a submission
	StateIdle State = "Idle"

	// StateSubmitting means a generation request is in flight
	StateSubmitting State = "Submitting"

	// StateSuccess means the last request settled with a usable route
	StateSuccess State = "Success"

	// StateFailure means the last request settled with an error
	StateFailure State = "Failure"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsActive returns true while a request is in flight
func (s State) IsActive() bool {
	return s == StateSubmitting
}

// IsSettled returns true if the state is the outcome of a request (success or failure)
func (s State) IsSettled() bool {
	return s == StateSuccess || s == StateFailure
}
