package loop

import "fmt"

// PhaseError wraps an error with the frame phase it occurred in, so a
// failing frame can be diagnosed without a stack trace through the
// render loop's internals. The loop reports "dispatch" for routing and
// handler errors and for any panic recovered during a frame, and
// "render" for a failed write to the sink.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("loop: %s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
