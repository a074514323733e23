// Package state defines the workspace state machine.
package state

import "fmt"

// WorkspaceState represents what the workspace currently holds.
type WorkspaceState int

const (
	// StateEmpty means no image is loaded.
	StateEmpty WorkspaceState = iota
	// StateImageLoaded means an image is loaded and idle.
	StateImageLoaded
	// StateAnalyzing means an analysis of the loaded image is in flight.
	StateAnalyzing
)

// String returns the string representation of the state.
func (s WorkspaceState) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateImageLoaded:
		return "ImageLoaded"
	case StateAnalyzing:
		return "Analyzing"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the transitions commands may request.
// ImageLoaded -> ImageLoaded replaces the current image. Analyzing has no
// outgoing edges: only the running analysis returns the workspace to
// ImageLoaded when it finishes.
var validTransitions = map[WorkspaceState][]WorkspaceState{
	StateEmpty:       {StateImageLoaded},
	StateImageLoaded: {StateImageLoaded, StateAnalyzing, StateEmpty},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s WorkspaceState) CanTransitionTo(target WorkspaceState) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// HasImage returns true if an image is loaded, whether or not it is being analyzed.
func (s WorkspaceState) HasImage() bool {
	return s == StateImageLoaded || s == StateAnalyzing
}

// CanAnalyze returns true if an analysis can be started in this state.
// Only one analysis runs at a time.
func (s WorkspaceState) CanAnalyze() bool {
	return s == StateImageLoaded
}

// IsBusy returns true while an analysis is in flight.
func (s WorkspaceState) IsBusy() bool {
	return s == StateAnalyzing
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   WorkspaceState
	To     WorkspaceState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to WorkspaceState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
