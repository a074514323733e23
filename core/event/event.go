// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import (
	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/provider"
)

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// ProviderEvent is an event that concerns a specific provider.
type ProviderEvent interface {
	Event
	// Provider returns the provider the event is about
	Provider() provider.Provider
}

// baseProviderEvent provides common implementation for provider events.
type baseProviderEvent struct {
	provider provider.Provider
}

func (e *baseProviderEvent) Provider() provider.Provider {
	return e.provider
}

// WorkspaceStateChanged is published when the workspace state changes.
type WorkspaceStateChanged struct {
	OldState state.WorkspaceState
	NewState state.WorkspaceState
}

func NewWorkspaceStateChanged(oldState, newState state.WorkspaceState) *WorkspaceStateChanged {
	return &WorkspaceStateChanged{OldState: oldState, NewState: newState}
}

func (e *WorkspaceStateChanged) EventName() string {
	return "WorkspaceStateChanged"
}
