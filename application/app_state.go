package application

import (
	"sync"

	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/provider"
)

// AppState is the single owner of the workspace's mutable state:
// the current image, the selected provider and the per-provider keys.
type AppState struct {
	mu        sync.RWMutex
	workspace state.WorkspaceState
	image     *analysis.ImageMetadata
	provider  provider.Provider
	keyring   *credential.Keyring
}

// NewAppState creates an empty workspace using the given keyring.
func NewAppState(keyring *credential.Keyring, selected provider.Provider) *AppState {
	if keyring == nil {
		keyring = credential.NewKeyring(nil)
	}
	if !selected.IsValid() {
		selected = provider.Primary
	}
	return &AppState{
		workspace: state.StateEmpty,
		provider:  selected,
		keyring:   keyring,
	}
}

// Snapshot is a consistent, read-only copy of AppState.
type Snapshot struct {
	Workspace state.WorkspaceState
	Image     *analysis.ImageMetadata
	Provider  provider.Provider
	Status    map[provider.Provider]credential.Status
}

// HasImage returns true if an image is loaded.
func (s Snapshot) HasImage() bool {
	return s.Image != nil
}

// Snapshot returns a copy of the current state.
func (a *AppState) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snap := Snapshot{
		Workspace: a.workspace,
		Provider:  a.provider,
		Status:    make(map[provider.Provider]credential.Status, len(provider.All)),
	}
	if a.image != nil {
		img := *a.image
		snap.Image = &img
	}
	for _, p := range provider.All {
		snap.Status[p] = a.keyring.Status(p)
	}
	return snap
}

// Workspace returns the current workspace state.
func (a *AppState) Workspace() state.WorkspaceState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.workspace
}

// Provider returns the selected provider.
func (a *AppState) Provider() provider.Provider {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.provider
}

// Keyring returns the credential keyring.
func (a *AppState) Keyring() *credential.Keyring {
	return a.keyring
}

// transition moves the workspace to target, or returns a *state.TransitionError.
// Callers must hold a.mu.
func (a *AppState) transition(target state.WorkspaceState, reason string) (state.WorkspaceState, error) {
	from := a.workspace
	if !from.CanTransitionTo(target) {
		return from, state.NewTransitionError(from, target, reason)
	}
	a.workspace = target
	return from, nil
}
