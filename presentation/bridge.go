// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"photo-analyzer-go/application"
	"photo-analyzer-go/core/command"
	"photo-analyzer-go/core/event"
	"photo-analyzer-go/core/eventbus"
	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
)

// UIEventBridge bridges UI actions to the coordinator and routes events back to UI.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
// Callbacks run on the event bus goroutine; widgets must be touched via fyne.Do.
type UICallbacks struct {
	// Workspace
	OnWorkspaceStateChanged func(oldState, newState state.WorkspaceState)
	OnImageLoaded           func(meta *analysis.ImageMetadata)
	OnImageLoadFailed       func(path string, err error)
	OnImageCleared          func()
	OnRecentImagesChanged   func(images []*library.RecentImage)

	// Provider and credentials
	OnProviderSelected   func(p provider.Provider, status credential.Status)
	OnCredentialUpdated  func(p provider.Provider, status credential.Status)
	OnCredentialRejected func(p provider.Provider, err error)

	// Analysis
	OnAnalysisStarted   func(p provider.Provider, requestID string)
	OnAnalysisCompleted func(p provider.Provider, text string, fallback bool, remoteErr error)
	OnAnalysisFailed    func(p provider.Provider, text string, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// LoadImage makes the file at path the current image.
func (b *UIEventBridge) LoadImage(path string) error {
	return b.coordinator.Dispatch(&command.LoadImage{Path: path})
}

// ClearImage discards the current image.
func (b *UIEventBridge) ClearImage() error {
	return b.coordinator.Dispatch(&command.ClearImage{})
}

// SelectProvider switches the active provider.
func (b *UIEventBridge) SelectProvider(p provider.Provider) error {
	return b.coordinator.Dispatch(command.NewSelectProvider(p))
}

// SetCredential submits a key for a provider. Empty input restores the default.
func (b *UIEventBridge) SetCredential(p provider.Provider, input string) error {
	return b.coordinator.Dispatch(command.NewSetCredential(p, input))
}

// Analyze starts an analysis in the background and returns immediately.
// The outcome arrives through OnAnalysisCompleted or OnAnalysisFailed.
// Errors that prevent the request from starting are passed to onReject.
func (b *UIEventBridge) Analyze(onReject func(error)) {
	go func() {
		if err := b.coordinator.Dispatch(&command.AnalyzeImage{}); err != nil {
			b.logger.Warn("Analysis not started", "error", err)
			if onReject != nil {
				onReject(err)
			}
		}
	}()
}

// ClearRecent empties the recent images list.
func (b *UIEventBridge) ClearRecent() error {
	return b.coordinator.Dispatch(&command.ClearRecent{})
}

// Query methods

// RecentImages returns the recent images, newest first.
func (b *UIEventBridge) RecentImages() []*library.RecentImage {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	images, err := b.coordinator.RecentImages(ctx)
	if err != nil {
		b.logger.Error("Failed to list recent images", "error", err)
		return nil
	}
	return images
}

// State returns a snapshot of the workspace.
func (b *UIEventBridge) State() application.Snapshot {
	return b.coordinator.State()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.WorkspaceStateChanged:
		if callbacks.OnWorkspaceStateChanged != nil {
			callbacks.OnWorkspaceStateChanged(evt.OldState, evt.NewState)
		}

	case *event.ImageLoaded:
		if callbacks.OnImageLoaded != nil {
			callbacks.OnImageLoaded(evt.Image)
		}

	case *event.ImageLoadFailed:
		if callbacks.OnImageLoadFailed != nil {
			callbacks.OnImageLoadFailed(evt.Path, evt.Error)
		}

	case *event.ImageCleared:
		if callbacks.OnImageCleared != nil {
			callbacks.OnImageCleared()
		}

	case *event.RecentImagesChanged:
		if callbacks.OnRecentImagesChanged != nil {
			callbacks.OnRecentImagesChanged(evt.Images)
		}

	case *event.ProviderSelected:
		if callbacks.OnProviderSelected != nil {
			callbacks.OnProviderSelected(evt.Provider(), evt.Status)
		}

	case *event.CredentialUpdated:
		if callbacks.OnCredentialUpdated != nil {
			callbacks.OnCredentialUpdated(evt.Provider(), evt.Status)
		}

	case *event.CredentialRejected:
		if callbacks.OnCredentialRejected != nil {
			callbacks.OnCredentialRejected(evt.Provider(), evt.Error)
		}

	case *event.AnalysisStarted:
		if callbacks.OnAnalysisStarted != nil {
			callbacks.OnAnalysisStarted(evt.Provider(), evt.RequestID)
		}

	case *event.AnalysisCompleted:
		if callbacks.OnAnalysisCompleted != nil {
			callbacks.OnAnalysisCompleted(evt.Provider(), evt.Text, evt.UsedFallback(), evt.RemoteError)
		}

	case *event.AnalysisFailed:
		if callbacks.OnAnalysisFailed != nil {
			callbacks.OnAnalysisFailed(evt.Provider(), evt.Text, evt.Error)
		}

	default:
		b.logger.Debug("Unhandled event", "event", e.EventName())
	}
}
