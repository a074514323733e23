package presentation

import (
	"errors"
	"testing"
	"time"

	"photo-analyzer-go/application"
	"photo-analyzer-go/core/event"
	"photo-analyzer-go/core/eventbus"
	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
)

func TestUICallbacks_Nil(t *testing.T) {
	callbacks := &UICallbacks{}

	if callbacks.OnImageLoaded != nil {
		t.Error("OnImageLoaded should be nil by default")
	}
	if callbacks.OnAnalysisCompleted != nil {
		t.Error("OnAnalysisCompleted should be nil by default")
	}
}

func TestBridgeConfig(t *testing.T) {
	cfg := &BridgeConfig{}

	if cfg.Coordinator != nil {
		t.Error("Coordinator should be nil by default")
	}
	if cfg.EventBus != nil {
		t.Error("EventBus should be nil by default")
	}
	if cfg.Logger != nil {
		t.Error("Logger should be nil by default")
	}
}

func TestUIEventBridge_HandleEvent_NilCallbacks(t *testing.T) {
	b := NewUIEventBridge(&BridgeConfig{})

	// Must not panic with no callbacks set.
	b.handleEvent(&event.ImageCleared{})
	b.SetCallbacks(nil)
	b.handleEvent(&event.ImageCleared{})
}

func TestUIEventBridge_HandleEvent_Routing(t *testing.T) {
	b := NewUIEventBridge(&BridgeConfig{})
	called := make(map[string]int)

	var gotStatus credential.Status
	var gotFallback bool
	var gotRemoteErr error

	b.SetCallbacks(&UICallbacks{
		OnWorkspaceStateChanged: func(oldState, newState state.WorkspaceState) { called["state"]++ },
		OnImageLoaded:           func(meta *analysis.ImageMetadata) { called["loaded"]++ },
		OnImageLoadFailed:       func(path string, err error) { called["loadFailed"]++ },
		OnImageCleared:          func() { called["cleared"]++ },
		OnRecentImagesChanged:   func(images []*library.RecentImage) { called["recent"]++ },
		OnProviderSelected: func(p provider.Provider, status credential.Status) {
			called["provider"]++
			gotStatus = status
		},
		OnCredentialUpdated:  func(p provider.Provider, status credential.Status) { called["credential"]++ },
		OnCredentialRejected: func(p provider.Provider, err error) { called["rejected"]++ },
		OnAnalysisStarted:    func(p provider.Provider, requestID string) { called["started"]++ },
		OnAnalysisCompleted: func(p provider.Provider, text string, fallback bool, remoteErr error) {
			called["completed"]++
			gotFallback = fallback
			gotRemoteErr = remoteErr
		},
		OnAnalysisFailed: func(p provider.Provider, text string, err error) { called["failed"]++ },
	})

	quota := errors.New("quota")
	events := []event.Event{
		event.NewWorkspaceStateChanged(state.StateEmpty, state.StateImageLoaded),
		event.NewImageLoaded(&analysis.ImageMetadata{Path: "/a.png"}),
		event.NewImageLoadFailed("/b.png", errors.New("missing")),
		&event.ImageCleared{},
		event.NewRecentImagesChanged(nil),
		event.NewProviderSelected(provider.Secondary, credential.UsingDefault),
		event.NewCredentialUpdated(provider.Primary, credential.CustomKeySet),
		event.NewCredentialRejected(provider.Primary, credential.ErrInvalidCredentialFormat),
		event.NewAnalysisStarted(provider.Primary, "r1", "/a.png"),
		event.NewAnalysisCompleted(provider.Primary, "r1", analysis.NewResult("basic", analysis.SourceFallback), "framed", quota),
		event.NewAnalysisFailed(provider.Primary, "r1", errors.New("broken"), "Analysis Failed"),
	}
	for _, e := range events {
		b.handleEvent(e)
	}

	for _, name := range []string{
		"state", "loaded", "loadFailed", "cleared", "recent", "provider",
		"credential", "rejected", "started", "completed", "failed",
	} {
		if called[name] != 1 {
			t.Errorf("callback %s called %d times, want 1", name, called[name])
		}
	}
	if gotStatus != credential.UsingDefault {
		t.Errorf("ProviderSelected status = %v, want UsingDefault", gotStatus)
	}
	if !gotFallback {
		t.Error("AnalysisCompleted fallback = false, want true")
	}
	if !errors.Is(gotRemoteErr, quota) {
		t.Errorf("AnalysisCompleted remoteErr = %v, want %v", gotRemoteErr, quota)
	}
}

func TestUIEventBridge_LoadImageDeliversEvents(t *testing.T) {
	bus := eventbus.New(10, nil)
	defer bus.Close()

	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		EventBus: bus,
		Inspector: analysis.InspectorFunc(func(path string) (*analysis.ImageMetadata, error) {
			return &analysis.ImageMetadata{Path: path, Width: 4, Height: 3, Format: "PNG", ColorMode: "RGB"}, nil
		}),
	})
	defer coordinator.Stop()

	b := NewUIEventBridge(&BridgeConfig{Coordinator: coordinator, EventBus: bus})
	defer b.Close()

	loaded := make(chan *analysis.ImageMetadata, 1)
	b.SetCallbacks(&UICallbacks{
		OnImageLoaded: func(meta *analysis.ImageMetadata) { loaded <- meta },
	})

	if err := b.LoadImage("/photos/cat.png"); err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}

	select {
	case meta := <-loaded:
		if meta.Path != "/photos/cat.png" {
			t.Errorf("Path = %v, want /photos/cat.png", meta.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OnImageLoaded not called")
	}

	if got := b.State().Workspace; got != state.StateImageLoaded {
		t.Errorf("Workspace = %v, want %v", got, state.StateImageLoaded)
	}
}

func TestUIEventBridge_AnalyzeRejectedWithoutImage(t *testing.T) {
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{})
	defer coordinator.Stop()

	b := NewUIEventBridge(&BridgeConfig{Coordinator: coordinator})

	rejected := make(chan error, 1)
	b.Analyze(func(err error) { rejected <- err })

	select {
	case err := <-rejected:
		var te *state.TransitionError
		if !errors.As(err, &te) {
			t.Errorf("error = %v, want *state.TransitionError", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onReject not called")
	}
}
