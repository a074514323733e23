// Package application coordinates image loading, provider selection and
// analysis on behalf of the presentation layer.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"photo-analyzer-go/core/command"
	"photo-analyzer-go/core/event"
	"photo-analyzer-go/core/eventbus"
	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
	"photo-analyzer-go/infrastructure/imageio"
	"photo-analyzer-go/infrastructure/logging"
	"photo-analyzer-go/infrastructure/vision"
)

// ErrNoDescriber is returned when no client is registered for the selected provider.
var ErrNoDescriber = errors.New("no describer registered for provider")

// ImageReader returns the raw bytes of an image file for upload.
type ImageReader func(path string) ([]byte, error)

// Coordinator owns the workspace state and routes commands from the UI.
type Coordinator struct {
	state      *AppState
	describers map[provider.Provider]vision.Describer
	inspector  analysis.Inspector
	readImage  ImageReader
	library    *library.Service
	eventBus   eventbus.EventBus
	logger     *slog.Logger
	newID      func() string

	ctx    context.Context
	cancel context.CancelFunc
}

// CoordinatorConfig holds configuration for the Coordinator.
type CoordinatorConfig struct {
	State      *AppState
	Describers []vision.Describer
	// Inspector defaults to the filesystem inspector.
	Inspector analysis.Inspector
	// ReadImage defaults to imageio.ReadBytes.
	ReadImage ImageReader
	// Library is optional; without it recent images are not tracked.
	Library  *library.Service
	EventBus eventbus.EventBus
	Logger   *slog.Logger
}

// Report is the outcome of one analysis request.
type Report struct {
	RequestID string
	Provider  provider.Provider
	Result    analysis.Result
	// Text is the framed report or failure message shown to the user.
	Text string
	// RemoteErr is the provider failure that triggered the fallback, if any.
	RemoteErr error
	// Err is set when the fallback failed too.
	Err error
}

// NewCoordinator creates a new coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.State == nil {
		cfg.State = NewAppState(nil, provider.Primary)
	}
	if cfg.Inspector == nil {
		cfg.Inspector = imageio.NewInspector()
	}
	if cfg.ReadImage == nil {
		cfg.ReadImage = imageio.ReadBytes
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Coordinator{
		state:      cfg.State,
		describers: make(map[provider.Provider]vision.Describer, len(cfg.Describers)),
		inspector:  cfg.Inspector,
		readImage:  cfg.ReadImage,
		library:    cfg.Library,
		eventBus:   cfg.EventBus,
		logger:     cfg.Logger,
		newID:      uuid.NewString,
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, d := range cfg.Describers {
		c.describers[d.Provider()] = d
	}

	return c
}

// Start begins the coordinator.
func (c *Coordinator) Start() {
	c.logger.Info("Coordinator started", "provider", c.state.Provider().String())
}

// Stop shuts down the coordinator and aborts any request still in flight.
func (c *Coordinator) Stop() {
	c.cancel()
	c.logger.Info("Coordinator stopped")
}

// State returns a snapshot of the workspace.
func (c *Coordinator) State() Snapshot {
	return c.state.Snapshot()
}

// Dispatch sends a command to the appropriate handler.
// AnalyzeImage blocks until the report is ready.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	switch cmd := cmd.(type) {
	case *command.LoadImage:
		return c.handleLoadImage(cmd)
	case *command.ClearImage:
		return c.handleClearImage()
	case *command.SelectProvider:
		return c.handleSelectProvider(cmd)
	case *command.SetCredential:
		return c.handleSetCredential(cmd)
	case *command.AnalyzeImage:
		_, err := c.Analyze(c.ctx)
		return err
	case *command.ClearRecent:
		return c.handleClearRecent()
	default:
		return fmt.Errorf("unknown command type: %T", cmd)
	}
}

func (c *Coordinator) handleLoadImage(cmd *command.LoadImage) error {
	if c.state.Workspace().IsBusy() {
		return state.NewTransitionError(state.StateAnalyzing, state.StateImageLoaded, "analysis in progress")
	}

	meta, err := c.inspector.Inspect(cmd.Path)
	if err != nil {
		c.logger.Warn("Failed to load image", "path", cmd.Path, "error", err)
		c.publish(event.NewImageLoadFailed(cmd.Path, err))
		if errors.Is(err, imageio.ErrImageNotFound) {
			c.forgetRecent(cmd.Path)
		}
		return fmt.Errorf("failed to load image: %w", err)
	}

	// An analysis may have started while the file was being inspected.
	c.state.mu.Lock()
	from, err := c.state.transition(state.StateImageLoaded, "analysis in progress")
	if err == nil {
		c.state.image = meta
	}
	c.state.mu.Unlock()
	if err != nil {
		return err
	}

	c.logger.Info("Image loaded",
		"file", meta.FileName(),
		"format", meta.Format,
		"width", meta.Width,
		"height", meta.Height,
	)
	c.publishTransition(from, state.StateImageLoaded)
	c.publish(event.NewImageLoaded(meta))
	c.recordRecent(meta)
	return nil
}

func (c *Coordinator) handleClearImage() error {
	c.state.mu.Lock()
	if c.state.workspace == state.StateEmpty {
		c.state.mu.Unlock()
		return nil
	}
	from, err := c.state.transition(state.StateEmpty, "analysis in progress")
	if err == nil {
		c.state.image = nil
	}
	c.state.mu.Unlock()
	if err != nil {
		return err
	}

	c.logger.Info("Image cleared")
	c.publishTransition(from, state.StateEmpty)
	c.publish(&event.ImageCleared{})
	return nil
}

func (c *Coordinator) handleSelectProvider(cmd *command.SelectProvider) error {
	p := cmd.Provider()
	if !p.IsValid() {
		return fmt.Errorf("unknown provider: %v", p)
	}

	c.state.mu.Lock()
	c.state.provider = p
	c.state.mu.Unlock()

	status := c.state.keyring.Status(p)
	c.logger.Info("Provider selected", "provider", p.String(), "credential", status.String())
	c.publish(event.NewProviderSelected(p, status))
	return nil
}

func (c *Coordinator) handleSetCredential(cmd *command.SetCredential) error {
	p := cmd.Provider()
	if _, err := c.state.keyring.Resolve(p, cmd.Input); err != nil {
		c.logger.Warn("Credential rejected", "provider", p.String(), "error", err)
		c.publish(event.NewCredentialRejected(p, err))
		return err
	}

	status := c.state.keyring.Status(p)
	c.logger.Info("Credential updated", "provider", p.String(), "credential", status.String())
	if status == credential.NoKey && c.state.keyring.Default(p) == "" {
		c.logger.Warn("No default key available, only basic analysis will run", "provider", p.String(), "env", p.EnvVar())
	}
	c.publish(event.NewCredentialUpdated(p, status))
	return nil
}

func (c *Coordinator) handleClearRecent() error {
	if c.library == nil {
		return nil
	}
	if err := c.library.Clear(c.ctx); err != nil {
		return fmt.Errorf("failed to clear recent images: %w", err)
	}
	c.publish(event.NewRecentImagesChanged(nil))
	return nil
}

// Analyze runs one analysis of the current image with the selected provider.
// Any remote failure falls back to the local analyzer exactly once. The
// returned error is non-nil only when the analysis could not start; the
// report always carries displayable text otherwise.
func (c *Coordinator) Analyze(ctx context.Context) (*Report, error) {
	c.state.mu.Lock()
	reason := "analysis already running"
	if c.state.workspace == state.StateEmpty {
		reason = "no image loaded"
	}
	from, err := c.state.transition(state.StateAnalyzing, reason)
	if err != nil {
		c.state.mu.Unlock()
		return nil, err
	}
	path := c.state.image.Path
	mimeType := imageio.MIMEType(c.state.image.Format)
	p := c.state.provider
	key := c.state.keyring.Active(p)
	c.state.mu.Unlock()

	report := &Report{RequestID: c.newID(), Provider: p}
	ctx = logging.WithAttrs(logging.With(ctx, c.logger), "request_id", report.RequestID, "provider", p.String())
	logger := logging.From(ctx)

	c.publishTransition(from, state.StateAnalyzing)
	c.publish(event.NewAnalysisStarted(p, report.RequestID, path))

	defer func() {
		c.state.mu.Lock()
		c.state.workspace = state.StateImageLoaded
		c.state.mu.Unlock()
		c.publishTransition(state.StateAnalyzing, state.StateImageLoaded)
	}()

	start := time.Now()
	text, remoteErr := c.describe(ctx, p, path, mimeType, key)
	if remoteErr == nil {
		report.Result = analysis.NewResult(text, analysis.SourceFor(p))
		report.Text = analysis.Frame(report.Result)
		logger.Info("Analysis completed", "source", report.Result.Source.String(), "elapsed", time.Since(start))
		c.publish(event.NewAnalysisCompleted(p, report.RequestID, report.Result, report.Text, nil))
		return report, nil
	}

	report.RemoteErr = remoteErr
	logRemoteFailure(logger, remoteErr)

	result, fallbackErr := analysis.AnalyzeFile(c.inspector, path)
	report.Result = result
	if fallbackErr != nil {
		report.Err = fallbackErr
		report.Text = analysis.FrameFailure(fallbackErr)
		logger.Error("Fallback analysis failed", "error", fallbackErr)
		c.publish(event.NewAnalysisFailed(p, report.RequestID, fallbackErr, report.Text))
		return report, nil
	}

	report.Text = analysis.Frame(result)
	logger.Info("Fallback analysis completed", "elapsed", time.Since(start))
	c.publish(event.NewAnalysisCompleted(p, report.RequestID, result, report.Text, remoteErr))
	return report, nil
}

// describe calls the provider and returns its text, or the error that
// should trigger the fallback.
func (c *Coordinator) describe(ctx context.Context, p provider.Provider, path, mimeType, key string) (string, error) {
	d, ok := c.describers[p]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoDescriber, p)
	}
	if key == "" {
		return "", fmt.Errorf("%s: %w", p.ShortName(), vision.ErrMissingCredential)
	}

	data, err := c.readImage(path)
	if err != nil {
		return "", err
	}

	text, err := d.Describe(ctx, vision.Image{Data: data, MIMEType: mimeType}, key)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", p.ShortName(), vision.ErrMalformedResponse)
	}
	return text, nil
}

func logRemoteFailure(logger *slog.Logger, err error) {
	var remoteErr *vision.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		logger.Warn("Remote analysis failed, using fallback",
			"status", remoteErr.StatusCode,
			"code", remoteErr.Code,
			"rate_limited", remoteErr.RateLimited(),
			"quota_exhausted", remoteErr.QuotaExhausted(),
		)
	case errors.Is(err, vision.ErrMissingCredential):
		logger.Info("No API key configured, using fallback")
	default:
		logger.Warn("Remote analysis failed, using fallback", "error", err)
	}
}

// RecentImages returns the recent images list, newest first.
func (c *Coordinator) RecentImages(ctx context.Context) ([]*library.RecentImage, error) {
	if c.library == nil {
		return nil, nil
	}
	return c.library.List(ctx)
}

func (c *Coordinator) recordRecent(meta *analysis.ImageMetadata) {
	if c.library == nil {
		return
	}
	err := c.library.Record(c.ctx, &library.RecentImage{
		Path:     meta.Path,
		Format:   meta.Format,
		Width:    meta.Width,
		Height:   meta.Height,
		FileSize: meta.FileSize,
	})
	if err != nil {
		c.logger.Warn("Failed to record recent image", "path", meta.Path, "error", err)
		return
	}
	c.publishRecent()
}

func (c *Coordinator) forgetRecent(path string) {
	if c.library == nil {
		return
	}
	if err := c.library.Forget(c.ctx, path); err != nil {
		c.logger.Warn("Failed to forget recent image", "path", path, "error", err)
		return
	}
	c.publishRecent()
}

func (c *Coordinator) publishRecent() {
	images, err := c.library.List(c.ctx)
	if err != nil {
		c.logger.Warn("Failed to list recent images", "error", err)
		return
	}
	c.publish(event.NewRecentImagesChanged(images))
}

func (c *Coordinator) publishTransition(from, to state.WorkspaceState) {
	c.publish(event.NewWorkspaceStateChanged(from, to))
}

func (c *Coordinator) publish(e event.Event) {
	if c.eventBus == nil {
		return
	}
	if pe, ok := e.(event.ProviderEvent); ok {
		c.logger.Debug("Publishing event", "event", e.EventName(), "provider", pe.Provider())
	} else {
		c.logger.Debug("Publishing event", "event", e.EventName())
	}
	c.eventBus.Publish(e)
}
