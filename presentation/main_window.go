package presentation

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"photo-analyzer-go/core/state"
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
	"photo-analyzer-go/infrastructure/imageio"
	"photo-analyzer-go/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the main application window.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	// Toolbar
	importBtn    *widget.Button
	analyzeBtn   *widget.Button
	clearBtn     *widget.Button
	aboutBtn     *widget.Button
	recentSelect *widget.Select
	recentPaths  map[string]string

	// Provider panel
	providerRadio *widget.RadioGroup
	keyEntry      *widget.Entry
	setKeyBtn     *widget.Button
	keyStatus     *widget.Label

	// Image and results
	preview      *fyne.Container
	emptyPreview fyne.CanvasObject
	imageInfo    *widget.Label
	results      *widget.Entry
	statusBar    *widget.Label

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &MainWindow{
		window:      cfg.App.NewWindow("Photo Analyzer"),
		bridge:      cfg.Bridge,
		logger:      cfg.Logger,
		recentPaths: make(map[string]string),
	}

	w.init()
	w.setupEventCallbacks()
	w.syncFromState()
	w.loadRecent()

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init() {
	toolbar := w.createToolbar()
	providerPanel := w.createProviderPanel()

	w.emptyPreview = container.NewCenter(widget.NewLabel("No image loaded"))
	w.preview = container.NewStack(w.emptyPreview)
	w.imageInfo = widget.NewLabel(imageInfoText(nil))
	imagePanel := container.NewBorder(nil, w.imageInfo, nil, nil, w.preview)

	w.results = widget.NewMultiLineEntry()
	w.results.Wrapping = fyne.TextWrapWord
	w.results.SetText(resultsPlaceholder)
	resultsPanel := container.NewBorder(
		widget.NewLabelWithStyle("Analysis Results", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		w.results,
	)

	split := container.NewHSplit(imagePanel, resultsPanel)
	split.SetOffset(0.45)

	w.statusBar = widget.NewLabel(statusReady)

	content := container.NewBorder(
		container.NewVBox(toolbar, providerPanel, widget.NewSeparator()),
		w.statusBar,
		nil, nil,
		split,
	)
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(1100, 720))
}

func (w *MainWindow) createToolbar() fyne.CanvasObject {
	w.importBtn = widget.NewButtonWithIcon("Import Image", theme.FolderOpenIcon(), w.handleImport)
	w.analyzeBtn = widget.NewButtonWithIcon("Analyze", theme.SearchIcon(), w.handleAnalyze)
	w.analyzeBtn.Importance = widget.HighImportance
	w.analyzeBtn.Disable()
	w.clearBtn = widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), w.handleClear)
	w.clearBtn.Disable()
	w.aboutBtn = widget.NewButtonWithIcon("About", theme.InfoIcon(), w.showAbout)

	w.recentSelect = widget.NewSelect([]string{}, w.handleRecentSelected)
	w.recentSelect.PlaceHolder = "Recent Images"
	clearRecentBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), w.handleClearRecent)

	return container.NewHBox(
		w.importBtn,
		w.analyzeBtn,
		w.clearBtn,
		widget.NewSeparator(),
		w.recentSelect,
		clearRecentBtn,
		layout.NewSpacer(),
		w.aboutBtn,
	)
}

func (w *MainWindow) createProviderPanel() fyne.CanvasObject {
	w.providerRadio = widget.NewRadioGroup(providerOptions(), w.handleProviderChanged)
	w.providerRadio.Horizontal = true
	w.providerRadio.Required = true

	w.keyEntry = widget.NewPasswordEntry()
	w.keyEntry.SetPlaceHolder("API key (leave empty to use the default)")
	w.keyEntry.OnSubmitted = func(string) { w.handleSetKey() }
	w.setKeyBtn = widget.NewButtonWithIcon("Set Key", theme.ConfirmIcon(), w.handleSetKey)
	w.keyStatus = widget.NewLabel("")

	keyRow := container.NewBorder(nil, nil, widget.NewLabel("API Key:"), w.setKeyBtn, w.keyEntry)

	return container.NewVBox(
		container.NewHBox(widget.NewLabel("Provider:"), w.providerRadio, layout.NewSpacer(), w.keyStatus),
		keyRow,
	)
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	w.bridge.SetCallbacks(&UICallbacks{
		OnWorkspaceStateChanged: func(oldState, newState state.WorkspaceState) {
			w.logger.Debug("Workspace state changed", "from", oldState, "to", newState)
			fyne.Do(func() {
				w.updateControls(newState)
			})
		},
		OnImageLoaded: func(meta *analysis.ImageMetadata) {
			fyne.Do(func() {
				w.showImage(meta)
				w.results.SetText(resultsPlaceholder)
				w.statusBar.SetText("Loaded " + meta.FileName())
			})
		},
		OnImageLoadFailed: func(path string, err error) {
			w.logger.Warn("Image load failed", "path", path, "error", err)
			fyne.Do(func() {
				dialog.ShowError(err, w.window)
				w.statusBar.SetText("Could not open image")
			})
		},
		OnImageCleared: func() {
			fyne.Do(func() {
				w.showImage(nil)
				w.results.SetText(resultsPlaceholder)
				w.statusBar.SetText(statusReady)
			})
		},
		OnRecentImagesChanged: func(images []*library.RecentImage) {
			fyne.Do(func() {
				w.setRecent(images)
			})
		},
		OnProviderSelected: func(p provider.Provider, status credential.Status) {
			fyne.Do(func() {
				if w.providerRadio.Selected != p.DisplayName() {
					w.providerRadio.SetSelected(p.DisplayName())
				}
				w.keyEntry.SetText("")
				w.keyStatus.SetText(credentialStatusText(p, status))
				w.statusBar.SetText("Provider: " + p.DisplayName())
			})
		},
		OnCredentialUpdated: func(p provider.Provider, status credential.Status) {
			fyne.Do(func() {
				w.keyEntry.SetText("")
				w.keyStatus.SetText(credentialStatusText(p, status))
			})
		},
		OnCredentialRejected: func(p provider.Provider, err error) {
			fyne.Do(func() {
				dialog.ShowError(err, w.window)
			})
		},
		OnAnalysisStarted: func(p provider.Provider, requestID string) {
			fyne.Do(func() {
				w.results.SetText(analysis.Progress(p.DisplayName()))
				w.statusBar.SetText("Analyzing with " + p.ShortName() + "...")
			})
		},
		OnAnalysisCompleted: func(p provider.Provider, text string, fallback bool, remoteErr error) {
			fyne.Do(func() {
				w.results.SetText(text)
				w.statusBar.SetText(analysisStatusText(p, fallback, remoteErr))
			})
		},
		OnAnalysisFailed: func(p provider.Provider, text string, err error) {
			fyne.Do(func() {
				w.results.SetText(text)
				w.statusBar.SetText("Analysis failed")
			})
		},
	})
}

// syncFromState initializes widgets from the coordinator's current snapshot.
func (w *MainWindow) syncFromState() {
	if w.bridge == nil {
		return
	}
	snap := w.bridge.State()
	w.providerRadio.SetSelected(snap.Provider.DisplayName())
	w.keyStatus.SetText(credentialStatusText(snap.Provider, snap.Status[snap.Provider]))
	w.showImage(snap.Image)
	w.updateControls(snap.Workspace)
}

func (w *MainWindow) loadRecent() {
	if w.bridge == nil {
		return
	}
	w.setRecent(w.bridge.RecentImages())
}

func (w *MainWindow) setRecent(images []*library.RecentImage) {
	labels, paths := recentOptions(images)
	w.recentPaths = paths
	w.recentSelect.Options = labels
	w.recentSelect.Refresh()
}

func (w *MainWindow) updateControls(s state.WorkspaceState) {
	busy := s.IsBusy()
	setEnabled(w.analyzeBtn, s.CanAnalyze())
	setEnabled(w.clearBtn, s.HasImage() && !busy)
	setEnabled(w.importBtn, !busy)
	if busy {
		w.recentSelect.Disable()
	} else {
		w.recentSelect.Enable()
	}
}

func (w *MainWindow) showImage(meta *analysis.ImageMetadata) {
	w.imageInfo.SetText(imageInfoText(meta))
	if meta == nil {
		w.preview.Objects = []fyne.CanvasObject{w.emptyPreview}
		w.preview.Refresh()
		return
	}

	img := canvas.NewImageFromFile(meta.Path)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(320, 240))
	w.preview.Objects = []fyne.CanvasObject{img}
	w.preview.Refresh()
}

func (w *MainWindow) handleImport() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		w.loadImage(path)
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions))
	fd.Show()
}

func (w *MainWindow) loadImage(path string) {
	w.statusBar.SetText("Loading image...")
	go func() {
		if err := w.bridge.LoadImage(path); err != nil {
			w.logger.Debug("Load image rejected", "path", path, "error", err)
		}
	}()
}

func (w *MainWindow) handleRecentSelected(label string) {
	if label == "" {
		return
	}
	path, ok := w.recentPaths[label]
	if !ok {
		return
	}
	w.recentSelect.ClearSelected()
	w.loadImage(path)
}

func (w *MainWindow) handleClearRecent() {
	dialog.ShowConfirm("Clear Recent Images",
		"Remove all entries from the recent images list?",
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := w.bridge.ClearRecent(); err != nil {
				w.logger.Error("Failed to clear recent images", "error", err)
				dialog.ShowError(err, w.window)
			}
		}, w.window)
}

func (w *MainWindow) handleAnalyze() {
	w.analyzeBtn.Disable()
	w.bridge.Analyze(func(err error) {
		fyne.Do(func() {
			var te *state.TransitionError
			if errors.As(err, &te) {
				dialog.ShowInformation("Analyze", te.Reason, w.window)
			} else {
				dialog.ShowError(err, w.window)
			}
			w.updateControls(w.bridge.State().Workspace)
		})
	})
}

func (w *MainWindow) handleClear() {
	if err := w.bridge.ClearImage(); err != nil {
		w.logger.Debug("Clear rejected", "error", err)
	}
}

func (w *MainWindow) handleProviderChanged(option string) {
	p, ok := providerFromOption(option)
	if !ok || w.bridge == nil {
		return
	}
	if w.bridge.State().Provider == p {
		return
	}
	if err := w.bridge.SelectProvider(p); err != nil {
		w.logger.Error("Failed to select provider", "provider", p.String(), "error", err)
	}
}

func (w *MainWindow) handleSetKey() {
	p, ok := providerFromOption(w.providerRadio.Selected)
	if !ok {
		return
	}
	// Rejections are reported through OnCredentialRejected.
	if err := w.bridge.SetCredential(p, strings.TrimSpace(w.keyEntry.Text)); err != nil {
		w.logger.Debug("Credential rejected", "provider", p.String())
	}
}

func (w *MainWindow) showAbout() {
	dialog.ShowInformation("About Photo Analyzer", resources.AboutText, w.window)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

// Public methods

// Show displays the main window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Cleanup releases resources.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		w.logger.Info("Starting cleanup...")
		if w.bridge != nil {
			w.bridge.Close()
		}
		w.logger.Info("Cleanup completed")
	})
}
