package gui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/hexlab/tacboard/internal/analysis"
	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/config"
	"github.com/hexlab/tacboard/internal/database"
	"github.com/hexlab/tacboard/internal/events"
	"github.com/hexlab/tacboard/internal/input"
	"github.com/hexlab/tacboard/internal/logging"
	"github.com/hexlab/tacboard/internal/notify"
)

// toolState is the single source of truth for the active tool and pen
// color. It satisfies the router's ToolState.
type toolState struct {
	tool  input.Tool
	color color.NRGBA
}

func (t *toolState) ActiveTool() input.Tool   { return t.tool }
func (t *toolState) StrokeColor() color.NRGBA { return t.color }
func (t *toolState) setTool(tool input.Tool)  { t.tool = tool }
func (t *toolState) setColor(c color.NRGBA)   { t.color = c }

// Controller owns the overlay window: the board, the toolbar, alert
// delivery, and persistence.
type Controller struct {
	settings *config.Settings
	app      fyne.App
	window   fyne.Window
	log      *logging.Logger

	source *capture.Source
	store  *annotation.Store
	tools  *toolState
	board  *BoardCanvas

	bus       *events.Bus
	db        *database.DB
	sessionID int64

	notifier notify.Notifier
	speaker  notify.Speaker

	analysisCancel context.CancelFunc

	status    *widget.Label
	penBtn    *widget.Button
	markerBtn *widget.Button
}

// NewController wires the overlay together. db may be nil when the
// session store failed to open; the overlay still works without it.
func NewController(settings *config.Settings, app fyne.App, window fyne.Window, source *capture.Source, db *database.DB) *Controller {
	c := &Controller{
		settings: settings,
		app:      app,
		window:   window,
		log:      logging.New("gui"),
		source:   source,
		store:    annotation.NewStore(),
		tools:    &toolState{tool: input.ToolPen},
		bus:      events.NewBus(),
		db:       db,
	}

	penColor, err := config.ParseColor(settings.StrokeColor)
	if err != nil {
		c.log.Warnf("bad stroke color %q, using red: %v", settings.StrokeColor, err)
		penColor = color.NRGBA{R: 255, A: 255}
	}
	c.tools.setColor(penColor)

	c.board = NewBoardCanvas(source, c.store, c.tools, settings.Crop)
	c.board.SetStrokeWidth(settings.StrokeWidth)

	c.notifier, c.speaker = notify.Silent()
	if settings.NotifyEnabled {
		c.notifier = notify.Desktop()
	}
	if settings.SpeechEnabled {
		if sp, err := notify.NewSpeaker(); err == nil {
			c.speaker = sp
		} else {
			c.log.Warnf("speech disabled: %v", err)
		}
	}

	if db != nil {
		id, err := db.BeginSession(settings.Game, settings.Crop)
		if err != nil {
			c.log.Errorf("failed to start session: %v", err)
		} else {
			c.sessionID = id
		}
	}

	c.setupEventHandlers()
	c.bus.Start()
	return c
}

// BuildUI constructs the window content.
func (c *Controller) BuildUI() fyne.CanvasObject {
	c.status = widget.NewLabel("ready")

	c.penBtn = widget.NewButton("Pen", func() { c.selectTool(input.ToolPen) })
	c.markerBtn = widget.NewButton("Marker", func() { c.selectTool(input.ToolMarker) })
	c.penBtn.Importance = widget.HighImportance

	colorSelect := widget.NewSelect(
		[]string{"red", "orange", "yellow", "lime", "cyan", "magenta", "white"},
		func(name string) {
			col, err := config.ParseColor(name)
			if err != nil {
				return
			}
			c.tools.setColor(col)
			c.settings.StrokeColor = name
		})
	colorSelect.SetSelected(c.settings.StrokeColor)

	clearBtn := widget.NewButton("Clear", func() {
		c.store.ClearAll()
		c.setStatus("annotations cleared")
	})
	snapshotBtn := widget.NewButton("Snapshot", c.takeSnapshot)
	zoneBtn := widget.NewButton("Adjust Zone", c.showCropDialog)

	toolbar := container.NewHBox(
		c.penBtn, c.markerBtn, colorSelect,
		widget.NewSeparator(),
		clearBtn, snapshotBtn, zoneBtn,
	)

	return container.NewBorder(toolbar, c.status, nil, nil, c.board)
}

// Start begins mirroring and, when configured, the analysis exporter.
func (c *Controller) Start() {
	c.board.Start()
	c.setStatus("mirroring")

	if c.settings.AnalysisEnabled && c.settings.AnalysisEndpoint != "" {
		c.startAnalysis()
	}
}

func (c *Controller) startAnalysis() {
	client := analysis.NewClient(c.settings.AnalysisEndpoint)
	interval := time.Duration(c.settings.AnalysisInterval) * time.Second
	frame := func() image.Image {
		if snap := c.board.Snapshot(); snap != nil {
			return snap
		}
		return nil
	}
	exp := analysis.NewExporter(client, frame, c.bus, c.db, c.sessionID, interval)

	ctx, cancel := context.WithCancel(context.Background())
	c.analysisCancel = cancel
	go func() {
		if err := exp.Run(ctx); err != nil && ctx.Err() == nil {
			c.log.Errorf("analysis pipeline stopped: %v", err)
		}
	}()
	c.setStatus("analysis running")
}

func (c *Controller) selectTool(t input.Tool) {
	c.tools.setTool(t)
	if t == input.ToolPen {
		c.penBtn.Importance = widget.HighImportance
		c.markerBtn.Importance = widget.MediumImportance
	} else {
		c.penBtn.Importance = widget.MediumImportance
		c.markerBtn.Importance = widget.HighImportance
	}
	c.penBtn.Refresh()
	c.markerBtn.Refresh()
	c.setStatus(fmt.Sprintf("tool: %s", t))
}

func (c *Controller) takeSnapshot() {
	img := c.board.Snapshot()
	if img == nil {
		c.setStatus("nothing to snapshot yet")
		return
	}
	path, err := analysis.SaveSnapshot("snapshots", img)
	if err != nil {
		c.log.Errorf("snapshot failed: %v", err)
		c.setStatus("snapshot failed")
		return
	}
	if err := analysis.CopyToClipboard(img); err != nil {
		c.log.Debugf("clipboard copy skipped: %v", err)
	}
	c.setStatus(fmt.Sprintf("saved %s", path))
}

// showCropDialog opens the capture zone editor; the board picks the new
// zone up on confirm.
func (c *Controller) showCropDialog() {
	preview := NewCropPreview(c.source, c.board.CropRegion())
	d := dialog.NewCustomConfirm("Adjust Capture Zone", "Apply", "Cancel", preview,
		func(confirmed bool) {
			if !confirmed {
				return
			}
			region := preview.Region()
			c.board.SetCropRegion(region)
			c.settings.Crop = region
			if c.db != nil && c.sessionID != 0 {
				if err := c.db.UpdateSessionCrop(c.sessionID, region); err != nil {
					c.log.Errorf("failed to persist crop: %v", err)
				}
			}
			c.setStatus(fmt.Sprintf("zone %dx%d at %d,%d",
				int(region.Width), int(region.Height), int(region.X), int(region.Y)))
		}, c.window)
	d.Resize(fyne.NewSize(720, 480))
	d.Show()
}

func (c *Controller) setupEventHandlers() {
	c.bus.Subscribe(events.TypeAlert, func(e events.Event) {
		c.setStatus(fmt.Sprintf("[%s] %s", e.Severity, e.Message))
		if err := c.notifier.Notify("tacboard", e.Message); err != nil {
			c.log.Debugf("notification failed: %v", err)
		}
		if err := c.speaker.Speak(e.Message); err != nil {
			c.log.Debugf("speech failed: %v", err)
		}
	})
	c.bus.Subscribe(events.TypeAnalysisDone, func(e events.Event) {
		c.setStatus(fmt.Sprintf("analysis: %s", e.Message))
	})
	c.bus.Subscribe(events.TypeStatus, func(e events.Event) {
		c.setStatus(e.Message)
	})
	c.bus.Subscribe(events.TypeSourceChanged, func(e events.Event) {
		c.setStatus(e.Message)
	})
}

func (c *Controller) setStatus(msg string) {
	if c.status != nil {
		c.status.SetText(msg)
	}
}

// Shutdown stops background work and persists state.
func (c *Controller) Shutdown(settingsPath string) {
	if c.analysisCancel != nil {
		c.analysisCancel()
	}
	c.board.Stop()
	c.bus.Stop()

	if c.db != nil {
		if c.sessionID != 0 {
			if err := c.db.EndSession(c.sessionID); err != nil {
				c.log.Errorf("failed to end session: %v", err)
			}
		}
		c.db.Close()
	}

	if err := config.SaveToINI(c.settings, settingsPath); err != nil {
		c.log.Errorf("failed to save settings: %v", err)
	}
}
