package gui

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/compose"
	"github.com/hexlab/tacboard/internal/geometry"
	"github.com/hexlab/tacboard/internal/input"
)

// BoardCanvas is the main overlay surface: the mirrored crop of the
// capture source with strokes and markers drawn over it.
type BoardCanvas struct {
	widget.BaseWidget

	source *capture.Source
	store  *annotation.Store
	tools  input.ToolState
	router *input.Router

	raster  *fynecanvas.Raster
	content *boardContent
	loop    *compose.Loop

	// Guarded state shared with the exporter goroutine. Everything else
	// is touched only on the main thread.
	mu          sync.Mutex
	crop        geometry.Rect
	placement   geometry.Placement
	placementOK bool
	lastOutput  *image.RGBA
}

// NewBoardCanvas builds the board over a capture source. The tool state
// decides how pointer input is routed.
func NewBoardCanvas(source *capture.Source, store *annotation.Store, tools input.ToolState, crop geometry.Rect) *BoardCanvas {
	bc := &BoardCanvas{
		source: source,
		store:  store,
		tools:  tools,
		crop:   crop,
	}
	bc.router = input.NewRouter(store, tools, bc.currentPlacement)

	bc.raster = fynecanvas.NewRaster(bc.draw)
	bc.content = newBoardContent(bc, bc.raster)
	bc.loop = compose.NewLoop(compose.DefaultFrameInterval, func() {
		fyne.Do(bc.raster.Refresh)
	})

	bc.ExtendBaseWidget(bc)
	return bc
}

// Start begins the periodic refresh of the board.
func (bc *BoardCanvas) Start() { bc.loop.Start() }

// Stop halts the refresh loop. The last composited frame stays on screen.
func (bc *BoardCanvas) Stop() { bc.loop.Stop() }

// Running reports whether the refresh loop is active.
func (bc *BoardCanvas) Running() bool { return bc.loop.Running() }

// SetStrokeWidth sets the width committed strokes are recorded with.
func (bc *BoardCanvas) SetStrokeWidth(w float64) {
	if w > 0 {
		bc.router.StrokeWidth = w
	}
}

// CropRegion returns the capture zone currently being mirrored.
func (bc *BoardCanvas) CropRegion() geometry.Rect {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.crop
}

// SetCropRegion swaps the capture zone. Annotations keep their normalized
// positions, so they follow the new zone.
func (bc *BoardCanvas) SetCropRegion(r geometry.Rect) {
	bc.mu.Lock()
	bc.crop = r
	bc.mu.Unlock()
	bc.raster.Refresh()
}

// Snapshot returns a copy of the last composited output, or nil before the
// first paint. Safe to call from any goroutine.
func (bc *BoardCanvas) Snapshot() *image.RGBA {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.lastOutput == nil {
		return nil
	}
	dup := image.NewRGBA(bc.lastOutput.Rect)
	copy(dup.Pix, bc.lastOutput.Pix)
	return dup
}

// SetFrameInterval rebuilds the refresh loop with a new period.
func (bc *BoardCanvas) SetFrameInterval(d time.Duration) {
	running := bc.loop.Running()
	bc.loop.Stop()
	bc.loop = compose.NewLoop(d, func() {
		fyne.Do(bc.raster.Refresh)
	})
	if running {
		bc.loop.Start()
	}
}

func (bc *BoardCanvas) currentPlacement() (geometry.Placement, bool) {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.placement, bc.placementOK
}

// draw composites one frame at the raster's current size.
func (bc *BoardCanvas) draw(w, h int) image.Image {
	bc.mu.Lock()
	crop := bc.crop
	bc.mu.Unlock()

	snap := compose.Snapshot{
		Frame:        bc.source.Frame(),
		Crop:         crop,
		Strokes:      bc.store.Strokes(),
		Markers:      bc.store.Markers(),
		Current:      bc.store.CurrentStroke(),
		CurrentColor: bc.tools.StrokeColor(),
	}
	out, p, ok := compose.Render(w, h, snap)

	bc.mu.Lock()
	bc.placement = p
	bc.placementOK = ok
	bc.lastOutput = out
	bc.mu.Unlock()

	return out
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(bc.content)
}

// boardContent wraps the raster to receive pointer events.
type boardContent struct {
	widget.BaseWidget
	board    *BoardCanvas
	raster   *fynecanvas.Raster
	dragging bool
}

func newBoardContent(bc *BoardCanvas, raster *fynecanvas.Raster) *boardContent {
	c := &boardContent{board: bc, raster: raster}
	c.ExtendBaseWidget(c)
	return c
}

func (c *boardContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *boardContent) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Tapped places a marker or a degenerate pen tap, both handled by the
// router as a down/up pair.
func (c *boardContent) Tapped(ev *fyne.PointEvent) {
	c.board.router.PointerDown(float64(ev.Position.X), float64(ev.Position.Y))
	c.board.router.PointerUp()
}

// Dragged feeds free-hand drawing. The first event of a gesture reports
// the position after the initial delta, so the stroke anchors at the
// press point.
func (c *boardContent) Dragged(ev *fyne.DragEvent) {
	if !c.dragging {
		c.dragging = true
		startX := float64(ev.Position.X - ev.Dragged.DX)
		startY := float64(ev.Position.Y - ev.Dragged.DY)
		c.board.router.PointerDown(startX, startY)
	}
	c.board.router.PointerMove(float64(ev.Position.X), float64(ev.Position.Y))
	c.raster.Refresh()
}

func (c *boardContent) DragEnd() {
	c.dragging = false
	c.board.router.PointerUp()
	c.raster.Refresh()
}

// MouseOut commits any stroke in progress so it is not lost off-widget.
func (c *boardContent) MouseOut() {
	c.dragging = false
	c.board.router.PointerLeave()
}

func (c *boardContent) MouseIn(*desktop.MouseEvent)    {}
func (c *boardContent) MouseMoved(*desktop.MouseEvent) {}
