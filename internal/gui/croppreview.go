package gui

import (
	"image"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/hexlab/tacboard/internal/capture"
	"github.com/hexlab/tacboard/internal/cropedit"
	"github.com/hexlab/tacboard/internal/geometry"
)

const (
	handleSize      = 10.0
	handleHitRadius = 8.0
)

// CropPreview shows the whole capture frame with the crop rectangle drawn
// over it. Dragging the rectangle moves it; dragging a corner handle
// resizes it.
type CropPreview struct {
	widget.BaseWidget

	source *capture.Source
	editor *cropedit.Editor

	raster  *fynecanvas.Raster
	content *cropPreviewContent

	// OnChange fires after each completed move or resize gesture.
	OnChange func(geometry.Rect)

	mu          sync.Mutex
	placement   geometry.Placement
	placementOK bool
}

// NewCropPreview builds a preview for adjusting the capture zone.
func NewCropPreview(source *capture.Source, region geometry.Rect) *CropPreview {
	w, h := source.Size()
	// Before the first captured frame the source reports 0x0; keep the
	// region editable within its own extent until real bounds arrive.
	srcW := math.Max(float64(w), region.X+region.Width)
	srcH := math.Max(float64(h), region.Y+region.Height)
	cp := &CropPreview{
		source: source,
		editor: cropedit.NewEditor(region, srcW, srcH),
	}
	cp.raster = fynecanvas.NewRaster(cp.draw)
	cp.content = newCropPreviewContent(cp)
	cp.ExtendBaseWidget(cp)
	return cp
}

// Region returns the crop rectangle being edited.
func (cp *CropPreview) Region() geometry.Rect {
	return cp.editor.Region()
}

// SetRegion replaces the crop rectangle, clamped to the source bounds.
func (cp *CropPreview) SetRegion(r geometry.Rect) {
	cp.editor.SetRegion(r)
	cp.raster.Refresh()
}

func (cp *CropPreview) currentPlacement() (geometry.Placement, bool) {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.placement, cp.placementOK
}

// sourceScale converts preview pixels back to source pixels.
func (cp *CropPreview) sourceScale() float64 {
	p, ok := cp.currentPlacement()
	if !ok || p.DrawWidth == 0 {
		return 1
	}
	w, _ := cp.source.Size()
	return float64(w) / p.DrawWidth
}

// regionOnScreen maps the crop rectangle into preview coordinates.
func (cp *CropPreview) regionOnScreen() (x, y, w, h float64, ok bool) {
	p, placed := cp.currentPlacement()
	if !placed {
		return 0, 0, 0, 0, false
	}
	scale := cp.sourceScale()
	if scale == 0 {
		return 0, 0, 0, 0, false
	}
	r := cp.editor.Region()
	return p.OffsetX + r.X/scale, p.OffsetY + r.Y/scale, r.Width / scale, r.Height / scale, true
}

// hitHandle returns the corner handle at a preview position, if any.
func (cp *CropPreview) hitHandle(px, py float64) (cropedit.Handle, bool) {
	x, y, w, h, ok := cp.regionOnScreen()
	if !ok {
		return 0, false
	}
	corners := []struct {
		h    cropedit.Handle
		x, y float64
	}{
		{cropedit.HandleNW, x, y},
		{cropedit.HandleNE, x + w, y},
		{cropedit.HandleSW, x, y + h},
		{cropedit.HandleSE, x + w, y + h},
	}
	for _, c := range corners {
		if math.Abs(px-c.x) <= handleHitRadius && math.Abs(py-c.y) <= handleHitRadius {
			return c.h, true
		}
	}
	return 0, false
}

func (cp *CropPreview) inRegion(px, py float64) bool {
	x, y, w, h, ok := cp.regionOnScreen()
	if !ok {
		return false
	}
	return px >= x && px <= x+w && py >= y && py <= y+h
}

func (cp *CropPreview) draw(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	dc.SetColor(ColorBackground)
	dc.Clear()

	srcW, srcH := cp.source.Size()
	p, ok := geometry.FitPlacement(float64(w), float64(h), float64(srcW), float64(srcH))

	cp.mu.Lock()
	cp.placement = p
	cp.placementOK = ok
	cp.mu.Unlock()

	if !ok {
		return dc.Image()
	}

	if frame := cp.source.Frame(); frame != nil {
		dst := image.Rect(int(p.OffsetX), int(p.OffsetY),
			int(p.OffsetX+p.DrawWidth), int(p.OffsetY+p.DrawHeight))
		out := dc.Image().(*image.RGBA)
		xdraw.ApproxBiLinear.Scale(out, dst, frame, frame.Bounds(), xdraw.Src, nil)
	}

	if x, y, rw, rh, ok := cp.regionOnScreen(); ok {
		dc.SetColor(ColorWarning)
		dc.SetLineWidth(2)
		dc.DrawRectangle(x, y, rw, rh)
		dc.Stroke()
		for _, c := range [][2]float64{{x, y}, {x + rw, y}, {x, y + rh}, {x + rw, y + rh}} {
			dc.DrawRectangle(c[0]-handleSize/2, c[1]-handleSize/2, handleSize, handleSize)
			dc.Fill()
		}
	}

	return dc.Image()
}

// CreateRenderer implements fyne.Widget.
func (cp *CropPreview) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cp.content)
}

// cropPreviewContent receives pointer events for the preview.
type cropPreviewContent struct {
	widget.BaseWidget
	preview  *CropPreview
	dragging bool
	ignored  bool
}

func newCropPreviewContent(cp *CropPreview) *cropPreviewContent {
	c := &cropPreviewContent{preview: cp}
	c.ExtendBaseWidget(c)
	return c
}

func (c *cropPreviewContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.preview.raster)
}

func (c *cropPreviewContent) MinSize() fyne.Size {
	return fyne.NewSize(480, 270)
}

func (c *cropPreviewContent) Dragged(ev *fyne.DragEvent) {
	cp := c.preview
	px := float64(ev.Position.X)
	py := float64(ev.Position.Y)

	if !c.dragging {
		c.dragging = true
		startX := float64(ev.Position.X - ev.Dragged.DX)
		startY := float64(ev.Position.Y - ev.Dragged.DY)
		if h, ok := cp.hitHandle(startX, startY); ok {
			cp.editor.BeginResize(h, startX, startY)
			c.ignored = false
		} else if cp.inRegion(startX, startY) {
			cp.editor.BeginMove(startX, startY)
			c.ignored = false
		} else {
			c.ignored = true
		}
	}
	if c.ignored {
		return
	}
	cp.editor.Drag(px, py, cp.sourceScale())
	cp.raster.Refresh()
}

func (c *cropPreviewContent) DragEnd() {
	cp := c.preview
	wasActive := c.dragging && !c.ignored
	c.dragging = false
	c.ignored = false
	cp.editor.End()
	if wasActive {
		cp.raster.Refresh()
		if cp.OnChange != nil {
			cp.OnChange(cp.editor.Region())
		}
	}
}
