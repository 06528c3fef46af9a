// Package compose renders one frame of the board: the cropped video blit,
// committed strokes, the in-progress stroke and the marker glyphs, all
// placed by the shared geometry.FitPlacement. The renderer is a pure
// function of a state snapshot so it can be exercised without a scheduler
// or a window.
package compose

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/geometry"
)

// Fixed screen-pixel sizes. Markers must stay legible regardless of how far
// the crop is zoomed in, so glyphs are never scaled with the placement.
const (
	markerRadius    = 11.0
	inProgressWidth = 3.0
)

var (
	backgroundColor  = color.NRGBA{R: 16, G: 16, B: 20, A: 255}
	placeholderColor = color.NRGBA{R: 32, G: 32, B: 38, A: 255}
	placeholderText  = color.NRGBA{R: 150, G: 150, B: 160, A: 255}

	dangerColor = color.NRGBA{R: 229, G: 57, B: 53, A: 255}
	moveColor   = color.NRGBA{R: 67, G: 160, B: 71, A: 255}
	wardColor   = color.NRGBA{R: 253, G: 216, B: 53, A: 255}
)

// Snapshot is the fully consistent view of board state a single frame is
// rendered from.
type Snapshot struct {
	// Frame is the current decoded video frame, nil when no source is
	// attached or nothing has decoded yet.
	Frame *image.RGBA

	// Crop is the sub-rectangle of the source to mirror, in source pixels.
	Crop geometry.Rect

	Strokes []annotation.Stroke
	Markers []annotation.Marker

	// Current is the in-progress stroke, drawn with the selected color at a
	// fixed width.
	Current      []geometry.NormPoint
	CurrentColor color.NRGBA
}

// Render composites a snapshot into a w x h surface. The returned placement
// is the one every coordinate in this frame was mapped through; the input
// router must use it for events arriving during the frame. ok=false means
// the geometry was degenerate and only the background was painted.
func Render(w, h int, s Snapshot) (out *image.RGBA, p geometry.Placement, ok bool) {
	dc := gg.NewContext(w, h)
	dc.SetColor(backgroundColor)
	dc.Clear()
	out = dc.Image().(*image.RGBA)

	p, ok = geometry.FitPlacement(float64(w), float64(h), s.Crop.Width, s.Crop.Height)
	if !ok {
		return out, p, false
	}

	if s.Frame != nil {
		blitCrop(out, s.Frame, s.Crop, p)
	} else {
		drawPlaceholder(dc, p)
	}

	for _, st := range s.Strokes {
		drawStroke(dc, p, st.Points, st.Color, st.Width)
	}
	drawStroke(dc, p, s.Current, s.CurrentColor, inProgressWidth)

	for _, m := range s.Markers {
		drawMarker(dc, p, m)
	}

	return out, p, true
}

// blitCrop scales the crop sub-rectangle of the frame into the placement
// rectangle, performing crop, scale and letterbox in one operation.
func blitCrop(dst *image.RGBA, frame *image.RGBA, crop geometry.Rect, p geometry.Placement) {
	src := image.Rect(
		int(crop.X), int(crop.Y),
		int(crop.X+crop.Width), int(crop.Y+crop.Height),
	).Intersect(frame.Bounds())
	if src.Empty() {
		return
	}
	dr := image.Rect(
		int(p.OffsetX), int(p.OffsetY),
		int(p.OffsetX+p.DrawWidth), int(p.OffsetY+p.DrawHeight),
	)
	xdraw.ApproxBiLinear.Scale(dst, dr, frame, src, xdraw.Src, nil)
}

func drawPlaceholder(dc *gg.Context, p geometry.Placement) {
	dc.SetColor(placeholderColor)
	dc.DrawRectangle(p.OffsetX, p.OffsetY, p.DrawWidth, p.DrawHeight)
	dc.Fill()
	dc.SetColor(placeholderText)
	dc.DrawStringAnchored("waiting for capture", p.OffsetX+p.DrawWidth/2, p.OffsetY+p.DrawHeight/2, 0.5, 0.5)
}

func drawStroke(dc *gg.Context, p geometry.Placement, points []geometry.NormPoint, c color.NRGBA, width float64) {
	if len(points) < 2 {
		return
	}
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	x, y := p.ToScreen(points[0])
	dc.MoveTo(x, y)
	for _, pt := range points[1:] {
		x, y = p.ToScreen(pt)
		dc.LineTo(x, y)
	}
	dc.Stroke()
}

func drawMarker(dc *gg.Context, p geometry.Placement, m annotation.Marker) {
	x, y := p.ToScreen(m.Pos)
	switch m.Kind {
	case annotation.MarkerDanger:
		dc.SetColor(dangerColor)
		dc.DrawRegularPolygon(3, x, y, markerRadius, 0)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored("!", x, y+2, 0.5, 0.5)
	case annotation.MarkerMove:
		dc.SetColor(moveColor)
		dc.DrawCircle(x, y, markerRadius*0.8)
		dc.Fill()
	case annotation.MarkerWard:
		dc.SetColor(wardColor)
		half := markerRadius * 0.75
		dc.DrawRectangle(x-half, y-half, half*2, half*2)
		dc.Fill()
	}
}
