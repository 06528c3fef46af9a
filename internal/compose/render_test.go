package compose

import (
	"image"
	"image/color"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/geometry"
)

func solidFrame(w, h int, c color.NRGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderPlacementMatchesGeometry(t *testing.T) {
	snap := Snapshot{
		Frame: solidFrame(640, 480, color.NRGBA{R: 10, G: 200, B: 10, A: 255}),
		Crop:  geometry.Rect{X: 0, Y: 0, Width: 300, Height: 300},
	}
	out, p, ok := Render(800, 600, snap)
	if !ok {
		t.Fatal("render reported degenerate geometry")
	}
	if out.Bounds().Dx() != 800 || out.Bounds().Dy() != 600 {
		t.Fatalf("output bounds = %v", out.Bounds())
	}
	if p.OffsetX != 100 || p.OffsetY != 0 || p.DrawWidth != 600 || p.DrawHeight != 600 {
		t.Fatalf("placement = %+v, want {100 0 600 600}", p)
	}
	// Inside the placement the video shows; the pillarbox bars keep the
	// background color.
	r, g, _, _ := out.At(400, 300).RGBA()
	if g>>8 < 100 {
		t.Errorf("center pixel not video content: r=%d g=%d", r>>8, g>>8)
	}
	_, g, _, _ = out.At(50, 300).RGBA()
	if g>>8 > 100 {
		t.Error("pillarbox bar contains video content")
	}
}

func TestRenderDegenerateCropPaintsBackgroundOnly(t *testing.T) {
	out, _, ok := Render(400, 300, Snapshot{Crop: geometry.Rect{}})
	if ok {
		t.Fatal("zero crop reported ok")
	}
	if out == nil || out.Bounds().Dx() != 400 {
		t.Fatal("no background surface produced")
	}
}

func TestRenderZeroSurface(t *testing.T) {
	_, _, ok := Render(0, 0, Snapshot{Crop: geometry.Rect{Width: 300, Height: 300}})
	if ok {
		t.Fatal("zero surface reported ok")
	}
}

func TestRenderPlaceholderWithoutFrame(t *testing.T) {
	out, p, ok := Render(800, 600, Snapshot{Crop: geometry.Rect{Width: 300, Height: 300}})
	if !ok {
		t.Fatal("placeholder path reported degenerate")
	}
	// The placement rect is filled with the placeholder color, which is
	// lighter than the background.
	inside := out.RGBAAt(int(p.OffsetX)+5, int(p.OffsetY)+5)
	outside := out.RGBAAt(5, 5)
	if inside == outside {
		t.Error("placeholder fill not drawn inside placement")
	}
}

func TestRenderDrawsStrokes(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	snap := Snapshot{
		Crop: geometry.Rect{Width: 300, Height: 300},
		Strokes: []annotation.Stroke{{
			Points: []geometry.NormPoint{{X: 0.1, Y: 0.5}, {X: 0.9, Y: 0.5}},
			Color:  red,
			Width:  4,
		}},
	}
	out, p, _ := Render(800, 600, snap)
	x, y := p.ToScreen(geometry.NormPoint{X: 0.5, Y: 0.5})
	c := out.RGBAAt(int(x), int(y))
	if c.R < 200 || c.G > 80 {
		t.Errorf("stroke midpoint = %+v, want red", c)
	}
}

func TestRenderSkipsShortStrokes(t *testing.T) {
	snap := Snapshot{
		Crop: geometry.Rect{Width: 300, Height: 300},
		Strokes: []annotation.Stroke{{
			Points: []geometry.NormPoint{{X: 0.5, Y: 0.5}},
			Color:  color.NRGBA{R: 255, A: 255},
			Width:  40,
		}},
	}
	out, p, _ := Render(800, 600, snap)
	x, y := p.ToScreen(geometry.NormPoint{X: 0.5, Y: 0.5})
	c := out.RGBAAt(int(x), int(y))
	if c.R > 100 {
		t.Errorf("single-point stroke was drawn: %+v", c)
	}
}

func TestRenderMarkerGlyphs(t *testing.T) {
	kinds := []annotation.MarkerKind{
		annotation.MarkerDanger, annotation.MarkerMove, annotation.MarkerWard,
	}
	for _, k := range kinds {
		snap := Snapshot{
			Crop:    geometry.Rect{Width: 300, Height: 300},
			Markers: []annotation.Marker{{ID: 1, Pos: geometry.NormPoint{X: 0.5, Y: 0.5}, Kind: k}},
		}
		out, p, _ := Render(800, 600, snap)
		x, y := p.ToScreen(geometry.NormPoint{X: 0.5, Y: 0.5})
		c := out.RGBAAt(int(x), int(y))
		bg := out.RGBAAt(2, 2)
		if c == bg {
			t.Errorf("%v glyph missing at marker position", k)
		}
	}
}

func TestLoopStartStop(t *testing.T) {
	var ticks atomic.Int64
	l := NewLoop(time.Millisecond, func() { ticks.Add(1) })

	l.Start()
	l.Start() // idempotent
	time.Sleep(30 * time.Millisecond)
	l.Stop()
	l.Stop() // idempotent

	n := ticks.Load()
	if n == 0 {
		t.Fatal("loop never ticked")
	}
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != n {
		t.Fatal("loop ticked after Stop")
	}
	if l.Running() {
		t.Fatal("Running after Stop")
	}
}

func TestLoopRestart(t *testing.T) {
	var ticks atomic.Int64
	l := NewLoop(time.Millisecond, func() { ticks.Add(1) })
	l.Start()
	time.Sleep(10 * time.Millisecond)
	l.Stop()
	n := ticks.Load()
	l.Start()
	time.Sleep(10 * time.Millisecond)
	l.Stop()
	if ticks.Load() <= n {
		t.Fatal("loop did not resume after restart")
	}
}
