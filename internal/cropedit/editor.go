// Package cropedit implements the interactive editing of the capture crop
// region: dragging the rectangle body moves it, dragging a corner handle
// resizes it. All gesture state is held as an explicit value so the
// transitions can be exercised without synthesizing pointer events.
package cropedit

import (
	"github.com/hexlab/tacboard/internal/geometry"
)

// MinSize is the floor for both crop dimensions, in source pixels.
const MinSize = 50.0

// Handle identifies one of the four corner resize handles.
type Handle int

const (
	HandleNW Handle = iota
	HandleNE
	HandleSW
	HandleSE
)

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return "unknown"
}

// west/north report which edges the handle governs. The east and south
// edges are governed by the complementary handles.
func (h Handle) west() bool  { return h == HandleNW || h == HandleSW }
func (h Handle) north() bool { return h == HandleNW || h == HandleNE }

type phase int

const (
	phaseIdle phase = iota
	phaseMoving
	phaseResizing
)

// Editor owns the crop region for the duration of an editing session.
// It is single-owner state: all methods must be called from the UI thread.
type Editor struct {
	region  geometry.Rect
	sourceW float64
	sourceH float64

	phase    phase
	handle   Handle
	snapshot geometry.Rect // region at gesture start
	startX   float64       // pointer at gesture start, screen pixels
	startY   float64
}

// NewEditor creates an editor for a source of the given pixel dimensions.
// The initial region is clamped into the source bounds.
func NewEditor(region geometry.Rect, sourceW, sourceH float64) *Editor {
	e := &Editor{sourceW: sourceW, sourceH: sourceH}
	e.SetRegion(region)
	return e
}

// Region returns the current crop region.
func (e *Editor) Region() geometry.Rect {
	return e.region
}

// SetRegion replaces the crop region, clamping it to the minimum size and
// the source bounds.
func (e *Editor) SetRegion(r geometry.Rect) {
	e.region = clampRegion(r, e.sourceW, e.sourceH)
}

// SetSourceSize updates the source dimensions, e.g. after a resolution
// change, and re-clamps the region.
func (e *Editor) SetSourceSize(w, h float64) {
	e.sourceW, e.sourceH = w, h
	e.region = clampRegion(e.region, w, h)
}

// Dragging reports whether a move or resize gesture is in progress.
func (e *Editor) Dragging() bool {
	return e.phase != phaseIdle
}

// BeginMove starts a body drag at the given pointer position (screen
// pixels). The region at this instant is snapshotted; subsequent Drag calls
// are relative to it.
func (e *Editor) BeginMove(pointerX, pointerY float64) {
	e.phase = phaseMoving
	e.snapshot = e.region
	e.startX, e.startY = pointerX, pointerY
}

// BeginResize starts a corner-handle drag.
func (e *Editor) BeginResize(h Handle, pointerX, pointerY float64) {
	e.phase = phaseResizing
	e.handle = h
	e.snapshot = e.region
	e.startX, e.startY = pointerX, pointerY
}

// Drag applies the current pointer position to the active gesture. scale
// converts screen pixels to source pixels (source resolution divided by the
// displayed size of the video). A Drag with no gesture active is a no-op.
func (e *Editor) Drag(pointerX, pointerY, scale float64) {
	dx := (pointerX - e.startX) * scale
	dy := (pointerY - e.startY) * scale

	switch e.phase {
	case phaseMoving:
		e.region = e.moved(dx, dy)
	case phaseResizing:
		e.region = e.resized(dx, dy)
	}
}

// End terminates any active gesture unconditionally. Pointer-up and
// pointer-leave both route here so the editor can never stay stuck in a
// drag state.
func (e *Editor) End() {
	e.phase = phaseIdle
}

func (e *Editor) moved(dx, dy float64) geometry.Rect {
	r := e.snapshot
	r.X = clamp(r.X+dx, 0, e.sourceW-r.Width)
	r.Y = clamp(r.Y+dy, 0, e.sourceH-r.Height)
	return r
}

// resized recomputes only the edges governed by the active handle, each
// checked independently. An edge whose proposed movement would push the
// region below MinSize (or outside the source) is pinned at its limit for
// this frame while the other governed edge still applies; this is what
// keeps the rectangle from jumping when a drag crosses the size floor.
func (e *Editor) resized(dx, dy float64) geometry.Rect {
	snap := e.snapshot
	r := snap

	if e.handle.west() {
		x := snap.X + dx
		w := snap.Width - dx
		if w < MinSize {
			w = MinSize
			x = snap.X + snap.Width - MinSize
		}
		if x < 0 {
			w = snap.X + snap.Width
			x = 0
		}
		r.X, r.Width = x, w
	} else {
		w := snap.Width + dx
		if w < MinSize {
			w = MinSize
		}
		if snap.X+w > e.sourceW {
			w = e.sourceW - snap.X
		}
		r.Width = w
	}

	if e.handle.north() {
		y := snap.Y + dy
		h := snap.Height - dy
		if h < MinSize {
			h = MinSize
			y = snap.Y + snap.Height - MinSize
		}
		if y < 0 {
			h = snap.Y + snap.Height
			y = 0
		}
		r.Y, r.Height = y, h
	} else {
		h := snap.Height + dy
		if h < MinSize {
			h = MinSize
		}
		if snap.Y+h > e.sourceH {
			h = e.sourceH - snap.Y
		}
		r.Height = h
	}

	return r
}

func clampRegion(r geometry.Rect, sourceW, sourceH float64) geometry.Rect {
	if r.Width < MinSize {
		r.Width = MinSize
	}
	if r.Height < MinSize {
		r.Height = MinSize
	}
	if sourceW > 0 && r.Width > sourceW {
		r.Width = sourceW
	}
	if sourceH > 0 && r.Height > sourceH {
		r.Height = sourceH
	}
	r.X = clamp(r.X, 0, maxf(0, sourceW-r.Width))
	r.Y = clamp(r.Y, 0, maxf(0, sourceH-r.Height))
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
