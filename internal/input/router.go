// Package input interprets pointer events over the board and dispatches
// them to the annotation store according to the active tool.
package input

import (
	"image/color"

	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/geometry"
)

// Tool is the active drawing tool, selected by the toolbar.
type Tool int

const (
	// ToolPen draws free-hand strokes.
	ToolPen Tool = iota
	// ToolMarker places point markers.
	ToolMarker
)

func (t Tool) String() string {
	if t == ToolMarker {
		return "marker"
	}
	return "pen"
}

// ToolState is the externally maintained tool selection the router reads on
// every event.
type ToolState interface {
	ActiveTool() Tool
	StrokeColor() color.NRGBA
}

// PlacementFunc returns the placement the renderer used for the current
// frame. ok=false means geometry is degenerate and events are dropped.
type PlacementFunc func() (geometry.Placement, bool)

// DefaultStrokeWidth is the width committed strokes are recorded with.
const DefaultStrokeWidth = 3.0

// Router converts raw surface-pixel pointer events into normalized
// annotation coordinates and mutates the store. It must share its placement
// source with the renderer; a second placement formula would desynchronize
// input from visuals.
type Router struct {
	store     *annotation.Store
	tools     ToolState
	placement PlacementFunc

	// DefaultMarkerKind is the kind placed on marker-tool clicks. Kind
	// selection at click time is not wired up; this is the extension point.
	DefaultMarkerKind annotation.MarkerKind

	// StrokeWidth is the width recorded on commit.
	StrokeWidth float64
}

// NewRouter wires a router to its store, tool state and placement source.
func NewRouter(store *annotation.Store, tools ToolState, placement PlacementFunc) *Router {
	return &Router{
		store:             store,
		tools:             tools,
		placement:         placement,
		DefaultMarkerKind: annotation.MarkerDanger,
		StrokeWidth:       DefaultStrokeWidth,
	}
}

// PointerDown begins a stroke (pen tool) or places a marker (marker tool).
// Coordinates from the letterbox/pillarbox bars map outside [0,1] and are
// stored without clamping.
func (r *Router) PointerDown(x, y float64) {
	p, ok := r.placement()
	if !ok {
		return
	}
	n := p.ToNormalized(x, y)
	switch r.tools.ActiveTool() {
	case ToolPen:
		r.store.BeginStroke(n)
	case ToolMarker:
		r.store.PlaceMarker(n, r.DefaultMarkerKind)
	}
}

// PointerMove extends the in-progress stroke. Meaningless for the marker
// tool or when no stroke is active.
func (r *Router) PointerMove(x, y float64) {
	if r.tools.ActiveTool() != ToolPen || !r.store.StrokeInProgress() {
		return
	}
	p, ok := r.placement()
	if !ok {
		return
	}
	r.store.ExtendStroke(p.ToNormalized(x, y))
}

// PointerUp commits the in-progress stroke, if any, with the currently
// selected color.
func (r *Router) PointerUp() {
	if !r.store.StrokeInProgress() {
		return
	}
	r.store.CommitStroke(r.tools.StrokeColor(), r.StrokeWidth)
}

// PointerLeave handles the pointer exiting the drawing surface mid-gesture;
// the stroke is committed exactly as on pointer-up so the gesture cannot
// leak into the next one.
func (r *Router) PointerLeave() {
	r.PointerUp()
}
