// Package annotation holds the tactical drawings overlaid on the board:
// committed free-hand strokes, point markers, and the single in-progress
// stroke being drawn right now.
//
// Points are stored normalized to the crop region's extent, so annotations
// stay registered when the window or video resolution changes. Resizing the
// crop re-maps existing annotations onto the new rectangle; that is the
// intended behavior.
//
// The store is owned by the UI thread; every mutation happens in response to
// a pointer event or a toolbar action, so no locking is required.
package annotation

import (
	"image/color"

	"github.com/hexlab/tacboard/internal/geometry"
)

// MarkerKind selects the glyph and color a marker renders with.
type MarkerKind int

const (
	// MarkerDanger warns about a position (triangle with exclamation).
	MarkerDanger MarkerKind = iota
	// MarkerMove suggests a movement target (filled circle).
	MarkerMove
	// MarkerWard proposes a ward/vision spot (filled square).
	MarkerWard
)

func (k MarkerKind) String() string {
	switch k {
	case MarkerDanger:
		return "danger"
	case MarkerMove:
		return "move"
	case MarkerWard:
		return "ward"
	}
	return "unknown"
}

// Marker is a single point annotation. Immutable once placed.
type Marker struct {
	ID   int64
	Pos  geometry.NormPoint
	Kind MarkerKind
}

// Stroke is a committed free-hand polyline. Immutable once committed.
type Stroke struct {
	Points []geometry.NormPoint
	Color  color.NRGBA
	Width  float64
}

// Store keeps the ordered, append-only collections of committed strokes and
// markers plus the mutable current-stroke slot.
type Store struct {
	strokes []Stroke
	markers []Marker

	current    []geometry.NormPoint
	inProgress bool

	nextMarkerID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextMarkerID: 1}
}

// BeginStroke starts a new in-progress stroke at the given point, replacing
// any previous pending points.
func (s *Store) BeginStroke(p geometry.NormPoint) {
	s.current = []geometry.NormPoint{p}
	s.inProgress = true
}

// ExtendStroke appends to the in-progress stroke. No-op when no stroke is
// in progress.
func (s *Store) ExtendStroke(p geometry.NormPoint) {
	if !s.inProgress {
		return
	}
	s.current = append(s.current, p)
}

// CommitStroke finalizes the in-progress stroke with the given color and
// width. Strokes with fewer than two points are discarded. The current
// stroke slot is always cleared afterward. Reports whether a stroke was
// appended.
func (s *Store) CommitStroke(c color.NRGBA, width float64) bool {
	committed := false
	if s.inProgress && len(s.current) >= 2 {
		s.strokes = append(s.strokes, Stroke{Points: s.current, Color: c, Width: width})
		committed = true
	}
	s.current = nil
	s.inProgress = false
	return committed
}

// StrokeInProgress reports whether a stroke is currently being drawn.
func (s *Store) StrokeInProgress() bool {
	return s.inProgress
}

// CurrentStroke returns the pending points of the in-progress stroke.
func (s *Store) CurrentStroke() []geometry.NormPoint {
	return s.current
}

// PlaceMarker appends a marker of the given kind and returns it. IDs are
// unique within the session.
func (s *Store) PlaceMarker(p geometry.NormPoint, kind MarkerKind) Marker {
	m := Marker{ID: s.nextMarkerID, Pos: p, Kind: kind}
	s.nextMarkerID++
	s.markers = append(s.markers, m)
	return m
}

// Strokes returns the committed strokes in draw order.
func (s *Store) Strokes() []Stroke {
	return s.strokes
}

// Markers returns the placed markers in draw order.
func (s *Store) Markers() []Marker {
	return s.markers
}

// ClearAll empties the committed strokes and markers. An in-progress stroke
// is left untouched; interaction state is the caller's to reset.
func (s *Store) ClearAll() {
	s.strokes = nil
	s.markers = nil
}
