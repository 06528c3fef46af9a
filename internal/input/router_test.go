package input

import (
	"image/color"
	"math"
	"testing"

	"github.com/hexlab/tacboard/internal/annotation"
	"github.com/hexlab/tacboard/internal/geometry"
)

type fakeTools struct {
	tool  Tool
	color color.NRGBA
}

func (f *fakeTools) ActiveTool() Tool          { return f.tool }
func (f *fakeTools) StrokeColor() color.NRGBA  { return f.color }

// Pillarboxed placement from the 800x600 surface / 300x300 crop scenario.
func testPlacement() (geometry.Placement, bool) {
	return geometry.FitPlacement(800, 600, 300, 300)
}

func newTestRouter(tool Tool) (*Router, *annotation.Store, *fakeTools) {
	store := annotation.NewStore()
	tools := &fakeTools{tool: tool, color: color.NRGBA{G: 255, A: 255}}
	return NewRouter(store, tools, testPlacement), store, tools
}

func TestPenGestureCommitsStroke(t *testing.T) {
	r, store, _ := newTestRouter(ToolPen)
	r.PointerDown(400, 300)
	r.PointerMove(460, 360)
	r.PointerUp()

	strokes := store.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	p0 := strokes[0].Points[0]
	if math.Abs(p0.X-0.5) > 1e-9 || math.Abs(p0.Y-0.5) > 1e-9 {
		t.Errorf("first point = %+v, want (0.5, 0.5)", p0)
	}
	p1 := strokes[0].Points[1]
	if math.Abs(p1.X-0.6) > 1e-9 || math.Abs(p1.Y-0.6) > 1e-9 {
		t.Errorf("second point = %+v, want (0.6, 0.6)", p1)
	}
	if strokes[0].Width != DefaultStrokeWidth {
		t.Errorf("width = %v, want %v", strokes[0].Width, DefaultStrokeWidth)
	}
}

func TestTapWithoutMoveLeavesNoStroke(t *testing.T) {
	r, store, _ := newTestRouter(ToolPen)
	r.PointerDown(400, 300)
	r.PointerUp()
	if len(store.Strokes()) != 0 {
		t.Fatal("single-point stroke was committed")
	}
}

func TestMarkerToolPlacesSingleDangerMarker(t *testing.T) {
	r, store, _ := newTestRouter(ToolMarker)
	r.PointerDown(400, 300)
	r.PointerMove(500, 300) // marker tool ignores moves
	r.PointerUp()

	markers := store.Markers()
	if len(markers) != 1 {
		t.Fatalf("markers = %d, want 1", len(markers))
	}
	if markers[0].Kind != annotation.MarkerDanger {
		t.Errorf("kind = %v, want danger", markers[0].Kind)
	}
	if math.Abs(markers[0].Pos.X-0.5) > 1e-9 || math.Abs(markers[0].Pos.Y-0.5) > 1e-9 {
		t.Errorf("marker at %+v, want (0.5, 0.5)", markers[0].Pos)
	}
}

func TestPillarboxCoordinatesStoredUnclamped(t *testing.T) {
	r, store, _ := newTestRouter(ToolPen)
	// x=40 is inside the left pillarbox bar (placement offset is 100).
	r.PointerDown(40, 300)
	r.PointerMove(400, 300)
	r.PointerUp()

	strokes := store.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	if x := strokes[0].Points[0].X; x >= 0 {
		t.Errorf("bar point X = %v, want negative (no clamping)", x)
	}
}

func TestToolSwitchMidGestureStopsExtension(t *testing.T) {
	r, store, tools := newTestRouter(ToolPen)
	r.PointerDown(400, 300)
	tools.tool = ToolMarker
	r.PointerMove(460, 360)
	r.PointerUp()
	// The down point alone is below the commit threshold.
	if len(store.Strokes()) != 0 {
		t.Fatal("stroke extended after tool switch")
	}
}

func TestDegeneratePlacementDropsEvents(t *testing.T) {
	store := annotation.NewStore()
	tools := &fakeTools{tool: ToolPen}
	r := NewRouter(store, tools, func() (geometry.Placement, bool) {
		return geometry.Placement{}, false
	})
	r.PointerDown(10, 10)
	r.PointerMove(20, 20)
	r.PointerUp()
	if store.StrokeInProgress() || len(store.Strokes()) != 0 {
		t.Fatal("events were not dropped under degenerate placement")
	}
}

func TestPointerLeaveCommits(t *testing.T) {
	r, store, _ := newTestRouter(ToolPen)
	r.PointerDown(400, 300)
	r.PointerMove(430, 330)
	r.PointerLeave()
	if len(store.Strokes()) != 1 {
		t.Fatal("leave did not commit the stroke")
	}
	if store.StrokeInProgress() {
		t.Fatal("gesture survived pointer leave")
	}
}
