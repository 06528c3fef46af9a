package annotation

import (
	"image/color"
	"testing"

	"github.com/hexlab/tacboard/internal/geometry"
)

var red = color.NRGBA{R: 255, A: 255}

func TestCommitThreshold(t *testing.T) {
	tests := []struct {
		name       string
		extensions int
		want       int
	}{
		{"begin then immediate commit is discarded", 0, 0},
		{"two points commit", 1, 1},
		{"many points commit", 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.BeginStroke(geometry.NormPoint{X: 0.1, Y: 0.1})
			for i := 0; i < tt.extensions; i++ {
				s.ExtendStroke(geometry.NormPoint{X: 0.2 + float64(i)*0.05, Y: 0.2})
			}
			committed := s.CommitStroke(red, 3)
			if got := len(s.Strokes()); got != tt.want {
				t.Errorf("committed strokes = %d, want %d", got, tt.want)
			}
			if committed != (tt.want == 1) {
				t.Errorf("CommitStroke reported %v", committed)
			}
			if s.StrokeInProgress() || s.CurrentStroke() != nil {
				t.Error("current stroke not cleared after commit")
			}
		})
	}
}

func TestExtendWithoutBeginIsNoop(t *testing.T) {
	s := NewStore()
	s.ExtendStroke(geometry.NormPoint{X: 0.5, Y: 0.5})
	if s.StrokeInProgress() {
		t.Fatal("extend without begin started a stroke")
	}
	if s.CommitStroke(red, 3) {
		t.Fatal("commit without begin appended a stroke")
	}
}

func TestCommitRecordsColorAndWidth(t *testing.T) {
	s := NewStore()
	s.BeginStroke(geometry.NormPoint{X: 0, Y: 0})
	s.ExtendStroke(geometry.NormPoint{X: 1, Y: 1})
	blue := color.NRGBA{B: 200, A: 255}
	s.CommitStroke(blue, 5)

	strokes := s.Strokes()
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	if strokes[0].Color != blue || strokes[0].Width != 5 {
		t.Errorf("stroke = %+v, want blue width 5", strokes[0])
	}
	if len(strokes[0].Points) != 2 {
		t.Errorf("points = %d, want 2", len(strokes[0].Points))
	}
}

func TestMarkerIDsUnique(t *testing.T) {
	s := NewStore()
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		m := s.PlaceMarker(geometry.NormPoint{X: 0.5, Y: 0.5}, MarkerDanger)
		if seen[m.ID] {
			t.Fatalf("duplicate marker id %d", m.ID)
		}
		seen[m.ID] = true
	}
	if len(s.Markers()) != 10 {
		t.Fatalf("markers = %d, want 10", len(s.Markers()))
	}
}

func TestClearAll(t *testing.T) {
	s := NewStore()
	s.BeginStroke(geometry.NormPoint{})
	s.ExtendStroke(geometry.NormPoint{X: 1})
	s.CommitStroke(red, 3)
	s.PlaceMarker(geometry.NormPoint{X: 0.3, Y: 0.3}, MarkerWard)

	// Start a second stroke and clear while it is pending.
	s.BeginStroke(geometry.NormPoint{X: 0.1})
	s.ExtendStroke(geometry.NormPoint{X: 0.2})
	s.ClearAll()

	if len(s.Strokes()) != 0 || len(s.Markers()) != 0 {
		t.Fatal("collections not emptied")
	}
	// The in-progress stroke is deliberately unaffected by ClearAll.
	if !s.StrokeInProgress() || len(s.CurrentStroke()) != 2 {
		t.Fatal("in-progress stroke was disturbed by ClearAll")
	}
	if !s.CommitStroke(red, 3) {
		t.Fatal("pending stroke failed to commit after ClearAll")
	}
}
