package tables

import (
	"testing"

	"github.com/tsawler/gridfold/model"
)

// crossedGrid builds the canonical test layout: one horizontal line
// spanning x 0-150, crossed by verticals at x=50 and x=100.
func crossedGrid() model.Grid {
	return model.Grid{
		Horizontal: []model.GridLine{{Pos: 50, Start: 0, End: 150}},
		Vertical: []model.GridLine{
			{Pos: 50, Start: 0, End: 100},
			{Pos: 100, Start: 0, End: 100},
		},
	}
}

func TestEraseSegmentLocality(t *testing.T) {
	grid := crossedGrid()

	out, changed := Erase(grid, model.Point{X: 75, Y: 50}, false, 5)
	if !changed {
		t.Fatal("Expected erase to apply")
	}

	// Only the lattice unit between the crossings is removed.
	if len(out.Horizontal) != 2 {
		t.Fatalf("Expected 2 remaining fragments, got %d", len(out.Horizontal))
	}
	left, right := out.Horizontal[0], out.Horizontal[1]
	if left.Start != 0 || left.End != 50 {
		t.Errorf("Expected left fragment [0,50], got [%f,%f]", left.Start, left.End)
	}
	if right.Start != 100 || right.End != 150 {
		t.Errorf("Expected right fragment [100,150], got [%f,%f]", right.Start, right.End)
	}
	if left.Pos != 50 || right.Pos != 50 {
		t.Errorf("Expected fragments to keep pos 50, got %f and %f", left.Pos, right.Pos)
	}

	// The verticals are untouched.
	if len(out.Vertical) != 2 {
		t.Errorf("Expected verticals untouched, got %d", len(out.Vertical))
	}
}

func TestEraseSegmentAtEnd(t *testing.T) {
	grid := crossedGrid()

	// Cursor in the last lattice unit: only a left remainder survives.
	out, changed := Erase(grid, model.Point{X: 125, Y: 50}, false, 5)
	if !changed {
		t.Fatal("Expected erase to apply")
	}
	if len(out.Horizontal) != 1 {
		t.Fatalf("Expected 1 remaining fragment, got %d", len(out.Horizontal))
	}
	if l := out.Horizontal[0]; l.Start != 0 || l.End != 100 {
		t.Errorf("Expected fragment [0,100], got [%f,%f]", l.Start, l.End)
	}
}

func TestEraseWholeLine(t *testing.T) {
	grid := crossedGrid()

	out, changed := Erase(grid, model.Point{X: 75, Y: 50}, true, 5)
	if !changed {
		t.Fatal("Expected erase to apply")
	}
	if len(out.Horizontal) != 0 {
		t.Errorf("Expected horizontal line removed entirely, got %d lines", len(out.Horizontal))
	}
}

func TestEraseNoCrossingsRemovesWholeLine(t *testing.T) {
	grid := model.Grid{
		Horizontal: []model.GridLine{{Pos: 50, Start: 0, End: 150}},
	}

	// Segment mode, but no perpendicular line crosses: the segment is
	// the whole line.
	out, changed := Erase(grid, model.Point{X: 75, Y: 50}, false, 5)
	if !changed {
		t.Fatal("Expected erase to apply")
	}
	if len(out.Horizontal) != 0 {
		t.Errorf("Expected whole line removed, got %d lines", len(out.Horizontal))
	}
}

func TestEraseMiss(t *testing.T) {
	grid := crossedGrid()

	out, changed := Erase(grid, model.Point{X: 75, Y: 80}, false, 5)
	if changed {
		t.Fatal("Expected no-op for a miss")
	}
	if len(out.Horizontal) != 1 || len(out.Vertical) != 2 {
		t.Errorf("Expected grid unchanged, got %+v", out)
	}
}

func TestEraseOutsideSpanMisses(t *testing.T) {
	grid := model.Grid{
		Horizontal: []model.GridLine{{Pos: 50, Start: 60, End: 150}},
	}

	// The pointer sits at the line's pos but left of its span.
	_, changed := Erase(grid, model.Point{X: 30, Y: 50}, false, 5)
	if changed {
		t.Error("Expected miss when span does not cover the pointer")
	}
}

func TestErasePicksNearestAcrossAxes(t *testing.T) {
	grid := model.Grid{
		Horizontal: []model.GridLine{{Pos: 50, Start: 0, End: 150}},
		Vertical:   []model.GridLine{{Pos: 70, Start: 0, End: 100}},
	}

	// The pointer is 3px from the horizontal line and 2px from the
	// vertical one: the vertical wins.
	out, changed := Erase(grid, model.Point{X: 72, Y: 53}, true, 10)
	if !changed {
		t.Fatal("Expected erase to apply")
	}
	if len(out.Vertical) != 0 {
		t.Error("Expected vertical line to be erased")
	}
	if len(out.Horizontal) != 1 {
		t.Error("Expected horizontal line untouched")
	}
}

func TestTargetPreviewMatchesErase(t *testing.T) {
	grid := crossedGrid()

	target, ok := Target(grid, model.Point{X: 75, Y: 50}, false, 5)
	if !ok {
		t.Fatal("Expected target within threshold")
	}
	if target.Axis != model.Horizontal || target.LineIndex != 0 {
		t.Errorf("Expected horizontal line 0, got %v line %d", target.Axis, target.LineIndex)
	}
	if target.Start != 50 || target.End != 100 {
		t.Errorf("Expected segment [50,100], got [%f,%f]", target.Start, target.End)
	}
	if target.WholeLine {
		t.Error("Expected segment target, not whole line")
	}

	if _, ok := Target(grid, model.Point{X: 75, Y: 80}, false, 5); ok {
		t.Error("Expected no target beyond threshold")
	}
}
