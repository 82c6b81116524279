package model

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	p1 := Point{X: 0, Y: 0}
	p2 := Point{X: 3, Y: 4}
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("Expected distance 5, got %f", d)
	}
}

func TestRectNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"already normal", Rect{X: 10, Y: 20, Width: 30, Height: 40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"negative width", Rect{X: 40, Y: 20, Width: -30, Height: 40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"negative height", Rect{X: 10, Y: 60, Width: 30, Height: -40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
		{"both negative", Rect{X: 40, Y: 60, Width: -30, Height: -40}, Rect{X: 10, Y: 20, Width: 30, Height: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	b := Rect{X: 50, Y: 50, Width: 100, Height: 100}

	got := a.Intersection(b)
	want := Rect{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	c := Rect{X: 200, Y: 200, Width: 10, Height: 10}
	if !a.Intersection(c).IsEmpty() {
		t.Error("Expected empty intersection for disjoint rects")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 20, Width: 10, Height: 10}

	got := a.Union(b)
	want := Rect{X: 0, Y: 0, Width: 30, Height: 30}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(Point{X: 15, Y: 15}) {
		t.Error("Expected rect to contain interior point")
	}
	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Error("Expected rect to contain corner point")
	}
	if r.Contains(Point{X: 35, Y: 15}) {
		t.Error("Expected rect not to contain outside point")
	}
}

func TestGridLineCovers(t *testing.T) {
	l := GridLine{Pos: 50, Start: 10, End: 90}
	if !l.Covers(10) || !l.Covers(50) || !l.Covers(90) {
		t.Error("Expected span endpoints and interior to be covered")
	}
	if l.Covers(9) || l.Covers(91) {
		t.Error("Expected coordinates outside the span not to be covered")
	}
}

func TestGridCloneIndependence(t *testing.T) {
	g := Grid{
		Horizontal: []GridLine{{Pos: 10, Start: 0, End: 100}},
		Vertical:   []GridLine{{Pos: 20, Start: 0, End: 100}},
	}

	c := g.Clone()
	c.Horizontal[0].Pos = 99

	if g.Horizontal[0].Pos != 10 {
		t.Errorf("Expected clone mutation not to affect original, got pos %f", g.Horizontal[0].Pos)
	}
}

func TestGridSortLines(t *testing.T) {
	g := Grid{
		Horizontal: []GridLine{{Pos: 80}, {Pos: 10}, {Pos: 40}},
	}
	g.SortLines()

	want := []float64{10, 40, 80}
	for i, l := range g.Horizontal {
		if l.Pos != want[i] {
			t.Errorf("Expected pos %f at index %d, got %f", want[i], i, l.Pos)
		}
	}
}

func TestDedupPositions(t *testing.T) {
	lines := []GridLine{{Pos: 10}, {Pos: 10.5}, {Pos: 20}, {Pos: 20}, {Pos: 30}}
	got := DedupPositions(lines, 1)

	// 10.5 collapses into 10; the two lines sharing pos 20 both survive
	// (they are fragments of one line, not duplicate detections).
	wantPos := []float64{10, 20, 20, 30}
	if len(got) != len(wantPos) {
		t.Fatalf("Expected %d lines, got %d", len(wantPos), len(got))
	}
	for i, l := range got {
		if math.Abs(l.Pos-wantPos[i]) > 0.001 {
			t.Errorf("Expected pos %f at index %d, got %f", wantPos[i], i, l.Pos)
		}
	}
}
