package gridfold_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/tsawler/gridfold"
	"github.com/tsawler/gridfold/model"
	"github.com/tsawler/gridfold/raster"
)

// tableImage draws a 200x200 white image with a 2px black horizontal
// line at y=100 and a 2px black vertical line at x=100: a 2x2 table.
func tableImage(t *testing.T) *raster.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			c := white
			if y == 100 || y == 101 || x == 100 || x == 101 {
				c = black
			}
			img.SetRGBA(x, y, c)
		}
	}
	return raster.FromRGBA(img)
}

func TestFolderDetectsGrid(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	grid, warnings, err := f.Grid()
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if len(grid.Horizontal) != 3 || len(grid.Vertical) != 3 {
		t.Fatalf("Expected 3x3 lines, got %d horizontal %d vertical",
			len(grid.Horizontal), len(grid.Vertical))
	}

	cells, _, err := f.Cells()
	if err != nil {
		t.Fatalf("Cells failed: %v", err)
	}
	if len(cells) != 4 {
		t.Errorf("Expected 4 cells, got %d", len(cells))
	}
}

func TestFolderNoStructureWarning(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f := gridfold.FromBuffer(raster.FromRGBA(img))

	_, warnings, err := f.Grid()
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	found := false
	for _, w := range warnings {
		if w.Code == gridfold.WarnNoStructure {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s warning, got %v", gridfold.WarnNoStructure, warnings)
	}
}

func TestFolderErase(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	edited, changed := f.Erase(gridfold.Point{X: 50, Y: 101}, true)
	if !changed {
		t.Fatal("Expected erase to apply")
	}

	cells, _, err := edited.Cells()
	if err != nil {
		t.Fatalf("Cells failed: %v", err)
	}
	if len(cells) != 2 {
		t.Errorf("Expected 2 cells after erasing the horizontal line, got %d", len(cells))
	}

	// The original folder is untouched.
	cells, _, _ = f.Cells()
	if len(cells) != 4 {
		t.Errorf("Expected original folder to keep 4 cells, got %d", len(cells))
	}
}

func TestFolderEraseMiss(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	same, changed := f.Erase(gridfold.Point{X: 50, Y: 50}, false)
	if changed {
		t.Error("Expected miss far from any line")
	}
	if same != f {
		t.Error("Expected the same folder back on a miss")
	}
}

func TestFolderFold(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	result, warnings, err := f.
		Select(gridfold.Rect{X: 0, Y: 120, Width: 200, Height: 40}).
		Mode(gridfold.Horizontal).
		Smart(false).
		Fold()
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if result.Width != 200 || result.Height != 160 {
		t.Fatalf("Expected 200x160, got %dx%d", result.Width, result.Height)
	}

	// The bottom border tracks the new height; the internal line stays.
	hPos := result.Grid.Positions(model.Horizontal)
	if len(hPos) != 3 {
		t.Fatalf("Expected 3 horizontal lines, got %v", hPos)
	}
	if hPos[0] != 0 || math.Abs(hPos[1]-101) > 2 || hPos[2] != 160 {
		t.Errorf("Expected remapped positions near [0,101,160], got %v", hPos)
	}
}

func TestFolderFoldEmptySelection(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	result, warnings, err := f.Fold()
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if result.Width != 200 || result.Height != 200 {
		t.Errorf("Expected no-op dimensions, got %dx%d", result.Width, result.Height)
	}
	found := false
	for _, w := range warnings {
		if w.Code == gridfold.WarnEmptySelection {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s warning, got %v", gridfold.WarnEmptySelection, warnings)
	}
}

func TestFolderFoldClampsSelection(t *testing.T) {
	f := gridfold.FromBuffer(tableImage(t))

	result, warnings, err := f.
		Select(gridfold.Rect{X: -50, Y: 150, Width: 300, Height: 100}).
		Mode(gridfold.Horizontal).
		Fold()
	if err != nil {
		t.Fatalf("Fold failed: %v", err)
	}
	if result.Height != 150 {
		t.Errorf("Expected height 150 after clamped removal, got %d", result.Height)
	}
	found := false
	for _, w := range warnings {
		if w.Code == gridfold.WarnSelectionClamped {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s warning, got %v", gridfold.WarnSelectionClamped, warnings)
	}
}

func TestDecodeRoundtrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}

	f, err := gridfold.Decode(&encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, _, err := f.Grid(); err != nil {
		t.Errorf("Grid after decode failed: %v", err)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected Must to panic on error")
		}
	}()
	gridfold.Must(gridfold.Decode(bytes.NewReader(nil)))
}
