package sketch

import "testing"

func TestClampWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, MinWidth}, {-20, MinWidth}, {800, 800}, {5000, MaxWidth},
	}
	for _, tt := range tests {
		if got := ClampWidth(tt.in); got != tt.want {
			t.Errorf("ClampWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGridCellsDisjointAndInside(t *testing.T) {
	for w := MinWidth; w <= MaxWidth; w += 37 {
		area := Rect{X: 20, Y: 60, W: float64(w) - 40, H: 400}
		cols := Columns(area.W, 150, 12, 4)
		cells := Grid(area, cols, 4, 12)
		if len(cells) != cols*4 {
			t.Fatalf("width %d: %d cells", w, len(cells))
		}
		for i, a := range cells {
			if !area.ContainsRect(a) {
				t.Errorf("width %d: cell %d %v escapes %v", w, i, a, area)
			}
			for j := i + 1; j < len(cells); j++ {
				if a.Overlaps(cells[j]) {
					t.Errorf("width %d: cells %d and %d overlap", w, i, j)
				}
			}
		}
	}
}

func TestPercentClamps(t *testing.T) {
	if Percent(5, 0) != 0 || Percent(-3, 10) != 0 || Percent(30, 10) != 100 {
		t.Error("Percent should clamp to [0, 100]")
	}
	if RoundPercent(2, 3) != 67 {
		t.Errorf("RoundPercent(2, 3) = %d", RoundPercent(2, 3))
	}
}
