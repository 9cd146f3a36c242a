package sketch

import "math"

// Supported container widths. Anything outside is clamped so layouts never
// degenerate.
const (
	MinWidth = 480
	MaxWidth = 1400
)

// ClampWidth clamps a container width into [MinWidth, MaxWidth].
func ClampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percent returns part/whole as a percentage clamped to [0, 100]. A zero
// whole yields zero.
func Percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return Clamp(part/whole*100, 0, 100)
}

// RoundPercent is Percent rounded to the nearest integer.
func RoundPercent(part, whole float64) int {
	return int(math.Round(Percent(part, whole)))
}

// Grid splits area into cols x rows cells separated by gap.
func Grid(area Rect, cols, rows int, gap float64) []Rect {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cw := math.Max(0, (area.W-gap*float64(cols-1))/float64(cols))
	ch := math.Max(0, (area.H-gap*float64(rows-1))/float64(rows))
	cells := make([]Rect, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, Rect{
				X: area.X + float64(c)*(cw+gap),
				Y: area.Y + float64(r)*(ch+gap),
				W: cw,
				H: ch,
			})
		}
	}
	return cells
}

// Column stacks n rows of height h starting at (x, y).
func Column(x, y, w, h, gap float64, n int) []Rect {
	rows := make([]Rect, n)
	for i := range rows {
		rows[i] = Rect{X: x, Y: y + float64(i)*(h+gap), W: w, H: h}
	}
	return rows
}

// Columns picks how many columns of at least minCell pixels fit in width.
func Columns(width, minCell, gap float64, maxCols int) int {
	n := int((width + gap) / (minCell + gap))
	if n < 1 {
		n = 1
	}
	if maxCols > 0 && n > maxCols {
		n = maxCols
	}
	return n
}
