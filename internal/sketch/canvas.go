package sketch

import "image/color"

// Canvas is the drawing surface a Render Pass paints on. Text is positioned
// by its top-left corner.
type Canvas interface {
	Fill(c color.Color)
	FillRect(r Rect, c color.Color)
	StrokeRect(r Rect, width float64, c color.Color)
	FillCircle(cx, cy, radius float64, c color.Color)
	StrokeCircle(cx, cy, radius, width float64, c color.Color)
	FillDiamond(r Rect, c color.Color)
	StrokeDiamond(r Rect, width float64, c color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
}

// DrawRegion fills and outlines g according to its shape. A nil colour skips
// that part.
func DrawRegion(cv Canvas, g Region, fill, stroke color.Color, width float64) {
	switch g.Shape {
	case ShapeCircle:
		cx, cy := g.Center()
		if fill != nil {
			cv.FillCircle(cx, cy, g.Radius(), fill)
		}
		if stroke != nil {
			cv.StrokeCircle(cx, cy, g.Radius(), width, stroke)
		}
	case ShapeDiamond:
		if fill != nil {
			cv.FillDiamond(g.Rect, fill)
		}
		if stroke != nil {
			cv.StrokeDiamond(g.Rect, width, stroke)
		}
	default:
		if fill != nil {
			cv.FillRect(g.Rect, fill)
		}
		if stroke != nil {
			cv.StrokeRect(g.Rect, width, stroke)
		}
	}
}

// TextCentered draws s centred on (cx, cy).
func TextCentered(cv Canvas, s string, cx, cy float64, c color.Color) {
	cv.Text(s, cx-TextWidth(s)/2, cy-LineHeight/2+2, c)
}

// TextBlock draws s wrapped to maxWidth and returns the height used.
func TextBlock(cv Canvas, s string, x, y, maxWidth float64, c color.Color) float64 {
	lines := Wrap(s, maxWidth)
	for i, l := range lines {
		cv.Text(l, x, y+float64(i*LineHeight), c)
	}
	return float64(len(lines) * LineHeight)
}

// Arrow draws a line with a small head at (x1, y1).
func Arrow(cv Canvas, x0, y0, x1, y1, width float64, c color.Color) {
	cv.Line(x0, y0, x1, y1, width, c)
	dx, dy := x1-x0, y1-y0
	l := hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l, dy/l
	const head = 8.0
	cv.Line(x1, y1, x1-head*(ux-uy*0.5), y1-head*(uy+ux*0.5), width, c)
	cv.Line(x1, y1, x1-head*(ux+uy*0.5), y1-head*(uy-ux*0.5), width, c)
}
