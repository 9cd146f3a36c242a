// Package sketchtest provides a recording Canvas for render tests.
package sketchtest

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/olivierh59500/microsims/internal/sketch"
)

// Op is one recorded draw call.
type Op struct {
	Kind string
	Rect sketch.Rect
	Text string
	Col  color.Color
}

// Recorder implements sketch.Canvas by appending every call to Ops.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) add(kind string, rect sketch.Rect, text string, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: kind, Rect: rect, Text: text, Col: c})
}

func (r *Recorder) Fill(c color.Color) { r.add("fill", sketch.Rect{}, "", c) }

func (r *Recorder) FillRect(rect sketch.Rect, c color.Color) { r.add("rect", rect, "", c) }

func (r *Recorder) StrokeRect(rect sketch.Rect, _ float64, c color.Color) {
	r.add("stroke-rect", rect, "", c)
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c color.Color) {
	r.add("circle", sketch.Rect{X: cx - rad, Y: cy - rad, W: 2 * rad, H: 2 * rad}, "", c)
}

func (r *Recorder) StrokeCircle(cx, cy, rad, _ float64, c color.Color) {
	r.add("stroke-circle", sketch.Rect{X: cx - rad, Y: cy - rad, W: 2 * rad, H: 2 * rad}, "", c)
}

func (r *Recorder) FillDiamond(rect sketch.Rect, c color.Color) { r.add("diamond", rect, "", c) }

func (r *Recorder) StrokeDiamond(rect sketch.Rect, _ float64, c color.Color) {
	r.add("stroke-diamond", rect, "", c)
}

func (r *Recorder) Line(x0, y0, x1, y1, _ float64, c color.Color) {
	r.add("line", sketch.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, "", c)
}

func (r *Recorder) Text(s string, x, y float64, c color.Color) {
	r.add("text", sketch.Rect{X: x, Y: y}, s, c)
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether any drawn string contains sub.
func (r *Recorder) HasText(sub string) bool {
	for _, t := range r.Texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// Count returns how many ops of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) String() string {
	var b strings.Builder
	for _, op := range r.Ops {
		fmt.Fprintf(&b, "%s %v %q\n", op.Kind, op.Rect, op.Text)
	}
	return b.String()
}

// Press returns a press event at (x, y).
func Press(x, y float64) sketch.PointerEvent {
	return sketch.PointerEvent{Kind: sketch.PointerPress, X: x, Y: y}
}

// Move returns a move event at (x, y).
func Move(x, y float64) sketch.PointerEvent {
	return sketch.PointerEvent{Kind: sketch.PointerMove, X: x, Y: y}
}

// Release returns a release event at (x, y).
func Release(x, y float64) sketch.PointerEvent {
	return sketch.PointerEvent{Kind: sketch.PointerRelease, X: x, Y: y}
}

// Wheel returns a wheel event at (x, y).
func Wheel(x, y, dy float64) sketch.PointerEvent {
	return sketch.PointerEvent{Kind: sketch.PointerWheel, X: x, Y: y, WheelY: dy}
}

// Click presses and releases at the centre of r.
func Click(s sketch.Sketch, r sketch.Rect) {
	cx, cy := r.Center()
	s.Pointer(Press(cx, cy))
	s.Pointer(Release(cx, cy))
}

// Type sends runes to s.
func Type(s sketch.Sketch, text string) {
	s.Key(sketch.KeyEvent{Runes: []rune(text)})
}
