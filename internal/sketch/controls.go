package sketch

import (
	"fmt"
	"image/color"
	"math"
)

// Control is an on-canvas widget: a button, slider, checkbox, dropdown or
// text field. Controls publish their hit regions and raise typed change
// callbacks; they never read sketch state.
type Control interface {
	Elements() []Element
	Draw(cv Canvas, hover string)
}

// Controls groups the widgets of one sketch and tracks hover and keyboard
// focus.
type Controls struct {
	items []Control
	hover string
	focus *TextInput
}

// Add registers controls in draw order.
func (c *Controls) Add(items ...Control) {
	for _, it := range items {
		if t, ok := it.(*TextInput); ok {
			t.group = c
		}
		c.items = append(c.items, it)
	}
}

// Elements returns the hit regions of every control. Clicking anything other
// than a text field drops keyboard focus.
func (c *Controls) Elements() []Element {
	var out []Element
	for _, it := range c.items {
		els := it.Elements()
		if _, isText := it.(*TextInput); !isText {
			for i := range els {
				if click := els[i].Click; click != nil {
					els[i].Click = func() {
						c.Blur()
						click()
					}
				}
			}
		}
		out = append(out, els...)
	}
	return out
}

// Draw renders every control.
func (c *Controls) Draw(cv Canvas) {
	for _, it := range c.items {
		it.Draw(cv, c.hover)
	}
}

// SetHover records the element under the pointer.
func (c *Controls) SetHover(el *Element) {
	if el == nil {
		c.hover = ""
		return
	}
	c.hover = el.ID
}

// Hover returns the hovered element ID.
func (c *Controls) Hover() string { return c.hover }

// Focused returns the text field holding keyboard focus, if any.
func (c *Controls) Focused() *TextInput { return c.focus }

// Blur drops keyboard focus.
func (c *Controls) Blur() {
	if c.focus != nil {
		c.focus.focused = false
	}
	c.focus = nil
}

// Key forwards a key event to the focused text field and reports whether it
// was consumed.
func (c *Controls) Key(ev KeyEvent) bool {
	if c.focus == nil {
		return false
	}
	c.focus.key(ev)
	return true
}

func (c *Controls) setFocus(t *TextInput) {
	if c.focus != nil && c.focus != t {
		c.focus.focused = false
	}
	c.focus = t
	t.focused = true
}

const controlPad = 2

// Button triggers OnClick.
type Button struct {
	ID       string
	Label    string
	Rect     Rect
	Disabled bool
	Primary  bool
	OnClick  func()
}

func (b *Button) Elements() []Element {
	return []Element{{
		ID:     b.ID,
		Index:  None,
		Region: Region{Shape: ShapeRect, Rect: b.Rect},
		Pad:    controlPad,
		Click: func() {
			if !b.Disabled && b.OnClick != nil {
				b.OnClick()
			}
		},
	}}
}

func (b *Button) Draw(cv Canvas, hover string) {
	fill, fg := ColorPanel, ColorText
	switch {
	case b.Disabled:
		fg = ColorMuted
	case b.Primary:
		fill, fg = ColorAccent, ColorPanel
		if hover == b.ID {
			fill = Mix(ColorAccent, ColorText, 0.2)
		}
	case hover == b.ID:
		fill = ColorHover
	}
	cv.FillRect(b.Rect, fill)
	cv.StrokeRect(b.Rect, 1, ColorBorder)
	cx, cy := b.Rect.Center()
	TextCentered(cv, Truncate(b.Label, b.Rect.W-8), cx, cy, fg)
}

// Slider picks a value in [Min, Max] snapped to Step.
type Slider struct {
	ID       string
	Label    string
	Rect     Rect
	Min, Max float64
	Step     float64
	Value    float64
	Format   string // fmt verb for the value, default "%.0f"
	OnChange func(v float64)
}

// Set clamps and snaps v, raising OnChange when the value moves.
func (s *Slider) Set(v float64) {
	v = Clamp(v, s.Min, s.Max)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = Clamp(v, s.Min, s.Max)
	}
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// ValueAt converts a canvas x coordinate into a slider value.
func (s *Slider) ValueAt(x float64) float64 {
	if s.Rect.W <= 0 {
		return s.Min
	}
	t := Clamp((x-s.Rect.X)/s.Rect.W, 0, 1)
	return s.Min + t*(s.Max-s.Min)
}

func (s *Slider) Elements() []Element {
	return []Element{{
		ID:     s.ID,
		Index:  None,
		Region: Region{Shape: ShapeRect, Rect: s.Rect},
		Pad:    6,
		Drag:   func(x, _ float64) { s.Set(s.ValueAt(x)) },
		Wheel: func(dy float64) {
			step := s.Step
			if step <= 0 {
				step = (s.Max - s.Min) / 100
			}
			if dy > 0 {
				s.Set(s.Value + step)
			} else if dy < 0 {
				s.Set(s.Value - step)
			}
		},
	}}
}

func (s *Slider) Draw(cv Canvas, hover string) {
	format := s.Format
	if format == "" {
		format = "%.0f"
	}
	cv.Text(s.Label+": "+fmt.Sprintf(format, s.Value), s.Rect.X, s.Rect.Y-16, ColorText)
	cy := s.Rect.Y + s.Rect.H/2
	cv.FillRect(Rect{X: s.Rect.X, Y: cy - 2, W: s.Rect.W, H: 4}, ColorBorder)
	t := 0.0
	if s.Max > s.Min {
		t = (s.Value - s.Min) / (s.Max - s.Min)
	}
	kx := s.Rect.X + t*s.Rect.W
	cv.FillRect(Rect{X: s.Rect.X, Y: cy - 2, W: kx - s.Rect.X, H: 4}, ColorAccent)
	r := 7.0
	if hover == s.ID {
		r = 9
	}
	cv.FillCircle(kx, cy, r, ColorAccent)
}

// Checkbox toggles a boolean.
type Checkbox struct {
	ID       string
	Label    string
	Rect     Rect
	Checked  bool
	OnChange func(checked bool)
}

// Toggle flips the box and raises OnChange.
func (c *Checkbox) Toggle() {
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c.Checked)
	}
}

func (c *Checkbox) Elements() []Element {
	return []Element{{
		ID:     c.ID,
		Index:  None,
		Region: Region{Shape: ShapeRect, Rect: c.Rect},
		Click:  c.Toggle,
	}}
}

func (c *Checkbox) Draw(cv Canvas, hover string) {
	if hover == c.ID {
		cv.FillRect(c.Rect, ColorHover)
	}
	box := Rect{X: c.Rect.X + 2, Y: c.Rect.Y + (c.Rect.H-14)/2, W: 14, H: 14}
	cv.FillRect(box, ColorPanel)
	cv.StrokeRect(box, 1, ColorMuted)
	if c.Checked {
		cv.FillRect(box.Inset(3), ColorAccent)
	}
	TextBlockLine(cv, c.Label, box.Right()+8, c.Rect, ColorText)
}

// TextBlockLine draws a single truncated label vertically centred in r.
func TextBlockLine(cv Canvas, s string, x float64, r Rect, c color.Color) {
	cv.Text(Truncate(s, r.Right()-x-4), x, r.Y+(r.H-LineHeight)/2+2, c)
}

// Dropdown cycles through Options on click; the wheel steps either way.
type Dropdown struct {
	ID       string
	Label    string
	Rect     Rect
	Options  []string
	Selected int
	OnChange func(i int, option string)
}

// Value returns the selected option, or "" for an empty list.
func (d *Dropdown) Value() string {
	if d.Selected < 0 || d.Selected >= len(d.Options) {
		return ""
	}
	return d.Options[d.Selected]
}

// Select sets the option index, wrapping around the list.
func (d *Dropdown) Select(i int) {
	n := len(d.Options)
	if n == 0 {
		return
	}
	i = ((i % n) + n) % n
	if i == d.Selected {
		return
	}
	d.Selected = i
	if d.OnChange != nil {
		d.OnChange(i, d.Options[i])
	}
}

func (d *Dropdown) Elements() []Element {
	return []Element{{
		ID:     d.ID,
		Index:  None,
		Region: Region{Shape: ShapeRect, Rect: d.Rect},
		Pad:    controlPad,
		Click:  func() { d.Select(d.Selected + 1) },
		Wheel: func(dy float64) {
			if dy > 0 {
				d.Select(d.Selected - 1)
			} else if dy < 0 {
				d.Select(d.Selected + 1)
			}
		},
	}}
}

func (d *Dropdown) Draw(cv Canvas, hover string) {
	if d.Label != "" {
		cv.Text(d.Label, d.Rect.X, d.Rect.Y-16, ColorMuted)
	}
	fill := ColorPanel
	if hover == d.ID {
		fill = ColorHover
	}
	cv.FillRect(d.Rect, fill)
	cv.StrokeRect(d.Rect, 1, ColorBorder)
	TextBlockLine(cv, d.Value(), d.Rect.X+8, Rect{X: d.Rect.X, Y: d.Rect.Y, W: d.Rect.W - 16, H: d.Rect.H}, ColorText)
	cx := d.Rect.Right() - 12
	cy := d.Rect.Y + d.Rect.H/2
	cv.Line(cx-4, cy-2, cx, cy+2, 1.5, ColorMuted)
	cv.Line(cx, cy+2, cx+4, cy-2, 1.5, ColorMuted)
}

// TextInput is a single-line text field. Clicking it takes keyboard focus.
type TextInput struct {
	ID          string
	Label       string
	Rect        Rect
	Text        string
	Placeholder string
	MaxLen      int
	OnChange    func(text string)
	OnSubmit    func(text string)

	focused bool
	group   *Controls
}

// Focused reports whether the field receives keys.
func (t *TextInput) Focused() bool { return t.focused }

// SetText replaces the contents and raises OnChange.
func (t *TextInput) SetText(s string) {
	if t.MaxLen > 0 && len([]rune(s)) > t.MaxLen {
		s = string([]rune(s)[:t.MaxLen])
	}
	if s == t.Text {
		return
	}
	t.Text = s
	if t.OnChange != nil {
		t.OnChange(s)
	}
}

func (t *TextInput) key(ev KeyEvent) {
	switch ev.Key {
	case KeyBackspace:
		r := []rune(t.Text)
		if len(r) > 0 {
			t.SetText(string(r[:len(r)-1]))
		}
	case KeyEnter:
		if t.OnSubmit != nil {
			t.OnSubmit(t.Text)
		}
	case KeyEscape:
		if t.group != nil {
			t.group.Blur()
		} else {
			t.focused = false
		}
	}
	if len(ev.Runes) > 0 {
		t.SetText(t.Text + string(ev.Runes))
	}
}

func (t *TextInput) Elements() []Element {
	return []Element{{
		ID:     t.ID,
		Index:  None,
		Region: Region{Shape: ShapeRect, Rect: t.Rect},
		Click: func() {
			if t.group != nil {
				t.group.setFocus(t)
			} else {
				t.focused = true
			}
		},
	}}
}

func (t *TextInput) Draw(cv Canvas, hover string) {
	if t.Label != "" {
		cv.Text(t.Label, t.Rect.X, t.Rect.Y-16, ColorMuted)
	}
	cv.FillRect(t.Rect, ColorPanel)
	border := ColorBorder
	if t.focused {
		border = ColorAccent
	} else if hover == t.ID {
		border = ColorMuted
	}
	cv.StrokeRect(t.Rect, 1, border)
	inner := Rect{X: t.Rect.X, Y: t.Rect.Y, W: t.Rect.W - 8, H: t.Rect.H}
	if t.Text == "" && !t.focused {
		TextBlockLine(cv, t.Placeholder, t.Rect.X+8, inner, ColorMuted)
		return
	}
	s := t.Text
	if t.focused {
		s += "|"
	}
	// keep the caret visible by dropping leading runes
	r := []rune(s)
	for len(r) > 1 && TextWidth(string(r)) > t.Rect.W-16 {
		r = r[1:]
	}
	TextBlockLine(cv, string(r), t.Rect.X+8, inner, ColorText)
}
