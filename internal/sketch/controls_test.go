package sketch

import "testing"

func route(c *Controls) *Router {
	return &Router{Regions: c.Elements, Hover: c.SetHover, Outside: c.Blur}
}

func TestSliderSnapsAndClamps(t *testing.T) {
	var changes []float64
	s := &Slider{ID: "w", Rect: Rect{X: 100, Y: 0, W: 200, H: 20}, Min: 0, Max: 50, Step: 5, Value: 10,
		OnChange: func(v float64) { changes = append(changes, v) }}
	var c Controls
	c.Add(s)
	r := route(&c)

	r.Dispatch(PointerEvent{Kind: PointerPress, X: 200, Y: 10}) // midpoint
	r.Dispatch(PointerEvent{Kind: PointerMove, X: 900, Y: 10})  // past the end
	r.Dispatch(PointerEvent{Kind: PointerRelease, X: 900, Y: 10})
	r.Dispatch(PointerEvent{Kind: PointerMove, X: 100, Y: 10})

	if s.Value != 50 {
		t.Errorf("Value = %v, want 50", s.Value)
	}
	if len(changes) != 2 || changes[0] != 25 || changes[1] != 50 {
		t.Errorf("changes = %v, want [25 50]", changes)
	}
	r.Dispatch(PointerEvent{Kind: PointerWheel, X: 150, Y: 10, WheelY: -1})
	if s.Value != 45 {
		t.Errorf("wheel down: Value = %v, want 45", s.Value)
	}
}

func TestDropdownCycles(t *testing.T) {
	var picked []string
	d := &Dropdown{ID: "d", Rect: Rect{W: 100, H: 20}, Options: []string{"All", "Physics", "Biology"},
		OnChange: func(_ int, o string) { picked = append(picked, o) }}
	var c Controls
	c.Add(d)
	r := route(&c)
	for i := 0; i < 3; i++ {
		r.Dispatch(PointerEvent{Kind: PointerPress, X: 5, Y: 5})
	}
	if d.Value() != "All" || len(picked) != 3 || picked[1] != "Biology" {
		t.Errorf("Value = %q, picked = %v", d.Value(), picked)
	}
	d.Options = nil
	if d.Value() != "" {
		t.Errorf("empty dropdown Value = %q", d.Value())
	}
}

func TestTextInputFocusAndKeys(t *testing.T) {
	var submitted string
	in := &TextInput{ID: "q", Rect: Rect{W: 100, H: 20}, MaxLen: 5, OnSubmit: func(s string) { submitted = s }}
	cb := &Checkbox{ID: "c", Rect: Rect{Y: 50, W: 100, H: 20}}
	var c Controls
	c.Add(in, cb)
	r := route(&c)

	if c.Key(KeyEvent{Runes: []rune("x")}) {
		t.Fatal("keys should not be consumed without focus")
	}
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 5, Y: 5})
	if !in.Focused() || c.Focused() != in {
		t.Fatal("click should focus the field")
	}
	c.Key(KeyEvent{Runes: []rune("ohms law")})
	c.Key(KeyEvent{Key: KeyBackspace})
	c.Key(KeyEvent{Key: KeyEnter})
	if in.Text != "ohms" || submitted != "ohms" {
		t.Errorf("Text = %q, submitted = %q", in.Text, submitted)
	}
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 5, Y: 55})
	if in.Focused() || !cb.Checked {
		t.Errorf("clicking the checkbox should blur the field and toggle: focused=%v checked=%v", in.Focused(), cb.Checked)
	}
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 5, Y: 5})
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 500, Y: 500})
	if in.Focused() {
		t.Error("click outside should blur")
	}
}

func TestButtonDisabled(t *testing.T) {
	n := 0
	b := &Button{ID: "b", Rect: Rect{W: 50, H: 20}, OnClick: func() { n++ }}
	var c Controls
	c.Add(b)
	r := route(&c)
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 10, Y: 10})
	b.Disabled = true
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 10, Y: 10})
	if n != 1 {
		t.Errorf("clicks = %d, want 1", n)
	}
}
