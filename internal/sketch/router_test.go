package sketch

import "testing"

func TestHitTestTopmostWins(t *testing.T) {
	els := []Element{
		{ID: "back", Region: RectRegion(0, 0, 100, 100)},
		{ID: "front", Region: RectRegion(50, 50, 100, 100)},
	}
	tests := []struct {
		x, y float64
		want int
	}{
		{10, 10, 0},
		{60, 60, 1},
		{140, 140, 1},
		{200, 200, -1},
	}
	for _, tt := range tests {
		if got := HitTest(els, tt.x, tt.y); got != tt.want {
			t.Errorf("HitTest(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if got := HitTest(nil, 0, 0); got != -1 {
		t.Errorf("HitTest on empty list = %d, want -1", got)
	}
}

func TestRouterDispatch(t *testing.T) {
	var log []string
	r := &Router{
		Regions: func() []Element {
			return []Element{
				{ID: "a", Region: RectRegion(0, 0, 50, 50), Click: func() { log = append(log, "click a") }},
				{ID: "b", Region: CircleRegion(100, 25, 20), Click: func() { log = append(log, "click b") }},
			}
		},
		Hover: func(el *Element) {
			if el == nil {
				log = append(log, "hover none")
				return
			}
			log = append(log, "hover "+el.ID)
		},
		Outside: func() { log = append(log, "outside") },
	}

	r.Dispatch(PointerEvent{Kind: PointerMove, X: 10, Y: 10})
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 100, Y: 25})
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 300, Y: 300})
	r.Dispatch(PointerEvent{Kind: PointerMove, X: 300, Y: 300})

	want := []string{"hover a", "click b", "outside", "hover none"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRouterCapturesDrag(t *testing.T) {
	var xs []float64
	r := &Router{
		Regions: func() []Element {
			return []Element{{ID: "slider", Region: RectRegion(0, 0, 100, 10), Drag: func(x, _ float64) { xs = append(xs, x) }}}
		},
	}
	r.Dispatch(PointerEvent{Kind: PointerPress, X: 10, Y: 5})
	if !r.Captured() {
		t.Fatal("press on a draggable element should capture")
	}
	// Moves outside the region still reach the captured element.
	r.Dispatch(PointerEvent{Kind: PointerMove, X: 150, Y: 80})
	r.Dispatch(PointerEvent{Kind: PointerRelease, X: 150, Y: 80})
	r.Dispatch(PointerEvent{Kind: PointerMove, X: 20, Y: 5})
	if r.Captured() {
		t.Error("release should end the capture")
	}
	if len(xs) != 2 || xs[0] != 10 || xs[1] != 150 {
		t.Errorf("drag positions = %v, want [10 150]", xs)
	}
}

func TestRouterWheelFallback(t *testing.T) {
	var got []string
	r := &Router{
		Regions: func() []Element {
			return []Element{{ID: "list", Region: RectRegion(0, 0, 10, 10), Wheel: func(float64) { got = append(got, "list") }}}
		},
		Wheel: func(float64) { got = append(got, "sketch") },
	}
	r.Dispatch(PointerEvent{Kind: PointerWheel, X: 5, Y: 5, WheelY: 1})
	r.Dispatch(PointerEvent{Kind: PointerWheel, X: 50, Y: 50, WheelY: 1})
	if len(got) != 2 || got[0] != "list" || got[1] != "sketch" {
		t.Errorf("wheel routing = %v", got)
	}
}
