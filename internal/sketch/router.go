package sketch

// Element is a Region plus identity and the actions it triggers.
type Element struct {
	ID     string
	Index  int // position in the sketch's display list, -1 for controls
	Region Region
	Pad    float64

	Click func()
	Drag  func(x, y float64)
	Wheel func(dy float64)
}

// HitTest returns the index of the topmost element containing (x, y), or -1.
// Elements are declared back to front, so the scan runs in reverse.
func HitTest(elements []Element, x, y float64) int {
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i].Region.Contains(x, y, elements[i].Pad) {
			return i
		}
	}
	return -1
}

// Router maps pointer events onto element actions. Regions is called for
// every event so hit-testing always sees the current layout.
type Router struct {
	Regions func() []Element
	Hover   func(el *Element)
	Outside func()
	Wheel   func(dy float64)

	captured *Element
}

// Captured reports whether a drag is in progress.
func (r *Router) Captured() bool { return r.captured != nil }

// Dispatch routes one event and returns the element that received it.
func (r *Router) Dispatch(ev PointerEvent) *Element {
	if r.captured != nil {
		switch ev.Kind {
		case PointerMove:
			r.captured.Drag(ev.X, ev.Y)
			return r.captured
		case PointerRelease:
			el := r.captured
			r.captured = nil
			return el
		}
	}

	var elements []Element
	if r.Regions != nil {
		elements = r.Regions()
	}
	var hit *Element
	if i := HitTest(elements, ev.X, ev.Y); i >= 0 {
		hit = &elements[i]
	}

	switch ev.Kind {
	case PointerMove:
		if r.Hover != nil {
			r.Hover(hit)
		}
	case PointerPress:
		switch {
		case hit == nil:
			if r.Outside != nil {
				r.Outside()
			}
		case hit.Drag != nil:
			r.captured = hit
			hit.Drag(ev.X, ev.Y)
		case hit.Click != nil:
			hit.Click()
		}
	case PointerWheel:
		switch {
		case hit != nil && hit.Wheel != nil:
			hit.Wheel(ev.WheelY)
		case r.Wheel != nil:
			r.Wheel(ev.WheelY)
		}
	}
	return hit
}
