// Package sketch holds the pieces every MicroSim is built from: geometry and
// hit-testing, the pointer router, selection and animation state, canvas
// drawing helpers, on-canvas controls and the quiz state machine.
//
// Nothing here knows about a window or a GPU. A host feeds pointer and key
// events in, calls Update once per frame, and hands Draw a Canvas.
package sketch

// Sketch is one self-contained interactive widget.
type Sketch interface {
	// Name is the registry key, e.g. "metadata-search".
	Name() string
	// Title is shown in the window caption.
	Title() string
	// Resize recomputes layout for a container width already clamped to
	// [MinWidth, MaxWidth] and returns the canvas height it needs.
	Resize(width int) int
	// Update advances animation by exactly one frame.
	Update()
	// Draw renders the current state. It must not mutate state.
	Draw(cv Canvas)
	// Pointer routes one pointer event.
	Pointer(ev PointerEvent)
	// Key routes one keyboard event.
	Key(ev KeyEvent)
}

// Notice is a transient message shown for a fixed number of frames.
type Notice struct {
	Text string
	Good bool

	// Frames is how long Show keeps a message up. Zero means NoticeFrames.
	Frames int
	frames int
}

// NoticeFrames is the default notice lifetime, three seconds at 60 TPS.
const NoticeFrames = 180

// Show replaces the current message.
func (n *Notice) Show(text string, good bool) {
	n.Text = text
	n.Good = good
	n.frames = n.Frames
	if n.frames <= 0 {
		n.frames = NoticeFrames
	}
}

// Tick counts down one frame.
func (n *Notice) Tick() {
	if n.frames > 0 {
		n.frames--
	}
}

// Visible reports whether the notice should be drawn.
func (n *Notice) Visible() bool { return n.frames > 0 && n.Text != "" }

// Draw paints the notice as a banner along the bottom of area.
func (n *Notice) Draw(cv Canvas, area Rect) {
	if !n.Visible() {
		return
	}
	w := TextWidth(n.Text) + 24
	r := Rect{X: area.X + (area.W-w)/2, Y: area.Bottom() - 40, W: w, H: 28}
	col := ColorBad
	if n.Good {
		col = ColorGood
	}
	cv.FillRect(r, col)
	TextCentered(cv, n.Text, r.X+r.W/2, r.Y+r.H/2, ColorPanel)
}
