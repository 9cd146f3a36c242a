package sketch

import "math"

// Phase is a frame-counted accumulator. Advance adds Rate once per frame; when
// Wrap is positive the value wraps into [0, Wrap).
type Phase struct {
	Rate  float64
	Wrap  float64
	value float64
}

// Advance steps the phase by one frame.
func (p *Phase) Advance() {
	p.value += p.Rate
	if p.Wrap > 0 {
		p.value = math.Mod(p.value, p.Wrap)
	}
}

// Value returns the current phase.
func (p *Phase) Value() float64 { return p.value }

// Reset returns the phase to zero.
func (p *Phase) Reset() { p.value = 0 }

// Pulse maps the phase onto [0, 1] with a sine wave.
func (p *Phase) Pulse() float64 {
	return 0.5 + 0.5*math.Sin(p.value)
}

// Progress runs from 0 to 1 over a fixed number of frames.
type Progress struct {
	Frames int
	frame  int
}

// Advance steps one frame and reports whether the run has completed. It
// returns true exactly once, on the frame the count is reached.
func (p *Progress) Advance() bool {
	if p.frame >= p.Frames {
		return false
	}
	p.frame++
	return p.frame == p.Frames
}

// Ratio returns the completed fraction in [0, 1].
func (p *Progress) Ratio() float64 {
	if p.Frames <= 0 {
		return 1
	}
	return Clamp(float64(p.frame)/float64(p.Frames), 0, 1)
}

// Done reports whether the frame count has been reached.
func (p *Progress) Done() bool { return p.frame >= p.Frames }

// Reset rewinds to zero.
func (p *Progress) Reset() { p.frame = 0 }

// EaseInOut is a smoothstep curve used to shape progress ratios.
func EaseInOut(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
