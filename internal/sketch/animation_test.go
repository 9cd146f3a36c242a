package sketch

import (
	"math"
	"testing"
)

func TestPhaseWraps(t *testing.T) {
	p := Phase{Rate: 0.5, Wrap: 1}
	p.Advance()
	p.Advance()
	p.Advance()
	if math.Abs(p.Value()-0.5) > 1e-9 {
		t.Errorf("Value() = %v, want 0.5", p.Value())
	}
	p.Reset()
	if p.Value() != 0 {
		t.Errorf("Reset left %v", p.Value())
	}
}

func TestProgressCompletesOnce(t *testing.T) {
	p := Progress{Frames: 3}
	var done []bool
	for i := 0; i < 5; i++ {
		done = append(done, p.Advance())
	}
	want := []bool{false, false, true, false, false}
	for i := range want {
		if done[i] != want[i] {
			t.Errorf("Advance #%d = %v, want %v", i, done[i], want[i])
		}
	}
	if p.Ratio() != 1 || !p.Done() {
		t.Errorf("Ratio() = %v, Done() = %v", p.Ratio(), p.Done())
	}
	p.Reset()
	if p.Ratio() != 0 {
		t.Errorf("Ratio after Reset = %v", p.Ratio())
	}
}

func TestEaseInOut(t *testing.T) {
	if EaseInOut(-1) != 0 || EaseInOut(2) != 1 || EaseInOut(0.5) != 0.5 {
		t.Errorf("EaseInOut endpoints or midpoint wrong")
	}
}

func TestNoticeLifetime(t *testing.T) {
	tests := []struct {
		frames int
		want   int
	}{
		{0, NoticeFrames},
		{90, 90},
	}
	for _, tt := range tests {
		n := Notice{Frames: tt.frames}
		n.Show("saved", true)
		shown := 0
		for n.Visible() {
			n.Tick()
			shown++
		}
		if shown != tt.want {
			t.Errorf("Frames %d: visible for %d ticks, want %d", tt.frames, shown, tt.want)
		}
	}
}
