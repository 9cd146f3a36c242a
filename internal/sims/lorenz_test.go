package sims

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/olivierh59500/microsims/internal/sketch"
	"github.com/olivierh59500/microsims/internal/sketch/sketchtest"
)

func TestLorenzEulerStep(t *testing.T) {
	l := Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3, Pos: Vec3{X: 1, Y: 1, Z: 1}}
	l.Step(0.01)
	want := Vec3{X: 1, Y: 1.26, Z: 1 - 0.05/3}
	if diff := cmp.Diff(want, l.Pos, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestTrailRingBuffer(t *testing.T) {
	tr := NewTrail(3)
	for i := 1; i <= 5; i++ {
		tr.Push(Vec3{X: float64(i)})
	}
	if tr.Len() != 3 {
		t.Fatalf("Len = %d", tr.Len())
	}
	var got []float64
	for i := 0; i < tr.Len(); i++ {
		got = append(got, tr.At(i).X)
	}
	if diff := cmp.Diff([]float64{3, 4, 5}, got); diff != "" {
		t.Errorf("oldest first (-want +got):\n%s", diff)
	}
	tr.Reset()
	tr.Push(Vec3{X: 9})
	if tr.Len() != 1 || tr.At(0).X != 9 {
		t.Errorf("after reset: len %d first %v", tr.Len(), tr.At(0))
	}
	NewTrail(0).Push(Vec3{})
}

func newExplorer(t *testing.T) (*ParameterExplorer, *fakeExporter) {
	t.Helper()
	d, fx := testDeps()
	s := NewParameterExplorer(d).(*ParameterExplorer)
	s.Resize(800)
	return s, fx
}

func TestExplorerStepsPerFrameAndPause(t *testing.T) {
	s, _ := newExplorer(t)
	for i := 0; i < 4; i++ {
		s.Update()
	}
	if s.Trail.Len() != 20 || s.Frame != 4 {
		t.Fatalf("trail %d frame %d, want 20 and 4", s.Trail.Len(), s.Frame)
	}

	s.Key(sketch.KeyEvent{Key: sketch.KeySpace})
	pos := s.System.Pos
	s.Update()
	if s.System.Pos != pos || s.pause.Label != "Resume" {
		t.Error("Space should pause integration")
	}
	s.Key(sketch.KeyEvent{Key: sketch.KeySpace})

	s.Key(sketch.KeyEvent{Key: sketch.KeyR})
	if s.Trail.Len() != 0 || s.System.Pos != s.Start || s.Frame != 0 {
		t.Error("R should reset the trajectory")
	}
}

func TestExplorerPresetRoundTrip(t *testing.T) {
	s, fx := newExplorer(t)
	s.Key(sketch.KeyEvent{Key: sketch.KeyL})
	if s.notice.Good {
		t.Error("loading before saving should warn")
	}

	s.sigma.Set(12.5)
	sketchtest.Click(s, s.projection.Rect)
	s.Key(sketch.KeyEvent{Key: sketch.KeyS})
	var p Preset
	if err := json.Unmarshal(fx.files[presetFile], &p); err != nil {
		t.Fatal(err)
	}
	if p.Sigma != 12.5 || p.Projection != "x-y" || p.StepsPerFrame != 5 {
		t.Errorf("saved preset %+v", p)
	}

	s.sigma.Set(3)
	s.rho.Set(15)
	s.projection.Select(2)
	for i := 0; i < 3; i++ {
		s.Update()
	}
	s.Key(sketch.KeyEvent{Key: sketch.KeyL})
	if s.System.Sigma != 12.5 || s.System.Rho != 28 || s.Projection != 1 || s.sigma.Value != 12.5 {
		t.Errorf("after load: %+v projection %d", s.System, s.Projection)
	}
	if s.Trail.Len() != 0 {
		t.Error("loading a preset restarts the trajectory")
	}

	// out-of-range values are clamped by the sliders
	s.applyPreset(Preset{Sigma: 99, Rho: -4, Beta: 2, StepsPerFrame: 500, Projection: "bogus"})
	if s.System.Sigma != 30 || s.System.Rho != 0 || s.StepsPerFrame != 50 || s.Projection != 1 {
		t.Errorf("clamped: %+v steps %d projection %d", s.System, s.StepsPerFrame, s.Projection)
	}
}

func TestExplorerDivergenceResets(t *testing.T) {
	s, _ := newExplorer(t)
	s.System.Pos = Vec3{X: 1e7, Y: -1e7, Z: 1e7}
	s.Update()
	if s.System.Pos != s.Start || s.Trail.Len() != 0 {
		t.Errorf("diverged trajectory should reset, pos %+v", s.System.Pos)
	}
	if !s.notice.Visible() {
		t.Error("divergence should raise a notice")
	}
}

func TestExplorerPanZoom(t *testing.T) {
	s, _ := newExplorer(t)
	cx, cy := s.geom.plot.Center()
	s.Pointer(sketchtest.Wheel(cx, cy, 1))
	if math.Abs(s.Zoom-1.1) > 1e-12 {
		t.Errorf("Zoom = %v", s.Zoom)
	}
	for i := 0; i < 100; i++ {
		s.Pointer(sketchtest.Wheel(cx, cy, -1))
	}
	if s.Zoom != MinZoom {
		t.Errorf("Zoom should clamp at %v, got %v", MinZoom, s.Zoom)
	}

	s.Zoom = 1
	scale := s.scale()
	s.Pointer(sketchtest.Press(cx, cy))
	s.Pointer(sketchtest.Move(cx+60, cy))
	s.Pointer(sketchtest.Release(cx+60, cy))
	if math.Abs(s.CamX+60/scale) > 1e-9 || s.CamY != 0 {
		t.Errorf("pan: cam (%v, %v), want (%v, 0)", s.CamX, s.CamY, -60/scale)
	}

	// a second drag starts from its own anchor
	s.Pointer(sketchtest.Press(cx, cy))
	s.Pointer(sketchtest.Release(cx, cy))
	if math.Abs(s.CamX+60/scale) > 1e-9 {
		t.Errorf("press without movement moved the camera to %v", s.CamX)
	}

	// hovering between drags must not leak into the next one
	s.Pointer(sketchtest.Move(cx+200, cy+40))
	s.Pointer(sketchtest.Press(cx, cy))
	s.Pointer(sketchtest.Move(cx+10, cy))
	s.Pointer(sketchtest.Release(cx+10, cy))
	if math.Abs(s.CamX+70/scale) > 1e-9 || s.CamY != 0 {
		t.Errorf("after hover and drag: cam (%v, %v), want (%v, 0)", s.CamX, s.CamY, -70/scale)
	}
}

func TestExplorerDrawsTrailInsidePlot(t *testing.T) {
	s, _ := newExplorer(t)
	for i := 0; i < 60; i++ {
		s.Update()
	}
	var rec sketchtest.Recorder
	s.Draw(&rec)
	if rec.Count("line") < 100 {
		t.Errorf("expected trail segments, got %d lines", rec.Count("line"))
	}
	plot := s.geom.plot
	for _, op := range rec.Ops {
		if op.Kind != "line" || op.Rect.Y < plot.Y {
			continue
		}
		x1, y1 := op.Rect.X+op.Rect.W, op.Rect.Y+op.Rect.H
		if op.Rect.X < plot.X || x1 > plot.Right() || y1 > plot.Bottom() {
			t.Fatalf("segment %+v escapes plot %+v", op.Rect, plot)
		}
	}
}
