package sims

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("parameter-space-explorer", NewParameterExplorer) }

// Lorenz system constants
const (
	LorenzDT     = 0.01
	TrailLength  = 3000
	DefaultSigma = 10.0
	DefaultRho   = 28.0
	DefaultBeta  = 8.0 / 3.0
	MinZoom      = 0.25 // Limit zoom out so the attractor stays visible
	MaxZoom      = 8.0
	divergeLimit = 1e6
	presetFile   = "lorenz-preset.json"
)

var projections = []string{"x-z", "x-y", "y-z"}

// Vec3 is a point in phase space
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) finite() bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) || math.Abs(c) > divergeLimit {
			return false
		}
	}
	return true
}

// Lorenz is the integrator state
type Lorenz struct {
	Sigma, Rho, Beta float64
	Pos              Vec3
}

// Step advances one forward Euler step of dt
func (l *Lorenz) Step(dt float64) {
	p := l.Pos
	dx := l.Sigma * (p.Y - p.X)
	dy := p.X*(l.Rho-p.Z) - p.Y
	dz := p.X*p.Y - l.Beta*p.Z
	l.Pos = Vec3{X: p.X + dx*dt, Y: p.Y + dy*dt, Z: p.Z + dz*dt}
}

// Trail is a fixed-capacity ring buffer of visited points
type Trail struct {
	points []Vec3
	start  int
	n      int
}

// NewTrail allocates a trail holding up to capacity points
func NewTrail(capacity int) *Trail {
	return &Trail{points: make([]Vec3, capacity)}
}

// Push appends p, overwriting the oldest point when full
func (t *Trail) Push(p Vec3) {
	if len(t.points) == 0 {
		return
	}
	if t.n < len(t.points) {
		t.points[(t.start+t.n)%len(t.points)] = p
		t.n++
		return
	}
	t.points[t.start] = p
	t.start = (t.start + 1) % len(t.points)
}

// Len returns the number of stored points
func (t *Trail) Len() int { return t.n }

// At returns point i, oldest first
func (t *Trail) At(i int) Vec3 { return t.points[(t.start+i)%len(t.points)] }

// Reset empties the trail
func (t *Trail) Reset() { t.start, t.n = 0, 0 }

// Preset is the JSON document saved with S and loaded with L
type Preset struct {
	Sigma         float64 `json:"sigma"`
	Rho           float64 `json:"rho"`
	Beta          float64 `json:"beta"`
	StepsPerFrame int     `json:"steps_per_frame"`
	Projection    string  `json:"projection"`
	Start         Vec3    `json:"start"`
}

type explorerGeom struct {
	sliders                              []sketch.Rect
	projection, pause, reset, save, load sketch.Rect
	plot                                 sketch.Rect
	height                               float64
}

func explorerLayout(width float64) explorerGeom {
	inner := width - 2*margin
	var g explorerGeom
	const gap = 28.0
	cols := sketch.Columns(inner, 180, gap, 4)
	rows := (4 + cols - 1) / cols
	cells := sketch.Grid(sketch.Rect{X: margin + 8, Y: 96, W: inner - 16, H: float64(rows)*50 - 30}, cols, rows, gap)
	g.sliders = cells[:4]
	y := cells[len(cells)-1].Bottom() + 24
	buttons := sketch.Grid(sketch.Rect{X: margin, Y: y, W: inner, H: 28}, 5, 1, 10)
	g.projection, g.pause, g.reset, g.save, g.load = buttons[0], buttons[1], buttons[2], buttons[3], buttons[4]
	plotH := math.Min(inner*0.75, 560)
	g.plot = sketch.Rect{X: margin, Y: g.projection.Bottom() + 16, W: inner, H: plotH}
	g.height = g.plot.Bottom() + 36
	return g
}

// ParameterExplorer integrates the Lorenz system and plots a 2D projection
// of its trajectory.
type ParameterExplorer struct {
	base
	deps Deps

	System        Lorenz
	Start         Vec3
	Trail         *Trail
	StepsPerFrame int
	Projection    int
	Paused        bool
	Zoom          float64
	CamX, CamY    float64 // Camera pan in phase-space units
	Frame         int

	hue     sketch.Phase
	shimmer *sketch.Shimmer
	panning bool
	prevX   float64
	prevY   float64
	geom    explorerGeom

	sigma, rho, beta, steps *sketch.Slider
	projection              *sketch.Dropdown
	pause, reset            *sketch.Button
	save, load              *sketch.Button
}

// NewParameterExplorer starts at the classic chaotic parameters.
func NewParameterExplorer(d Deps) sketch.Sketch {
	s := &ParameterExplorer{
		base:          newBase("parameter-space-explorer", "Parameter Space Explorer: Lorenz Attractor", d),
		deps:          d,
		System:        Lorenz{Sigma: DefaultSigma, Rho: DefaultRho, Beta: DefaultBeta},
		Start:         Vec3{X: 1, Y: 1, Z: 1},
		Trail:         NewTrail(TrailLength),
		StepsPerFrame: 5,
		Zoom:          1,
		hue:           sketch.Phase{Rate: 0.6, Wrap: 360},
		shimmer:       sketch.NewShimmer(7),
	}
	s.System.Pos = s.Start
	s.sigma = &sketch.Slider{ID: "sigma", Label: "Sigma", Min: 0, Max: 30, Step: 0.1, Value: s.System.Sigma, Format: "%.1f",
		OnChange: func(v float64) { s.System.Sigma = v }}
	s.rho = &sketch.Slider{ID: "rho", Label: "Rho", Min: 0, Max: 60, Step: 0.1, Value: s.System.Rho, Format: "%.1f",
		OnChange: func(v float64) { s.System.Rho = v }}
	s.beta = &sketch.Slider{ID: "beta", Label: "Beta", Min: 0, Max: 10, Step: 0.01, Value: s.System.Beta, Format: "%.2f",
		OnChange: func(v float64) { s.System.Beta = v }}
	s.steps = &sketch.Slider{ID: "steps", Label: "Steps/frame", Min: 1, Max: 50, Step: 1, Value: float64(s.StepsPerFrame),
		OnChange: func(v float64) { s.StepsPerFrame = int(v) }}
	s.projection = &sketch.Dropdown{ID: "projection", Options: projections,
		OnChange: func(i int, _ string) { s.Projection = i; s.CamX, s.CamY = 0, 0 }}
	s.pause = &sketch.Button{ID: "pause", Label: "Pause", OnClick: s.togglePause}
	s.reset = &sketch.Button{ID: "reset", Label: "Reset", OnClick: s.resetTrajectory}
	s.save = &sketch.Button{ID: "save", Label: "Save preset", OnClick: s.savePreset}
	s.load = &sketch.Button{ID: "load", Label: "Load preset", OnClick: s.loadPreset}
	s.controls.Add(s.sigma, s.rho, s.beta, s.steps, s.projection, s.pause, s.reset, s.save, s.load)
	s.router = sketch.Router{Regions: s.elements, Hover: s.controls.SetHover}
	return s
}

func (s *ParameterExplorer) elements() []sketch.Element {
	plot := sketch.Element{
		ID:     "plot",
		Index:  sketch.None,
		Region: sketch.Region{Rect: s.geom.plot},
		Drag:   s.pan,
		Wheel:  s.zoom,
	}
	return append([]sketch.Element{plot}, s.controls.Elements()...)
}

// pan drags the camera. The first call of a drag only records the anchor.
func (s *ParameterExplorer) pan(x, y float64) {
	if s.panning {
		scale := s.scale()
		s.CamX -= (x - s.prevX) / scale
		s.CamY += (y - s.prevY) / scale
	}
	s.panning = true
	s.prevX, s.prevY = x, y
}

func (s *ParameterExplorer) zoom(dy float64) {
	s.Zoom = sketch.Clamp(s.Zoom*math.Pow(1.1, dy), MinZoom, MaxZoom)
}

func (s *ParameterExplorer) togglePause() {
	s.Paused = !s.Paused
	s.syncPause()
}

func (s *ParameterExplorer) syncPause() {
	s.pause.Label = "Pause"
	if s.Paused {
		s.pause.Label = "Resume"
	}
}

// resetTrajectory restarts integration from Start and clears the trail
func (s *ParameterExplorer) resetTrajectory() {
	s.System.Pos = s.Start
	s.Trail.Reset()
	s.hue.Reset()
	s.Frame = 0
}

func (s *ParameterExplorer) preset() Preset {
	return Preset{
		Sigma:         s.System.Sigma,
		Rho:           s.System.Rho,
		Beta:          s.System.Beta,
		StepsPerFrame: s.StepsPerFrame,
		Projection:    projections[s.Projection],
		Start:         s.Start,
	}
}

// savePreset writes the current parameters as JSON
func (s *ParameterExplorer) savePreset() {
	data, err := json.MarshalIndent(s.preset(), "", "  ")
	if err != nil {
		s.log.Error("marshal preset: %v", err)
		return
	}
	s.showResult(s.deps.Export.Download(presetFile, data))
}

// loadPreset reads parameters back. Values outside the slider ranges are
// clamped by the sliders themselves.
func (s *ParameterExplorer) loadPreset() {
	data, err := s.deps.Export.Open(presetFile)
	if err != nil {
		s.log.Warn("load preset: %v", err)
		s.notice.Show("No saved preset to load", false)
		return
	}
	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("parse preset: %v", err)
		s.notice.Show("Preset file is not valid JSON", false)
		return
	}
	s.applyPreset(p)
	s.notice.Show("Preset loaded", true)
}

func (s *ParameterExplorer) applyPreset(p Preset) {
	s.sigma.Set(p.Sigma)
	s.rho.Set(p.Rho)
	s.beta.Set(p.Beta)
	s.steps.Set(float64(p.StepsPerFrame))
	if i := slices.Index(projections, p.Projection); i >= 0 {
		s.projection.Select(i)
	}
	if p.Start.finite() && p.Start != (Vec3{}) {
		s.Start = p.Start
	}
	s.resetTrajectory()
}

func (s *ParameterExplorer) Key(ev sketch.KeyEvent) {
	if s.controls.Key(ev) {
		return
	}
	switch ev.Key {
	case sketch.KeySpace:
		s.togglePause()
	case sketch.KeyR:
		s.resetTrajectory()
	case sketch.KeyS:
		s.savePreset()
	case sketch.KeyL:
		s.loadPreset()
	}
}

func (s *ParameterExplorer) Pointer(ev sketch.PointerEvent) {
	// panning state only survives while the plot holds the drag
	if !s.router.Captured() {
		s.panning = false
	}
	s.router.Dispatch(ev)
}

func (s *ParameterExplorer) Resize(width int) int {
	s.width = float64(width)
	s.geom = explorerLayout(s.width)
	s.height = s.geom.height
	g := s.geom
	for i, sl := range []*sketch.Slider{s.sigma, s.rho, s.beta, s.steps} {
		sl.Rect = g.sliders[i]
	}
	s.projection.Rect, s.pause.Rect, s.reset.Rect = g.projection, g.pause, g.reset
	s.save.Rect, s.load.Rect = g.save, g.load
	return int(s.height)
}

// Update is called each tick
func (s *ParameterExplorer) Update() {
	s.notice.Tick()
	if s.Paused {
		return
	}
	for i := 0; i < s.StepsPerFrame; i++ {
		s.System.Step(LorenzDT)
		if !s.System.Pos.finite() {
			s.log.Warn("trajectory diverged at sigma=%.2f rho=%.2f beta=%.2f", s.System.Sigma, s.System.Rho, s.System.Beta)
			s.resetTrajectory()
			s.notice.Show("Trajectory diverged and was reset", false)
			return
		}
		s.Trail.Push(s.System.Pos)
	}
	s.Frame++
	s.hue.Advance()
}

// project picks the two phase-space axes shown on screen
func (s *ParameterExplorer) project(v Vec3) (float64, float64) {
	switch s.Projection {
	case 1:
		return v.X, v.Y
	case 2:
		return v.Y, v.Z - 25
	default:
		return v.X, v.Z - 25
	}
}

func (s *ParameterExplorer) scale() float64 {
	return s.geom.plot.H / 60 * s.Zoom
}

// worldToScreen maps a phase-space point onto the plot
func (s *ParameterExplorer) worldToScreen(v Vec3) (float64, float64) {
	a, b := s.project(v)
	cx, cy := s.geom.plot.Center()
	k := s.scale()
	return cx + (a-s.CamX)*k, cy - (b-s.CamY)*k
}

func (s *ParameterExplorer) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Space pauses, R resets, S and L save and load a preset. Drag to pan, scroll to zoom.")
	s.controls.Draw(cv)

	cv.FillRect(g.plot, sketch.ColorText)
	n := s.Trail.Len()
	if n > 1 {
		px, py := s.worldToScreen(s.Trail.At(0))
		for i := 1; i < n; i++ {
			x, y := s.worldToScreen(s.Trail.At(i))
			if g.plot.Inset(1).ContainsRect(sketch.Rect{X: min(px, x), Y: min(py, y), W: math.Abs(x - px), H: math.Abs(y - py)}) {
				age := float64(i) / float64(n)
				h := s.hue.Value() + 90*age + 40*s.shimmer.At(float64(s.Frame), float64(i)*0.01)
				cv.Line(px, py, x, y, 1, sketch.HSV(math.Mod(h, 360), 0.7, 0.35+0.6*age))
			}
			px, py = x, y
		}
	}
	if n > 0 {
		hx, hy := s.worldToScreen(s.System.Pos)
		if g.plot.Inset(1).ContainsRect(sketch.Rect{X: hx, Y: hy}) {
			cv.FillCircle(hx, hy, 3, sketch.ColorSelected)
		}
	}
	cv.StrokeRect(g.plot, 1, sketch.ColorBorder)
	p := s.System.Pos
	status := fmt.Sprintf("%s  x=%.2f y=%.2f z=%.2f  zoom %.2fx", projections[s.Projection], p.X, p.Y, p.Z, s.Zoom)
	if s.Paused {
		status += "  PAUSED"
	}
	cv.Text(status, g.plot.X, g.plot.Bottom()+8, sketch.ColorMuted)
	s.notice.Draw(cv, s.bounds())
}
