package sims

import (
	"fmt"
	"math"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("cognitive-load", NewCognitiveLoad) }

// Load is the input to the cognitive load calculator. The three load kinds
// are on a 0-10 scale and Capacity is working memory in the same units.
type Load struct {
	Intrinsic  float64
	Extraneous float64
	Germane    float64
	Capacity   float64
}

// Demand is the sum of the three load kinds.
func (l Load) Demand() float64 { return l.Intrinsic + l.Extraneous + l.Germane }

// Percent is demand as a share of capacity, clamped to [0, 100].
func (l Load) Percent() float64 { return sketch.Percent(l.Demand(), l.Capacity) }

// Overloaded reports whether demand exceeds capacity.
func (l Load) Overloaded() bool { return l.Demand() > l.Capacity }

// GermaneShare is the fraction of demand spent on schema building.
func (l Load) GermaneShare() float64 {
	d := l.Demand()
	if d <= 0 {
		return 0
	}
	return l.Germane / d
}

// Advice is a one-line design recommendation for the current load.
func (l Load) Advice() string {
	switch {
	case l.Overloaded() && l.Extraneous > 0:
		return "Overloaded: cut extraneous load first (split attention, clutter, redundant text)."
	case l.Overloaded():
		return "Overloaded: sequence the material into smaller steps."
	case l.Percent() >= 80:
		return "Near capacity: avoid adding anything that does not support the objective."
	case l.Extraneous > l.Germane:
		return "Room to spare, but more effort goes to presentation than to learning."
	default:
		return "Within capacity with effort directed at learning."
	}
}

var defaultLoad = Load{Intrinsic: 4, Extraneous: 3, Germane: 3, Capacity: 15}

// needleEase is the fraction of the remaining distance the gauge needle
// covers each frame.
const needleEase = 0.08

type cognitiveGeom struct {
	sliders []sketch.Rect
	reset   sketch.Rect
	gauge   sketch.Rect
	bars    sketch.Rect
	advice  sketch.Rect
	height  float64
}

func cognitiveLayout(width float64) cognitiveGeom {
	inner := width - 2*margin
	var g cognitiveGeom
	wide := inner >= 700
	colW := inner
	if wide {
		colW = inner*0.45 - 12
	}
	g.sliders = sketch.Column(margin+8, 100, colW-16, 20, 36, 4)
	last := g.sliders[len(g.sliders)-1]
	g.reset = sketch.Rect{X: margin, Y: last.Bottom() + 20, W: 110, H: 28}

	gaugeTop := 80.0
	gaugeX := margin + inner*0.45 + 12
	gaugeW := inner*0.55 - 12
	if !wide {
		gaugeTop = g.reset.Bottom() + 24
		gaugeX, gaugeW = margin, inner
	}
	gw := math.Min(gaugeW, 420)
	g.gauge = sketch.Rect{X: gaugeX + (gaugeW-gw)/2, Y: gaugeTop, W: gw, H: gw/2 + 20}
	g.bars = sketch.Rect{X: gaugeX, Y: g.gauge.Bottom() + 30, W: gaugeW, H: 26}
	g.advice = sketch.Rect{X: gaugeX, Y: g.bars.Bottom() + 40, W: gaugeW, H: 3 * sketch.LineHeight}
	g.height = math.Max(g.advice.Bottom(), g.reset.Bottom()) + 40
	return g
}

// CognitiveLoad visualises intrinsic, extraneous and germane load against
// working memory capacity.
type CognitiveLoad struct {
	base

	load   Load
	needle float64
	geom   cognitiveGeom

	intrinsic  *sketch.Slider
	extraneous *sketch.Slider
	germane    *sketch.Slider
	capacity   *sketch.Slider
	reset      *sketch.Button
}

func NewCognitiveLoad(d Deps) sketch.Sketch {
	s := &CognitiveLoad{
		base: newBase("cognitive-load", "Cognitive Load Calculator", d),
		load: defaultLoad,
	}
	mk := func(id, label string, hi float64, v *float64) *sketch.Slider {
		return &sketch.Slider{ID: id, Label: label, Min: 0, Max: hi, Step: 0.5, Value: *v, Format: "%.1f",
			OnChange: func(x float64) { *v = x }}
	}
	s.intrinsic = mk("intrinsic", "Intrinsic load", 10, &s.load.Intrinsic)
	s.extraneous = mk("extraneous", "Extraneous load", 10, &s.load.Extraneous)
	s.germane = mk("germane", "Germane load", 10, &s.load.Germane)
	s.capacity = mk("capacity", "Working memory capacity", 30, &s.load.Capacity)
	s.capacity.Min = 1
	s.reset = &sketch.Button{ID: "reset", Label: "Reset", OnClick: s.resetAll}
	s.controls.Add(s.intrinsic, s.extraneous, s.germane, s.capacity, s.reset)
	s.router = sketch.Router{Regions: s.controls.Elements, Hover: s.controls.SetHover}
	return s
}

// Load returns the current slider values.
func (s *CognitiveLoad) Load() Load { return s.load }

// Needle returns the displayed gauge value.
func (s *CognitiveLoad) Needle() float64 { return s.needle }

func (s *CognitiveLoad) resetAll() {
	s.load = defaultLoad
	s.intrinsic.Value = s.load.Intrinsic
	s.extraneous.Value = s.load.Extraneous
	s.germane.Value = s.load.Germane
	s.capacity.Value = s.load.Capacity
	s.needle = 0
}

func (s *CognitiveLoad) Resize(width int) int {
	s.width = float64(width)
	s.geom = cognitiveLayout(s.width)
	s.height = s.geom.height
	for i, sl := range []*sketch.Slider{s.intrinsic, s.extraneous, s.germane, s.capacity} {
		sl.Rect = s.geom.sliders[i]
	}
	s.reset.Rect = s.geom.reset
	return int(s.height)
}

func (s *CognitiveLoad) Update() {
	s.needle += (s.load.Percent() - s.needle) * needleEase
	s.notice.Tick()
}

func (s *CognitiveLoad) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Adjust the three load types and see whether they fit in working memory.")
	s.controls.Draw(cv)
	s.drawGauge(cv)
	s.drawBars(cv)

	col := sketch.ColorText
	if s.load.Overloaded() {
		col = sketch.ColorBad
	}
	sketch.TextBlock(cv, s.load.Advice(), g.advice.X, g.advice.Y, g.advice.W, col)
	s.notice.Draw(cv, s.bounds())
}

func (s *CognitiveLoad) drawGauge(cv sketch.Canvas) {
	g := s.geom.gauge
	cx := g.X + g.W/2
	cy := g.Y + g.W/2
	r := g.W/2 - 10
	const segments = 40
	for i := 0; i < segments; i++ {
		p0 := float64(i) / segments
		p1 := float64(i+1) / segments
		a0, a1 := math.Pi*(1-p0), math.Pi*(1-p1)
		c := sketch.ColorGood
		switch {
		case p0 >= 0.9:
			c = sketch.ColorBad
		case p0 >= 0.7:
			c = sketch.ColorWarn
		}
		cv.Line(cx+r*math.Cos(a0), cy-r*math.Sin(a0), cx+r*math.Cos(a1), cy-r*math.Sin(a1), 10, c)
	}
	a := math.Pi * (1 - sketch.Clamp(s.needle, 0, 100)/100)
	cv.Line(cx, cy, cx+(r-16)*math.Cos(a), cy-(r-16)*math.Sin(a), 3, sketch.ColorText)
	cv.FillCircle(cx, cy, 6, sketch.ColorText)
	label := fmt.Sprintf("%.0f%% of capacity", s.load.Percent())
	if s.load.Overloaded() {
		label = fmt.Sprintf("OVERLOAD (%.1f / %.1f)", s.load.Demand(), s.load.Capacity)
	}
	sketch.TextCentered(cv, label, cx, cy+18, sketch.ColorText)
}

// drawBars shows demand split by type on a bar scaled to capacity.
func (s *CognitiveLoad) drawBars(cv sketch.Canvas) {
	b := s.geom.bars
	cv.FillRect(b, sketch.ColorPanel)
	scale := math.Max(s.load.Capacity, s.load.Demand())
	if scale <= 0 {
		cv.StrokeRect(b, 1, sketch.ColorBorder)
		return
	}
	x := b.X
	for i, v := range []float64{s.load.Intrinsic, s.load.Extraneous, s.load.Germane} {
		w := b.W * v / scale
		cv.FillRect(sketch.Rect{X: x, Y: b.Y, W: w, H: b.H}, sketch.Categorical(i, 3))
		x += w
	}
	capX := b.X + b.W*s.load.Capacity/scale
	cv.Line(capX, b.Y-6, capX, b.Bottom()+6, 2, sketch.ColorText)
	cv.StrokeRect(b, 1, sketch.ColorBorder)
	legend := []string{"intrinsic", "extraneous", "germane"}
	lx := b.X
	for i, l := range legend {
		cv.FillRect(sketch.Rect{X: lx, Y: b.Bottom() + 10, W: 10, H: 10}, sketch.Categorical(i, 3))
		cv.Text(l, lx+14, b.Bottom()+7, sketch.ColorMuted)
		lx += sketch.TextWidth(l) + 34
	}
	cv.Text(fmt.Sprintf("germane share %.0f%%", s.load.GermaneShare()*100), lx, b.Bottom()+7, sketch.ColorMuted)
}
