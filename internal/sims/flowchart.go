package sims

import (
	"math"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("flowchart", NewFlowchart) }

// FlowNode is one box of the flowchart. Col is a fraction of the chart width
// and Row counts down from the top.
type FlowNode struct {
	Label  string
	Detail string
	Shape  sketch.Shape
	Col    float64
	Row    int
}

// FlowEdge joins two nodes by index.
type FlowEdge struct {
	From, To int
	Label    string
}

var flowNodes = []FlowNode{
	{"Start", "Begin with the concept you want students to understand.", sketch.ShapeCircle, 0.5, 0},
	{"Write the objective", "State what learners should be able to do afterwards, using a measurable verb from Bloom's taxonomy.", sketch.ShapeRect, 0.5, 1},
	{"Changes over time?", "Does the concept involve motion, growth, feedback or any quantity that evolves?", sketch.ShapeDiamond, 0.5, 2},
	{"Static diagram", "A labelled figure is enough. Interactivity would add extraneous load without aiding understanding.", sketch.ShapeRect, 0.84, 2},
	{"Learner controls?", "Would letting learners change a parameter reveal a relationship they could not see otherwise?", sketch.ShapeDiamond, 0.5, 3},
	{"Animation", "Show the process unfolding. Add pause and step controls so learners can pace it.", sketch.ShapeRect, 0.16, 3},
	{"Interactive MicroSim", "Expose one to three parameters with sliders, show the response immediately, and keep everything on one canvas.", sketch.ShapeRect, 0.5, 4},
	{"Publish", "Add metadata, a description and a short quiz, then share it with your class.", sketch.ShapeCircle, 0.5, 5},
}

var flowEdges = []FlowEdge{
	{0, 1, ""},
	{1, 2, ""},
	{2, 3, "No"},
	{2, 4, "Yes"},
	{4, 5, "No"},
	{4, 6, "Yes"},
	{3, 7, ""},
	{5, 7, ""},
	{6, 7, ""},
}

const (
	flowTop     = 100.0
	flowRowStep = 100.0
	flowSideMin = 900.0
)

type flowGeom struct {
	chart  sketch.Rect
	nodes  []sketch.Region
	panel  sketch.Rect
	side   bool
	height float64
}

// flowLayout places every node. Wide canvases keep a detail column on the
// right; narrow ones show details in a modal.
func flowLayout(width float64) flowGeom {
	inner := width - 2*margin
	var g flowGeom
	g.side = width >= flowSideMin
	chartW := inner
	if g.side {
		chartW = inner * 0.66
	}
	lastRow := 0
	for _, n := range flowNodes {
		lastRow = max(lastRow, n.Row)
	}
	g.chart = sketch.Rect{X: margin, Y: flowTop - 40, W: chartW, H: float64(lastRow)*flowRowStep + 80}
	boxW := math.Min(190, chartW*0.3)
	for _, n := range flowNodes {
		cx := margin + n.Col*chartW
		cy := flowTop + float64(n.Row)*flowRowStep
		var r sketch.Region
		switch n.Shape {
		case sketch.ShapeCircle:
			r = sketch.CircleRegion(cx, cy, 30)
		case sketch.ShapeDiamond:
			r = sketch.DiamondRegion(cx-boxW/2, cy-38, boxW, 76)
		default:
			r = sketch.RectRegion(cx-boxW/2, cy-25, boxW, 50)
		}
		g.nodes = append(g.nodes, r)
	}
	g.height = g.chart.Bottom() + 30
	if g.side {
		x := g.chart.Right() + 20
		w := width - margin - x
		g.panel = sketch.Rect{X: x, Y: g.chart.Y, W: w, H: detailHeight(w)}
	} else {
		w := math.Min(420, inner)
		g.panel = modalRect(sketch.Rect{W: width, H: g.height}, w, detailHeight(w))
	}
	return g
}

// detailHeight fits the longest node detail in a panel w wide.
func detailHeight(w float64) float64 {
	text := 0.0
	for _, n := range flowNodes {
		text = math.Max(text, sketch.WrappedHeight(n.Detail, w-32))
	}
	return 16 + 26 + text + 12 + sketch.LineHeight + 16
}

// labelLines wraps a node label to fit inside its shape and returns the box
// each line occupies. Circles and diamonds leave room for two lines.
func labelLines(r sketch.Region, label string) ([]string, []sketch.Rect) {
	var maxW float64
	switch r.Shape {
	case sketch.ShapeCircle:
		maxW = 2 * math.Sqrt(r.Radius()*r.Radius()-sketch.LineHeight*sketch.LineHeight)
	case sketch.ShapeDiamond:
		maxW = r.W * (1 - sketch.LineHeight/(r.H/2))
	default:
		maxW = r.W - 12
	}
	lines := sketch.Wrap(label, maxW)
	cx, cy := r.Center()
	y := cy - float64(len(lines)*sketch.LineHeight)/2
	boxes := make([]sketch.Rect, len(lines))
	for i, l := range lines {
		w := sketch.TextWidth(l)
		boxes[i] = sketch.Rect{X: cx - w/2, Y: y, W: w, H: sketch.LineHeight}
		y += sketch.LineHeight
	}
	return lines, boxes
}

// boundary returns where the ray from the centre of r towards (tx, ty)
// leaves r.
func boundary(r sketch.Region, tx, ty float64) (float64, float64) {
	cx, cy := r.Center()
	dx, dy := tx-cx, ty-cy
	l := math.Hypot(dx, dy)
	if l == 0 {
		return cx, cy
	}
	ux, uy := dx/l, dy/l
	hw, hh := r.W/2, r.H/2
	var t float64
	switch r.Shape {
	case sketch.ShapeCircle:
		t = r.Radius()
	case sketch.ShapeDiamond:
		t = 1 / (math.Abs(ux)/hw + math.Abs(uy)/hh)
	default:
		t = math.Inf(1)
		if ux != 0 {
			t = hw / math.Abs(ux)
		}
		if uy != 0 {
			t = math.Min(t, hh/math.Abs(uy))
		}
	}
	return cx + ux*t, cy + uy*t
}

// Flowchart is a clickable decision flowchart with a detail panel.
type Flowchart struct {
	base

	selected sketch.Selection
	hover    int
	pulse    sketch.Phase
	flow     sketch.Phase
	shimmer  *sketch.Shimmer
	geom     flowGeom
}

func NewFlowchart(d Deps) sketch.Sketch {
	s := &Flowchart{
		base:     newBase("flowchart", "Should This Be a MicroSim?", d),
		selected: sketch.NewSelection(),
		hover:    sketch.None,
		pulse:    sketch.Phase{Rate: 0.1, Wrap: 2 * math.Pi},
		flow:     sketch.Phase{Rate: 1},
		shimmer:  sketch.NewShimmer(42),
	}
	s.router = sketch.Router{
		Regions: s.elements,
		Hover:   s.setHover,
		Outside: s.selected.Clear,
	}
	return s
}

// Selected returns the selected node index or sketch.None.
func (s *Flowchart) Selected() int { return s.selected.Get(len(flowNodes)) }

func (s *Flowchart) setHover(el *sketch.Element) {
	s.hover = sketch.None
	if el != nil && el.ID == "node" {
		s.hover = el.Index
	}
}

func (s *Flowchart) elements() []sketch.Element {
	var els []sketch.Element
	open := s.selected.Valid(len(flowNodes))
	if open && !s.geom.side {
		return []sketch.Element{swallow("panel", s.geom.panel)}
	}
	for i, r := range s.geom.nodes {
		els = append(els, sketch.Element{
			ID:     "node",
			Index:  i,
			Region: r,
			Pad:    2,
			Click:  func() { s.selected.Toggle(i) },
		})
	}
	if open {
		els = append(els, swallow("panel", s.geom.panel))
	}
	return els
}

func (s *Flowchart) Resize(width int) int {
	s.width = float64(width)
	s.geom = flowLayout(s.width)
	s.height = s.geom.height
	return int(s.height)
}

func (s *Flowchart) Key(ev sketch.KeyEvent) {
	switch ev.Key {
	case sketch.KeyEscape:
		s.selected.Clear()
	case sketch.KeyTab:
		next := s.selected.Get(len(flowNodes)) + 1
		s.selected.Set(next % len(flowNodes))
	}
}

func (s *Flowchart) Update() {
	s.flow.Advance()
	if s.selected.Valid(len(flowNodes)) {
		s.pulse.Advance()
	}
}

func (s *Flowchart) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Click a step to read about it. Click it again, or anywhere else, to close.")

	for i, e := range flowEdges {
		s.drawEdge(cv, i, e)
	}

	sel := s.selected.Get(len(flowNodes))
	for i, n := range flowNodes {
		if i >= len(g.nodes) {
			break
		}
		r := g.nodes[i]
		fill, stroke, width := sketch.ColorPanel, sketch.ColorBorder, 1.5
		switch {
		case s.selected.Is(i):
			fill = sketch.Mix(sketch.ColorSelected, sketch.ColorPanel, 0.3*s.pulse.Pulse())
			stroke, width = sketch.ColorAccent, 2+2*s.pulse.Pulse()
		case i == s.hover:
			fill, stroke = sketch.ColorHover, sketch.ColorAccent
		}
		sketch.DrawRegion(cv, r, fill, stroke, width)
		lines, boxes := labelLines(r, n.Label)
		for j, l := range lines {
			cx, cy := boxes[j].Center()
			sketch.TextCentered(cv, l, cx, cy, sketch.ColorText)
		}
	}

	if sel != sketch.None {
		s.drawDetail(cv, flowNodes[sel])
	} else if g.side {
		cv.StrokeRect(g.panel, 1, sketch.ColorBorder)
		sketch.TextBlock(cv, "Select a step to see details here.", g.panel.X+16, g.panel.Y+16, g.panel.W-32, sketch.ColorMuted)
	}
}

func (s *Flowchart) drawEdge(cv sketch.Canvas, i int, e FlowEdge) {
	g := s.geom
	if e.From >= len(g.nodes) || e.To >= len(g.nodes) {
		return
	}
	a, b := g.nodes[e.From], g.nodes[e.To]
	bx, by := b.Center()
	ax, ay := a.Center()
	x0, y0 := boundary(a, bx, by)
	x1, y1 := boundary(b, ax, ay)
	col := sketch.Mix(sketch.ColorMuted, sketch.ColorAccent, s.shimmer.At(s.flow.Value(), float64(i)))
	sketch.Arrow(cv, x0, y0, x1, y1, 1.5, col)
	if e.Label != "" {
		mx, my := (x0+x1)/2, (y0+y1)/2
		w := sketch.TextWidth(e.Label) + 8
		cv.FillRect(sketch.Rect{X: mx - w/2, Y: my - 9, W: w, H: 18}, sketch.ColorBackground)
		sketch.TextCentered(cv, e.Label, mx, my, sketch.ColorText)
	}
}

func (s *Flowchart) drawDetail(cv sketch.Canvas, n FlowNode) {
	g := s.geom
	if g.side {
		cv.FillRect(g.panel, sketch.ColorPanel)
		cv.StrokeRect(g.panel, 2, sketch.ColorAccent)
	} else {
		drawPanel(cv, s.bounds(), g.panel)
	}
	x, y, w := g.panel.X+16, g.panel.Y+16, g.panel.W-32
	cv.Text(n.Label, x, y, sketch.ColorAccent)
	y += 26
	y += sketch.TextBlock(cv, n.Detail, x, y, w, sketch.ColorText)
	cv.Text(n.Shape.String()+" step", x, y+12, sketch.ColorMuted)
}
