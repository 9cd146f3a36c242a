package sims

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("evaluation-rubric-builder", NewRubricBuilder) }

// Criterion is one weighted rubric row. Weight is a whole percentage.
type Criterion struct {
	ID     string
	Name   string
	Weight int
}

// Rubric is an ordered list of weighted criteria.
type Rubric struct {
	Criteria []Criterion
}

// MaxCriteria is the number of rows the builder shows.
const MaxCriteria = 8

// Add appends a criterion and reports whether there was room.
func (r *Rubric) Add(name string, weight int) bool {
	if len(r.Criteria) >= MaxCriteria {
		return false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Criterion %d", len(r.Criteria)+1)
	}
	weight = max(0, min(weight, 100))
	r.Criteria = append(r.Criteria, Criterion{ID: uuid.NewString(), Name: name, Weight: weight})
	return true
}

// Remove deletes the criterion at i. Out-of-range indices are ignored.
func (r *Rubric) Remove(i int) {
	if i < 0 || i >= len(r.Criteria) {
		return
	}
	r.Criteria = append(r.Criteria[:i], r.Criteria[i+1:]...)
}

// Adjust nudges the weight at i by delta, clamped to [0, 100].
func (r *Rubric) Adjust(i, delta int) {
	if i < 0 || i >= len(r.Criteria) {
		return
	}
	r.Criteria[i].Weight = max(0, min(r.Criteria[i].Weight+delta, 100))
}

// Total sums the weights.
func (r *Rubric) Total() int {
	t := 0
	for _, c := range r.Criteria {
		t += c.Weight
	}
	return t
}

// AutoBalance sets every weight to 100/N and hands the remainder out one
// point at a time from the top, so the total is exactly 100.
func (r *Rubric) AutoBalance() {
	n := len(r.Criteria)
	if n == 0 {
		return
	}
	each, rem := 100/n, 100%n
	for i := range r.Criteria {
		r.Criteria[i].Weight = each
		if i < rem {
			r.Criteria[i].Weight++
		}
	}
}

// Markdown renders the rubric as a table.
func (r *Rubric) Markdown(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n| Criterion | Weight |\n|---|---:|\n", title)
	for _, c := range r.Criteria {
		fmt.Fprintf(&b, "| %s | %d%% |\n", strings.ReplaceAll(c.Name, "|", "\\|"), c.Weight)
	}
	fmt.Fprintf(&b, "| **Total** | **%d%%** |\n", r.Total())
	return b.String()
}

const (
	rubricRowTop    = 170.0
	rubricRowHeight = 40.0
	rubricRowGap    = 6.0
)

type rubricGeom struct {
	name, weight, add    sketch.Rect
	balance, clear, save sketch.Rect
	rows                 []sketch.Rect
	removes              []sketch.Rect
	total                sketch.Rect
	height               float64
}

func rubricLayout(width float64) rubricGeom {
	inner := width - 2*margin
	var g rubricGeom
	top := sketch.Grid(sketch.Rect{X: margin, Y: 80, W: inner, H: 28}, 3, 1, 24)
	g.name, g.weight, g.add = top[0], top[1], top[2]
	g.weight.X += 8
	g.weight.W -= 16
	g.rows = sketch.Column(margin, rubricRowTop, inner, rubricRowHeight, rubricRowGap, MaxCriteria)
	for _, r := range g.rows {
		g.removes = append(g.removes, sketch.Rect{X: r.Right() - 36, Y: r.Y + 8, W: 24, H: r.H - 16})
	}
	last := g.rows[len(g.rows)-1]
	bottom := sketch.Grid(sketch.Rect{X: margin, Y: last.Bottom() + 20, W: inner, H: 30}, 4, 1, 16)
	g.total, g.balance, g.clear, g.save = bottom[0], bottom[1], bottom[2], bottom[3]
	g.height = g.save.Bottom() + 50
	return g
}

// RubricBuilder assembles a weighted evaluation rubric.
type RubricBuilder struct {
	base
	deps Deps

	rubric Rubric
	hover  int
	geom   rubricGeom

	name    *sketch.TextInput
	weight  *sketch.Slider
	add     *sketch.Button
	balance *sketch.Button
	clear   *sketch.Button
	save    *sketch.Button
}

// NewRubricBuilder starts with an empty rubric.
func NewRubricBuilder(d Deps) sketch.Sketch {
	s := &RubricBuilder{
		base:  newBase("evaluation-rubric-builder", "Evaluation Rubric Builder", d),
		deps:  d,
		hover: sketch.None,
	}
	s.name = &sketch.TextInput{ID: "name", Label: "Criterion", Placeholder: "e.g. Scientific accuracy", MaxLen: 48,
		OnSubmit: func(string) { s.addCriterion() }}
	s.weight = &sketch.Slider{ID: "weight", Label: "Weight", Min: 0, Max: 100, Step: 5, Value: 25, Format: "%.0f%%"}
	s.add = &sketch.Button{ID: "add", Label: "Add criterion", Primary: true, OnClick: s.addCriterion}
	s.balance = &sketch.Button{ID: "balance", Label: "Auto-Balance", OnClick: s.rubric.AutoBalance}
	s.clear = &sketch.Button{ID: "clear", Label: "Clear all", OnClick: func() { s.rubric.Criteria = nil }}
	s.save = &sketch.Button{ID: "export", Label: "Export Markdown", OnClick: s.exportMarkdown}
	s.controls.Add(s.name, s.weight, s.add, s.balance, s.clear, s.save)
	s.router = sketch.Router{
		Regions: s.elements,
		Hover:   s.setHover,
		Outside: s.controls.Blur,
	}
	return s
}

func (s *RubricBuilder) addCriterion() {
	if !s.rubric.Add(s.name.Text, int(s.weight.Value)) {
		s.notice.Show(fmt.Sprintf("A rubric holds at most %d criteria", MaxCriteria), false)
		return
	}
	s.name.SetText("")
}

func (s *RubricBuilder) setHover(el *sketch.Element) {
	s.controls.SetHover(el)
	s.hover = sketch.None
	if el != nil && (el.ID == "row" || el.ID == "remove") {
		s.hover = el.Index
	}
}

func (s *RubricBuilder) elements() []sketch.Element {
	els := s.controls.Elements()
	for i := range s.rubric.Criteria {
		if i >= len(s.geom.rows) {
			break
		}
		els = append(els,
			sketch.Element{ID: "row", Index: i, Region: sketch.Region{Rect: s.geom.rows[i]},
				Wheel: func(dy float64) {
					if dy > 0 {
						s.rubric.Adjust(i, 5)
					} else if dy < 0 {
						s.rubric.Adjust(i, -5)
					}
				}},
			sketch.Element{ID: "remove", Index: i, Region: sketch.Region{Rect: s.geom.removes[i]},
				Click: func() { s.controls.Blur(); s.rubric.Remove(i) }},
		)
	}
	return els
}

func (s *RubricBuilder) Resize(width int) int {
	s.width = float64(width)
	s.geom = rubricLayout(s.width)
	s.height = s.geom.height
	g := s.geom
	s.name.Rect, s.weight.Rect, s.add.Rect = g.name, g.weight, g.add
	s.balance.Rect, s.clear.Rect, s.save.Rect = g.balance, g.clear, g.save
	return int(s.height)
}

func (s *RubricBuilder) Update() {
	s.notice.Tick()
	s.add.Disabled = len(s.rubric.Criteria) >= MaxCriteria
	s.balance.Disabled = len(s.rubric.Criteria) == 0
}

func (s *RubricBuilder) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Weights should add up to 100%. Scroll over a row to fine-tune its weight.")
	s.controls.Draw(cv)

	if len(s.rubric.Criteria) == 0 {
		r := g.rows[0]
		cv.StrokeRect(r, 1, sketch.ColorBorder)
		sketch.TextCentered(cv, "No criteria yet. Name one above and press Add.", r.X+r.W/2, r.Y+r.H/2, sketch.ColorMuted)
	}
	for i, c := range s.rubric.Criteria {
		if i >= len(g.rows) {
			break
		}
		s.drawCriterion(cv, i, c)
	}

	total := s.rubric.Total()
	col := sketch.ColorBad
	if total == 100 {
		col = sketch.ColorGood
	}
	cv.FillRect(g.total, col)
	sketch.TextCentered(cv, fmt.Sprintf("Total: %d%%", total), g.total.X+g.total.W/2, g.total.Y+g.total.H/2, sketch.ColorPanel)
	s.notice.Draw(cv, s.bounds())
}

func (s *RubricBuilder) drawCriterion(cv sketch.Canvas, i int, c Criterion) {
	r := s.geom.rows[i]
	fill := sketch.ColorPanel
	if i == s.hover {
		fill = sketch.ColorHover
	}
	cv.FillRect(r, fill)
	cv.StrokeRect(r, 1, sketch.ColorBorder)
	nameW := r.W * 0.4
	cv.Text(sketch.Truncate(c.Name, nameW-16), r.X+12, r.Y+(r.H-sketch.LineHeight)/2+2, sketch.ColorText)

	bar := sketch.Rect{X: r.X + nameW, Y: r.Y + 12, W: r.W - nameW - 110, H: r.H - 24}
	cv.FillRect(bar, sketch.ColorBackground)
	filled := bar
	filled.W = bar.W * sketch.Clamp(float64(c.Weight)/100, 0, 1)
	cv.FillRect(filled, sketch.Categorical(i, MaxCriteria))
	cv.Text(fmt.Sprintf("%d%%", c.Weight), bar.Right()+10, r.Y+(r.H-sketch.LineHeight)/2+2, sketch.ColorText)

	x := s.geom.removes[i]
	xfill := sketch.ColorBackground
	if i == s.hover && s.controls.Hover() == "remove" {
		xfill = sketch.Mix(sketch.ColorBad, sketch.ColorPanel, 0.6)
	}
	cv.FillRect(x, xfill)
	cx, cy := x.Center()
	cv.Line(cx-5, cy-5, cx+5, cy+5, 2, sketch.ColorBad)
	cv.Line(cx-5, cy+5, cx+5, cy-5, 2, sketch.ColorBad)
}

func (s *RubricBuilder) exportMarkdown() {
	if len(s.rubric.Criteria) == 0 {
		s.notice.Show("Nothing to export yet", false)
		return
	}
	md := s.rubric.Markdown("Evaluation Rubric")
	if t := s.rubric.Total(); t != 100 {
		s.log.Warn("exporting rubric whose weights total %d%%", t)
	}
	s.showResult(s.deps.Export.Download("rubric.md", []byte(md)))
}
