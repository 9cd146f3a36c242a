package sims

import (
	"fmt"
	"strings"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("visual-description-checklist", NewDescriptionChecklist) }

// ChecklistCategory is a named group of items.
type ChecklistCategory struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// Checklist holds the categories and which items are ticked.
type Checklist struct {
	Title      string              `yaml:"title"`
	Categories []ChecklistCategory `yaml:"categories"`

	checked [][]bool
}

func (c *Checklist) init() {
	c.checked = make([][]bool, len(c.Categories))
	for i, cat := range c.Categories {
		c.checked[i] = make([]bool, len(cat.Items))
	}
}

// Checked reports whether item i of category cat is ticked. Stale indices
// read as unticked.
func (c *Checklist) Checked(cat, i int) bool {
	if cat < 0 || cat >= len(c.checked) || i < 0 || i >= len(c.checked[cat]) {
		return false
	}
	return c.checked[cat][i]
}

// Set ticks or unticks one item.
func (c *Checklist) Set(cat, i int, v bool) {
	if cat < 0 || cat >= len(c.checked) || i < 0 || i >= len(c.checked[cat]) {
		return
	}
	c.checked[cat][i] = v
}

// Count returns ticked and total items in one category.
func (c *Checklist) Count(cat int) (done, total int) {
	if cat < 0 || cat >= len(c.checked) {
		return 0, 0
	}
	for _, v := range c.checked[cat] {
		if v {
			done++
		}
	}
	return done, len(c.checked[cat])
}

// Overall returns ticked and total items across every category.
func (c *Checklist) Overall() (done, total int) {
	for i := range c.checked {
		d, t := c.Count(i)
		done += d
		total += t
	}
	return done, total
}

// Percent is the rounded overall completion.
func (c *Checklist) Percent() int {
	done, total := c.Overall()
	return sketch.RoundPercent(float64(done), float64(total))
}

// Reset unticks everything.
func (c *Checklist) Reset() {
	for _, row := range c.checked {
		clear(row)
	}
}

// Report is the plain-text summary copied to the clipboard.
func (c *Checklist) Report() string {
	var b strings.Builder
	done, total := c.Overall()
	fmt.Fprintf(&b, "%s: %d/%d (%d%%)\n", c.Title, done, total, c.Percent())
	for ci, cat := range c.Categories {
		d, t := c.Count(ci)
		fmt.Fprintf(&b, "\n%s %d/%d\n", cat.Name, d, t)
		for i, item := range cat.Items {
			mark := " "
			if c.Checked(ci, i) {
				mark = "x"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", mark, item)
		}
	}
	return b.String()
}

const (
	checkRow = 26.0
	checkGap = 14.0
)

type checklistGeom struct {
	progress    sketch.Rect
	reset, copy sketch.Rect
	headers     []sketch.Rect
	items       [][]sketch.Rect
	height      float64
}

// checklistLayout flows categories into as many columns as fit, each
// category going to the currently shortest column.
func checklistLayout(width float64, cats []ChecklistCategory) checklistGeom {
	inner := width - 2*margin
	var g checklistGeom
	buttonW := 110.0
	g.copy = sketch.Rect{X: width - margin - buttonW, Y: 66, W: buttonW, H: 28}
	g.reset = sketch.Rect{X: g.copy.X - 10 - buttonW, Y: 66, W: buttonW, H: 28}
	g.progress = sketch.Rect{X: margin, Y: 70, W: g.reset.X - 20 - margin, H: 20}

	const colGap = 24.0
	cols := sketch.Columns(inner, 380, colGap, 3)
	colW := (inner - colGap*float64(cols-1)) / float64(cols)
	top := 116.0
	ys := make([]float64, cols)
	for i := range ys {
		ys[i] = top
	}
	g.headers = make([]sketch.Rect, len(cats))
	g.items = make([][]sketch.Rect, len(cats))
	for ci, cat := range cats {
		col := 0
		for i := range ys {
			if ys[i] < ys[col] {
				col = i
			}
		}
		x := margin + float64(col)*(colW+colGap)
		g.headers[ci] = sketch.Rect{X: x, Y: ys[col], W: colW, H: checkRow}
		g.items[ci] = sketch.Column(x+8, ys[col]+checkRow+2, colW-8, checkRow, 0, len(cat.Items))
		ys[col] += checkRow + 2 + float64(len(cat.Items))*checkRow + checkGap
	}
	bottom := top
	for _, y := range ys {
		bottom = max(bottom, y)
	}
	g.height = bottom + 40
	return g
}

// DescriptionChecklist scores a MicroSim description against a fixed list of
// quality items.
type DescriptionChecklist struct {
	base
	deps Deps

	list  Checklist
	geom  checklistGeom
	boxes [][]*sketch.Checkbox
	reset *sketch.Button
	copy  *sketch.Button
}

func NewDescriptionChecklist(d Deps) sketch.Sketch {
	var list Checklist
	mustLoadYAML("checklist.yaml", &list)
	return newDescriptionChecklist(d, list)
}

func newDescriptionChecklist(d Deps, list Checklist) *DescriptionChecklist {
	list.init()
	s := &DescriptionChecklist{
		base: newBase("visual-description-checklist", list.Title, d),
		deps: d,
		list: list,
	}
	s.reset = &sketch.Button{ID: "reset", Label: "Reset", OnClick: s.resetAll}
	s.copy = &sketch.Button{ID: "copy", Label: "Copy report", Primary: true, OnClick: s.copyReport}
	s.controls.Add(s.reset, s.copy)
	s.boxes = make([][]*sketch.Checkbox, len(list.Categories))
	for ci, cat := range list.Categories {
		for i, item := range cat.Items {
			box := &sketch.Checkbox{
				ID:       fmt.Sprintf("item-%d-%d", ci, i),
				Label:    item,
				OnChange: func(v bool) { s.list.Set(ci, i, v) },
			}
			s.boxes[ci] = append(s.boxes[ci], box)
			s.controls.Add(box)
		}
	}
	s.router = sketch.Router{Regions: s.controls.Elements, Hover: s.controls.SetHover}
	return s
}

func (s *DescriptionChecklist) resetAll() {
	s.list.Reset()
	for _, row := range s.boxes {
		for _, b := range row {
			b.Checked = false
		}
	}
	s.log.Debug("checklist reset")
}

func (s *DescriptionChecklist) copyReport() {
	s.showResult(s.deps.Export.Copy(s.list.Report()))
}

func (s *DescriptionChecklist) Resize(width int) int {
	s.width = float64(width)
	s.geom = checklistLayout(s.width, s.list.Categories)
	s.height = s.geom.height
	s.reset.Rect, s.copy.Rect = s.geom.reset, s.geom.copy
	for ci, row := range s.boxes {
		for i, b := range row {
			b.Rect = s.geom.items[ci][i]
		}
	}
	return int(s.height)
}

func (s *DescriptionChecklist) Update() { s.notice.Tick() }

func (s *DescriptionChecklist) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Tick each item the description satisfies.")

	pct := s.list.Percent()
	cv.FillRect(g.progress, sketch.ColorPanel)
	bar := g.progress
	bar.W = g.progress.W * float64(pct) / 100
	cv.FillRect(bar, sketch.Mix(sketch.ColorBad, sketch.ColorGood, float64(pct)/100))
	cv.StrokeRect(g.progress, 1, sketch.ColorBorder)
	done, total := s.list.Overall()
	sketch.TextCentered(cv, fmt.Sprintf("%d%% complete (%d/%d)", pct, done, total),
		g.progress.X+g.progress.W/2, g.progress.Y+g.progress.H/2, sketch.ColorText)

	for ci, cat := range s.list.Categories {
		h := g.headers[ci]
		d, t := s.list.Count(ci)
		fill := sketch.ColorHover
		if d == t && t > 0 {
			fill = sketch.Mix(sketch.ColorGood, sketch.ColorPanel, 0.7)
		}
		cv.FillRect(h, fill)
		sketch.TextBlockLine(cv, cat.Name, h.X+8, h, sketch.ColorText)
		count := fmt.Sprintf("%d/%d", d, t)
		cv.Text(count, h.Right()-8-sketch.TextWidth(count), h.Y+(h.H-sketch.LineHeight)/2+2, sketch.ColorText)
	}
	s.controls.Draw(cv)
	s.notice.Draw(cv, s.bounds())
}
