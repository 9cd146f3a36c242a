package sims

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() { register("metadata-search", NewMetadataSearch) }

// Resource is one catalogued MicroSim.
type Resource struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Subject     string   `yaml:"subject" json:"subject"`
	Grade       string   `yaml:"grade" json:"grade"`
	Quality     int      `yaml:"quality" json:"quality"`
	Tags        []string `yaml:"tags" json:"tags"`
	Description string   `yaml:"description" json:"description,omitempty"`
}

// SortKey orders search results.
type SortKey int

const (
	SortOriginal SortKey = iota
	SortTitle
	SortQualityAsc
	SortQualityDesc
)

var sortLabels = []string{"Original order", "Title A-Z", "Quality ascending", "Quality descending"}

const anyOption = "All"

// Criteria filters and orders the resource list. Empty strings and "All"
// match everything.
type Criteria struct {
	Query      string  `json:"query,omitempty"`
	Subject    string  `json:"subject,omitempty"`
	Grade      string  `json:"grade,omitempty"`
	Tag        string  `json:"tag,omitempty"`
	MinQuality int     `json:"min_quality,omitempty"`
	Sort       SortKey `json:"sort"`
}

func matchesOption(want, got string) bool {
	return want == "" || want == anyOption || want == got
}

// Evaluate returns the resources matching c in the requested order. Ties keep
// dataset order.
func Evaluate(records []Resource, c Criteria) []Resource {
	keep := func(r Resource) bool {
		return matchesOption(c.Subject, r.Subject) &&
			matchesOption(c.Grade, r.Grade) &&
			(c.Tag == "" || c.Tag == anyOption || slices.Contains(r.Tags, c.Tag)) &&
			r.Quality >= c.MinQuality &&
			sketch.ContainsFold(c.Query, append([]string{r.Title, r.Description}, r.Tags...)...)
	}
	var order func(a, b Resource) int
	switch c.Sort {
	case SortTitle:
		order = func(a, b Resource) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case SortQualityAsc:
		order = func(a, b Resource) int { return cmp.Compare(a.Quality, b.Quality) }
	case SortQualityDesc:
		order = func(a, b Resource) int { return cmp.Compare(b.Quality, a.Quality) }
	}
	return sketch.FilterSort(records, keep, order)
}

func distinct(records []Resource, field func(Resource) []string) []string {
	out := []string{anyOption}
	seen := map[string]bool{}
	for _, r := range records {
		for _, v := range field(r) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

const (
	searchRowHeight  = 44.0
	searchRowGap     = 6.0
	searchVisible    = 8
	searchListTop    = 190.0
	searchControlsH  = 28.0
	searchControlGap = 16.0
)

type searchGeom struct {
	search, subject, grade       sketch.Rect
	minQuality, tag, order, save sketch.Rect
	list                         sketch.Rect
	rows                         []sketch.Rect
	detail, close                sketch.Rect
	height                       float64
}

// searchLayout is the single source of geometry for drawing and routing.
func searchLayout(width float64) searchGeom {
	inner := width - 2*margin
	var g searchGeom
	row1 := sketch.Grid(sketch.Rect{X: margin, Y: 80, W: inner, H: searchControlsH}, 3, 1, searchControlGap)
	g.search, g.subject, g.grade = row1[0], row1[1], row1[2]
	row2 := sketch.Grid(sketch.Rect{X: margin, Y: 140, W: inner, H: searchControlsH}, 4, 1, searchControlGap)
	g.minQuality, g.tag, g.order, g.save = row2[0], row2[1], row2[2], row2[3]
	g.rows = sketch.Column(margin, searchListTop, inner, searchRowHeight, searchRowGap, searchVisible)
	last := g.rows[len(g.rows)-1]
	g.list = sketch.Rect{X: margin, Y: searchListTop, W: inner, H: last.Bottom() - searchListTop}
	g.height = last.Bottom() + 30
	g.detail = modalRect(sketch.Rect{W: width, H: g.height}, 520, 300)
	g.close = sketch.Rect{X: g.detail.Right() - 100, Y: g.detail.Bottom() - 44, W: 84, H: 30}
	return g
}

// MetadataSearch filters a fixed catalogue of resources.
type MetadataSearch struct {
	base
	deps Deps

	records  []Resource
	criteria Criteria
	results  []Resource
	selected sketch.Selection
	hover    int
	scroll   int
	geom     searchGeom

	search     *sketch.TextInput
	subject    *sketch.Dropdown
	grade      *sketch.Dropdown
	tag        *sketch.Dropdown
	order      *sketch.Dropdown
	minQuality *sketch.Slider
	save       *sketch.Button
}

// NewMetadataSearch loads the embedded catalogue.
func NewMetadataSearch(d Deps) sketch.Sketch {
	var records []Resource
	mustLoadYAML("metadata.yaml", &records)
	return newMetadataSearch(d, records)
}

func newMetadataSearch(d Deps, records []Resource) *MetadataSearch {
	s := &MetadataSearch{
		base:     newBase("metadata-search", "MicroSim Metadata Search", d),
		deps:     d,
		records:  records,
		selected: sketch.NewSelection(),
		hover:    sketch.None,
	}
	s.search = &sketch.TextInput{ID: "search", Label: "Search", Placeholder: "title, description or tag", MaxLen: 40,
		OnChange: func(q string) { s.criteria.Query = q; s.refresh() }}
	s.subject = &sketch.Dropdown{ID: "subject", Label: "Subject",
		Options:  distinct(records, func(r Resource) []string { return []string{r.Subject} }),
		OnChange: func(_ int, v string) { s.criteria.Subject = v; s.refresh() }}
	s.grade = &sketch.Dropdown{ID: "grade", Label: "Grade band",
		Options:  distinct(records, func(r Resource) []string { return []string{r.Grade} }),
		OnChange: func(_ int, v string) { s.criteria.Grade = v; s.refresh() }}
	s.minQuality = &sketch.Slider{ID: "min-quality", Label: "Minimum quality", Min: 0, Max: 100, Step: 5,
		OnChange: func(v float64) { s.criteria.MinQuality = int(v); s.refresh() }}
	s.tag = &sketch.Dropdown{ID: "tag", Label: "Tag",
		Options:  distinct(records, func(r Resource) []string { return r.Tags }),
		OnChange: func(_ int, v string) { s.criteria.Tag = v; s.refresh() }}
	s.order = &sketch.Dropdown{ID: "sort", Label: "Sort", Options: sortLabels,
		OnChange: func(i int, _ string) { s.criteria.Sort = SortKey(i); s.refresh() }}
	s.save = &sketch.Button{ID: "export", Label: "Export JSON", Primary: true, OnClick: s.exportResults}
	s.controls.Add(s.search, s.subject, s.grade, s.minQuality, s.tag, s.order, s.save)

	s.router = sketch.Router{
		Regions: s.elements,
		Hover:   s.setHover,
		Outside: s.closeOrBlur,
		Wheel:   s.scrollBy,
	}
	s.refresh()
	return s
}

func (s *MetadataSearch) refresh() {
	s.results = Evaluate(s.records, s.criteria)
	s.selected.Clear()
	s.scroll = 0
	s.hover = sketch.None
}

func (s *MetadataSearch) maxScroll() int {
	return max(0, len(s.results)-searchVisible)
}

func (s *MetadataSearch) scrollBy(dy float64) {
	if s.selected.Valid(len(s.results)) {
		return
	}
	switch {
	case dy > 0:
		s.scroll--
	case dy < 0:
		s.scroll++
	}
	s.scroll = max(0, min(s.scroll, s.maxScroll()))
}

func (s *MetadataSearch) setHover(el *sketch.Element) {
	s.controls.SetHover(el)
	s.hover = sketch.None
	if el != nil && el.ID == "row" {
		s.hover = el.Index
	}
}

func (s *MetadataSearch) closeOrBlur() {
	if s.selected.Valid(len(s.results)) {
		s.selected.Clear()
		return
	}
	s.controls.Blur()
}

func (s *MetadataSearch) elements() []sketch.Element {
	g := s.geom
	if s.selected.Valid(len(s.results)) {
		return []sketch.Element{
			swallow("detail", g.detail),
			{ID: "close", Index: sketch.None, Region: sketch.Region{Rect: g.close}, Click: s.selected.Clear},
		}
	}
	els := s.controls.Elements()
	for i, r := range g.rows {
		idx := s.scroll + i
		if idx >= len(s.results) {
			break
		}
		els = append(els, sketch.Element{
			ID:     "row",
			Index:  idx,
			Region: sketch.Region{Rect: r},
			Click:  func() { s.selected.Toggle(idx) },
		})
	}
	return els
}

func (s *MetadataSearch) Resize(width int) int {
	s.width = float64(width)
	s.geom = searchLayout(s.width)
	s.height = s.geom.height
	g := s.geom
	s.search.Rect, s.subject.Rect, s.grade.Rect = g.search, g.subject, g.grade
	s.minQuality.Rect = sketch.Rect{X: g.minQuality.X + 8, Y: g.minQuality.Y, W: g.minQuality.W - 16, H: g.minQuality.H}
	s.tag.Rect, s.order.Rect, s.save.Rect = g.tag, g.order, g.save
	s.scroll = min(s.scroll, s.maxScroll())
	return int(s.height)
}

func (s *MetadataSearch) Key(ev sketch.KeyEvent) {
	// Escape leaves the search field before it closes the detail panel.
	if ev.Key == sketch.KeyEscape && s.controls.Focused() == nil && s.selected.Valid(len(s.results)) {
		s.selected.Clear()
		return
	}
	s.controls.Key(ev)
}

func (s *MetadataSearch) Update() { s.notice.Tick() }

func (s *MetadataSearch) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, fmt.Sprintf("%d of %d resources match", len(s.results), len(s.records)))
	s.controls.Draw(cv)

	if len(s.results) == 0 {
		cv.FillRect(g.list, sketch.ColorPanel)
		cv.StrokeRect(g.list, 1, sketch.ColorBorder)
		cx, cy := g.list.Center()
		sketch.TextCentered(cv, "No results. Try a lower minimum quality or a broader search.", cx, cy, sketch.ColorMuted)
	}
	for i, r := range g.rows {
		idx := s.scroll + i
		if idx >= len(s.results) {
			break
		}
		s.drawRow(cv, r, s.results[idx], idx == s.hover)
	}
	if n := len(s.results); n > searchVisible {
		cv.Text(fmt.Sprintf("showing %d-%d of %d, scroll for more", s.scroll+1, s.scroll+searchVisible, n),
			margin, g.list.Bottom()+8, sketch.ColorMuted)
	}

	if i := s.selected.Get(len(s.results)); i != sketch.None {
		s.drawDetail(cv, s.results[i])
	}
	s.notice.Draw(cv, s.bounds())
}

func (s *MetadataSearch) drawRow(cv sketch.Canvas, r sketch.Rect, res Resource, hovered bool) {
	fill := sketch.ColorPanel
	if hovered {
		fill = sketch.ColorHover
	}
	cv.FillRect(r, fill)
	cv.StrokeRect(r, 1, sketch.ColorBorder)
	badge := sketch.Rect{X: r.Right() - 56, Y: r.Y + 8, W: 44, H: r.H - 16}
	cv.FillRect(badge, qualityColor(res.Quality))
	sketch.TextCentered(cv, fmt.Sprint(res.Quality), badge.X+badge.W/2, badge.Y+badge.H/2, sketch.ColorPanel)
	textW := badge.X - r.X - 24
	cv.Text(sketch.Truncate(res.Title, textW), r.X+12, r.Y+6, sketch.ColorText)
	meta := res.Subject + " | " + res.Grade + " | " + strings.Join(res.Tags, ", ")
	cv.Text(sketch.Truncate(meta, textW), r.X+12, r.Y+24, sketch.ColorMuted)
}

func (s *MetadataSearch) drawDetail(cv sketch.Canvas, res Resource) {
	g := s.geom
	drawPanel(cv, s.bounds(), g.detail)
	x, y, w := g.detail.X+20, g.detail.Y+20, g.detail.W-40
	cv.Text(res.Title, x, y, sketch.ColorText)
	y += 24
	cv.Text(fmt.Sprintf("%s, grades %s, quality %d/100", res.Subject, res.Grade, res.Quality), x, y, sketch.ColorMuted)
	y += 28
	y += sketch.TextBlock(cv, res.Description, x, y, w, sketch.ColorText)
	cv.Text("Tags: "+strings.Join(res.Tags, ", "), x, y+12, sketch.ColorMuted)
	(&sketch.Button{ID: "close", Label: "Close", Rect: g.close}).Draw(cv, s.controls.Hover())
}

type searchExport struct {
	Criteria Criteria   `json:"criteria"`
	Count    int        `json:"count"`
	Results  []Resource `json:"results"`
}

func (s *MetadataSearch) exportResults() {
	data, err := json.MarshalIndent(searchExport{Criteria: s.criteria, Count: len(s.results), Results: s.results}, "", "  ")
	if err != nil {
		s.log.Error("marshal results: %v", err)
		return
	}
	s.showResult(s.deps.Export.Download("metadata-search.json", data))
}
