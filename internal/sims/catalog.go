package sims

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/olivierh59500/microsims/internal/sketch"
	"github.com/olivierh59500/microsims/internal/store"
)

func init() { register("misconception-catalog", NewMisconceptionCatalog) }

// Misconception is one catalogued student belief and its correction.
type Misconception struct {
	ID         string `yaml:"id" json:"id"`
	Title      string `yaml:"title" json:"title"`
	Category   string `yaml:"category" json:"category"`
	Belief     string `yaml:"belief" json:"belief"`
	Correction string `yaml:"correction" json:"correction"`
}

// MaxSaved caps the saved shortlist. Saving past it is refused with a notice.
const MaxSaved = 10

const (
	cardRows    = 4
	cardHeight  = 104.0
	cardGap     = 12.0
	cardMinW    = 200.0
	cardGridTop = 130.0
)

type catalogGeom struct {
	category, search, export sketch.Rect
	cols                     int
	cards                    []sketch.Rect
	grid                     sketch.Rect
	modal, toggle, close     sketch.Rect
	height                   float64
}

func catalogLayout(width float64) catalogGeom {
	inner := width - 2*margin
	var g catalogGeom
	top := sketch.Grid(sketch.Rect{X: margin, Y: 80, W: inner, H: 28}, 3, 1, 16)
	g.category, g.search, g.export = top[0], top[1], top[2]
	g.cols = sketch.Columns(inner, cardMinW, cardGap, 4)
	g.grid = sketch.Rect{X: margin, Y: cardGridTop, W: inner, H: cardRows*cardHeight + (cardRows-1)*cardGap}
	g.cards = sketch.Grid(g.grid, g.cols, cardRows, cardGap)
	g.height = g.grid.Bottom() + 40
	g.modal = modalRect(sketch.Rect{W: width, H: g.height}, 560, 300)
	g.close = sketch.Rect{X: g.modal.Right() - 100, Y: g.modal.Bottom() - 44, W: 84, H: 30}
	g.toggle = sketch.Rect{X: g.close.X - 130, Y: g.close.Y, W: 120, H: 30}
	return g
}

// MisconceptionCatalog is a browsable card grid with a persisted shortlist.
type MisconceptionCatalog struct {
	base
	deps Deps

	all      []Misconception
	visible  []Misconception
	category string
	query    string
	scroll   int // in rows
	hover    int
	open     sketch.Selection
	saved    []string
	list     store.SavedList
	geom     catalogGeom

	categoryDD *sketch.Dropdown
	search     *sketch.TextInput
	export     *sketch.Button
	modal      sketch.Controls
	toggle     *sketch.Button
	close      *sketch.Button
}

func NewMisconceptionCatalog(d Deps) sketch.Sketch {
	var all []Misconception
	mustLoadYAML("misconceptions.yaml", &all)
	return newMisconceptionCatalog(d, all)
}

func newMisconceptionCatalog(d Deps, all []Misconception) *MisconceptionCatalog {
	s := &MisconceptionCatalog{
		base:  newBase("misconception-catalog", "Misconception Catalog", d),
		deps:  d,
		all:   all,
		hover: sketch.None,
		open:  sketch.NewSelection(),
		list:  d.Saved("misconception-catalog"),
	}
	cats := []string{anyOption}
	for _, m := range all {
		if !slices.Contains(cats, m.Category) {
			cats = append(cats, m.Category)
		}
	}
	s.categoryDD = &sketch.Dropdown{ID: "category", Label: "Category", Options: cats,
		OnChange: func(_ int, v string) { s.category = v; s.refresh() }}
	s.search = &sketch.TextInput{ID: "search", Label: "Search", Placeholder: "belief or correction", MaxLen: 40,
		OnChange: func(q string) { s.query = q; s.refresh() }}
	s.export = &sketch.Button{ID: "export", Label: "Export saved", Primary: true, OnClick: s.exportSaved}
	s.controls.Add(s.categoryDD, s.search, s.export)

	s.toggle = &sketch.Button{ID: "toggle", OnClick: s.toggleSaved}
	s.close = &sketch.Button{ID: "close", Label: "Close", OnClick: s.open.Clear}
	s.modal.Add(s.toggle, s.close)

	s.router = sketch.Router{
		Regions: s.elements,
		Hover:   s.setHover,
		Outside: s.closeOrBlur,
		Wheel:   s.scrollBy,
	}
	s.loadSaved()
	s.refresh()
	return s
}

// loadSaved reads the shortlist, dropping IDs the catalogue no longer has.
func (s *MisconceptionCatalog) loadSaved() {
	ids, err := s.list.Load()
	if err != nil {
		s.log.Warn("load saved list: %v", err)
		s.notice.Show("Saved list could not be read", false)
		return
	}
	for _, id := range ids {
		if s.find(id) >= 0 && !slices.Contains(s.saved, id) {
			s.saved = append(s.saved, id)
		}
	}
	if dropped := len(ids) - len(s.saved); dropped > 0 {
		s.log.Debug("dropped %d unknown saved IDs", dropped)
	}
}

func (s *MisconceptionCatalog) find(id string) int {
	return slices.IndexFunc(s.all, func(m Misconception) bool { return m.ID == id })
}

// IsSaved reports whether id is on the shortlist.
func (s *MisconceptionCatalog) IsSaved(id string) bool { return slices.Contains(s.saved, id) }

// Saved returns the shortlist in save order.
func (s *MisconceptionCatalog) Saved() []string { return slices.Clone(s.saved) }

func (s *MisconceptionCatalog) toggleSaved() {
	i := s.open.Get(len(s.visible))
	if i == sketch.None {
		return
	}
	id := s.visible[i].ID
	next := slices.Clone(s.saved)
	if k := slices.Index(next, id); k >= 0 {
		next = slices.Delete(next, k, k+1)
	} else {
		if len(next) >= MaxSaved {
			s.notice.Show(fmt.Sprintf("The shortlist holds %d items. Remove one first.", MaxSaved), false)
			return
		}
		next = append(next, id)
	}
	if err := s.list.Save(next); err != nil {
		s.log.Error("save list: %v", err)
		s.notice.Show("Could not update the saved list", false)
		return
	}
	s.saved = next
	s.syncToggle()
}

func (s *MisconceptionCatalog) openCard(i int) {
	s.controls.Blur()
	s.open.Set(i)
	s.syncToggle()
}

func (s *MisconceptionCatalog) syncToggle() {
	s.toggle.Label = "Save"
	if i := s.open.Get(len(s.visible)); i != sketch.None && s.IsSaved(s.visible[i].ID) {
		s.toggle.Label = "Unsave"
	}
}

func (s *MisconceptionCatalog) refresh() {
	s.visible = sketch.FilterSort(s.all, func(m Misconception) bool {
		return matchesOption(s.category, m.Category) &&
			sketch.ContainsFold(s.query, m.Title, m.Belief, m.Correction)
	}, nil)
	s.open.Clear()
	s.scroll = 0
	s.hover = sketch.None
}

func (s *MisconceptionCatalog) maxScroll() int {
	if s.geom.cols == 0 {
		return 0
	}
	rows := (len(s.visible) + s.geom.cols - 1) / s.geom.cols
	return max(0, rows-cardRows)
}

func (s *MisconceptionCatalog) scrollBy(dy float64) {
	if s.open.Valid(len(s.visible)) {
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

func (s *MisconceptionCatalog) setHover(el *sketch.Element) {
	s.controls.SetHover(el)
	s.modal.SetHover(el)
	s.hover = sketch.None
	if el != nil && el.ID == "card" {
		s.hover = el.Index
	}
}

func (s *MisconceptionCatalog) closeOrBlur() {
	if s.open.Valid(len(s.visible)) {
		s.open.Clear()
		return
	}
	s.controls.Blur()
}

// cardAt maps a grid slot onto an index into visible, or None.
func (s *MisconceptionCatalog) cardAt(slot int) int {
	i := s.scroll*s.geom.cols + slot
	if i >= len(s.visible) {
		return sketch.None
	}
	return i
}

func (s *MisconceptionCatalog) elements() []sketch.Element {
	if s.open.Valid(len(s.visible)) {
		return append([]sketch.Element{swallow("modal", s.geom.modal)}, s.modal.Elements()...)
	}
	els := s.controls.Elements()
	for slot, r := range s.geom.cards {
		i := s.cardAt(slot)
		if i == sketch.None {
			break
		}
		els = append(els, sketch.Element{
			ID:     "card",
			Index:  i,
			Region: sketch.Region{Rect: r},
			Click:  func() { s.openCard(i) },
		})
	}
	return els
}

func (s *MisconceptionCatalog) Resize(width int) int {
	s.width = float64(width)
	s.geom = catalogLayout(s.width)
	s.height = s.geom.height
	g := s.geom
	s.categoryDD.Rect, s.search.Rect, s.export.Rect = g.category, g.search, g.export
	s.toggle.Rect, s.close.Rect = g.toggle, g.close
	s.scroll = min(s.scroll, s.maxScroll())
	return int(s.height)
}

func (s *MisconceptionCatalog) Key(ev sketch.KeyEvent) {
	if ev.Key == sketch.KeyEscape && s.open.Valid(len(s.visible)) {
		s.open.Clear()
		return
	}
	s.controls.Key(ev)
}

func (s *MisconceptionCatalog) Update() { s.notice.Tick() }

func (s *MisconceptionCatalog) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, fmt.Sprintf("%d misconceptions shown, %d/%d saved", len(s.visible), len(s.saved), MaxSaved))
	s.controls.Draw(cv)

	if len(s.visible) == 0 {
		cv.FillRect(g.grid, sketch.ColorPanel)
		cv.StrokeRect(g.grid, 1, sketch.ColorBorder)
		cx, cy := g.grid.Center()
		sketch.TextCentered(cv, "No misconceptions match this search.", cx, cy, sketch.ColorMuted)
	}
	for slot, r := range g.cards {
		i := s.cardAt(slot)
		if i == sketch.None {
			break
		}
		s.drawCard(cv, r, s.visible[i], i == s.hover)
	}
	if s.maxScroll() > 0 {
		cv.Text(fmt.Sprintf("row %d of %d, scroll for more", s.scroll+1, s.maxScroll()+cardRows),
			margin, g.grid.Bottom()+10, sketch.ColorMuted)
	}
	if i := s.open.Get(len(s.visible)); i != sketch.None {
		s.drawModal(cv, s.visible[i])
	}
	s.notice.Draw(cv, s.bounds())
}

func (s *MisconceptionCatalog) drawCard(cv sketch.Canvas, r sketch.Rect, m Misconception, hovered bool) {
	fill := sketch.ColorPanel
	if hovered {
		fill = sketch.ColorHover
	}
	cv.FillRect(r, fill)
	cv.StrokeRect(r, 1, sketch.ColorBorder)
	ci := slices.Index(s.categoryDD.Options, m.Category)
	cv.FillRect(sketch.Rect{X: r.X, Y: r.Y, W: 6, H: r.H}, sketch.Categorical(ci, len(s.categoryDD.Options)))
	lines := sketch.Wrap(m.Title, r.W-36)
	for i, l := range lines {
		if i == 3 {
			break
		}
		cv.Text(l, r.X+16, r.Y+10+float64(i*sketch.LineHeight), sketch.ColorText)
	}
	cv.Text(m.Category, r.X+16, r.Bottom()-24, sketch.ColorMuted)
	if s.IsSaved(m.ID) {
		cv.FillCircle(r.Right()-14, r.Y+14, 6, sketch.ColorSelected)
	}
}

func (s *MisconceptionCatalog) drawModal(cv sketch.Canvas, m Misconception) {
	g := s.geom
	drawPanel(cv, s.bounds(), g.modal)
	x, y, w := g.modal.X+20, g.modal.Y+20, g.modal.W-40
	cv.Text(m.Title, x, y, sketch.ColorText)
	y += 20
	cv.Text(m.Category, x, y, sketch.ColorMuted)
	y += 28
	cv.Text("Students often think:", x, y, sketch.ColorBad)
	y += 18
	y += sketch.TextBlock(cv, m.Belief, x, y, w, sketch.ColorText) + 10
	cv.Text("What actually happens:", x, y, sketch.ColorGood)
	y += 18
	sketch.TextBlock(cv, m.Correction, x, y, w, sketch.ColorText)
	s.modal.Draw(cv)
}

type savedExport struct {
	Saved []Misconception `json:"saved"`
}

func (s *MisconceptionCatalog) exportSaved() {
	if len(s.saved) == 0 {
		s.notice.Show("Save a misconception first", false)
		return
	}
	var out savedExport
	for _, id := range s.saved {
		if i := s.find(id); i >= 0 {
			out.Saved = append(out.Saved, s.all[i])
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		s.log.Error("marshal saved list: %v", err)
		return
	}
	s.showResult(s.deps.Export.Download("saved-misconceptions.json", data))
}
