// Package sims contains the MicroSims: each file is one self-contained
// sketch with its own state, layout function, render pass and input routing.
package sims

import (
	"embed"
	"fmt"
	"image/color"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/microsims/internal/export"
	"github.com/olivierh59500/microsims/internal/logutil"
	"github.com/olivierh59500/microsims/internal/sketch"
	"github.com/olivierh59500/microsims/internal/store"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Exporter is the download and clipboard surface sketches write through.
type Exporter interface {
	Download(name string, data []byte) export.Result
	Open(name string) ([]byte, error)
	Copy(text string) export.Result
}

// Deps are the collaborators a sketch may use.
type Deps struct {
	Log    *logutil.Logger
	Export Exporter
	Saved  func(name string) store.SavedList

	// TPS is the host tick rate. Timed behaviour converts seconds with it.
	TPS int
}

// noticeSeconds is how long a notice banner stays up.
const noticeSeconds = 3

func (d Deps) withDefaults() Deps {
	if d.TPS <= 0 {
		d.TPS = 60
	}
	if d.Log == nil {
		d.Log = logutil.Discard
	}
	if d.Export == nil {
		d.Export = export.New(".", d.Log)
	}
	if d.Saved == nil {
		lists := map[string]*store.Memory{}
		d.Saved = func(name string) store.SavedList {
			if lists[name] == nil {
				lists[name] = &store.Memory{}
			}
			return lists[name]
		}
	}
	return d
}

// Constructor builds a fresh sketch.
type Constructor func(Deps) sketch.Sketch

var registry = map[string]Constructor{}

func register(name string, c Constructor) {
	if _, dup := registry[name]; dup {
		panic("sims: duplicate sketch " + name)
	}
	registry[name] = c
}

// Names lists the registered sketches alphabetically.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds the named sketch.
func New(name string, d Deps) (sketch.Sketch, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown sketch %q", name)
	}
	d = d.withDefaults()
	d.Log = d.Log.WithPrefix(name)
	return c(d), nil
}

func mustLoadYAML(file string, v any) {
	data, err := dataFS.ReadFile("data/" + file)
	if err != nil {
		panic(fmt.Sprintf("sims: read %s: %v", file, err))
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		panic(fmt.Sprintf("sims: parse %s: %v", file, err))
	}
}

// base carries what every sketch has: identity, controls, router and a
// notice banner.
type base struct {
	name, title string
	log         *logutil.Logger
	width       float64
	height      float64

	controls sketch.Controls
	router   sketch.Router
	notice   sketch.Notice
}

func newBase(name, title string, d Deps) base {
	return base{
		name:   name,
		title:  title,
		log:    d.Log,
		notice: sketch.Notice{Frames: noticeSeconds * d.TPS},
	}
}

func (b *base) Name() string  { return b.name }
func (b *base) Title() string { return b.title }

func (b *base) Pointer(ev sketch.PointerEvent) { b.router.Dispatch(ev) }

func (b *base) Key(ev sketch.KeyEvent) { b.controls.Key(ev) }

func (b *base) showResult(r export.Result) { b.notice.Show(r.Message, r.OK) }

const (
	margin       = 20.0
	headerHeight = 50.0
)

func (b *base) drawHeader(cv sketch.Canvas, subtitle string) {
	cv.FillRect(sketch.Rect{W: b.width, H: headerHeight}, sketch.ColorAccent)
	cv.Text(b.title, margin, 10, sketch.ColorPanel)
	if subtitle != "" {
		cv.Text(subtitle, margin, 28, sketch.Mix(sketch.ColorAccent, sketch.ColorPanel, 0.75))
	}
}

func (b *base) bounds() sketch.Rect {
	return sketch.Rect{W: b.width, H: b.height}
}

// drawPanel paints a modal card over a dimmed sketch.
func drawPanel(cv sketch.Canvas, screen, panel sketch.Rect) {
	cv.FillRect(screen, sketch.ColorOverlay)
	cv.FillRect(panel, sketch.ColorPanel)
	cv.StrokeRect(panel, 2, sketch.ColorAccent)
}

// modalRect centres a w x h panel inside screen, shrinking it to fit.
func modalRect(screen sketch.Rect, w, h float64) sketch.Rect {
	if w > screen.W-2*margin {
		w = screen.W - 2*margin
	}
	if h > screen.H-2*margin {
		h = screen.H - 2*margin
	}
	return sketch.Rect{X: screen.X + (screen.W-w)/2, Y: screen.Y + (screen.H-h)/2, W: w, H: h}
}

// swallow is a click target that absorbs presses inside a modal.
func swallow(id string, r sketch.Rect) sketch.Element {
	return sketch.Element{ID: id, Index: sketch.None, Region: sketch.Region{Shape: sketch.ShapeRect, Rect: r}, Click: func() {}}
}

func qualityColor(q int) color.RGBA {
	switch {
	case q >= 90:
		return sketch.ColorGood
	case q >= 80:
		return sketch.ColorAccent
	default:
		return sketch.ColorWarn
	}
}
