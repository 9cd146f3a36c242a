package sims

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/olivierh59500/microsims/internal/sketch"
)

// hitElements returns what the router currently hit-tests against.
func (b *base) hitElements() []sketch.Element { return b.router.Regions() }

type hitTarget interface {
	sketch.Sketch
	hitElements() []sketch.Element
}

// sweepWidths covers the supported range in steps plus both bounds.
func sweepWidths() []int {
	var ws []int
	for w := sketch.MinWidth; w < sketch.MaxWidth; w += 40 {
		ws = append(ws, w)
	}
	return append(ws, sketch.MaxWidth)
}

// nestedPair reports whether a sits inside b on purpose.
func nestedPair(a, b sketch.Element) bool {
	pair := func(x, y string) bool {
		return (a.ID == x && b.ID == y) || (a.ID == y && b.ID == x)
	}
	return pair("row", "remove") && a.Index == b.Index
}

// modalIDs absorb clicks behind an open panel and must enclose every
// element listed after them.
var modalIDs = map[string]bool{"modal": true, "detail": true}

func checkLayout(t *testing.T, s hitTarget, width int) {
	t.Helper()
	height := s.Resize(width)
	canvas := sketch.Rect{W: float64(width), H: float64(height)}
	els := s.hitElements()
	if len(els) == 0 {
		t.Fatalf("width %d: no hit regions", width)
	}
	for i, a := range els {
		if !canvas.ContainsRect(a.Region.Rect) {
			t.Errorf("width %d: %s[%d] %v leaves the %vx%v canvas", width, a.ID, a.Index, a.Region.Rect, width, height)
		}
		for _, b := range els[i+1:] {
			switch {
			case modalIDs[a.ID]:
				if !a.Region.ContainsRect(b.Region.Rect) {
					t.Errorf("width %d: %s %v sticks out of %s %v", width, b.ID, b.Region.Rect, a.ID, a.Region.Rect)
				}
			case nestedPair(a, b):
			case a.Region.Overlaps(b.Region.Rect):
				t.Errorf("width %d: %s[%d] %v overlaps %s[%d] %v",
					width, a.ID, a.Index, a.Region.Rect, b.ID, b.Index, b.Region.Rect)
			}
		}
	}
}

func TestLayoutsStayInsideAndApart(t *testing.T) {
	prepare := map[string]func(s sketch.Sketch){
		"evaluation-rubric-builder": func(s sketch.Sketch) {
			r := s.(*RubricBuilder)
			for len(r.rubric.Criteria) < MaxCriteria {
				r.rubric.Add("", 10)
			}
		},
	}
	d, _ := testDeps()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sk, err := New(name, d)
			if err != nil {
				t.Fatal(err)
			}
			if q, ok := sk.(*QuizSketch); ok {
				q.quiz.Start()
			}
			if p := prepare[name]; p != nil {
				p(sk)
			}
			s := sk.(hitTarget)
			for _, w := range sweepWidths() {
				checkLayout(t, s, w)
			}
		})
	}
}

func TestOpenPanelsStayInsideAndApart(t *testing.T) {
	d, _ := testDeps()
	tests := []struct {
		name string
		open func(s sketch.Sketch)
	}{
		{"misconception-catalog", func(s sketch.Sketch) { s.(*MisconceptionCatalog).openCard(0) }},
		{"metadata-search", func(s sketch.Sketch) { s.(*MetadataSearch).selected.Set(0) }},
		{"flowchart", func(s sketch.Sketch) { s.(*Flowchart).selected.Set(0) }},
	}
	for _, tt := range tests {
		sk, err := New(tt.name, d)
		if err != nil {
			t.Fatal(err)
		}
		tt.open(sk)
		for _, w := range sweepWidths() {
			t.Run(fmt.Sprintf("%s/%d", tt.name, w), func(t *testing.T) {
				checkLayout(t, sk.(hitTarget), w)
			})
		}
	}
}

func TestFlowchartLabelsAndDetailsFit(t *testing.T) {
	for _, w := range sweepWidths() {
		s := newFlowchart(w)
		g := s.geom
		for i, n := range flowNodes {
			r := g.nodes[i]
			lines, boxes := labelLines(r, n.Label)
			for j, b := range boxes {
				corners := [][2]float64{{b.X, b.Y}, {b.Right(), b.Y}, {b.X, b.Bottom()}, {b.Right(), b.Bottom()}}
				for _, c := range corners {
					if !r.Contains(c[0], c[1], 0) {
						t.Errorf("width %d: %q line %q at %v leaves the %v node %v", w, n.Label, lines[j], b, r.Shape, r.Rect)
						break
					}
				}
			}
			if len(lines) > 2 {
				t.Errorf("width %d: %q wraps to %d lines", w, n.Label, len(lines))
			}
			for _, l := range lines {
				for _, word := range strings.Fields(l) {
					if !slices.Contains(strings.Fields(n.Label), word) {
						t.Errorf("width %d: %q split inside a word: %q", w, n.Label, lines)
					}
				}
			}

			need := 16 + 26 + sketch.WrappedHeight(n.Detail, g.panel.W-32) + 12 + sketch.LineHeight + 16
			if need > g.panel.H+1e-9 {
				t.Errorf("width %d: %q detail needs %v, panel is %v tall", w, n.Label, need, g.panel.H)
			}
		}
		screen := sketch.Rect{W: float64(w), H: g.height}
		if !screen.ContainsRect(g.panel) {
			t.Errorf("width %d: detail panel %v leaves the canvas", w, g.panel)
		}
	}
}
