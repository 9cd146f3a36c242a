package sims

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/olivierh59500/microsims/internal/sketch"
	"github.com/olivierh59500/microsims/internal/sketch/sketchtest"
)

func fixture(t *testing.T) []Resource {
	t.Helper()
	var records []Resource
	mustLoadYAML("metadata.yaml", &records)
	if len(records) != 15 {
		t.Fatalf("fixture has %d records, want 15", len(records))
	}
	return records
}

func ids(rs []Resource) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestEvaluatePhysicsAbove90(t *testing.T) {
	got := Evaluate(fixture(t), Criteria{Subject: "Physics", MinQuality: 90})
	if len(got) != 1 || got[0].Title != "Ohm's Law Simulator" || got[0].Quality != 95 {
		t.Fatalf("got %+v", got)
	}
}

func TestEvaluateQualityAscendingPutsBestLast(t *testing.T) {
	got := Evaluate(fixture(t), Criteria{Subject: "Physics", MinQuality: 80, Sort: SortQualityAsc})
	want := []string{"pendulum-period", "projectile-motion", "ohms-law"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEvaluateEmptyCriteriaIsIdentity(t *testing.T) {
	records := fixture(t)
	if diff := cmp.Diff(records, Evaluate(records, Criteria{})); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	all := Criteria{Subject: anyOption, Grade: anyOption, Tag: anyOption}
	if diff := cmp.Diff(records, Evaluate(records, all)); diff != "" {
		t.Errorf("All options: (-want +got):\n%s", diff)
	}
}

func TestEvaluateMatchingRules(t *testing.T) {
	records := fixture(t)
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"search is case-insensitive over tags", Criteria{Query: "CELLS"}, []string{"cell-organelles", "mitosis-stepper"}},
		{"search covers description", Criteria{Query: "bell curve"}, []string{"normal-distribution"}},
		{"tag membership", Criteria{Tag: "number sense"}, []string{"fraction-bars", "binary-counter"}},
		{"grade band", Criteria{Grade: "K-5"}, []string{"fraction-bars", "binary-counter"}},
		{"nothing", Criteria{Subject: "Biology", MinQuality: 99}, nil},
		{"query never spans two tags", Criteria{Query: "circuits electricity"}, nil},
		{"query matches within one tag", Criteria{Query: "ELECTRIC"}, []string{"ohms-law"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ids(Evaluate(records, tt.c))); diff != "" {
			t.Errorf("%s: (-want +got):\n%s", tt.name, diff)
		}
	}
}

// For every combination of sort key and threshold, results are a subset of
// the dataset and equal keys keep dataset order.
func TestEvaluateStableSubset(t *testing.T) {
	records := fixture(t)
	pos := map[string]int{}
	for i, r := range records {
		pos[r.ID] = i
	}
	for sortKey := SortOriginal; sortKey <= SortQualityDesc; sortKey++ {
		for minQ := 0; minQ <= 100; minQ += 5 {
			got := Evaluate(records, Criteria{MinQuality: minQ, Sort: sortKey})
			for i, r := range got {
				if _, ok := pos[r.ID]; !ok || r.Quality < minQ {
					t.Fatalf("sort %d min %d: bad record %+v", sortKey, minQ, r)
				}
				if i == 0 {
					continue
				}
				prev := got[i-1]
				sameKey := prev.Quality == r.Quality && sortKey != SortTitle
				if (sortKey == SortOriginal || sameKey) && pos[prev.ID] > pos[r.ID] {
					t.Errorf("sort %d min %d: %s before %s breaks dataset order", sortKey, minQ, prev.ID, r.ID)
				}
			}
		}
	}
}

func TestMetadataSearchInteraction(t *testing.T) {
	d, fx := testDeps()
	s := newMetadataSearch(d, fixture(t))
	s.Resize(960)

	sketchtest.Click(s, s.subject.Rect)
	if s.criteria.Subject != "Physics" {
		t.Fatalf("subject = %q", s.criteria.Subject)
	}
	sl := s.minQuality.Rect
	s.Pointer(sketchtest.Press(sl.X+0.9*sl.W, sl.Y+sl.H/2))
	s.Pointer(sketchtest.Release(sl.X+0.9*sl.W, sl.Y+sl.H/2))
	if s.criteria.MinQuality != 90 || len(s.results) != 1 {
		t.Fatalf("min quality = %d, results = %v", s.criteria.MinQuality, ids(s.results))
	}

	row := s.geom.rows[0]
	sketchtest.Click(s, row)
	if !s.selected.Is(0) {
		t.Fatal("clicking the row should open its detail")
	}
	var rec sketchtest.Recorder
	s.Draw(&rec)
	if !rec.HasText("quality 95/100") {
		t.Errorf("detail panel missing:\n%s", rec.String())
	}
	s.Pointer(sketchtest.Press(1, 1))
	if s.selected.Index() != sketch.None {
		t.Error("click outside should close the detail panel")
	}

	sketchtest.Click(s, s.save.Rect)
	var out searchExport
	if err := json.Unmarshal(fx.files["metadata-search.json"], &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Results[0].ID != "ohms-law" || out.Criteria.MinQuality != 90 {
		t.Errorf("export = %+v", out)
	}
}

func TestMetadataSearchEscapeLeavesFieldFirst(t *testing.T) {
	d, _ := testDeps()
	s := newMetadataSearch(d, fixture(t))
	s.Resize(960)

	sketchtest.Click(s, s.search.Rect)
	sketchtest.Type(s, "ohm")
	sketchtest.Click(s, s.geom.rows[0])
	if !s.selected.Is(0) || s.controls.Focused() != s.search {
		t.Fatalf("want detail open with the field focused, selected %d", s.selected.Index())
	}

	s.Key(sketch.KeyEvent{Key: sketch.KeyEscape})
	if s.controls.Focused() != nil || !s.selected.Is(0) {
		t.Error("first Escape should only blur the search field")
	}
	s.Key(sketch.KeyEvent{Key: sketch.KeyEscape})
	if s.selected.Index() != sketch.None {
		t.Error("second Escape should close the detail panel")
	}
	if s.criteria.Query != "ohm" {
		t.Errorf("Query = %q", s.criteria.Query)
	}
}

func TestMetadataSearchNoResultsAndScroll(t *testing.T) {
	d, _ := testDeps()
	s := newMetadataSearch(d, fixture(t))
	s.Resize(800)

	s.Pointer(sketchtest.Wheel(400, s.geom.list.Y+10, -1))
	s.Pointer(sketchtest.Wheel(400, s.geom.list.Y+10, -1))
	if s.scroll != 2 {
		t.Errorf("scroll = %d, want 2", s.scroll)
	}
	for i := 0; i < 20; i++ {
		s.Pointer(sketchtest.Wheel(400, s.geom.list.Y+10, -1))
	}
	if s.scroll != len(s.records)-searchVisible {
		t.Errorf("scroll = %d, want clamp at %d", s.scroll, len(s.records)-searchVisible)
	}

	sketchtest.Click(s, s.search.Rect)
	sketchtest.Type(s, "zzz")
	if len(s.results) != 0 || s.scroll != 0 {
		t.Fatalf("results = %v scroll = %d", ids(s.results), s.scroll)
	}
	var rec sketchtest.Recorder
	s.Draw(&rec)
	if !rec.HasText("No results") {
		t.Error("empty results should draw a placeholder")
	}
	// Clicking where rows used to be hits nothing.
	sketchtest.Click(s, s.geom.rows[0])
	if s.selected.Index() != sketch.None {
		t.Error("stale row click selected something")
	}
}
