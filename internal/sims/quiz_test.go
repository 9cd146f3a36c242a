package sims

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/olivierh59500/microsims/internal/sketch"
	"github.com/olivierh59500/microsims/internal/sketch/sketchtest"
)

func newQuiz(t *testing.T, name string, width int) *QuizSketch {
	t.Helper()
	d, _ := testDeps()
	s, err := New(name, d)
	if err != nil {
		t.Fatal(err)
	}
	q := s.(*QuizSketch)
	q.Resize(width)
	return q
}

// finish runs the result animation to the feedback screen.
func finish(t *testing.T, s *QuizSketch) {
	t.Helper()
	for i := 0; i < s.quiz.ResultFrames && s.quiz.State() == sketch.QuizAnimating; i++ {
		s.Update()
	}
	if s.quiz.State() != sketch.QuizFeedback {
		t.Fatalf("state %v after the result animation, want feedback", s.quiz.State())
	}
}

func render(s sketch.Sketch) *sketchtest.Recorder {
	var rec sketchtest.Recorder
	s.Draw(&rec)
	return &rec
}

func TestQuizDataIsConsistent(t *testing.T) {
	var quizzes map[string]QuizData
	mustLoadYAML("quizzes.yaml", &quizzes)
	if len(quizzes) != 4 {
		t.Fatalf("got %d quizzes", len(quizzes))
	}
	for name, data := range quizzes {
		if data.Title == "" || len(data.Scenarios) == 0 || data.ResultSeconds <= 0 {
			t.Errorf("%s: incomplete quiz %+v", name, data)
		}
		for i, sc := range data.Scenarios {
			if len(sc.Options) < 2 || len(sc.Options) > 9 {
				t.Errorf("%s[%d]: %d options", name, i, len(sc.Options))
			}
			if sc.Answer < 0 || sc.Answer >= len(sc.Options) {
				t.Errorf("%s[%d]: answer %d out of range", name, i, sc.Answer)
			}
			if sc.Explanation == "" || len(sc.Values) == 0 {
				t.Errorf("%s[%d]: missing explanation or values", name, i)
			}
			pairs := data.Animation == "path" || data.Animation == "arrows"
			if pairs && len(sc.Values)%2 != 0 {
				t.Errorf("%s[%d]: %s needs value pairs", name, i, data.Animation)
			}
		}
	}
}

func TestQuizFullRun(t *testing.T) {
	s := newQuiz(t, "intuition-testing", 900)
	if !render(s).HasText("4 questions") {
		t.Error("intro should announce the question count")
	}
	sketchtest.Click(s, s.start.Rect)

	for i, sc := range s.data.Scenarios {
		if s.quiz.State() != sketch.QuizPresenting || s.quiz.Index() != i {
			t.Fatalf("scenario %d: state %v index %d", i, s.quiz.State(), s.quiz.Index())
		}
		sketchtest.Click(s, s.lock.Rect)
		if s.quiz.State() != sketch.QuizPresenting {
			t.Fatal("Lock In must do nothing before a choice is made")
		}
		sketchtest.Click(s, s.geom.options[sc.Answer])
		sketchtest.Click(s, s.lock.Rect)
		finish(t, s)
		if rec := render(s); !rec.HasText("Correct!") || !rec.HasText(sc.Explanation[:20]) {
			t.Errorf("scenario %d feedback: %v", i, rec.Texts())
		}
		sketchtest.Click(s, s.next.Rect)
	}

	if s.quiz.State() != sketch.QuizComplete || s.quiz.Score() != 4 {
		t.Fatalf("state %v score %d", s.quiz.State(), s.quiz.Score())
	}
	if !render(s).HasText("You scored 4 of 4 (100%)") {
		t.Error("summary missing")
	}
	sketchtest.Click(s, s.again.Rect)
	if s.quiz.State() != sketch.QuizIntro || s.quiz.Score() != 0 || len(s.quiz.History()) != 0 {
		t.Error("Try again should return to a clean intro")
	}
}

func TestQuizWrongAnswerByKeyboard(t *testing.T) {
	s := newQuiz(t, "intuition-testing", 480)
	s.Key(sketch.KeyEvent{Key: sketch.KeyEnter})
	sketchtest.Type(s, "1")
	sketchtest.Type(s, "9") // out of range, ignored
	if s.quiz.Choice() != 0 {
		t.Fatalf("Choice() = %d", s.quiz.Choice())
	}
	s.Key(sketch.KeyEvent{Key: sketch.KeyEnter})
	finish(t, s)
	if !render(s).HasText("Not quite. The answer was: They land together") {
		t.Error("wrong answer feedback missing")
	}
	want := []sketch.Answer{{Scenario: 0, Choice: 0, Correct: false}}
	if diff := cmp.Diff(want, s.quiz.History()); diff != "" {
		t.Errorf("history (-want +got):\n%s", diff)
	}

	s.Key(sketch.KeyEvent{Key: sketch.KeyEnter})
	if s.quiz.Index() != 1 {
		t.Fatalf("Enter on feedback should advance, index %d", s.quiz.Index())
	}
	sketchtest.Type(s, "1")
	s.Key(sketch.KeyEvent{Key: sketch.KeyR})
	if s.quiz.State() != sketch.QuizIntro || len(s.quiz.History()) != 0 {
		t.Error("R should restart from any state")
	}
}

func TestQuizCountdown(t *testing.T) {
	s := newQuiz(t, "prediction-prompt-interface", 800)
	if s.quiz.Countdown != 20*60 {
		t.Fatalf("Countdown = %d frames", s.quiz.Countdown)
	}
	s.quiz.Start()
	for i := 0; i < s.quiz.Countdown; i++ {
		s.Update()
	}
	if s.quiz.State() != sketch.QuizPresenting || !s.quiz.Expired() {
		t.Fatalf("expired with no choice: state %v expired %v", s.quiz.State(), s.quiz.Expired())
	}
	if !s.notice.Visible() || s.notice.Good {
		t.Error("expiry should raise a warning notice")
	}

	// the stalled question still accepts an answer, but only by hand
	sketchtest.Type(s, "3")
	s.Update()
	if s.quiz.State() != sketch.QuizAwaiting {
		t.Fatalf("state %v, want awaiting", s.quiz.State())
	}
	s.Key(sketch.KeyEvent{Key: sketch.KeyEnter})
	finish(t, s)
	s.quiz.Next()

	// a pending choice is locked in when time runs out
	sketchtest.Type(s, "2")
	for i := 0; i < s.quiz.Countdown; i++ {
		s.Update()
	}
	if s.quiz.State() != sketch.QuizAnimating {
		t.Fatalf("state %v, want the choice auto-locked", s.quiz.State())
	}
	if a, _ := s.quiz.Last(); a.Scenario != 1 || a.Choice != 1 || !a.Correct {
		t.Errorf("Last() = %+v", a)
	}
}

func TestQuizTimingFollowsTickRate(t *testing.T) {
	d, _ := testDeps()
	d.TPS = 30
	s, err := New("misconception-quiz", d)
	if err != nil {
		t.Fatal(err)
	}
	q := s.(*QuizSketch)
	q.Resize(800)
	if q.quiz.Countdown != 15*30 || q.quiz.ResultFrames != 2*30 {
		t.Fatalf("Countdown %d ResultFrames %d at 30 TPS", q.quiz.Countdown, q.quiz.ResultFrames)
	}
	q.quiz.Start()
	for i := 0; i < 30; i++ {
		q.Update()
	}
	if !render(q).HasText("14s") {
		t.Error("one second at 30 TPS should leave 14s on the clock")
	}
	for i := 0; i < q.quiz.Countdown && !q.quiz.Expired(); i++ {
		q.Update()
	}
	if !q.quiz.Expired() {
		t.Fatal("countdown never expired")
	}
	shown := 0
	for q.notice.Visible() {
		q.Update()
		shown++
	}
	if shown != 3*30-1 {
		t.Errorf("expiry notice lasted %d more frames, want %d", shown, 3*30-1)
	}
}

func stageCircles(rec *sketchtest.Recorder, stage sketch.Rect) []sketch.Rect {
	var out []sketch.Rect
	for _, op := range rec.Ops {
		if op.Kind == "circle" && stage.ContainsRect(op.Rect) {
			out = append(out, op.Rect)
		}
	}
	return out
}

func TestFallingAnimationLands(t *testing.T) {
	s := newQuiz(t, "intuition-testing", 900)
	s.quiz.Start()
	before := stageCircles(render(s), s.geom.stage)
	s.choose(2)
	s.lockIn()
	finish(t, s)
	after := stageCircles(render(s), s.geom.stage)
	if len(before) != 2 || len(after) != 2 {
		t.Fatalf("balls before %d after %d", len(before), len(after))
	}
	for i := range after {
		if after[i].Y <= before[i].Y {
			t.Errorf("ball %d did not fall: %v -> %v", i, before[i].Y, after[i].Y)
		}
	}
	if after[0].Y != after[1].Y {
		t.Errorf("in a vacuum both balls land together: %v vs %v", after[0].Y, after[1].Y)
	}
}

func TestPathAnimationComplementaryAngles(t *testing.T) {
	s := newQuiz(t, "prediction-prompt-interface", 900)
	s.quiz.Start()
	s.choose(2)
	s.lockIn()
	finish(t, s)
	balls := stageCircles(render(s), s.geom.stage)
	if len(balls) != 2 {
		t.Fatalf("got %d projectiles", len(balls))
	}
	if diff := cmp.Diff(balls[0], balls[1], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("30 and 60 degree shots should land together (-a +b):\n%s", diff)
	}
}

func TestBarsAndArrowsRevealAtTheEnd(t *testing.T) {
	p := newQuiz(t, "probability-adaptation", 900)
	p.quiz.Start()
	p.choose(1)
	p.lockIn()
	p.Update()
	if got := slices.Index(render(p).Texts(), "50%"); got >= 0 {
		t.Error("percentages appear only when the bars finish growing")
	}
	finish(t, p)
	pcts := 0
	for _, txt := range render(p).Texts() {
		if txt == "50%" {
			pcts++
		}
	}
	if pcts != 2 {
		t.Errorf("coin frequencies should both read 50%%, got %d labels", pcts)
	}

	m := newQuiz(t, "misconception-quiz", 900)
	m.quiz.Start()
	m.choose(1)
	m.lockIn()
	finish(t, m)
	rec := render(m)
	if !rec.HasText("net force: zero") || !rec.HasText("normal") {
		t.Errorf("balanced forces: %v", rec.Texts())
	}
}

func TestQuizTimerBar(t *testing.T) {
	s := newQuiz(t, "misconception-quiz", 800)
	s.quiz.Start()
	for i := 0; i < 60; i++ {
		s.Update()
	}
	rec := render(s)
	if !rec.HasText("14s") {
		t.Errorf("remaining seconds missing: %v", rec.Texts())
	}
	var bar sketch.Rect
	for _, op := range rec.Ops {
		if op.Kind == "rect" && op.Rect.Y == s.geom.timer.Y && op.Rect.W < s.geom.timer.W {
			bar = op.Rect
		}
	}
	if want := s.geom.timer.W * 14 / 15; math.Abs(bar.W-want) > 1e-9 {
		t.Errorf("timer bar width %v, want %v", bar.W, want)
	}
}
