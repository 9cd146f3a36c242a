package sims

import (
	"fmt"
	"math"

	"github.com/olivierh59500/microsims/internal/sketch"
)

func init() {
	var quizzes map[string]QuizData
	mustLoadYAML("quizzes.yaml", &quizzes)
	for name, data := range quizzes {
		if quizAnimations[data.Animation] == nil {
			panic(fmt.Sprintf("sims: quiz %s: unknown animation %q", name, data.Animation))
		}
		register(name, func(d Deps) sketch.Sketch { return newQuizSketch(d, name, data) })
	}
}

// Scenario is one quiz question. Values and Labels parameterise the result
// animation.
type Scenario struct {
	Prompt      string    `yaml:"prompt"`
	Options     []string  `yaml:"options"`
	Answer      int       `yaml:"answer"`
	Explanation string    `yaml:"explanation"`
	Values      []float64 `yaml:"values"`
	Labels      []string  `yaml:"labels"`
}

// QuizData describes one quiz sketch.
type QuizData struct {
	Title         string     `yaml:"title"`
	Intro         string     `yaml:"intro"`
	Animation     string     `yaml:"animation"`
	Countdown     float64    `yaml:"countdown"`
	ResultSeconds float64    `yaml:"result_seconds"`
	Scenarios     []Scenario `yaml:"scenarios"`
}

type quizAnimation func(cv sketch.Canvas, area sketch.Rect, sc Scenario, t float64)

var quizAnimations = map[string]quizAnimation{
	"falling": animateFalling,
	"path":    animatePath,
	"bars":    animateBars,
	"arrows":  animateArrows,
}

type quizGeom struct {
	status, timer, prompt sketch.Rect
	options               []sketch.Rect
	lock, next, restart   sketch.Rect
	stage, feedback       sketch.Rect
	height                float64
}

func quizLayout(width float64, options int) quizGeom {
	inner := width - 2*margin
	cw := math.Min(inner, 860)
	x0 := (width - cw) / 2
	var g quizGeom
	g.restart = sketch.Rect{X: x0 + cw - 100, Y: 62, W: 100, H: 28}
	g.status = sketch.Rect{X: x0, Y: 62, W: cw - 110, H: 28}
	g.timer = sketch.Rect{X: x0, Y: 98, W: cw, H: 6}
	g.prompt = sketch.Rect{X: x0, Y: 116, W: cw, H: 4 * sketch.LineHeight}

	wide := cw >= 700
	optW := cw
	if wide {
		optW = cw*0.45 - 8
	}
	g.options = sketch.Column(x0, g.prompt.Bottom()+12, optW, 36, 8, max(options, 1))
	last := g.options[len(g.options)-1]
	g.lock = sketch.Rect{X: x0, Y: last.Bottom() + 12, W: 120, H: 32}
	g.next = sketch.Rect{X: x0 + 132, Y: g.lock.Y, W: 120, H: 32}
	if wide {
		g.stage = sketch.Rect{X: x0 + optW + 16, Y: g.prompt.Bottom() + 12, W: cw - optW - 16, H: 240}
	} else {
		g.stage = sketch.Rect{X: x0, Y: g.lock.Bottom() + 16, W: cw, H: 220}
	}
	g.feedback = sketch.Rect{X: x0, Y: math.Max(g.lock.Bottom(), g.stage.Bottom()) + 16, W: cw, H: 3 * sketch.LineHeight}
	g.height = g.feedback.Bottom() + 56
	return g
}

// QuizSketch presents a list of scenarios one at a time, animates the
// outcome after each answer and keeps score.
type QuizSketch struct {
	base

	data      QuizData
	tps       int
	quiz      *sketch.Quiz
	animate   quizAnimation
	hover     int
	expiredAt int
	geom      quizGeom

	start   *sketch.Button
	lock    *sketch.Button
	next    *sketch.Button
	again   *sketch.Button
	restart *sketch.Button
}

func newQuizSketch(d Deps, name string, data QuizData) *QuizSketch {
	s := &QuizSketch{
		base:      newBase(name, data.Title, d),
		data:      data,
		tps:       d.TPS,
		animate:   quizAnimations[data.Animation],
		hover:     sketch.None,
		expiredAt: sketch.None,
	}
	s.quiz = sketch.NewQuiz(len(data.Scenarios),
		int(data.Countdown*float64(d.TPS)),
		int(data.ResultSeconds*float64(d.TPS)),
		func(i, choice int) bool { return data.Scenarios[i].Answer == choice })
	s.start = &sketch.Button{ID: "start", Label: "Start", Primary: true, OnClick: s.quiz.Start}
	s.lock = &sketch.Button{ID: "lock", Label: "Lock In", Primary: true, OnClick: s.lockIn}
	s.next = &sketch.Button{ID: "next", Label: "Next", Primary: true, OnClick: s.quiz.Next}
	s.again = &sketch.Button{ID: "again", Label: "Try again", Primary: true, OnClick: s.restartQuiz}
	s.restart = &sketch.Button{ID: "restart", Label: "Restart", OnClick: s.restartQuiz}
	s.lock.Disabled = true
	s.router = sketch.Router{Regions: s.elements, Hover: s.setHover}
	return s
}

// Quiz exposes the underlying state machine.
func (s *QuizSketch) Quiz() *sketch.Quiz { return s.quiz }

func (s *QuizSketch) scenario() Scenario { return s.data.Scenarios[s.quiz.Index()] }

func (s *QuizSketch) maxOptions() int {
	n := 0
	for _, sc := range s.data.Scenarios {
		n = max(n, len(sc.Options))
	}
	return n
}

func (s *QuizSketch) lockIn() {
	s.quiz.LockIn()
	if a, ok := s.quiz.Last(); ok && s.quiz.State() == sketch.QuizAnimating {
		s.log.Debug("scenario %d: choice %d correct=%v", a.Scenario, a.Choice, a.Correct)
	}
}

func (s *QuizSketch) choose(i int) {
	s.quiz.Select(i)
	s.lock.Disabled = s.quiz.Choice() < 0
}

func (s *QuizSketch) restartQuiz() {
	s.quiz.Restart()
	s.expiredAt = sketch.None
	s.hover = sketch.None
}

func (s *QuizSketch) setHover(el *sketch.Element) {
	s.controls.SetHover(el)
	s.hover = sketch.None
	if el != nil && el.ID == "option" {
		s.hover = el.Index
	}
}

func (s *QuizSketch) answering() bool {
	st := s.quiz.State()
	return st == sketch.QuizPresenting || st == sketch.QuizAwaiting
}

func (s *QuizSketch) buttons() []*sketch.Button {
	switch s.quiz.State() {
	case sketch.QuizIntro:
		return []*sketch.Button{s.start, s.restart}
	case sketch.QuizPresenting, sketch.QuizAwaiting:
		return []*sketch.Button{s.lock, s.restart}
	case sketch.QuizFeedback:
		return []*sketch.Button{s.next, s.restart}
	case sketch.QuizComplete:
		return []*sketch.Button{s.again, s.restart}
	default:
		return []*sketch.Button{s.restart}
	}
}

func (s *QuizSketch) elements() []sketch.Element {
	var els []sketch.Element
	if s.answering() {
		for i := range s.scenario().Options {
			if i >= len(s.geom.options) {
				break
			}
			els = append(els, sketch.Element{
				ID:     "option",
				Index:  i,
				Region: sketch.Region{Shape: sketch.ShapeRect, Rect: s.geom.options[i]},
				Pad:    2,
				Click:  func() { s.choose(i) },
			})
		}
	}
	for _, b := range s.buttons() {
		els = append(els, b.Elements()...)
	}
	return els
}

func (s *QuizSketch) Resize(width int) int {
	s.width = float64(width)
	s.geom = quizLayout(s.width, s.maxOptions())
	s.height = s.geom.height
	s.start.Rect = s.geom.lock
	s.lock.Rect = s.geom.lock
	s.next.Rect = s.geom.next
	s.again.Rect = s.geom.lock
	s.restart.Rect = s.geom.restart
	return int(s.height)
}

func (s *QuizSketch) Key(ev sketch.KeyEvent) {
	switch ev.Key {
	case sketch.KeyEnter:
		switch s.quiz.State() {
		case sketch.QuizIntro:
			s.quiz.Start()
		case sketch.QuizAwaiting:
			s.lockIn()
		case sketch.QuizFeedback:
			s.quiz.Next()
		case sketch.QuizComplete:
			s.restartQuiz()
		}
	case sketch.KeyR:
		s.restartQuiz()
	}
	if !s.answering() {
		return
	}
	for _, r := range ev.Runes {
		if r >= '1' && r <= '9' && int(r-'1') < len(s.scenario().Options) {
			s.choose(int(r - '1'))
		}
	}
}

func (s *QuizSketch) Update() {
	s.quiz.Tick()
	if s.quiz.Expired() && s.expiredAt != s.quiz.Index() {
		s.expiredAt = s.quiz.Index()
		s.notice.Show("Time is up. Pick an answer and lock it in.", false)
	}
	s.lock.Disabled = s.quiz.Choice() < 0
	s.notice.Tick()
}

func (s *QuizSketch) Draw(cv sketch.Canvas) {
	g := s.geom
	cv.Fill(sketch.ColorBackground)
	s.drawHeader(cv, "Choose an answer, lock it in, then watch what happens.")

	switch st := s.quiz.State(); st {
	case sketch.QuizIntro:
		cv.Text(fmt.Sprintf("%d questions", s.quiz.N), g.status.X, g.status.Y+8, sketch.ColorMuted)
		sketch.TextBlock(cv, s.data.Intro, g.prompt.X, g.prompt.Y, g.prompt.W, sketch.ColorText)
	case sketch.QuizComplete:
		s.drawSummary(cv)
	default:
		s.drawStatus(cv)
		sc := s.scenario()
		sketch.TextBlock(cv, sc.Prompt, g.prompt.X, g.prompt.Y, g.prompt.W, sketch.ColorText)
		s.drawOptions(cv, sc)
		t := 0.0
		if st >= sketch.QuizAnimating {
			t = s.quiz.AnimRatio()
		}
		cv.FillRect(g.stage, sketch.ColorPanel)
		s.animate(cv, g.stage.Inset(8), sc, t)
		cv.StrokeRect(g.stage, 1, sketch.ColorBorder)
		if st == sketch.QuizFeedback {
			s.drawFeedback(cv, sc)
		}
	}

	for _, b := range s.buttons() {
		b.Draw(cv, s.controls.Hover())
	}
	s.notice.Draw(cv, s.bounds())
}

func (s *QuizSketch) drawStatus(cv sketch.Canvas) {
	g := s.geom
	status := fmt.Sprintf("Question %d of %d   Score %d", s.quiz.Index()+1, s.quiz.N, s.quiz.Score())
	cv.Text(status, g.status.X, g.status.Y+8, sketch.ColorMuted)
	if s.quiz.Countdown <= 0 || !s.answering() {
		return
	}
	frac := float64(s.quiz.Remaining()) / float64(s.quiz.Countdown)
	col := sketch.ColorAccent
	if frac < 0.25 {
		col = sketch.ColorBad
	}
	cv.FillRect(g.timer, sketch.ColorPanel)
	cv.FillRect(sketch.Rect{X: g.timer.X, Y: g.timer.Y, W: g.timer.W * frac, H: g.timer.H}, col)
	secs := int(math.Ceil(float64(s.quiz.Remaining()) / float64(s.tps)))
	label := fmt.Sprintf("%ds", secs)
	cv.Text(label, g.restart.X-sketch.TextWidth(label)-12, g.status.Y+8, col)
}

func (s *QuizSketch) drawOptions(cv sketch.Canvas, sc Scenario) {
	locked := !s.answering()
	last, _ := s.quiz.Last()
	for i, opt := range sc.Options {
		if i >= len(s.geom.options) {
			break
		}
		r := s.geom.options[i]
		fill, stroke := sketch.ColorPanel, sketch.ColorBorder
		switch {
		case locked && i == sc.Answer:
			fill, stroke = sketch.Mix(sketch.ColorPanel, sketch.ColorGood, 0.25), sketch.ColorGood
		case locked && i == last.Choice:
			fill, stroke = sketch.Mix(sketch.ColorPanel, sketch.ColorBad, 0.25), sketch.ColorBad
		case i == s.quiz.Choice():
			fill, stroke = sketch.ColorSelected, sketch.ColorAccent
		case i == s.hover:
			fill = sketch.ColorHover
		}
		cv.FillRect(r, fill)
		cv.StrokeRect(r, 1.5, stroke)
		label := sketch.Truncate(fmt.Sprintf("%d. %s", i+1, opt), r.W-20)
		cv.Text(label, r.X+10, r.Y+r.H/2-sketch.LineHeight/2+2, sketch.ColorText)
	}
}

func (s *QuizSketch) drawFeedback(cv sketch.Canvas, sc Scenario) {
	g := s.geom
	last, _ := s.quiz.Last()
	head, col := "Correct!", sketch.ColorGood
	if !last.Correct {
		head, col = "Not quite. The answer was: "+sc.Options[sc.Answer], sketch.ColorBad
	}
	cv.Text(head, g.feedback.X, g.feedback.Y, col)
	sketch.TextBlock(cv, sc.Explanation, g.feedback.X, g.feedback.Y+sketch.LineHeight+4, g.feedback.W, sketch.ColorText)
}

func (s *QuizSketch) drawSummary(cv sketch.Canvas) {
	g := s.geom
	score := fmt.Sprintf("You scored %d of %d (%d%%)", s.quiz.Score(), s.quiz.N,
		sketch.RoundPercent(float64(s.quiz.Score()), float64(s.quiz.N)))
	cv.Text(score, g.status.X, g.status.Y+8, sketch.ColorText)
	y := g.prompt.Y
	for _, a := range s.quiz.History() {
		mark, col := "correct", sketch.ColorGood
		if !a.Correct {
			mark, col = "missed ", sketch.ColorBad
		}
		cv.Text(mark, g.prompt.X, y, col)
		prompt := sketch.Truncate(s.data.Scenarios[a.Scenario].Prompt, g.prompt.W-70)
		cv.Text(prompt, g.prompt.X+64, y, sketch.ColorText)
		y += sketch.LineHeight + 6
	}
}

// animateFalling drops one ball per value. Values are relative fall times;
// the slowest ball lands when t reaches 1.
func animateFalling(cv sketch.Canvas, area sketch.Rect, sc Scenario, t float64) {
	n := len(sc.Values)
	slowest := 0.0
	for _, v := range sc.Values {
		slowest = math.Max(slowest, v)
	}
	top, ground := area.Y+20, area.Bottom()-24
	cv.Line(area.X, ground, area.Right(), ground, 2, sketch.ColorBorder)
	for i, v := range sc.Values {
		x := area.X + area.W*float64(i+1)/float64(n+1)
		f := 1.0
		if v > 0 {
			f = sketch.Clamp(t*slowest/v, 0, 1)
		}
		y := top + (ground-12-top)*f*f
		cv.FillCircle(x, y, 12, sketch.Categorical(i, n))
		if i < len(sc.Labels) {
			sketch.TextCentered(cv, sc.Labels[i], x, ground+12, sketch.ColorMuted)
		}
	}
}

const gravity = 9.81

// animatePath traces projectile arcs from (angle, speed) pairs on a shared
// clock so shorter flights land first.
func animatePath(cv sketch.Canvas, area sketch.Rect, sc Scenario, t float64) {
	type shot struct{ vx, vy, flight float64 }
	var shots []shot
	var maxR, maxH, maxT float64
	for i := 0; i+1 < len(sc.Values); i += 2 {
		a := sc.Values[i] * math.Pi / 180
		v := sc.Values[i+1]
		sh := shot{vx: v * math.Cos(a), vy: v * math.Sin(a)}
		sh.flight = 2 * sh.vy / gravity
		shots = append(shots, sh)
		maxR = math.Max(maxR, sh.vx*sh.flight)
		maxH = math.Max(maxH, sh.vy*sh.vy/(2*gravity))
		maxT = math.Max(maxT, sh.flight)
	}
	ox, oy := area.X+20, area.Bottom()-20
	cv.Line(area.X, oy, area.Right(), oy, 2, sketch.ColorBorder)
	if maxR <= 0 || maxH <= 0 {
		return
	}
	scale := math.Min((area.W-40)/maxR, (area.H-40)/maxH)
	now := t * maxT
	const segments = 40
	for i, sh := range shots {
		col := sketch.Categorical(i, len(shots))
		end := math.Min(now, sh.flight)
		px, py := ox, oy
		for k := 1; k <= segments; k++ {
			tau := end * float64(k) / segments
			x := ox + sh.vx*tau*scale
			y := oy - (sh.vy*tau-gravity*tau*tau/2)*scale
			cv.Line(px, py, x, y, 2, col)
			px, py = x, y
		}
		cv.FillCircle(px, py, 5, col)
		if i < len(sc.Labels) {
			cv.Text(sc.Labels[i], px+6, py-sketch.LineHeight, col)
		}
	}
}

// animateBars grows one bar per observed frequency.
func animateBars(cv sketch.Canvas, area sketch.Rect, sc Scenario, t float64) {
	n := len(sc.Values)
	if n == 0 {
		return
	}
	var total, most float64
	for _, v := range sc.Values {
		total += v
		most = math.Max(most, v)
	}
	floor := area.Bottom() - 20
	slot := area.W / float64(n)
	grow := sketch.EaseInOut(t)
	for i, v := range sc.Values {
		h := 0.0
		if most > 0 {
			h = (floor - area.Y - 24) * v / most * grow
		}
		x := area.X + slot*float64(i)
		cv.FillRect(sketch.Rect{X: x + slot*0.15, Y: floor - h, W: slot * 0.7, H: h}, sketch.Categorical(i, n))
		if i < len(sc.Labels) {
			sketch.TextCentered(cv, sketch.Truncate(sc.Labels[i], slot), x+slot/2, floor+10, sketch.ColorMuted)
		}
		if t >= 1 && slot >= 32 {
			pct := fmt.Sprintf("%d%%", sketch.RoundPercent(v, total))
			sketch.TextCentered(cv, pct, x+slot/2, floor-h-10, sketch.ColorText)
		}
	}
	cv.Line(area.X, floor, area.Right(), floor, 1, sketch.ColorBorder)
}

// animateArrows draws force vectors from (direction, magnitude) pairs on a
// block, then the net force once they have grown to full length.
func animateArrows(cv sketch.Canvas, area sketch.Rect, sc Scenario, t float64) {
	cx, cy := area.Center()
	block := sketch.Rect{X: cx - 30, Y: cy - 20, W: 60, H: 40}
	cv.FillRect(block, sketch.ColorBorder)
	unit := math.Min(area.W, area.H) * 0.3
	grow := sketch.EaseInOut(t)
	n := len(sc.Values) / 2
	var netX, netY float64
	for i := 0; i < n; i++ {
		a := sc.Values[2*i] * math.Pi / 180
		m := sc.Values[2*i+1]
		dx, dy := math.Cos(a)*m, -math.Sin(a)*m
		netX += dx
		netY += dy
		if grow == 0 {
			continue
		}
		tx, ty := cx+dx*unit*grow, cy+dy*unit*grow
		col := sketch.Categorical(i, n)
		sketch.Arrow(cv, cx, cy, tx, ty, 3, col)
		if i < len(sc.Labels) {
			cv.Text(sc.Labels[i], tx+6*math.Copysign(1, dx)-3, ty+6*math.Copysign(1, dy)-6, col)
		}
	}
	if t < 1 {
		return
	}
	if math.Hypot(netX, netY) < 1e-9 {
		cv.Text("net force: zero", area.X+8, area.Y+8, sketch.ColorGood)
		return
	}
	sketch.Arrow(cv, cx, cy, cx+netX*unit, cy+netY*unit, 2, sketch.ColorText)
	cv.Text("net force", area.X+8, area.Y+8, sketch.ColorText)
}
