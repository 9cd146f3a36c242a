package sketch

// QuizState is a step in the scenario quiz flow.
type QuizState int

const (
	QuizIntro QuizState = iota
	QuizPresenting
	QuizAwaiting
	QuizLockedIn
	QuizAnimating
	QuizFeedback
	QuizComplete
)

func (s QuizState) String() string {
	switch s {
	case QuizIntro:
		return "intro"
	case QuizPresenting:
		return "presenting"
	case QuizAwaiting:
		return "awaiting_selection"
	case QuizLockedIn:
		return "locked_in"
	case QuizAnimating:
		return "animating_result"
	case QuizFeedback:
		return "feedback"
	case QuizComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Answer records one locked-in choice.
type Answer struct {
	Scenario int
	Choice   int
	Correct  bool
}

// Quiz drives a fixed list of N scenarios through
// intro → presenting → awaiting → locked in → animating → feedback, ending in
// complete. Timing is counted in frames.
type Quiz struct {
	N            int
	Countdown    int // frames per scenario; 0 disables the timer
	ResultFrames int
	IsCorrect    func(scenario, choice int) bool

	state     QuizState
	index     int
	choice    int
	score     int
	history   []Answer
	remaining int
	expired   bool
	anim      Progress
}

// NewQuiz builds a quiz in the intro state.
func NewQuiz(n, countdown, resultFrames int, isCorrect func(scenario, choice int) bool) *Quiz {
	if resultFrames <= 0 {
		resultFrames = 1
	}
	q := &Quiz{N: n, Countdown: countdown, ResultFrames: resultFrames, IsCorrect: isCorrect}
	q.Restart()
	return q
}

func (q *Quiz) State() QuizState   { return q.state }
func (q *Quiz) Index() int         { return q.index }
func (q *Quiz) Choice() int        { return q.choice }
func (q *Quiz) Score() int         { return q.score }
func (q *Quiz) Remaining() int     { return q.remaining }
func (q *Quiz) Expired() bool      { return q.expired }
func (q *Quiz) AnimRatio() float64 { return q.anim.Ratio() }

// History returns a copy of the recorded answers.
func (q *Quiz) History() []Answer {
	return append([]Answer(nil), q.history...)
}

// Last returns the most recent answer, if any.
func (q *Quiz) Last() (Answer, bool) {
	if len(q.history) == 0 {
		return Answer{}, false
	}
	return q.history[len(q.history)-1], true
}

// Start leaves the intro screen.
func (q *Quiz) Start() {
	if q.state != QuizIntro || q.N <= 0 {
		return
	}
	q.present(0)
}

func (q *Quiz) present(i int) {
	q.index = i
	q.choice = None
	q.state = QuizPresenting
	q.remaining = q.Countdown
	q.expired = false
	q.anim = Progress{Frames: q.ResultFrames}
}

// Select picks an option. Selecting again changes the choice.
func (q *Quiz) Select(choice int) {
	if choice < 0 {
		return
	}
	if q.state != QuizPresenting && q.state != QuizAwaiting {
		return
	}
	q.choice = choice
	q.state = QuizAwaiting
}

// LockIn commits the current choice and starts the result animation.
func (q *Quiz) LockIn() {
	if q.state != QuizAwaiting {
		return
	}
	q.state = QuizLockedIn
	correct := q.IsCorrect != nil && q.IsCorrect(q.index, q.choice)
	if correct {
		q.score++
	}
	q.history = append(q.history, Answer{Scenario: q.index, Choice: q.choice, Correct: correct})
	q.anim.Reset()
	q.state = QuizAnimating
}

// Tick advances the countdown and the result animation by one frame. When
// the countdown runs out with nothing selected the quiz waits where it is.
func (q *Quiz) Tick() {
	switch q.state {
	case QuizPresenting, QuizAwaiting:
		if q.Countdown <= 0 || q.remaining <= 0 {
			return
		}
		q.remaining--
		if q.remaining > 0 {
			return
		}
		if q.choice >= 0 {
			q.LockIn()
			return
		}
		q.expired = true
	case QuizAnimating:
		if q.anim.Advance() {
			q.state = QuizFeedback
		}
	}
}

// Next moves from feedback to the following scenario or to complete.
func (q *Quiz) Next() {
	if q.state != QuizFeedback {
		return
	}
	if q.index+1 >= q.N {
		q.state = QuizComplete
		return
	}
	q.present(q.index + 1)
}

// Restart returns to intro and clears score and history.
func (q *Quiz) Restart() {
	q.state = QuizIntro
	q.index = 0
	q.choice = None
	q.score = 0
	q.history = nil
	q.remaining = 0
	q.expired = false
	q.anim = Progress{Frames: q.ResultFrames}
}
