package content

import "time"

// Step is the mind palace panel stage.
type Step int

const (
	StepConcept Step = iota
	StepQuiz
	StepSuccess
)

// Panel tracks one opening of the mind palace for a level.
type Panel struct {
	entry    Entry
	fallback string

	step     Step
	selected int
	wrong    int
	feedback string

	quizSince  time.Time
	hesitation time.Duration
}

// Open starts a panel on the concept page. hesitation is the quiz idle time
// after which the hint is offered.
func (l *Library) Open(level int, hesitation time.Duration) (*Panel, bool) {
	e, ok := l.Entry(level)
	if !ok {
		return nil, false
	}
	return &Panel{entry: e, fallback: l.fallback, selected: -1, hesitation: hesitation}, true
}

// Entry returns the panel's knowledge entry.
func (p *Panel) Entry() Entry {
	return p.entry
}

// Step returns the current stage.
func (p *Panel) Step() Step {
	return p.step
}

// Selected returns the last chosen option, -1 if none.
func (p *Panel) Selected() int {
	return p.selected
}

// WrongAttempts returns the number of wrong answers so far.
func (p *Panel) WrongAttempts() int {
	return p.wrong
}

// Feedback returns the message for the last answer.
func (p *Panel) Feedback() string {
	return p.feedback
}

// Continue leaves the concept page. Without a quiz the panel is done.
func (p *Panel) Continue(now time.Time) {
	if p.step != StepConcept {
		return
	}
	if p.entry.Quiz == nil {
		p.step = StepSuccess
		return
	}
	p.step = StepQuiz
	p.quizSince = now
}

// Answer grades option idx. It returns true on the correct answer.
func (p *Panel) Answer(idx int) bool {
	if p.step != StepQuiz {
		return false
	}
	p.selected = idx
	a := p.entry.Quiz.Check(idx, p.fallback)
	p.feedback = a.Feedback
	if a.Correct {
		p.step = StepSuccess
		return true
	}
	p.wrong++
	return false
}

// Done reports whether the panel may be dismissed.
func (p *Panel) Done() bool {
	return p.step == StepSuccess
}

// ShowHint reports whether the quiz hint should be visible: after a wrong
// answer, or once the player has idled on the question without answering.
func (p *Panel) ShowHint(now time.Time) bool {
	if p.step != StepQuiz || p.entry.Quiz.Hint == "" {
		return false
	}
	if p.wrong > 0 {
		return true
	}
	return p.selected < 0 && p.hesitation > 0 && now.Sub(p.quizSince) >= p.hesitation
}
