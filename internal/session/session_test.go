package session

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/modes"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/registry"
)

type recorder struct {
	events []Event
}

func (r *recorder) handle(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func newSession(t *testing.T, mode registry.Mode, booted bool) (*Session, *progression.Store, *recorder) {
	t.Helper()
	store := progression.New(levels.Default())
	if booted {
		store.CompleteSystemBoot()
	}
	rec := &recorder{}
	s := New(store, WithMode(mode), WithEventHandler(rec.handle))
	s.Start(t0)
	return s, store, rec
}

// play hands over the controls by skipping the intro.
func play(t *testing.T, s *Session, now time.Time) {
	t.Helper()
	s.Skip(now)
	if s.Panel() != nil {
		t.Fatal("unexpected mind palace during intro skip")
	}
	if !s.CanAdjust() {
		t.Fatal("controls not handed over after the intro")
	}
}

func TestBootAndPlaceholder(t *testing.T) {
	s, store, _ := newSession(t, modes.Story{}, false)
	if !s.NeedsBoot() {
		t.Fatal("NeedsBoot() = false on first launch")
	}
	s.Tick(t0)
	if s.DialogueOpen() {
		t.Fatal("dialogue opened before the name was entered")
	}

	s.SubmitName("Ada", t0)
	if s.NeedsBoot() || !store.Snapshot().BootComplete {
		t.Fatal("boot not completed")
	}

	s.Advance(t0)
	line, ok := s.Line()
	if !ok || line.Speaker != dialogue.SpeakerDeer {
		t.Fatalf("Line() = %+v, %v", line, ok)
	}
	if !strings.Contains(line.Text, "Ada") || strings.Contains(line.Text, dialogue.PlayerPlaceholder) {
		t.Errorf("placeholder not substituted: %q", line.Text)
	}
}

func TestStoryLevelFlow(t *testing.T) {
	s, store, rec := newSession(t, modes.Story{}, true)
	now := t0

	for range 4 {
		s.Advance(now)
	}
	p := s.Panel()
	if p == nil {
		t.Fatal("mind palace did not open")
	}
	before, _ := s.Line()
	s.Advance(now)
	if after, _ := s.Line(); after.ID != before.ID {
		t.Fatal("dialogue advanced while the mind palace was open")
	}

	s.ContinuePanel(now)
	if s.DismissPanel(now) {
		t.Fatal("panel dismissed before the quiz was solved")
	}
	if !s.AnswerQuiz(3) || !s.DismissPanel(now) {
		t.Fatal("correct answer did not release the panel")
	}
	if !s.FormulaVisible() {
		t.Error("formula hidden after SHOW_FORMULA node")
	}

	s.Skip(now)
	if !s.CanAdjust() {
		t.Fatal("controls not enabled after the intro")
	}

	if s.Select(levels.ParamH) {
		t.Error("Select(h) accepted on a level where h is locked")
	}
	now = now.Add(time.Second)
	s.Adjust(10, false, now) // a = 0.005
	s.Tick(now)
	now = now.Add(100 * time.Millisecond)
	s.Tick(now)

	if !store.Snapshot().LevelComplete || rec.count(EventSolved) != 1 {
		t.Fatalf("level not completed: complete=%v solved events=%d",
			store.Snapshot().LevelComplete, rec.count(EventSolved))
	}
	if !s.DialogueOpen() || s.CanAdjust() {
		t.Fatal("completion dialogue not playing")
	}

	for range 3 {
		s.Advance(now)
	}
	if got := store.Snapshot().Level; got != 1 {
		t.Fatalf("level = %d after completion, want 1", got)
	}
	if s.ControlsEnabled() || !s.DialogueOpen() {
		t.Error("level 1 did not start with its intro")
	}
	if rec.count(EventSolved) != 1 {
		t.Errorf("solved events = %d, want 1", rec.count(EventSolved))
	}
}

func TestClassicQuizGatesAdvance(t *testing.T) {
	s, store, rec := newSession(t, modes.Classic{}, true)
	now := t0
	play(t, s, now)

	s.Set(0.0052, now)
	s.Tick(now)
	now = now.Add(100 * time.Millisecond)
	s.Tick(now)
	if !store.Snapshot().LevelComplete {
		t.Fatal("level 0 not completed with a = 0.0052")
	}

	s.Skip(now)
	p := s.Panel()
	if p == nil {
		t.Fatal("quiz did not open after the completion lines")
	}

	if s.AnswerQuiz(0) {
		t.Fatal("wrong answer accepted")
	}
	if rec.count(EventQuizWrong) != 1 || p.Feedback() == "" {
		t.Errorf("wrong answer feedback missing")
	}
	if s.DismissPanel(now) || store.Snapshot().Level != 0 {
		t.Fatal("level advanced after a wrong answer")
	}

	s.AnswerQuiz(3)
	if !s.DismissPanel(now) {
		t.Fatal("DismissPanel() = false after the correct answer")
	}
	if got := store.Snapshot().Level; got != 1 {
		t.Errorf("level = %d, want 1", got)
	}
}

func TestCommitAtGestureEnd(t *testing.T) {
	s, store, _ := newSession(t, modes.Classic{}, true)
	now := t0
	play(t, s, now)

	s.Adjust(1, false, now)
	s.Adjust(1, false, now.Add(100*time.Millisecond))
	s.Adjust(-1, false, now.Add(200*time.Millisecond))

	s.Tick(now.Add(500 * time.Millisecond))
	if got := store.Snapshot().Attempts; got != 0 {
		t.Fatalf("attempts = %d mid-gesture, want 0", got)
	}
	s.Tick(now.Add(600 * time.Millisecond))
	if got := store.Snapshot().Attempts; got != 1 {
		t.Fatalf("attempts = %d after the gesture, want 1", got)
	}

	s.Adjust(1, false, now.Add(time.Second))
	s.Commit(now.Add(time.Second))
	s.Commit(now.Add(time.Second))
	if got := store.Snapshot().Attempts; got != 2 {
		t.Errorf("attempts = %d after explicit commit, want 2", got)
	}
}

func TestHintNeverStacksOnDialogue(t *testing.T) {
	s, _, rec := newSession(t, modes.Classic{}, true)
	now := t0
	play(t, s, now)

	// a sits at zero on level 0.
	for sec := 0; sec <= 7; sec++ {
		s.Tick(now.Add(time.Duration(sec) * time.Second))
	}
	if rec.count(EventHint) != 1 {
		t.Fatalf("hint events = %d, want 1", rec.count(EventHint))
	}
	line, _ := s.Line()
	if line.Speaker != dialogue.SpeakerDeer {
		t.Errorf("hint speaker = %q", line.Speaker)
	}

	for sec := 8; sec <= 90; sec++ {
		s.Tick(now.Add(time.Duration(sec) * time.Second))
	}
	if rec.count(EventHint) != 1 {
		t.Errorf("hint pushed over an open dialogue, events = %d", rec.count(EventHint))
	}
	if s.CanAdjust() {
		t.Error("controls usable while a hint is showing")
	}
}

func TestHintsDisabled(t *testing.T) {
	store := progression.New(levels.Default())
	store.CompleteSystemBoot()
	rec := &recorder{}
	s := New(store, WithMode(modes.Classic{}), WithEventHandler(rec.handle))
	s.cfg.HintsEnabled = false
	s.Start(t0)
	play(t, s, t0)

	for sec := 0; sec <= 60; sec++ {
		s.Tick(t0.Add(time.Duration(sec) * time.Second))
	}
	if rec.count(EventHint) != 0 {
		t.Errorf("hint events = %d with hints disabled", rec.count(EventHint))
	}
}

func TestPollersRearmOnScopeChange(t *testing.T) {
	s, store, _ := newSession(t, modes.Classic{}, true)
	now := t0
	play(t, s, now)

	s.Tick(now)
	first := s.Scope()
	if s.Pollers() != 2 {
		t.Fatalf("Pollers() = %d, want 2", s.Pollers())
	}

	// Solve, then reload before the win poll fires.
	s.Set(0.005, now)
	s.RetryLevel(now.Add(50 * time.Millisecond))
	s.Tick(now.Add(100 * time.Millisecond))

	if s.Scope() == first {
		t.Fatal("scope unchanged after retry")
	}
	if s.Pollers() != 2 {
		t.Errorf("Pollers() = %d after re-arm, want 2", s.Pollers())
	}
	if store.Snapshot().LevelComplete {
		t.Error("stale win check completed the reloaded level")
	}
	if !s.CanAdjust() {
		t.Error("controls lost after retry")
	}
}

func TestRetryDuringCompletionLines(t *testing.T) {
	s, store, rec := newSession(t, modes.Story{}, true)
	now := t0

	s.Skip(now)
	if s.Panel() == nil {
		t.Fatal("mind palace did not open")
	}
	s.ContinuePanel(now)
	s.AnswerQuiz(3)
	s.DismissPanel(now)
	s.Skip(now)

	s.Set(0.005, now)
	s.Tick(now)
	now = now.Add(100 * time.Millisecond)
	s.Tick(now)
	if !store.Snapshot().LevelComplete || !s.DialogueOpen() {
		t.Fatal("completion lines not playing")
	}

	s.RetryLevel(now)

	st := store.Snapshot()
	if st.Level != 0 || st.MaxLevel != 0 {
		t.Fatalf("level=%d maxLevel=%d after retry, want 0 and 0", st.Level, st.MaxLevel)
	}
	if st.LevelComplete || st.A != 0 {
		t.Errorf("level not reloaded: complete=%v a=%v", st.LevelComplete, st.A)
	}
	if s.DialogueOpen() || s.Panel() != nil {
		t.Error("retry left a dialogue or panel open")
	}
	if !s.CanAdjust() {
		t.Error("controls not handed back after retry")
	}
	if rec.count(EventLevelLoaded) != 1 {
		t.Errorf("level loaded events = %d, want 1", rec.count(EventLevelLoaded))
	}
}

func TestCloseTearsDown(t *testing.T) {
	s, store, rec := newSession(t, modes.Classic{}, true)
	play(t, s, t0)
	s.Tick(t0)
	s.Set(0.005, t0)
	s.Close()

	if s.Pollers() != 0 || s.DialogueOpen() {
		t.Fatalf("Close left pollers=%d open=%v", s.Pollers(), s.DialogueOpen())
	}
	s.Tick(t0.Add(time.Minute))
	if store.Snapshot().LevelComplete || rec.count(EventSolved) != 0 {
		t.Error("closed session still evaluates")
	}
}

func TestSacrificeFinale(t *testing.T) {
	store := progression.New(levels.Default())
	store.Restore(progression.Persisted{Level: 3, MaxLevel: 3, BootComplete: true})
	rec := &recorder{}
	s := New(store, WithMode(modes.Story{}), WithEventHandler(rec.handle))
	s.Start(t0)
	now := t0

	s.Skip(now)
	if s.Panel() == nil {
		t.Fatal("final mind palace did not open")
	}
	s.ContinuePanel(now)
	s.AnswerQuiz(1)
	s.DismissPanel(now)
	s.Skip(now)

	if !s.SacrificeMode() || s.Selected() != levels.ParamA {
		t.Fatalf("sacrifice=%v selected=%v", s.SacrificeMode(), s.Selected())
	}
	if s.Range(levels.ParamA).Max < 10 {
		t.Fatalf("a range %+v cannot reach 10", s.Range(levels.ParamA))
	}

	s.Set(9.75, now)
	s.Tick(now)
	now = now.Add(100 * time.Millisecond)
	s.Tick(now)
	if !store.Snapshot().LevelComplete {
		t.Fatal("finale not completed with a = 9.75")
	}

	s.Skip(now)
	if !s.GameComplete() || rec.count(EventGameComplete) != 1 {
		t.Fatalf("game complete = %v, events = %d", s.GameComplete(), rec.count(EventGameComplete))
	}
	if got := store.Snapshot().Level; got != 3 {
		t.Errorf("level = %d in the ending, want 3", got)
	}

	s.NewGame(now)
	st := store.Snapshot()
	if st.Level != 0 || st.MaxLevel != 0 || st.GameComplete {
		t.Errorf("after new game: %+v", st)
	}
}

func TestJumpToLevel(t *testing.T) {
	s, store, _ := newSession(t, modes.Classic{}, true)
	if s.JumpToLevel(2, t0) {
		t.Fatal("jumped to an unreached level")
	}
	store.Restore(progression.Persisted{Level: 0, MaxLevel: 2, BootComplete: true})
	if !s.JumpToLevel(2, t0) {
		t.Fatal("JumpToLevel(2) refused")
	}
	if got := store.Snapshot().Level; got != 2 || s.ControlsEnabled() || !s.DialogueOpen() {
		t.Errorf("after jump: level=%d controls=%v open=%v", got, s.ControlsEnabled(), s.DialogueOpen())
	}
	if s.Selected() != levels.ParamH {
		t.Errorf("Selected() = %v, want h on the drift level", s.Selected())
	}
}
