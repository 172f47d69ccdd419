package hint

import (
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testLibrary() Library {
	return Library{
		Speaker:        dialogue.SpeakerDeer,
		Hesitation:     map[int]string{0: "bend it", 1: "raise k"},
		Default:        "need help?",
		ZeroA:          "a must not be zero",
		WrongDirection: "wrong way",
		TooSteep:       "too steep",
		AlmostThere:    "almost",
	}
}

type fixture struct {
	store  *progression.Store
	engine *dialogue.Engine
	adv    *Advisor
}

func newFixture(opts ...Option) *fixture {
	s := progression.New(levels.Default())
	e := dialogue.NewEngine()
	n := 0
	opts = append([]Option{WithIDSource(func() string {
		n++
		return fmt.Sprint(n)
	})}, opts...)
	return &fixture{store: s, engine: e, adv: New(s, e, testLibrary(), DefaultConfig(), t0, opts...)}
}

func (f *fixture) text(t *testing.T) string {
	t.Helper()
	n, ok := f.engine.Current()
	if !ok {
		t.Fatal("no hint dialogue open")
	}
	return n.Text
}

func TestStuckOnZeroA(t *testing.T) {
	f := newFixture()

	if _, ok := f.adv.Check(t0.Add(5 * time.Second)); ok {
		t.Fatal("hint pushed at exactly the stuck threshold")
	}
	kind, ok := f.adv.Check(t0.Add(6 * time.Second))
	if !ok || kind != KindZeroA {
		t.Fatalf("Check() = (%v, %v), want (zero_a, true)", kind, ok)
	}
	if got := f.text(t); got != "a must not be zero" {
		t.Errorf("hint text = %q", got)
	}
	n, _ := f.engine.Current()
	if n.ID != "hint-1" || !n.Terminal() || n.Speaker != dialogue.SpeakerDeer {
		t.Errorf("hint node = %+v", n)
	}
}

func TestNeverPushesWhileDialogueOpen(t *testing.T) {
	f := newFixture()
	f.engine.Start(dialogue.OneShot("story", "hello", dialogue.SpeakerPhoton, dialogue.EmotionNone), "")

	for sec := 1; sec <= 60; sec++ {
		if _, ok := f.adv.Check(t0.Add(time.Duration(sec) * time.Second)); ok {
			t.Fatalf("hint pushed over an open dialogue at %ds", sec)
		}
	}
	if f.engine.CurrentID() != "story" {
		t.Errorf("open dialogue replaced, current = %q", f.engine.CurrentID())
	}
}

func TestNeverPushesOnCompletedLevel(t *testing.T) {
	f := newFixture()
	f.store.CompleteLevel()
	if _, ok := f.adv.Check(t0.Add(time.Minute)); ok {
		t.Error("hint pushed on a completed level")
	}
}

func TestCooldowns(t *testing.T) {
	f := newFixture()
	f.store.SetParam(levels.ParamA, 0.001) // not stuck

	kind, ok := f.adv.Check(t0.Add(16 * time.Second))
	if !ok || kind != KindHesitation {
		t.Fatalf("Check(16s) = (%v, %v), want hesitation", kind, ok)
	}
	if got := f.text(t); got != "bend it" {
		t.Errorf("hesitation text = %q, want level 0 line", got)
	}
	f.engine.Close()

	// Still idle, but inside the 20s cooldown.
	for sec := 17; sec <= 36; sec++ {
		if _, ok := f.adv.Check(t0.Add(time.Duration(sec) * time.Second)); ok {
			t.Fatalf("second hint inside cooldown at %ds", sec)
		}
	}
	if _, ok := f.adv.Check(t0.Add(37 * time.Second)); !ok {
		t.Error("no hint after cooldown elapsed")
	}
}

func TestTouchResetsHesitation(t *testing.T) {
	f := newFixture()
	f.store.SetParam(levels.ParamA, 0.001)

	f.adv.Touch(t0.Add(10 * time.Second))
	if _, ok := f.adv.Check(t0.Add(20 * time.Second)); ok {
		t.Error("hesitation hint 10s after an interaction")
	}
	if _, ok := f.adv.Check(t0.Add(26 * time.Second)); !ok {
		t.Error("no hesitation hint 16s after an interaction")
	}
}

func TestZeroARequiresEditableA(t *testing.T) {
	f := newFixture()
	f.store.AdvanceLevel() // a locked
	f.adv.Reset(t0)
	f.store.SetParam(levels.ParamA, 0)

	if _, ok := f.adv.Check(t0.Add(6 * time.Second)); ok {
		t.Error("zero-a hint on a level where a is locked")
	}
}

func TestHesitationFallsBackToDefault(t *testing.T) {
	f := newFixture()
	for range 3 {
		f.store.AdvanceLevel()
	}
	f.store.SetParam(levels.ParamA, 1)
	f.adv.Reset(t0)

	if _, ok := f.adv.Check(t0.Add(16 * time.Second)); !ok {
		t.Fatal("no hesitation hint")
	}
	if got := f.text(t); got != "need help?" {
		t.Errorf("hint text = %q, want default", got)
	}
}

func TestDirectionalRules(t *testing.T) {
	tests := []struct {
		name string
		a    float64
		want Kind
		ok   bool
	}{
		{"wrong direction", -0.004, KindWrongDirection, true},
		{"too steep", 0.02, KindTooSteep, true},
		{"almost there", 0.0055, KindAlmostThere, true},
		{"almost there outside the win band", 0.0065, KindAlmostThere, true},
		{"nothing to say", 0.0085, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(WithDirectionalRules(true))
			f.store.SetParam(levels.ParamA, tt.a)
			now := t0.Add(time.Second)
			f.adv.Touch(now)
			for range 5 {
				f.store.IncrementAttempts()
			}

			kind, ok := f.adv.Check(now)
			if ok != tt.ok || (ok && kind != tt.want) {
				t.Errorf("Check() = (%v, %v), want (%v, %v)", kind, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDirectionalRulesOncePerAttemptCount(t *testing.T) {
	f := newFixture(WithDirectionalRules(true))
	f.store.SetParam(levels.ParamA, -0.004)
	for range 5 {
		f.store.IncrementAttempts()
	}

	now := t0.Add(time.Second)
	f.adv.Touch(now)
	if _, ok := f.adv.Check(now); !ok {
		t.Fatal("no directional hint at attempt 5")
	}
	f.engine.Close()

	later := now.Add(11 * time.Second)
	f.adv.Touch(later)
	if _, ok := f.adv.Check(later); ok {
		t.Error("directional hint repeated for the same attempt count")
	}

	for range 5 {
		f.store.IncrementAttempts()
	}
	if kind, ok := f.adv.Check(later); !ok || kind != KindWrongDirection {
		t.Errorf("Check() at attempt 10 = (%v, %v), want wrong_direction", kind, ok)
	}
	if got := f.adv.Cognitive().Errors(KindWrongDirection); got != 2 {
		t.Errorf("Errors(wrong_direction) = %d, want 2", got)
	}
}

func TestDirectionalRulesSkipLockedA(t *testing.T) {
	f := newFixture(WithDirectionalRules(true))
	// Level 1 locks a at its target while k is far off.
	if !f.store.AdvanceLevel() {
		t.Fatal("AdvanceLevel() failed")
	}
	f.store.SetParam(levels.ParamK, 100)
	for range 5 {
		f.store.IncrementAttempts()
	}

	now := t0.Add(time.Second)
	f.adv.Reset(now)
	f.adv.Touch(now)
	if kind, ok := f.adv.Check(now); ok {
		t.Errorf("Check() = %v on a level with a locked", kind)
	}
}

func TestAlmostThereWiderThanWinTolerance(t *testing.T) {
	if got := DefaultConfig().AlmostTolerance; got <= 0.001 {
		t.Errorf("AlmostTolerance = %v, want wider than the 0.001 win tolerance", got)
	}
}

func TestDirectionalRulesOffByDefault(t *testing.T) {
	f := newFixture()
	f.store.SetParam(levels.ParamA, -0.004)
	for range 5 {
		f.store.IncrementAttempts()
	}
	f.adv.Touch(t0)
	if _, ok := f.adv.Check(t0.Add(time.Second)); ok {
		t.Error("directional hint without directional rules")
	}
}

func TestStrugglingChangesEmotion(t *testing.T) {
	f := newFixture()
	now := t0
	for i := 0; i < 3; i++ {
		now = now.Add(11 * time.Second)
		f.adv.Touch(now.Add(-6 * time.Second))
		if kind, ok := f.adv.Check(now); !ok || kind != KindZeroA {
			t.Fatalf("round %d: Check() = (%v, %v)", i, kind, ok)
		}
		n, _ := f.engine.Current()
		wantWorry := i == 2
		if (n.Emotion == dialogue.EmotionWorry) != wantWorry {
			t.Errorf("round %d: emotion = %q", i, n.Emotion)
		}
		f.engine.Close()
	}
	if !f.adv.Cognitive().IsStruggling() {
		t.Error("IsStruggling() = false after three corrective hints")
	}
}
