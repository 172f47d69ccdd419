package session

import (
	"time"

	"github.com/vovakirdan/parabola-world/internal/config"
	"github.com/vovakirdan/parabola-world/internal/levels"
)

// CanAdjust reports whether the player may move the controls now.
func (s *Session) CanAdjust() bool {
	if s.closed || s.booting || !s.controls || s.panel != nil || s.engine.IsOpen() {
		return false
	}
	st := s.store.Snapshot()
	return !st.LevelComplete && !st.GameComplete
}

// Selected returns the coefficient the controls act on.
func (s *Session) Selected() levels.Param {
	return s.selected
}

// Select picks the coefficient to adjust. Locked coefficients are refused.
func (s *Session) Select(p levels.Param) bool {
	if !s.store.Snapshot().Editable(p) {
		return false
	}
	s.selected = p
	return true
}

// SelectNext cycles through the editable coefficients.
func (s *Session) SelectNext(dir int) {
	editable := s.store.Config().Editable()
	if len(editable) == 0 {
		return
	}
	idx := 0
	for i, p := range editable {
		if p == s.selected {
			idx = i
			break
		}
	}
	n := len(editable)
	idx = ((idx+dir)%n + n) % n
	s.selected = editable[idx]
}

// Range returns the slider range of p under the current mode.
func (s *Session) Range(p levels.Param) config.Range {
	return s.cfg.Controls.For(p, s.sacrifice)
}

// Adjust nudges the selected coefficient by steps. The change is applied
// at once; the attempt is counted when the gesture ends.
func (s *Session) Adjust(steps int, coarse bool, now time.Time) bool {
	if !s.CanAdjust() || !s.store.Snapshot().Editable(s.selected) {
		return false
	}
	p := s.selected
	v := s.Range(p).Nudge(s.store.Snapshot().Param(p), steps, coarse)
	s.store.SetParam(p, v)
	s.dirty = true
	s.lastAdjust = now
	s.advisor.Touch(now)
	return true
}

// Set writes an exact value to the selected coefficient, clamped to its
// range.
func (s *Session) Set(v float64, now time.Time) bool {
	if !s.CanAdjust() || !s.store.Snapshot().Editable(s.selected) {
		return false
	}
	s.store.SetParam(s.selected, s.Range(s.selected).Clamp(v))
	s.dirty = true
	s.lastAdjust = now
	s.advisor.Touch(now)
	return true
}

// Commit ends the current gesture and counts one attempt.
func (s *Session) Commit(now time.Time) {
	if !s.dirty {
		return
	}
	s.commitPending()
	s.advisor.Touch(now)
}

func (s *Session) commitPending() {
	if !s.dirty {
		return
	}
	s.dirty = false
	s.store.IncrementAttempts()
}
