package session

import (
	"time"

	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/progression"
)

// maxDispatch bounds the node transitions handled in one sync.
const maxDispatch = 64

// beginLevel resets the per-level session state and starts the intro.
func (s *Session) beginLevel(now time.Time) {
	st := s.store.Snapshot()
	s.store.SetStoryMode(s.rules.Story)

	s.controls = false
	s.sacrifice = false
	s.panel = nil
	s.completionPending = false
	s.dirty = false
	s.advisor.Reset(now)
	s.selected = firstEditable(st)

	s.logger.Info("level loaded", "level", st.Level, "name", s.store.Config().Name,
		"mode", s.mode.ID(), "epoch", st.Epoch)
	s.emit(Event{Kind: EventLevelLoaded, Text: s.store.Config().Name})

	script, ok := s.scripts.Script(s.mode.ID(), st.Level)
	if !ok {
		s.engine.Close()
		s.running = scriptNone
		s.controls = true
		return
	}
	s.engine.Start(script, "")
	s.running = scriptIntro
	s.sync(now)
}

func firstEditable(st progression.State) levels.Param {
	for _, p := range levels.Params {
		if st.Editable(p) {
			return p
		}
	}
	return levels.ParamA
}

// sync reacts to dialogue transitions: it runs the action of every newly
// current node and handles the end of a script. Transitions caused by the
// reaction itself are handled in the same call.
func (s *Session) sync(now time.Time) {
	for range maxDispatch {
		seq := s.engine.Seq()
		if seq == s.lastSeq {
			break
		}
		s.lastSeq = seq

		node, ok := s.engine.Current()
		if !ok {
			if !s.engine.IsOpen() {
				s.scriptEnded(now)
			}
			continue
		}
		s.runAction(node, now)
	}

	if s.completionPending && !s.engine.IsOpen() && s.panel == nil {
		s.startCompletion(now)
	}
}

// runAction interprets a node action.
func (s *Session) runAction(node dialogue.Node, now time.Time) {
	switch node.Action.(type) {
	case nil:
	case dialogue.EnableControls:
		s.controls = true
		s.advisor.Touch(now)
	case dialogue.ShowFormula:
		s.formula = true
	case dialogue.OpenMindPalace:
		s.openPanel(panelIntro, now)
	case dialogue.SacrificeMode:
		s.sacrifice = true
		s.controls = true
		s.selected = levels.ParamA
		s.advisor.Touch(now)
	default:
		s.logger.Warn("unhandled dialogue action", "node", node.ID, "action", node.Action.Token())
	}
}

// scriptEnded runs when the engine closes.
func (s *Session) scriptEnded(now time.Time) {
	ended := s.running
	s.running = scriptNone
	s.advisor.Touch(now)

	if ended == scriptCompletion {
		s.afterCompletion(now)
	}
}

// startCompletion plays the completion lines of the active level.
func (s *Session) startCompletion(now time.Time) {
	s.completionPending = false
	s.controls = false
	s.commitPending()

	st := s.store.Snapshot()
	var script *dialogue.Script
	if e, ok := s.knowledge.Entry(st.Level); ok {
		script = s.scripts.Completion(s.mode.ID(), st.Level, e.Completion)
	}
	if script == nil {
		s.afterCompletion(now)
		return
	}
	s.engine.Start(script, "")
	s.running = scriptCompletion
}

// afterCompletion asks the quiz if the mode wants one, otherwise advances.
func (s *Session) afterCompletion(now time.Time) {
	if s.rules.QuizOnCompletion {
		if e, ok := s.knowledge.Entry(s.store.Snapshot().Level); ok && e.Quiz != nil {
			s.openPanel(panelQuiz, now)
			return
		}
	}
	s.advanceLevel(now)
}

// advanceLevel moves to the next level, or into the ending.
func (s *Session) advanceLevel(now time.Time) {
	if s.store.AdvanceLevel() {
		s.beginLevel(now)
		return
	}
	s.controls = false
	s.engine.Close()
	s.running = scriptNone
	s.logger.Info("game complete", "user", s.PlayerName())
	s.emit(Event{Kind: EventGameComplete})
}

// openPanel shows the mind palace. Without an entry an intro dialogue moves
// straight on.
func (s *Session) openPanel(purpose panelPurpose, now time.Time) {
	st := s.store.Snapshot()
	p, ok := s.knowledge.Open(st.Level, s.cfg.Hints.Hesitation)
	if !ok {
		s.logger.Debug("no knowledge entry", "level", st.Level)
		if purpose == panelIntro {
			s.engine.Advance()
		} else {
			s.advanceLevel(now)
		}
		return
	}
	s.panel = p
	s.panelPurpose = purpose
	if purpose == panelQuiz {
		p.Continue(now)
	}
}

// Advance moves the dialogue on. It does nothing while the mind palace is
// open: the panel resumes the dialogue when dismissed.
func (s *Session) Advance(now time.Time) {
	if s.closed || s.panel != nil {
		return
	}
	s.engine.Advance()
	s.sync(now)
}

// Skip advances through the running dialogue, running every node's action
// on the way. It stops when a mind palace opens.
func (s *Session) Skip(now time.Time) {
	if s.closed || s.panel != nil {
		return
	}
	epoch := s.engine.Epoch()
	for i := 0; i < maxDispatch && s.engine.IsOpen() && s.panel == nil; i++ {
		s.engine.Advance()
		s.sync(now)
		if s.engine.Epoch() != epoch {
			// The script ended and something else may have started.
			return
		}
	}
}

// ContinuePanel leaves the concept page of the mind palace.
func (s *Session) ContinuePanel(now time.Time) {
	if s.panel != nil {
		s.panel.Continue(now)
	}
}

// AnswerQuiz answers the open quiz.
func (s *Session) AnswerQuiz(idx int) bool {
	if s.panel == nil {
		return false
	}
	ok := s.panel.Answer(idx)
	if !ok {
		s.logger.Debug("quiz wrong", "level", s.store.Snapshot().Level, "option", idx)
		s.emit(Event{Kind: EventQuizWrong, Text: s.panel.Feedback()})
	}
	return ok
}

// DismissPanel closes a finished mind palace. An intro panel resumes its
// dialogue; a completion quiz advances the level.
func (s *Session) DismissPanel(now time.Time) bool {
	if s.panel == nil || !s.panel.Done() {
		return false
	}
	s.panel = nil
	switch s.panelPurpose {
	case panelIntro:
		s.engine.Advance()
		s.sync(now)
	case panelQuiz:
		s.advanceLevel(now)
	}
	return true
}

// RetryLevel reloads the active level without replaying its intro.
func (s *Session) RetryLevel(now time.Time) {
	if s.closed || s.booting {
		return
	}
	s.store.ResetLevel()
	s.completionPending = false
	s.dirty = false
	s.advisor.Reset(now)
	if s.running == scriptHint || s.running == scriptCompletion {
		// Closing here abandons the script, it does not finish it.
		s.running = scriptNone
		s.engine.Close()
		s.sync(now)
	}
	if s.panel != nil && s.panelPurpose == panelQuiz {
		s.panel = nil
	}
	if !s.engine.IsOpen() && s.panel == nil {
		s.controls = true
	}
	s.logger.Info("level retry", "level", s.store.Snapshot().Level)
}

// JumpToLevel replays a reached level from the level map.
func (s *Session) JumpToLevel(idx int, now time.Time) bool {
	if s.closed || s.booting || !s.store.JumpToLevel(idx) {
		return false
	}
	s.beginLevel(now)
	return true
}

// NewGame resets progress to level 0.
func (s *Session) NewGame(now time.Time) {
	if s.closed || s.booting {
		return
	}
	s.store.ResetProgress()
	s.logger.Info("new game")
	s.beginLevel(now)
}

// ToggleMusic flips the persisted mute flag.
func (s *Session) ToggleMusic() {
	s.store.ToggleMusic()
}
