package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/dialogue"
	"github.com/vovakirdan/parabola-world/internal/levels"
	"github.com/vovakirdan/parabola-world/internal/plot"
	"github.com/vovakirdan/parabola-world/internal/progression"
	"github.com/vovakirdan/parabola-world/internal/session"
)

// Rows taken by everything but the plot.
const (
	reservedRows = 12
	minPlotRows  = 6
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	lockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	formulaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	wrongStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	rightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// speakerColors tints the speaker name in the dialogue box.
var speakerColors = map[dialogue.Speaker]lipgloss.Color{
	dialogue.SpeakerSystem:    "245",
	dialogue.SpeakerPlayer:    "12",
	dialogue.SpeakerNavigator: "14",
	dialogue.SpeakerPhoton:    "11",
	dialogue.SpeakerMerchant:  "208",
	dialogue.SpeakerDeer:      "10",
	dialogue.SpeakerCaptain:   "13",
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	now := time.Now()

	switch {
	case m.sess.NeedsBoot():
		return m.viewBoot()
	case m.showMap:
		return m.levelMap.View(m.help.ShortHelpView([]key.Binding{m.keys.Advance, m.keys.Back}))
	case m.sess.GameComplete():
		return m.viewEnding()
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if p := m.sess.Panel(); p != nil {
		b.WriteString(m.viewPanel(p, now))
	} else {
		b.WriteString(RenderCanvas(m.drawPlot()))
		b.WriteString("\n")
		b.WriteString(m.viewHUD())
		if line, ok := m.sess.Line(); ok {
			b.WriteString("\n")
			b.WriteString(m.viewDialogue(line))
		}
	}

	b.WriteString("\n")
	if e, ok := m.status.current(now); ok {
		b.WriteString(statusText(e))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) viewBoot() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(centerText("P A R A B O L A   W O R L D", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("SYSTEM BOOT. Identify yourself.", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Name: %s_", m.name), m.width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(centerText("enter: confirm  |  esc: quit", m.width)))
	return b.String()
}

func (m Model) viewEnding() string {
	st := m.sess.State()
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(centerText("THE CURVE HOLDS", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Well flown, %s. Every level of the %s campaign is complete.",
		m.sess.PlayerName(), m.sess.Mode().Title()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Levels reached: %d/%d", st.MaxLevel+1, m.sess.Table().Count()), m.width))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(centerText("n: new game  |  m: level map  |  q: quit", m.width)))
	return b.String()
}

func (m Model) viewHeader() string {
	st := m.sess.State()
	lvl := m.sess.Level()
	left := titleStyle.Render(fmt.Sprintf("Level %d: %s", st.Level, lvl.Name))
	v := m.sess.Verdict()
	right := fmt.Sprintf("%s  attempts %d  %s", m.sess.Mode().Title(), st.Attempts, v.Heat())
	if st.MusicMuted {
		right += "  muted"
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + dimStyle.Render(right)
}

// drawPlot renders the target and the current curve.
func (m Model) drawPlot() *plot.Canvas {
	st := m.sess.State()
	lvl := m.sess.Level()
	v := m.sess.Verdict()

	m.canvas.Clear()
	p := plot.NewPlotter(plot.DefaultWorld, m.canvas)
	p.DrawGrid()

	if target, ok := targetCurve(st, lvl, v.Sacrifice); ok {
		p.DrawCurve(target, '.', plot.ColorTarget)
		p.DrawVertex(target, 'x', plot.ColorTarget)
	}

	current := plot.Curve{A: st.A, H: st.H, K: st.K}
	p.DrawCurve(current, '*', heatColors[v.Heat()])
	p.DrawVertex(current, 'o', plot.ColorVertex)
	return m.canvas
}

// targetCurve fills undefined targets with the current values, so the
// ghost curve shows only what the player has to change.
func targetCurve(st progression.State, lvl levels.Config, sacrifice bool) (plot.Curve, bool) {
	if sacrifice {
		return plot.Curve{A: lvl.Sacrifice.Value, H: st.H, K: st.K}, true
	}
	if !lvl.HasTargets() {
		return plot.Curve{}, false
	}
	pick := func(t levels.Target, cur float64) float64 {
		if t.Defined {
			return t.Value
		}
		return cur
	}
	return plot.Curve{
		A: pick(st.TargetA, st.A),
		H: pick(st.TargetH, st.H),
		K: pick(st.TargetK, st.K),
	}, true
}

func (m Model) viewHUD() string {
	st := m.sess.State()
	var parts []string
	for _, p := range levels.Params {
		label := fmt.Sprintf(" %s = %s ", p, formatParam(p, st.Param(p)))
		switch {
		case !st.Editable(p):
			label = lockedStyle.Render(label + "(locked)")
		case m.sess.ControlsEnabled() && p == m.sess.Selected():
			label = selectStyle.Render(label)
		}
		parts = append(parts, label)
	}
	line := strings.Join(parts, "  ")
	if m.sess.SacrificeMode() {
		line += "  " + wrongStyle.Render("SACRIFICE")
	}
	if m.sess.FormulaVisible() {
		line += "\n" + formulaStyle.Render(fmt.Sprintf("y = %s(x - %s)² + %s",
			formatParam(levels.ParamA, st.A), formatParam(levels.ParamH, st.H), formatParam(levels.ParamK, st.K)))
	}
	return line
}

func formatParam(p levels.Param, v float64) string {
	if p == levels.ParamA {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.0f", v)
}

func (m Model) viewDialogue(line session.Line) string {
	name := string(line.Speaker)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(speakerColors[line.Speaker])
	head := nameStyle.Render(name)
	if line.Emotion != dialogue.EmotionNone {
		head += dimStyle.Render(" (" + string(line.Emotion) + ")")
	}
	more := "enter ▸"
	if line.Terminal {
		more = "enter ■"
	}
	body := head + "\n" + line.Text + "\n" + dimStyle.Render(more)
	return boxStyle.Width(max(m.width-4, 20)).Render(body)
}

func (m Model) viewPanel(p *content.Panel, now time.Time) string {
	e := p.Entry()
	var b strings.Builder
	b.WriteString(titleStyle.Render("MIND PALACE: " + e.Title))
	b.WriteString("\n\n")

	switch p.Step() {
	case content.StepConcept:
		b.WriteString(formulaStyle.Render(e.Concept))
		b.WriteString("\n\n")
		b.WriteString(e.Body)
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter: continue"))

	case content.StepQuiz:
		q := e.Quiz
		b.WriteString(q.Question)
		b.WriteString("\n\n")
		for i, opt := range q.Options {
			line := fmt.Sprintf("%d. %s", i+1, opt)
			if i == p.Selected() {
				line = wrongStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		if fb := p.Feedback(); fb != "" {
			b.WriteString("\n")
			b.WriteString(wrongStyle.Render(fb))
			b.WriteString("\n")
		}
		if p.ShowHint(now) {
			b.WriteString("\n")
			b.WriteString(dimStyle.Render("Hint: " + q.Hint))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("1-6: answer"))

	case content.StepSuccess:
		if e.Quiz != nil {
			b.WriteString(rightStyle.Render("Correct."))
			b.WriteString("\n")
			if fb := p.Feedback(); fb != "" {
				b.WriteString(fb)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("enter: close"))
	}

	return boxStyle.Width(max(m.width-4, 20)).Render(b.String())
}

func statusText(e session.Event) string {
	switch e.Kind {
	case session.EventSolved:
		return rightStyle.Render(fmt.Sprintf("Level %d solved.", e.Level))
	case session.EventHint:
		return formulaStyle.Render("Hint received.")
	case session.EventQuizWrong:
		return wrongStyle.Render("Not quite.")
	case session.EventLevelLoaded:
		return dimStyle.Render(fmt.Sprintf("Level %d: %s", e.Level, e.Text))
	case session.EventGameComplete:
		return rightStyle.Render("Campaign complete.")
	}
	return ""
}
