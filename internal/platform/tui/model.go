package tui

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/parabola-world/internal/content"
	"github.com/vovakirdan/parabola-world/internal/plot"
	"github.com/vovakirdan/parabola-world/internal/session"
	"github.com/vovakirdan/parabola-world/internal/storage"
)

const (
	maxNameLen   = 20
	statusPeriod = 3 * time.Second
)

// statusLine holds the last session event for display. It is shared by
// pointer because Bubble Tea copies the model on every update.
type statusLine struct {
	event session.Event
	at    time.Time
}

func (s *statusLine) push(e session.Event) {
	s.event = e
	s.at = time.Now()
}

func (s *statusLine) current(now time.Time) (session.Event, bool) {
	if s.at.IsZero() || now.Sub(s.at) > statusPeriod {
		return session.Event{}, false
	}
	return s.event, true
}

// Model is the Bubble Tea model of one player's game.
type Model struct {
	sess     *session.Session
	fps      int
	keys     KeyMap
	help     help.Model
	canvas   *plot.Canvas
	status   *statusLine
	levelMap *LevelMap
	showMap  bool
	name     string
	width    int
	height   int
	quitting bool
}

// NewModel opens a session for opts and wraps it in a model.
func NewModel(opts GameOptions, width, height int) (Model, error) {
	status := &statusLine{}
	next := opts.OnEvent
	opts.OnEvent = func(e session.Event) {
		status.push(e)
		if next != nil {
			next(e)
		}
	}

	sess, err := OpenSession(opts, time.Now())
	if err != nil {
		return Model{}, err
	}

	var recorder storage.Recorder
	profile := ""
	if opts.Backend != nil {
		recorder, _ = opts.Backend.(storage.Recorder)
		profile = storage.ForProfile(opts.Backend, opts.Profile).Name()
	}

	m := Model{
		sess:     sess,
		fps:      opts.FPS,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		canvas:   plot.NewCanvas(0, 0),
		status:   status,
		levelMap: NewLevelMap(recorder, profile),
		width:    width,
		height:   height,
	}
	m.resize(width, height)
	return m, nil
}

// Session returns the underlying session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.sess.Tick(time.Time(msg))
		return m, tickCmd(m.fps)
	}

	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.canvas.Resize(max(width, 0), max(height-reservedRows, minPlotRows))
	m.levelMap.Resize(width, height)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sess.Close()
	return m, tea.Quit
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.sess.NeedsBoot():
		return m.handleBootKey(msg, now)
	case m.showMap:
		return m.handleMapKey(msg, now)
	}

	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	if key.Matches(msg, m.keys.ToggleHelp) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch {
	case m.sess.GameComplete():
		return m.handleEndingKey(msg, now)
	case m.sess.Panel() != nil:
		return m.handlePanelKey(msg, now)
	}

	switch {
	case key.Matches(msg, m.keys.Map):
		m.levelMap.Load(m.sess.State(), m.sess.Table())
		m.showMap = true
		return m, nil
	case key.Matches(msg, m.keys.Music):
		m.sess.ToggleMusic()
		return m, nil
	}

	if m.sess.DialogueOpen() {
		switch {
		case key.Matches(msg, m.keys.Advance):
			m.sess.Advance(now)
		case key.Matches(msg, m.keys.Skip):
			m.sess.Skip(now)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextParam):
		m.sess.SelectNext(1)
	case key.Matches(msg, m.keys.PrevParam):
		m.sess.SelectNext(-1)
	case key.Matches(msg, m.keys.Increase):
		m.sess.Adjust(1, false, now)
	case key.Matches(msg, m.keys.Decrease):
		m.sess.Adjust(-1, false, now)
	case key.Matches(msg, m.keys.IncCoarse):
		m.sess.Adjust(1, true, now)
	case key.Matches(msg, m.keys.DecCoarse):
		m.sess.Adjust(-1, true, now)
	case key.Matches(msg, m.keys.Commit), key.Matches(msg, m.keys.Advance):
		m.sess.Commit(now)
	case key.Matches(msg, m.keys.Retry):
		m.sess.RetryLevel(now)
	}
	return m, nil
}

func (m Model) handleBootKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.sess.SubmitName(strings.TrimSpace(m.name), now)
	case tea.KeyBackspace:
		if r := []rune(m.name); len(r) > 0 {
			m.name = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		if len([]rune(m.name)) < maxNameLen {
			m.name += " "
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if len([]rune(m.name)) >= maxNameLen || !unicode.IsPrint(r) {
				continue
			}
			m.name += string(r)
		}
	case tea.KeyEsc:
		return m.quit()
	}
	return m, nil
}

func (m Model) handleMapKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Map):
		m.showMap = false
	case msg.Type == tea.KeyEnter:
		if m.sess.JumpToLevel(m.levelMap.Cursor(), now) {
			m.showMap = false
		}
	default:
		m.levelMap.Update(msg)
	}
	return m, nil
}

func (m Model) handleEndingKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NewGame):
		m.sess.NewGame(now)
	case key.Matches(msg, m.keys.Map):
		m.levelMap.Load(m.sess.State(), m.sess.Table())
		m.showMap = true
	}
	return m, nil
}

func (m Model) handlePanelKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	p := m.sess.Panel()
	switch p.Step() {
	case content.StepConcept:
		if key.Matches(msg, m.keys.Advance) {
			m.sess.ContinuePanel(now)
		}
	case content.StepQuiz:
		if key.Matches(msg, m.keys.Answer) {
			if idx, ok := answerIndex(msg.String()); ok {
				m.sess.AnswerQuiz(idx)
			}
		}
	case content.StepSuccess:
		if key.Matches(msg, m.keys.Advance) {
			m.sess.DismissPanel(now)
		}
	}
	return m, nil
}

// Run starts the Bubble Tea program for a local game.
func Run(opts GameOptions, width, height int) error {
	model, err := NewModel(opts, width, height)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	model.sess.Close()
	return err
}
