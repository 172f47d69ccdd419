package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Advance    key.Binding
	Skip       key.Binding
	NextParam  key.Binding
	PrevParam  key.Binding
	Increase   key.Binding
	Decrease   key.Binding
	IncCoarse  key.Binding
	DecCoarse  key.Binding
	Commit     key.Binding
	Retry      key.Binding
	Map        key.Binding
	Music      key.Binding
	Answer     key.Binding
	NewGame    key.Binding
	Back       key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.NextParam, k.Increase, k.Decrease, k.ToggleHelp, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Advance, k.Skip, k.Answer},
		{k.NextParam, k.PrevParam, k.Commit},
		{k.Increase, k.Decrease, k.IncCoarse, k.DecCoarse},
		{k.Retry, k.Map, k.Music, k.ToggleHelp, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Advance: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "next"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip dialogue"),
		),
		NextParam: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next coefficient"),
		),
		PrevParam: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev coefficient"),
		),
		Increase: key.NewBinding(
			key.WithKeys("up", "k", "+", "="),
			key.WithHelp("up/k", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("down/j", "decrease"),
		),
		IncCoarse: key.NewBinding(
			key.WithKeys("pgup", "K"),
			key.WithHelp("pgup/K", "increase more"),
		),
		DecCoarse: key.NewBinding(
			key.WithKeys("pgdown", "J"),
			key.WithHelp("pgdn/J", "decrease more"),
		),
		Commit: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "commit"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry level"),
		),
		Map: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "level map"),
		),
		Music: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "mute"),
		),
		Answer: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "answer"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// answerIndex converts a digit key to a zero-based option index.
func answerIndex(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
