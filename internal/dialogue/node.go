// Package dialogue implements the narrative script engine: id-addressed
// dialogue nodes, a Closed/Open state machine and typed node actions.
//
// The engine only exposes which node is current. Interpreting a node's
// action is the job of the orchestrating layer.
package dialogue

import (
	"fmt"
	"strings"
)

// Speaker identifies who says a line.
type Speaker string

const (
	SpeakerSystem    Speaker = "system"
	SpeakerPlayer    Speaker = "player"
	SpeakerNavigator Speaker = "navigator"
	SpeakerPhoton    Speaker = "photon"
	SpeakerMerchant  Speaker = "merchant"
	SpeakerDeer      Speaker = "deer"
	SpeakerCaptain   Speaker = "captain"
)

// ParseSpeaker validates a speaker name.
func ParseSpeaker(s string) (Speaker, bool) {
	switch sp := Speaker(s); sp {
	case SpeakerSystem, SpeakerPlayer, SpeakerNavigator, SpeakerPhoton,
		SpeakerMerchant, SpeakerDeer, SpeakerCaptain:
		return sp, true
	}
	return "", false
}

// Emotion is an optional mood tag on a line.
type Emotion string

const (
	EmotionNone      Emotion = ""
	EmotionNeutral   Emotion = "neutral"
	EmotionHappy     Emotion = "happy"
	EmotionAngry     Emotion = "angry"
	EmotionConfused  Emotion = "confused"
	EmotionScared    Emotion = "scared"
	EmotionWorry     Emotion = "worry"
	EmotionSad       Emotion = "sad"
	EmotionSurprised Emotion = "surprised"
)

// ParseEmotion validates an emotion name. The empty string is EmotionNone.
func ParseEmotion(s string) (Emotion, bool) {
	switch e := Emotion(s); e {
	case EmotionNone, EmotionNeutral, EmotionHappy, EmotionAngry, EmotionConfused,
		EmotionScared, EmotionWorry, EmotionSad, EmotionSurprised:
		return e, true
	}
	return "", false
}

// Action is a side effect attached to a node. The concrete types below are
// the complete set; consumers switch over them exhaustively.
type Action interface {
	// Token returns the authoring token of the action.
	Token() string
	isAction()
}

// EnableControls hands the parameter controls to the player.
type EnableControls struct{}

// ShowFormula reveals the vertex-form formula in the HUD.
type ShowFormula struct{}

// OpenMindPalace opens the level's knowledge panel. The dialogue waits on
// this node until the panel is dismissed.
type OpenMindPalace struct{}

// SacrificeMode enables controls for the finale puzzle with its widened
// curvature range.
type SacrificeMode struct{}

func (EnableControls) Token() string { return "ENABLE_CONTROLS" }
func (ShowFormula) Token() string    { return "SHOW_FORMULA" }
func (OpenMindPalace) Token() string { return "OPEN_MIND_PALACE" }
func (SacrificeMode) Token() string  { return "SACRIFICE_MODE" }

func (EnableControls) isAction() {}
func (ShowFormula) isAction()    {}
func (OpenMindPalace) isAction() {}
func (SacrificeMode) isAction()  {}

// ParseAction maps an authoring token to its action. An empty token means no
// action; an unknown token is an error.
func ParseAction(token string) (Action, error) {
	switch strings.TrimSpace(token) {
	case "":
		return nil, nil
	case "ENABLE_CONTROLS":
		return EnableControls{}, nil
	case "SHOW_FORMULA":
		return ShowFormula{}, nil
	case "OPEN_MIND_PALACE":
		return OpenMindPalace{}, nil
	case "SACRIFICE_MODE":
		return SacrificeMode{}, nil
	}
	return nil, fmt.Errorf("dialogue: unknown action %q", token)
}

// Node is one line of dialogue. An empty Next marks a terminal node.
type Node struct {
	ID      string
	Text    string // may contain the {player} placeholder
	Speaker Speaker
	Emotion Emotion
	Next    string
	Action  Action
}

// Terminal reports whether advancing past this node closes the dialogue.
func (n Node) Terminal() bool {
	return n.Next == ""
}

// PlayerPlaceholder is replaced by the player name at render time.
const PlayerPlaceholder = "{player}"

// DefaultPlayerName is used when the player has not entered a name.
const DefaultPlayerName = "Commander"

// Substitute fills the player placeholder in text.
func Substitute(text, playerName string) string {
	if playerName == "" {
		playerName = DefaultPlayerName
	}
	return strings.ReplaceAll(text, PlayerPlaceholder, playerName)
}
