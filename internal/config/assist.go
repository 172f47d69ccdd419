package config

import "time"

// AssistPreset is a named hint intensity.
type AssistPreset string

const (
	AssistFull   AssistPreset = "full"
	AssistNormal AssistPreset = "normal"
	AssistOff    AssistPreset = "off"
)

// ParseAssistPreset validates a preset name.
func ParseAssistPreset(s string) (AssistPreset, bool) {
	switch p := AssistPreset(s); p {
	case AssistFull, AssistNormal, AssistOff:
		return p, true
	}
	return "", false
}

// TimingScaleForPreset returns the factor applied to the hint delays.
func TimingScaleForPreset(preset AssistPreset) float64 {
	switch preset {
	case AssistFull:
		return 0.5
	default:
		return 1.0
	}
}

// ApplyAssistPreset modifies the config based on an assist preset.
func ApplyAssistPreset(cfg *GameConfig, preset AssistPreset) {
	if preset == AssistOff {
		cfg.HintsEnabled = false
		return
	}
	cfg.HintsEnabled = true

	scale := TimingScaleForPreset(preset)
	h := &cfg.Hints
	h.Hesitation = scaleDuration(h.Hesitation, scale)
	h.HesitationCooldown = scaleDuration(h.HesitationCooldown, scale)
	h.Stuck = scaleDuration(h.Stuck, scale)
	h.StuckCooldown = scaleDuration(h.StuckCooldown, scale)
	if preset == AssistFull && h.AttemptEvery > 1 {
		h.AttemptEvery = max(1, h.AttemptEvery-2)
	}
}

func scaleDuration(d time.Duration, scale float64) time.Duration {
	return time.Duration(float64(d) * scale)
}
