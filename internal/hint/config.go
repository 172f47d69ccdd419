package hint

import "time"

// Config holds the advisor timings and thresholds.
type Config struct {
	Interval time.Duration `yaml:"interval"`

	// Hesitation fires after Hesitation of inactivity, at most once per
	// HesitationCooldown.
	Hesitation         time.Duration `yaml:"hesitation"`
	HesitationCooldown time.Duration `yaml:"hesitation_cooldown"`

	// Stuck fires when a sits at zero for Stuck, at most once per StuckCooldown.
	Stuck         time.Duration `yaml:"stuck"`
	StuckCooldown time.Duration `yaml:"stuck_cooldown"`

	// Directional rules, checked on every AttemptEvery-th attempt.
	// AlmostTolerance is wider than the win tolerance on a, otherwise the
	// win check always latches the level first.
	AttemptEvery    int     `yaml:"attempt_every"`
	SteepFactor     float64 `yaml:"steep_factor"`
	AlmostTolerance float64 `yaml:"almost_tolerance"`

	// StruggleThreshold is the number of corrective hints after which the
	// player counts as struggling.
	StruggleThreshold int `yaml:"struggle_threshold"`
}

// DefaultConfig returns the default advisor tuning.
func DefaultConfig() Config {
	return Config{
		Interval:           time.Second,
		Hesitation:         15 * time.Second,
		HesitationCooldown: 20 * time.Second,
		Stuck:              5 * time.Second,
		StuckCooldown:      10 * time.Second,
		AttemptEvery:       5,
		SteepFactor:        2,
		AlmostTolerance:    0.002,
		StruggleThreshold:  3,
	}
}
