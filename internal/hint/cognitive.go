package hint

import "time"

// CognitiveState tracks the player's recent activity and mistakes.
type CognitiveState struct {
	lastInteraction time.Time
	errors          map[Kind]int
	threshold       int
}

func newCognitiveState(now time.Time, threshold int) CognitiveState {
	return CognitiveState{
		lastInteraction: now,
		errors:          make(map[Kind]int),
		threshold:       threshold,
	}
}

// LastInteraction returns the time of the last recorded interaction.
func (c *CognitiveState) LastInteraction() time.Time {
	return c.lastInteraction
}

// Idle returns the time elapsed since the last interaction.
func (c *CognitiveState) Idle(now time.Time) time.Duration {
	return now.Sub(c.lastInteraction)
}

func (c *CognitiveState) touch(now time.Time) {
	c.lastInteraction = now
}

func (c *CognitiveState) record(k Kind) {
	c.errors[k]++
}

// Errors returns how many corrective hints of kind k were given.
func (c *CognitiveState) Errors(k Kind) int {
	return c.errors[k]
}

// IsStruggling reports whether the corrective hints on this level reached
// the struggle threshold.
func (c *CognitiveState) IsStruggling() bool {
	if c.threshold <= 0 {
		return false
	}
	total := 0
	for _, n := range c.errors {
		total += n
	}
	return total >= c.threshold
}
