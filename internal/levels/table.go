package levels

// Table is the ordered level lookup table. Level indices are zero-based.
type Table struct {
	levels []Config
}

// NewTable creates a table from the given level configs, in order.
func NewTable(cfgs ...Config) *Table {
	levels := make([]Config, len(cfgs))
	copy(levels, cfgs)
	return &Table{levels: levels}
}

// Count returns the number of configured levels.
func (t *Table) Count() int {
	return len(t.levels)
}

// Exists reports whether idx names a configured level.
func (t *Table) Exists(idx int) bool {
	return idx >= 0 && idx < len(t.levels)
}

// Get returns the level at idx. The boolean is false when idx is out of range.
func (t *Table) Get(idx int) (Config, bool) {
	if !t.Exists(idx) {
		return Config{}, false
	}
	return t.levels[idx], true
}

// Last returns the index of the final level, or -1 for an empty table.
func (t *Table) Last() int {
	return len(t.levels) - 1
}

// Names returns the display names of all levels.
func (t *Table) Names() []string {
	names := make([]string, len(t.levels))
	for i, lvl := range t.levels {
		names[i] = lvl.Name
	}
	return names
}
