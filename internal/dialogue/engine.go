package dialogue

// Engine is the dialogue state machine. Closed means no script is loaded.
type Engine struct {
	script  *Script
	current string
	open    bool

	// epoch changes when the active script is replaced or closed.
	epoch uint64
	// seq changes on every transition, node moves included.
	seq uint64
}

// NewEngine returns a closed engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Start replaces the active script and position. An empty startID starts at
// the script's first node. A nil script closes the engine.
func (e *Engine) Start(script *Script, startID string) {
	if script == nil || script.Len() == 0 {
		e.Close()
		return
	}
	if startID == "" {
		startID = script.First()
	}
	e.script = script
	e.current = startID
	e.open = true
	e.epoch++
	e.seq++
}

// Advance follows the current node's Next link, or closes the dialogue when
// there is none. It does nothing while closed.
func (e *Engine) Advance() {
	if !e.open {
		return
	}
	node, ok := e.script.Node(e.current)
	if !ok || node.Next == "" {
		e.Close()
		return
	}
	e.current = node.Next
	e.seq++
}

// Close forces the Closed state from anywhere.
func (e *Engine) Close() {
	wasOpen := e.open
	e.script = nil
	e.current = ""
	e.open = false
	if wasOpen {
		e.epoch++
		e.seq++
	}
}

// IsOpen reports whether a script is active.
func (e *Engine) IsOpen() bool {
	return e.open
}

// Current returns the current node. The boolean is false while closed or
// when the position names an id missing from the script.
func (e *Engine) Current() (Node, bool) {
	if !e.open {
		return Node{}, false
	}
	return e.script.Node(e.current)
}

// CurrentID returns the id of the current node, empty while closed.
func (e *Engine) CurrentID() string {
	return e.current
}

// Script returns the active script, nil while closed.
func (e *Engine) Script() *Script {
	return e.script
}

// Epoch identifies the active script instance.
func (e *Engine) Epoch() uint64 {
	return e.epoch
}

// Seq increments on every transition. Observers compare it to detect node
// changes and re-check the current node's action.
func (e *Engine) Seq() uint64 {
	return e.seq
}
