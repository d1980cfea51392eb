package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A
	ActionRight          // Right arrow, D
	ActionUp             // Up arrow, W, Space - jump trigger
	ActionDown           // Down arrow, S - accepted, no effect
	ActionPause          // P - pause/unpause
	ActionRestart        // R - rebuild the world
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the action maps to a movement direction.
func (a Action) IsDirectional() bool {
	return a == ActionLeft || a == ActionRight || a == ActionUp || a == ActionDown
}

// InputFrame collects the key-down and key-up edges seen between two ticks.
// Order is preserved so that the newest press wins when both arrows are held.
type InputFrame struct {
	Pressed  []Action
	Released []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Press records a key-down edge.
func (f *InputFrame) Press(a Action) {
	f.Pressed = append(f.Pressed, a)
}

// Release records a key-up edge.
func (f *InputFrame) Release(a Action) {
	f.Released = append(f.Released, a)
}

// Has returns true if the action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	for _, p := range f.Pressed {
		if p == a {
			return true
		}
	}
	return false
}

// Empty reports whether the frame carries no edges.
func (f InputFrame) Empty() bool {
	return len(f.Pressed) == 0 && len(f.Released) == 0
}

// Clear resets the frame for the next tick, keeping allocated capacity.
func (f *InputFrame) Clear() {
	f.Pressed = f.Pressed[:0]
	f.Released = f.Released[:0]
}
