package game

import "github.com/vovakirdan/tui-platformer/internal/physics"

// KeyBinding binds a physical key of a frontend to a movement direction.
// Several keys may share a direction.
type KeyBinding[K comparable] struct {
	Key K
	Dir physics.Direction
}

// KeyEdges reports the key state of a frontend for one frame.
type KeyEdges[K comparable] struct {
	JustPressed  func(K) bool
	JustReleased func(K) bool
	Pressed      func(K) bool
}

// PressedDirections returns the directions whose keys went down this frame,
// in binding order.
func PressedDirections[K comparable](bindings []KeyBinding[K], edges KeyEdges[K]) []physics.Direction {
	var dirs []physics.Direction
	for _, b := range bindings {
		if edges.JustPressed(b.Key) {
			dirs = append(dirs, b.Dir)
		}
	}
	return dirs
}

// ReleasedDirections returns the horizontal directions whose last held key
// went up this frame. A direction with another bound key still down stays
// held.
func ReleasedDirections[K comparable](bindings []KeyBinding[K], edges KeyEdges[K]) []physics.Direction {
	var dirs []physics.Direction
	for _, b := range bindings {
		if !b.Dir.Horizontal() || !edges.JustReleased(b.Key) {
			continue
		}
		if held(bindings, b.Dir, edges.Pressed) || containsDir(dirs, b.Dir) {
			continue
		}
		dirs = append(dirs, b.Dir)
	}
	return dirs
}

func held[K comparable](bindings []KeyBinding[K], d physics.Direction, pressed func(K) bool) bool {
	for _, b := range bindings {
		if b.Dir == d && pressed(b.Key) {
			return true
		}
	}
	return false
}

func containsDir(dirs []physics.Direction, d physics.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}
