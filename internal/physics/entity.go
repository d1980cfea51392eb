package physics

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Direction is a movement intent produced by directional keys.
type Direction int

const (
	Stopped Direction = iota
	Up                // jump trigger, never held as an intent
	Down              // accepted, has no effect
	Left
	Right
)

// String returns the lower-case name used in journals and logs.
func (d Direction) String() string {
	switch d {
	case Stopped:
		return "stopped"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "stopped":
		return Stopped, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Stopped, fmt.Errorf("physics: unknown direction %q", s)
}

// Horizontal reports whether d is held as a persistent intent.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Drawable is what hosts paint: a rectangle and its color.
type Drawable struct {
	X, Y  float64
	W, H  float64
	Color core.Color
}

// Box returns the drawable's rectangle.
func (d Drawable) Box() Box {
	return Box{X: d.X, Y: d.Y, W: d.W, H: d.H}
}

// PlatformColor is the color platforms get when none is configured.
const PlatformColor = core.ColorSeaGreen

// Platform is a static obstacle. It is immutable once created.
type Platform struct {
	box   Box
	color core.Color
}

// NewPlatform creates a platform with its top-left corner at (x, y).
// Width and height are expected to be positive; they are not checked.
func NewPlatform(x, y, width, height float64) Platform {
	return Platform{
		box:   Box{X: x, Y: y, W: width, H: height},
		color: PlatformColor,
	}
}

// WithColor returns a copy of the platform painted in c.
func (p Platform) WithColor(c core.Color) Platform {
	p.color = c
	return p
}

// Box returns the platform's bounding box.
func (p Platform) Box() Box {
	return p.box
}

// Rect returns the platform as a drawable rectangle.
func (p Platform) Rect() Drawable {
	return Drawable{X: p.box.X, Y: p.box.Y, W: p.box.W, H: p.box.H, Color: p.color}
}

// ReferenceLayout returns the demo's platform row: ten 100x100 blocks laid
// side by side from x=200, their tops 300 units above the viewport bottom.
func ReferenceLayout(viewportHeight float64) []Platform {
	return RowLayout(10, 200, 100, 100, 100, viewportHeight-300)
}

// RowLayout places count platforms of the given size at startX + i*spacing,
// all at height y.
func RowLayout(count int, startX, spacing, width, height, y float64) []Platform {
	platforms := make([]Platform, 0, count)
	for i := 0; i < count; i++ {
		platforms = append(platforms, NewPlatform(startX+float64(i)*spacing, y, width, height))
	}
	return platforms
}
