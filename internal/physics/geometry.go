// Package physics implements the platformer simulation: a single player
// rectangle integrated under gravity and horizontal intent, then pushed out of
// the ground boundary and of a fixed row of platforms.
//
// Coordinates are world units with Y growing downward, matching the screen.
// The package is single-threaded by contract: a host calls Advance once per
// frame and SetMovement/ClearMovement between frames, all from one goroutine.
package physics

// Vec2 is a position or velocity in world units.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Box is an axis-aligned bounding box. X, Y is the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Offset returns the box moved by d.
func (b Box) Offset(d Vec2) Box {
	b.X += d.X
	b.Y += d.Y
	return b
}

// OverlapsX reports whether the horizontal spans intersect. Touching edges
// do not count.
func OverlapsX(a, b Box) bool {
	return a.X < b.Right() && a.Right() > b.X
}

// OverlapsY reports whether the vertical spans intersect. Touching edges
// do not count.
func OverlapsY(a, b Box) bool {
	return a.Y < b.Bottom() && a.Bottom() > b.Y
}

// Overlaps is the half-open AABB test on both axes.
func Overlaps(a, b Box) bool {
	return OverlapsX(a, b) && OverlapsY(a, b)
}
