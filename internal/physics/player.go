package physics

import "github.com/vovakirdan/tui-platformer/internal/core"

// PlayerSpec holds the initial state of the player.
type PlayerSpec struct {
	Position    Vec2
	Velocity    Vec2 // X is the fixed horizontal step, Y the initial fall speed
	Width       float64
	Height      float64
	Gravity     float64
	JumpImpulse float64
	Color       core.Color
}

// DefaultPlayerSpec returns the demo player: a 50x30 red block at (100, 100)
// stepping 10 units sideways, already falling at 5, jumping with 30.
func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{
		Position:    Vec2{X: 100, Y: 100},
		Velocity:    Vec2{X: 10, Y: 5},
		Width:       50,
		Height:      30,
		Gravity:     1,
		JumpImpulse: 30,
		Color:       core.ColorRed,
	}
}

// Player is the controllable body.
//
// Velocity.X is never changed after construction; it is the distance moved
// per tick while a horizontal intent is active. Velocity.Y accumulates
// gravity without a cap.
type Player struct {
	Position    Vec2
	Velocity    Vec2
	Width       float64
	Height      float64
	Gravity     float64
	JumpImpulse float64
	Color       core.Color

	intent   Direction // Stopped, Left or Right
	canJump  bool
	grounded bool // contact with ground or a platform top during the last resolve
}

// NewPlayer creates a player from its spec. It cannot jump until it lands.
func NewPlayer(spec PlayerSpec) *Player {
	return &Player{
		Position:    spec.Position,
		Velocity:    spec.Velocity,
		Width:       spec.Width,
		Height:      spec.Height,
		Gravity:     spec.Gravity,
		JumpImpulse: spec.JumpImpulse,
		Color:       spec.Color,
		intent:      Stopped,
	}
}

// Box returns the player's committed bounding box.
func (p Player) Box() Box {
	return Box{X: p.Position.X, Y: p.Position.Y, W: p.Width, H: p.Height}
}

// Predicted returns the box one pending vertical step ahead. Collision
// detection runs against this box so a contact is seen before it is committed.
func (p Player) Predicted() Box {
	return p.Box().Offset(Vec2{Y: p.Velocity.Y})
}

// Rect returns the player as a drawable rectangle.
func (p Player) Rect() Drawable {
	return Drawable{X: p.Position.X, Y: p.Position.Y, W: p.Width, H: p.Height, Color: p.Color}
}

// Intent returns the current horizontal intent.
func (p Player) Intent() Direction {
	return p.intent
}

// CanJump reports whether a jump would succeed right now.
func (p Player) CanJump() bool {
	return p.canJump
}

// Grounded reports whether the last resolve found the player resting on the
// ground or on a platform top.
func (p Player) Grounded() bool {
	return p.grounded
}

// Integrate advances one tick: semi-implicit Euler on Y, then a fixed step
// on X according to the intent.
func (p *Player) Integrate() {
	p.Position.Y += p.Velocity.Y
	p.Velocity.Y += p.Gravity

	switch p.intent {
	case Left:
		p.Position.X -= p.Velocity.X
	case Right:
		p.Position.X += p.Velocity.X
	}
}

// Move applies a directional intent. Up fires a jump immediately instead of
// being stored; Down is accepted and ignored.
func (p *Player) Move(d Direction) {
	switch d {
	case Left, Right, Stopped:
		p.intent = d
	case Up:
		p.Jump()
	}
}

// Jump sets the upward velocity if the player may jump, and reports whether
// it did. Jumping revokes the permission until the next landing.
func (p *Player) Jump() bool {
	if !p.canJump {
		return false
	}
	p.canJump = false
	p.Velocity.Y = -p.JumpImpulse
	return true
}

// land records a resting contact that grants a jump.
func (p *Player) land() {
	p.grounded = true
	p.canJump = true
}
