package physics

// Side is the face of a platform the player is pushed out through.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Policy chooses the resolution side for a player box overlapping a platform.
// player is the committed box; velocity is the pending velocity, so
// player.Offset(Vec2{Y: velocity.Y}) is the box the overlap was detected on.
type Policy func(player, platform Box, velocity Vec2) Side

// MinOverlap measures penetration on each axis from the committed box and
// resolves along the smaller one. The side follows which way the player's
// corner lies relative to the platform's corner. Ties go vertical.
func MinOverlap(player, platform Box, _ Vec2) Side {
	overlapX := player.Right() - platform.X
	if player.X > platform.X {
		overlapX = platform.Right() - player.X
	}

	overlapY := player.Bottom() - platform.Y
	if player.Y > platform.Y {
		overlapY = platform.Bottom() - player.Y
	}

	if overlapX < overlapY {
		if player.X < platform.X {
			return SideLeft
		}
		return SideRight
	}
	if player.Y < platform.Y {
		return SideTop
	}
	return SideBottom
}

// MinEdgeDistance measures, on the predicted box, how far each player edge
// has crossed the opposite platform edge and resolves through the face with
// the smallest crossing. Ties prefer top, bottom, left, right in that order.
func MinEdgeDistance(player, platform Box, velocity Vec2) Side {
	pr := player.Offset(Vec2{Y: velocity.Y})

	deltaTop := pr.Bottom() - platform.Y
	deltaBottom := platform.Bottom() - pr.Y
	deltaLeft := pr.Right() - platform.X
	deltaRight := platform.Right() - pr.X

	side, best := SideTop, deltaTop
	if deltaBottom < best {
		side, best = SideBottom, deltaBottom
	}
	if deltaLeft < best {
		side, best = SideLeft, deltaLeft
	}
	if deltaRight < best {
		side = SideRight
	}
	return side
}

// pushOut moves the player flush against the given platform face. Only the
// resolved axis is touched; vertical faces also stop vertical motion and a
// top face counts as a landing.
func (p *Player) pushOut(platform Box, side Side) {
	switch side {
	case SideLeft:
		p.Position.X = platform.X - p.Width
	case SideRight:
		p.Position.X = platform.Right()
	case SideTop:
		p.Position.Y = platform.Y - p.Height
		p.Velocity.Y = 0
		p.land()
	case SideBottom:
		p.Position.Y = platform.Bottom()
		p.Velocity.Y = 0
	}
}
