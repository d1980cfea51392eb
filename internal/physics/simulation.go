package physics

// Viewport is the visible area in world units. Its bottom edge is the ground.
type Viewport struct {
	W, H float64
}

// World is the initial content of a simulation.
type World struct {
	Player    PlayerSpec
	Platforms []Platform
}

// DefaultWorld returns the demo world for a viewport of the given height.
func DefaultWorld(viewportHeight float64) World {
	return World{
		Player:    DefaultPlayerSpec(),
		Platforms: ReferenceLayout(viewportHeight),
	}
}

// Options selects the collision policy and jump rule.
// The zero value means MinOverlap and JumpGrounded.
type Options struct {
	Policy   Policy
	JumpRule JumpRule
}

// Simulation owns the player and the platform row and advances them one tick
// at a time. It never draws; hosts read Rects after each Advance.
type Simulation struct {
	player    *Player
	platforms []Platform
	viewport  Viewport
	policy    Policy
	jumpRule  JumpRule
	held      []Direction // held horizontal keys, oldest first
	ticks     uint64
}

// NewSimulation builds a simulation over a copy of the world's platforms.
func NewSimulation(world World, vp Viewport, opts Options) *Simulation {
	policy := opts.Policy
	if policy == nil {
		policy = MinOverlap
	}
	platforms := make([]Platform, len(world.Platforms))
	copy(platforms, world.Platforms)

	return &Simulation{
		player:    NewPlayer(world.Player),
		platforms: platforms,
		viewport:  vp,
		policy:    policy,
		jumpRule:  opts.JumpRule,
	}
}

// Advance runs one tick against a viewport of the given size.
func (s *Simulation) Advance(width, height float64) {
	s.viewport = Viewport{W: width, H: height}
	s.Tick()
}

// Tick runs one tick against the current viewport: integrate, then resolve.
func (s *Simulation) Tick() {
	s.player.Integrate()
	s.resolve()
	s.ticks++
}

func (s *Simulation) resolve() {
	p := s.player
	p.grounded = false

	if p.Position.Y+p.Height >= s.viewport.H {
		p.Position.Y = s.viewport.H - p.Height
		p.Velocity.Y = 0
		p.land()
	} else if s.jumpRule == JumpStrict {
		p.canJump = false
	}

	for i := range s.platforms {
		box := s.platforms[i].box
		if !Overlaps(p.Predicted(), box) {
			continue
		}
		p.pushOut(box, s.policy(p.Box(), box, p.Velocity))
	}

	if s.jumpRule == JumpGrounded {
		p.canJump = p.grounded
	}
}

// SetMovement handles a directional key-down. Left and Right become the
// active intent; Up jumps once; Stopped releases every held key.
func (s *Simulation) SetMovement(d Direction) {
	switch {
	case d.Horizontal():
		s.held = append(removeDirection(s.held, d), d)
		s.player.Move(d)
	case d == Stopped:
		s.held = s.held[:0]
		s.player.Move(Stopped)
	default:
		s.player.Move(d)
	}
}

// ClearMovement handles a directional key-up. Releasing the active key falls
// back to the other held horizontal key, or stops. Releasing a key that is
// not held changes nothing.
func (s *Simulation) ClearMovement(d Direction) {
	if d == Stopped {
		s.SetMovement(Stopped)
		return
	}
	if !d.Horizontal() {
		return
	}
	s.held = removeDirection(s.held, d)

	next := Stopped
	if n := len(s.held); n > 0 {
		next = s.held[n-1]
	}
	s.player.Move(next)
}

func removeDirection(held []Direction, d Direction) []Direction {
	out := held[:0]
	for _, h := range held {
		if h != d {
			out = append(out, h)
		}
	}
	return out
}

// Player returns a snapshot of the player.
func (s *Simulation) Player() Player {
	return *s.player
}

// PlayerRect returns the player's drawable rectangle.
func (s *Simulation) PlayerRect() Drawable {
	return s.player.Rect()
}

// Platforms returns the platforms in creation order.
func (s *Simulation) Platforms() []Platform {
	out := make([]Platform, len(s.platforms))
	copy(out, s.platforms)
	return out
}

// Rects returns everything to paint: the player first, then each platform
// in creation order.
func (s *Simulation) Rects() []Drawable {
	out := make([]Drawable, 0, len(s.platforms)+1)
	out = append(out, s.player.Rect())
	for _, p := range s.platforms {
		out = append(out, p.Rect())
	}
	return out
}

// Viewport returns the viewport used by the last tick.
func (s *Simulation) Viewport() Viewport {
	return s.viewport
}

// SetViewport changes the viewport without advancing.
func (s *Simulation) SetViewport(vp Viewport) {
	s.viewport = vp
}

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// JumpRule returns the jump rule in effect.
func (s *Simulation) JumpRule() JumpRule {
	return s.jumpRule
}
