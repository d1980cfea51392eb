package physics

import (
	"math/rand"
	"testing"
)

func newTestSim(spec PlayerSpec, platforms []Platform, height float64, opts Options) *Simulation {
	return NewSimulation(World{Player: spec, Platforms: platforms}, Viewport{W: 2000, H: height}, opts)
}

func runUntilGrounded(t *testing.T, s *Simulation, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		s.Tick()
		if s.Player().Grounded() {
			return
		}
	}
	t.Fatalf("player did not land within %d ticks, at %+v", limit, s.Player().Position)
}

func TestLandsOnPlatform(t *testing.T) {
	platform := NewPlatform(150, 200, 100, 100)

	for _, tc := range []struct {
		name   string
		policy Policy
		startX float64
	}{
		{"min overlap", MinOverlap, 100},
		{"min edge distance", MinEdgeDistance, 175},
	} {
		t.Run(tc.name, func(t *testing.T) {
			spec := DefaultPlayerSpec()
			spec.Position.X = tc.startX
			if tc.startX == 100 {
				// Touching edges do not overlap; one step right puts the
				// player over the platform.
				spec.Position.X += spec.Velocity.X
			}
			s := newTestSim(spec, []Platform{platform}, 1000, Options{Policy: tc.policy})

			runUntilGrounded(t, s, 40)

			p := s.Player()
			if p.Position.Y+p.Height != 200 {
				t.Errorf("bottom edge = %v, expected 200", p.Position.Y+p.Height)
			}
			if p.Velocity.Y != 0 {
				t.Errorf("velocity.y = %v, expected 0", p.Velocity.Y)
			}
			if !p.CanJump() {
				t.Error("landing should grant a jump")
			}

			// Resting contact is stable.
			for i := 0; i < 20; i++ {
				s.Tick()
			}
			p = s.Player()
			if p.Position.Y+p.Height != 200 || !p.CanJump() {
				t.Errorf("player drifted off the platform: %+v", p.Position)
			}
		})
	}
}

func TestLandingTickFromReferenceScenario(t *testing.T) {
	s := newTestSim(DefaultPlayerSpec(), []Platform{NewPlatform(150, 200, 100, 100)}, 1000, Options{})

	s.SetMovement(Right)
	s.Tick()
	s.ClearMovement(Right)

	ticks := 1
	for !s.Player().Grounded() && ticks < 40 {
		s.Tick()
		ticks++
	}
	if ticks != 8 {
		t.Errorf("landed after %d ticks, expected 8", ticks)
	}
	if p := s.Player(); p.Position != (Vec2{X: 110, Y: 170}) {
		t.Errorf("landed at %+v, expected (110, 170)", p.Position)
	}
}

func TestGroundClamp(t *testing.T) {
	tests := []struct {
		name    string
		y, vy   float64
		gravity float64
	}{
		{"fast fall far below", 0, 200, 1},
		{"exactly reaches ground", 69, 1, 1},
		{"resting on ground", 70, 0, 1},
		{"from above the viewport", -500, 1000, 1},
		{"heavy gravity", 60, 15, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := PlayerSpec{Position: Vec2{X: 0, Y: tc.y}, Velocity: Vec2{Y: tc.vy}, Width: 50, Height: 30, Gravity: tc.gravity}
			s := newTestSim(spec, nil, 100, Options{})
			s.Tick()

			p := s.Player()
			if p.Position.Y+p.Height != 100 {
				t.Errorf("bottom edge = %v, expected 100", p.Position.Y+p.Height)
			}
			if p.Velocity.Y != 0 {
				t.Errorf("velocity.y = %v, expected 0", p.Velocity.Y)
			}
			if !p.CanJump() || !p.Grounded() {
				t.Error("ground contact should grant a jump")
			}
		})
	}
}

func TestJumpRequiresPermission(t *testing.T) {
	spec := PlayerSpec{Position: Vec2{Y: 70}, Velocity: Vec2{X: 10}, Width: 50, Height: 30, Gravity: 1, JumpImpulse: 30}
	s := newTestSim(spec, nil, 100, Options{})

	// Airborne before the first contact: no jump.
	airborne := newTestSim(DefaultPlayerSpec(), nil, 1000, Options{})
	airborne.SetMovement(Up)
	if v := airborne.Player().Velocity.Y; v != 5 {
		t.Errorf("jump while airborne changed velocity.y to %v", v)
	}

	s.Tick()
	s.SetMovement(Up)
	if v := s.Player().Velocity.Y; v != -30 {
		t.Fatalf("jump from ground: velocity.y = %v, expected -30", v)
	}

	// A second key-down before landing must not stack.
	s.SetMovement(Up)
	if v := s.Player().Velocity.Y; v != -30 {
		t.Errorf("second jump changed velocity.y to %v", v)
	}

	s.Tick()
	p := s.Player()
	if p.Position.Y != 40 || p.Velocity.Y != -29 {
		t.Errorf("after jump tick: pos.y=%v vel.y=%v", p.Position.Y, p.Velocity.Y)
	}
	if p.CanJump() {
		t.Error("player should not be able to jump mid-air")
	}
}

func TestIdleWithoutForcesIsStable(t *testing.T) {
	spec := PlayerSpec{Position: Vec2{X: 300, Y: 50}, Width: 50, Height: 30}
	s := NewSimulation(World{Player: spec, Platforms: ReferenceLayout(1000)}, Viewport{W: 1200, H: 1000}, Options{})

	for i := 0; i < 1000; i++ {
		s.Tick()
	}
	if p := s.Player(); p.Position != (Vec2{X: 300, Y: 50}) {
		t.Errorf("position drifted to %+v", p.Position)
	}
	if s.Ticks() != 1000 {
		t.Errorf("Ticks() = %d, expected 1000", s.Ticks())
	}
}

func TestHorizontalStopsAtPlatformEdge(t *testing.T) {
	platform := NewPlatform(200, 100, 100, 100)

	for _, policy := range []struct {
		name string
		fn   Policy
	}{
		{"min overlap", MinOverlap},
		{"min edge distance", MinEdgeDistance},
	} {
		t.Run(policy.name+" moving right", func(t *testing.T) {
			spec := PlayerSpec{Position: Vec2{X: 140, Y: 150}, Velocity: Vec2{X: 10}, Width: 50, Height: 30}
			s := newTestSim(spec, []Platform{platform}, 1000, Options{Policy: policy.fn})
			s.SetMovement(Right)
			for i := 0; i < 10; i++ {
				s.Tick()
				p := s.Player()
				if p.Position.X+p.Width != 200 {
					t.Fatalf("tick %d: right edge = %v, expected 200", i+1, p.Position.X+p.Width)
				}
			}
		})

		t.Run(policy.name+" moving left", func(t *testing.T) {
			spec := PlayerSpec{Position: Vec2{X: 310, Y: 150}, Velocity: Vec2{X: 10}, Width: 50, Height: 30}
			s := newTestSim(spec, []Platform{platform}, 1000, Options{Policy: policy.fn})
			s.SetMovement(Left)
			for i := 0; i < 10; i++ {
				s.Tick()
				if x := s.Player().Position.X; x != 300 {
					t.Fatalf("tick %d: left edge = %v, expected 300", i+1, x)
				}
			}
		})
	}
}

func TestHeadBumpsPlatformUnderside(t *testing.T) {
	spec := PlayerSpec{Position: Vec2{X: 120, Y: 125}, Velocity: Vec2{Y: -10}, Width: 50, Height: 30}
	s := newTestSim(spec, []Platform{NewPlatform(100, 100, 100, 20)}, 1000, Options{})
	s.Tick()

	p := s.Player()
	if p.Position.Y != 120 || p.Velocity.Y != 0 {
		t.Errorf("after head bump pos.y=%v vel.y=%v, expected 120 and 0", p.Position.Y, p.Velocity.Y)
	}
	if p.Grounded() || p.CanJump() {
		t.Error("hitting the underside must not grant a jump")
	}
}

func TestJumpRulesOnLedge(t *testing.T) {
	tests := []struct {
		rule        JumpRule
		canJumpOver bool
	}{
		{JumpGrounded, false},
		{JumpSticky, true},
		{JumpStrict, false},
	}

	for _, tc := range tests {
		t.Run(tc.rule.String(), func(t *testing.T) {
			spec := PlayerSpec{Position: Vec2{X: 40, Y: 170}, Velocity: Vec2{X: 10}, Width: 50, Height: 30, Gravity: 1, JumpImpulse: 30}
			s := newTestSim(spec, []Platform{NewPlatform(0, 200, 100, 100)}, 1000, Options{JumpRule: tc.rule})

			s.Tick()
			if !s.Player().CanJump() {
				t.Fatal("standing on the platform should allow a jump")
			}

			s.SetMovement(Right)
			for i := 0; i < 5; i++ {
				s.Tick()
				if !s.Player().CanJump() {
					t.Fatalf("tick %d: still on the platform, jump should be allowed", i+1)
				}
			}

			// x reaches 100: the player has walked off the edge.
			s.Tick()
			p := s.Player()
			if p.Position.X != 100 || p.Grounded() {
				t.Fatalf("expected to be off the ledge at x=100, got %+v grounded=%v", p.Position, p.Grounded())
			}
			if p.CanJump() != tc.canJumpOver {
				t.Errorf("CanJump() over the gap = %v, expected %v", p.CanJump(), tc.canJumpOver)
			}
		})
	}
}

func TestHeldKeys(t *testing.T) {
	s := newTestSim(DefaultPlayerSpec(), nil, 1000, Options{})

	s.SetMovement(Left)
	s.SetMovement(Right)
	if got := s.Player().Intent(); got != Right {
		t.Fatalf("newest press should win, got %v", got)
	}

	s.ClearMovement(Left)
	if got := s.Player().Intent(); got != Right {
		t.Errorf("releasing the other key must not stop movement, got %v", got)
	}

	s.ClearMovement(Right)
	if got := s.Player().Intent(); got != Stopped {
		t.Errorf("releasing the last key should stop, got %v", got)
	}

	s.SetMovement(Left)
	s.SetMovement(Right)
	s.ClearMovement(Right)
	if got := s.Player().Intent(); got != Left {
		t.Errorf("releasing the active key should fall back to the held one, got %v", got)
	}

	s.SetMovement(Stopped)
	if got := s.Player().Intent(); got != Stopped {
		t.Errorf("SetMovement(Stopped) should stop, got %v", got)
	}
	s.ClearMovement(Left)
	if got := s.Player().Intent(); got != Stopped {
		t.Errorf("releasing an unheld key changed intent to %v", got)
	}

	s.SetMovement(Down)
	if got := s.Player().Intent(); got != Stopped {
		t.Errorf("Down should be ignored, got %v", got)
	}
}

func TestStoppedLeavesVerticalPhysicsAlone(t *testing.T) {
	moving := newTestSim(DefaultPlayerSpec(), ReferenceLayout(600), 600, Options{})
	still := newTestSim(DefaultPlayerSpec(), ReferenceLayout(600), 600, Options{})

	moving.SetMovement(Left)
	moving.ClearMovement(Left)
	for i := 0; i < 30; i++ {
		moving.Tick()
		still.Tick()
		if moving.Player().Position != still.Player().Position || moving.Player().Velocity != still.Player().Velocity {
			t.Fatalf("tick %d: released key changed physics", i+1)
		}
	}
}

func TestGravityIsUnbounded(t *testing.T) {
	spec := PlayerSpec{Width: 10, Height: 10, Gravity: 1}
	s := newTestSim(spec, nil, 1e9, Options{})
	for i := 0; i < 500; i++ {
		s.Tick()
	}
	if v := s.Player().Velocity.Y; v != 500 {
		t.Errorf("velocity.y = %v, expected 500", v)
	}
}

func TestAdvanceUpdatesViewport(t *testing.T) {
	s := newTestSim(DefaultPlayerSpec(), nil, 1000, Options{})
	s.Advance(800, 120)

	if vp := s.Viewport(); vp != (Viewport{W: 800, H: 120}) {
		t.Errorf("Viewport() = %+v", vp)
	}
	if p := s.Player(); p.Position.Y != 90 {
		t.Errorf("player should be clamped to the new ground, y=%v", p.Position.Y)
	}
}

func TestRectsOrder(t *testing.T) {
	s := NewSimulation(DefaultWorld(600), Viewport{W: 1200, H: 600}, Options{})
	rects := s.Rects()

	if len(rects) != 11 {
		t.Fatalf("expected player + 10 platforms, got %d", len(rects))
	}
	if rects[0] != s.PlayerRect() {
		t.Errorf("first rect should be the player, got %+v", rects[0])
	}
	for i, p := range s.Platforms() {
		if rects[i+1] != p.Rect() {
			t.Errorf("rect %d = %+v, expected platform %+v", i+1, rects[i+1], p.Rect())
		}
	}
}

func TestResolvedAxisHasNoOverlap(t *testing.T) {
	type resolution struct {
		platform Box
		side     Side
	}

	for _, policy := range []struct {
		name string
		fn   Policy
	}{
		{"min overlap", MinOverlap},
		{"min edge distance", MinEdgeDistance},
	} {
		t.Run(policy.name, func(t *testing.T) {
			var last *resolution
			recording := func(player, platform Box, v Vec2) Side {
				side := policy.fn(player, platform, v)
				last = &resolution{platform: platform, side: side}
				return side
			}

			s := NewSimulation(DefaultWorld(600), Viewport{W: 1400, H: 600}, Options{Policy: recording})
			rng := rand.New(rand.NewSource(7))
			dirs := []Direction{Left, Right, Up, Stopped}

			for i := 0; i < 5000; i++ {
				d := dirs[rng.Intn(len(dirs))]
				if rng.Intn(2) == 0 {
					s.SetMovement(d)
				} else {
					s.ClearMovement(d)
				}

				last = nil
				s.Tick()
				p := s.Player()

				if p.Position.Y+p.Height > 600 {
					t.Fatalf("tick %d: player below ground at %+v", i, p.Position)
				}
				if p.Grounded() && p.Velocity.Y != 0 {
					t.Fatalf("tick %d: grounded with velocity.y=%v", i, p.Velocity.Y)
				}
				if last == nil {
					continue
				}
				switch last.side {
				case SideLeft, SideRight:
					if OverlapsX(p.Box(), last.platform) {
						t.Fatalf("tick %d: still overlapping on x after %v push", i, last.side)
					}
				case SideTop, SideBottom:
					if OverlapsY(p.Box(), last.platform) {
						t.Fatalf("tick %d: still overlapping on y after %v push", i, last.side)
					}
				}
			}
		})
	}
}
