package config

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// World builds the physics world for a viewport of the given height.
// Layout platforms come first, in order, followed by the extra ones.
func (c WorldConfig) World(viewportHeight float64) physics.World {
	color := core.ParseColor(c.Platforms.Color)
	if c.Platforms.Color == "" {
		color = physics.PlatformColor
	}

	var platforms []physics.Platform
	if l := c.Platforms.Layout; l != nil {
		platforms = physics.RowLayout(l.Count, l.StartX, l.Spacing, l.Width, l.Height, viewportHeight-l.BottomOffset)
	}
	for _, p := range c.Platforms.Extra {
		y := p.Y
		if p.FromBottom {
			y = viewportHeight - p.Y
		}
		platforms = append(platforms, physics.NewPlatform(p.X, y, p.Width, p.Height))
	}
	for i := range platforms {
		platforms[i] = platforms[i].WithColor(color)
	}

	return physics.World{
		Player: physics.PlayerSpec{
			Position:    physics.Vec2{X: c.Player.X, Y: c.Player.Y},
			Velocity:    physics.Vec2{X: c.Player.Speed, Y: c.Player.FallSpeed},
			Width:       c.Player.Width,
			Height:      c.Player.Height,
			Gravity:     c.Physics.Gravity,
			JumpImpulse: c.Player.JumpImpulse,
			Color:       core.ParseColor(c.Player.Color),
		},
		Platforms: platforms,
	}
}

// Options resolves the collision policy and jump rule names.
func (c WorldConfig) Options() (physics.Options, error) {
	policy, err := registry.Lookup(c.Physics.Collision)
	if err != nil {
		return physics.Options{}, err
	}
	rule, err := physics.ParseJumpRule(c.Physics.JumpRule)
	if err != nil {
		return physics.Options{}, err
	}
	return physics.Options{Policy: policy, JumpRule: rule}, nil
}

// ReleaseAfter is how long a terminal key counts as held without a repeat.
func (c WorldConfig) ReleaseAfter() time.Duration {
	if c.Input.ReleaseAfterMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.Input.ReleaseAfterMS) * time.Millisecond
}

// CellSize returns world units per terminal column and row.
func (c WorldConfig) CellSize() (w, h float64) {
	w, h = c.Render.CellWidth, c.Render.CellHeight
	if w <= 0 {
		w = 10
	}
	if h <= 0 {
		h = 20
	}
	return w, h
}
