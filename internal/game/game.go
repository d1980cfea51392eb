// Package game adapts the platformer simulation to a character screen.
// It owns the recording, maps actions to directions and scales world units
// onto terminal cells.
package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/journal"
	"github.com/vovakirdan/tui-platformer/internal/physics"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// HUDRows is the number of screen rows above the world.
const HUDRows = 1

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlatformChar = '▓'
)

// Game is the terminal-facing platformer.
type Game struct {
	cfg      config.WorldConfig
	rt       core.RuntimeConfig
	frontend string
	rec      *journal.Recorder
	paused   bool
	finished []journal.Session // recordings closed by restart or reload
}

// New creates a game for the given world. Reset must be called before Step.
func New(cfg config.WorldConfig, frontend string) (*Game, error) {
	if _, err := cfg.Options(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	return &Game{cfg: cfg, frontend: frontend}, nil
}

// ID returns the identifier used for screenshots and logs.
func (g *Game) ID() string {
	return "platformer"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Platformer"
}

// Reset rebuilds the world for the given screen. The previous recording,
// if it ran at all, is kept for Sessions.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	if err := rt.CheckSurface(); err != nil {
		return err
	}
	g.archive()
	g.rt = rt
	g.paused = false

	rec, err := journal.NewRecorder(g.cfg, g.viewport(), g.frontend)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.rec = rec
	return nil
}

// SetConfig swaps in a reloaded world and restarts on it.
func (g *Game) SetConfig(cfg config.WorldConfig) error {
	if _, err := cfg.Options(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	g.cfg = cfg
	return g.Reset(g.rt)
}

// Config returns the world configuration in use.
func (g *Game) Config() config.WorldConfig {
	return g.cfg
}

// Resize changes the screen size. The world is not rebuilt; the new
// viewport takes effect on the next tick.
func (g *Game) Resize(width, height int) {
	g.rt.ScreenW = width
	g.rt.ScreenH = height
}

func (g *Game) archive() {
	if g.rec == nil {
		return
	}
	if s := g.rec.Session(); s.Ticks > 0 {
		g.finished = append(g.finished, s)
	}
	g.rec = nil
}

// viewport converts the screen below the HUD into world units.
func (g *Game) viewport() physics.Viewport {
	cw, ch := g.cfg.CellSize()
	rows := core.Max(g.rt.ScreenH-HUDRows, 0)
	return physics.Viewport{W: float64(g.rt.ScreenW) * cw, H: float64(rows) * ch}
}

// Step applies one frame of input and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		if err := g.Reset(g.rt); err == nil {
			return core.StepResult{State: g.State()}
		}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	// Releases always apply so a key let go while paused is not stuck.
	for _, a := range in.Released {
		if d, ok := direction(a); ok {
			g.rec.ClearMovement(d)
		}
	}
	// While paused a held walking key still becomes the intent, so holding
	// it through unpause walks. Jumps are dropped.
	for _, a := range in.Pressed {
		if d, ok := direction(a); ok && (!g.paused || d.Horizontal()) {
			g.rec.SetMovement(d)
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	vp := g.viewport()
	g.rec.Advance(vp.W, vp.H)
	return core.StepResult{State: g.State()}
}

func direction(a core.Action) (physics.Direction, bool) {
	switch a {
	case core.ActionLeft:
		return physics.Left, true
	case core.ActionRight:
		return physics.Right, true
	case core.ActionUp:
		return physics.Up, true
	case core.ActionDown:
		return physics.Down, true
	}
	return physics.Stopped, false
}

// State returns the current session state.
func (g *Game) State() core.GameState {
	var ticks uint64
	if g.rec != nil {
		ticks = g.rec.Simulation().Ticks()
	}
	return core.GameState{Ticks: ticks, Paused: g.paused}
}

// Simulation exposes the running simulation for queries.
func (g *Game) Simulation() *physics.Simulation {
	return g.rec.Simulation()
}

// Sessions returns every recording made by this game, the current one last.
func (g *Game) Sessions() []journal.Session {
	out := append([]journal.Session(nil), g.finished...)
	if g.rec != nil {
		if s := g.rec.Session(); s.Ticks > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Render draws the world and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.rec == nil {
		return
	}
	sim := g.rec.Simulation()
	world := core.NewRect(0, HUDRows, dst.Width(), dst.Height()-HUDRows)

	// Platforms first so the player stays visible when overlapping one.
	for _, p := range sim.Platforms() {
		g.fill(dst, world, p.Rect(), PlatformChar)
	}
	g.fill(dst, world, sim.PlayerRect(), PlayerChar)

	g.drawHUD(dst, sim)

	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ")
		dst.DrawTextCentered(dst.Height()/2+1, " Press P to resume ")
	}
}

// fill paints every cell the rectangle touches, clipped to the world area.
func (g *Game) fill(dst *core.Screen, world core.Rect, d physics.Drawable, r rune) {
	cells := g.CellRect(d)
	cells.Y += world.Y
	dst.FillRect(cells.Intersect(world), r, d.Color)
}

// CellRect maps a world rectangle to the screen cells it covers,
// relative to the top of the world area.
func (g *Game) CellRect(d physics.Drawable) core.Rect {
	cw, ch := g.cfg.CellSize()
	x0 := int(math.Floor(d.X / cw))
	y0 := int(math.Floor(d.Y / ch))
	x1 := int(math.Ceil((d.X + d.W) / cw))
	y1 := int(math.Ceil((d.Y + d.H) / ch))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (g *Game) drawHUD(dst *core.Screen, sim *physics.Simulation) {
	p := sim.Player()
	jump := "no"
	if p.CanJump() {
		jump = "yes"
	}
	hud := fmt.Sprintf(" tick %d  pos %.0f,%.0f  vel %.0f,%.0f  jump %s  %s/%s ",
		sim.Ticks(), p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y,
		jump, policyName(g.cfg), sim.JumpRule())
	dst.DrawTextColor(0, 0, hud, core.ColorGray)
}

func policyName(cfg config.WorldConfig) string {
	if cfg.Physics.Collision == "" {
		return registry.DefaultPolicy
	}
	return cfg.Physics.Collision
}
