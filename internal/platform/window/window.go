// Package window runs the platformer in a desktop window with Ebitengine.
// Unlike a terminal, a window reports real key-up events, so held keys map
// straight onto the simulation's key-down and key-up operations.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/journal"
	"github.com/vovakirdan/tui-platformer/internal/physics"
)

// Default window size in pixels, one world unit per pixel.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// palette maps screen colors to pixel colors.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault:     {R: 255, G: 255, B: 255, A: 255},
	core.ColorRed:         {R: 255, A: 255},
	core.ColorGreen:       {G: 128, A: 255},
	core.ColorYellow:      {R: 255, G: 255, A: 255},
	core.ColorBlue:        {B: 255, A: 255},
	core.ColorMagenta:     {R: 255, B: 255, A: 255},
	core.ColorCyan:        {G: 255, B: 255, A: 255},
	core.ColorWhite:       {R: 255, G: 255, B: 255, A: 255},
	core.ColorBrightRed:   {R: 255, G: 85, B: 85, A: 255},
	core.ColorBrightGreen: {R: 85, G: 255, B: 85, A: 255},
	core.ColorGray:        {R: 128, G: 128, B: 128, A: 255},
	core.ColorSeaGreen:    {R: 46, G: 139, B: 87, A: 255},
}

// keyBindings maps keys to directions, checked in this order.
var keyBindings = []game.KeyBinding[ebiten.Key]{
	{Key: ebiten.KeyArrowLeft, Dir: physics.Left},
	{Key: ebiten.KeyA, Dir: physics.Left},
	{Key: ebiten.KeyArrowRight, Dir: physics.Right},
	{Key: ebiten.KeyD, Dir: physics.Right},
	{Key: ebiten.KeyArrowUp, Dir: physics.Up},
	{Key: ebiten.KeyW, Dir: physics.Up},
	{Key: ebiten.KeySpace, Dir: physics.Up},
	{Key: ebiten.KeyArrowDown, Dir: physics.Down},
	{Key: ebiten.KeyS, Dir: physics.Down},
}

var keyEdges = game.KeyEdges[ebiten.Key]{
	JustPressed:  inpututil.IsKeyJustPressed,
	JustReleased: inpututil.IsKeyJustReleased,
	Pressed:      ebiten.IsKeyPressed,
}

// Game implements ebiten.Game over a recorded simulation.
type Game struct {
	cfg      config.WorldConfig
	rec      *journal.Recorder
	finished []journal.Session
	logger   *log.Logger
	width    int
	height   int
	paused   bool
}

// New creates a window game for a window of the given size.
func New(cfg config.WorldConfig, width, height int, logger *log.Logger) (*Game, error) {
	if width <= 0 || height <= 0 {
		return nil, core.ErrNoSurface
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{cfg: cfg, logger: logger, width: width, height: height}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	if g.rec != nil {
		if s := g.rec.Session(); s.Ticks > 0 {
			g.finished = append(g.finished, s)
		}
	}
	rec, err := journal.NewRecorder(g.cfg, physics.Viewport{W: float64(g.width), H: float64(g.height)}, "window")
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	g.rec = rec
	g.paused = false
	return nil
}

// Update handles input edges and runs one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
		g.logger.Info("world restarted")
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	for _, d := range game.ReleasedDirections(keyBindings, keyEdges) {
		g.rec.ClearMovement(d)
	}
	// Walking keys pressed while paused still set the intent.
	for _, d := range game.PressedDirections(keyBindings, keyEdges) {
		if !g.paused || d.Horizontal() {
			g.rec.SetMovement(d)
		}
	}
	if g.paused {
		return nil
	}

	g.rec.Advance(float64(g.width), float64(g.height))
	return nil
}

// Draw paints every rectangle the simulation reports.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	sim := g.rec.Simulation()
	for _, r := range sim.Rects() {
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), pixelColor(r.Color), false)
	}

	p := sim.Player()
	hud := fmt.Sprintf("tick %d  pos %.0f,%.0f  vel %.0f,%.0f  jump %t  %s",
		sim.Ticks(), p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y, p.CanJump(), sim.JumpRule())
	if g.paused {
		hud += "  PAUSED"
	}
	ebitenutil.DebugPrint(screen, hud)
}

// Layout tracks the window size; the viewport is the whole window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Sessions returns every recording made in this window, the current one last.
func (g *Game) Sessions() []journal.Session {
	out := append([]journal.Session(nil), g.finished...)
	if s := g.rec.Session(); s.Ticks > 0 {
		out = append(out, s)
	}
	return out
}

func pixelColor(c core.Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return palette[core.ColorDefault]
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, tickRate int) error {
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	if tickRate > 0 {
		ebiten.SetTPS(tickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
