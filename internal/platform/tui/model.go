package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Options configures a Model beyond the game itself.
type Options struct {
	Store         *storage.Store  // Where finished sessions are saved; may be nil
	Logger        *log.Logger     // Defaults to a discarding logger
	Watcher       *config.Watcher // Hot reload source; may be nil
	ScreenshotDir string          // Defaults to ~/.platformer/screenshots
}

// reloadMsg carries a freshly loaded world configuration.
type reloadMsg struct {
	path string
	cfg  config.WorldConfig
	err  error
}

// watchErrMsg reports a failure of the config watcher.
type watchErrMsg struct {
	err error
}

// Model is the Bubble Tea model for running the platformer.
type Model struct {
	game       *game.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	hold       *HoldTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a model and resets the game for the given screen size.
// The screen includes the help footer.
func NewModel(g *game.Game, cfg core.RuntimeConfig, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:       g,
		opts:       opts,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		hold:       NewHoldTracker(g.Config().ReleaseAfter()),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW

	world := m.worldConfig()
	if err := g.Reset(world); err != nil {
		return m, err
	}
	m.screen = core.NewScreen(world.ScreenW, world.ScreenH)
	m.gameState = g.State()
	return m, nil
}

// worldConfig is the runtime config minus the footer rows.
func (m Model) worldConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH -= m.footerHeight()
	return cfg
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// Init starts the tick loop and, when configured, the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m.relayout(), nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case reloadMsg:
		return m.handleReload(msg)

	case watchErrMsg:
		m.opts.Logger.Warn("config watcher error", "error", msg.err)
		return m, watchCmd(m.opts.Watcher)
	}

	return m, nil
}

// relayout resizes the screen and the game after the footer or the
// terminal changed size.
func (m Model) relayout() Model {
	world := m.worldConfig()
	m.screen.Resize(world.ScreenW, world.ScreenH)
	m.game.Resize(world.ScreenW, world.ScreenH)
	return m
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.relayout(), nil
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		SaveSessions(m.opts.Store, m.game, m.opts.Logger)
		return m, tea.Quit
	case action.IsDirectional():
		// Repeats of a held key are not new presses.
		if m.hold.Press(action, now) {
			m.inputFrame.Press(action)
		}
	case action != core.ActionNone:
		m.inputFrame.Press(action)
	}
	return m, nil
}

// handleTick releases timed-out keys and runs one simulation step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, a := range m.hold.Expire(now) {
		m.inputFrame.Release(a)
	}
	if m.inputFrame.Has(core.ActionRestart) {
		m.hold.Reset()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// handleReload swaps in a reloaded world.
func (m Model) handleReload(msg reloadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.opts.Logger.Warn("config reload failed", "path", msg.path, "error", msg.err)
		return m, watchCmd(m.opts.Watcher)
	}
	if err := m.game.SetConfig(msg.cfg); err != nil {
		m.opts.Logger.Warn("config rejected", "path", msg.path, "error", err)
		return m, watchCmd(m.opts.Watcher)
	}

	m.hold.Reset()
	m.hold.SetTimeout(msg.cfg.ReleaseAfter())
	m.inputFrame.Clear()
	m.gameState = m.game.State()
	m.opts.Logger.Info("world reloaded",
		"path", msg.path,
		"collision", msg.cfg.Physics.Collision,
		"jump_rule", msg.cfg.Physics.JumpRule,
	)
	return m, watchCmd(m.opts.Watcher)
}

// watchCmd waits for the next change of the watched config file.
func watchCmd(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			cfg, err := config.Load(path)
			return reloadMsg{path: path, cfg: cfg, err: err}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".platformer", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// State returns the state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(m.help.View(m.keys))
}

// SaveSessions stores every recording the game made. Failures are logged;
// the caller is already shutting down.
func SaveSessions(store *storage.Store, g *game.Game, logger *log.Logger) {
	if store == nil || g == nil {
		return
	}
	for _, s := range g.Sessions() {
		if err := store.SaveSession(s); err != nil {
			logger.Error("could not save session", "id", s.ID, "error", err)
			continue
		}
		logger.Info("session saved", "id", s.ID, "ticks", s.Ticks, "events", len(s.Events))
	}
}

// Run starts the Bubble Tea program on the local terminal.
func Run(g *game.Game, tickRate int, opts Options) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return core.ErrNoSurface
	}
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrNoSurface, err)
	}

	model, err := NewModel(g, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
	}, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
