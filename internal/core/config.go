package core

import "errors"

// ErrNoSurface is returned by a host when there is nothing to draw on:
// stdout is not a terminal, the window could not be created, or the
// reported viewport has no area. Setup aborts; it is never retried.
var ErrNoSurface = errors.New("no drawing surface available")

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// CheckSurface reports ErrNoSurface when the screen has no drawable area.
func (c RuntimeConfig) CheckSurface() error {
	if c.ScreenW <= 0 || c.ScreenH <= 0 {
		return ErrNoSurface
	}
	return nil
}

// GameState represents the current state of a running session.
type GameState struct {
	Ticks  uint64 // Simulation ticks since the last reset
	Paused bool   // Whether the simulation is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
