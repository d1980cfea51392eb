// Package config provides YAML-based world configuration for the platformer:
// player and physics constants, platform layout, terminal scaling and input
// timing.
package config

// WorldConfig contains everything needed to build a simulation.
type WorldConfig struct {
	Player    PlayerConfig    `yaml:"player"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Render    RenderConfig    `yaml:"render"`
	Input     InputConfig     `yaml:"input"`
}

// PlayerConfig defines the player's initial state.
type PlayerConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`      // Horizontal step per tick
	FallSpeed   float64 `yaml:"fall_speed"` // Initial vertical velocity
	JumpImpulse float64 `yaml:"jump_impulse"`
	Color       string  `yaml:"color"`
}

// PhysicsConfig selects gravity and the pluggable rules.
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity"`
	Collision string  `yaml:"collision"` // Registered policy name
	JumpRule  string  `yaml:"jump_rule"` // grounded, sticky or strict
}

// PlatformsConfig describes the static obstacles.
type PlatformsConfig struct {
	Color  string           `yaml:"color"`
	Layout *LayoutConfig    `yaml:"layout"`
	Extra  []PlatformConfig `yaml:"extra"`
}

// LayoutConfig generates a row of equal platforms.
type LayoutConfig struct {
	Count        int     `yaml:"count"`
	StartX       float64 `yaml:"start_x"`
	Spacing      float64 `yaml:"spacing"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	BottomOffset float64 `yaml:"bottom_offset"` // Top edge distance above the ground
}

// PlatformConfig is a single hand-placed platform.
type PlatformConfig struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	FromBottom bool    `yaml:"from_bottom"` // Y is measured up from the ground
}

// RenderConfig maps world units onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// InputConfig tunes how terminal key repeats become key-up events.
type InputConfig struct {
	ReleaseAfterMS int `yaml:"release_after_ms"`
}
