package config

import (
	_ "embed"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// DefaultWorldConfig returns the reference world: a 50x30 player at
// (100, 100) above a row of ten 100x100 platforms.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Player: PlayerConfig{
			X:           100,
			Y:           100,
			Width:       50,
			Height:      30,
			Speed:       10,
			FallSpeed:   5,
			JumpImpulse: 30,
			Color:       "red",
		},
		Physics: PhysicsConfig{
			Gravity:   1,
			Collision: "min-overlap",
			JumpRule:  "grounded",
		},
		Platforms: PlatformsConfig{
			Color: "seagreen",
			Layout: &LayoutConfig{
				Count:        10,
				StartX:       200,
				Spacing:      100,
				Width:        100,
				Height:       100,
				BottomOffset: 300,
			},
		},
		Render: RenderConfig{
			CellWidth:  10,
			CellHeight: 20,
		},
		Input: InputConfig{
			ReleaseAfterMS: 500,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWorldYAML
}
