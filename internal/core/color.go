package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for world elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorGray
	ColorSeaGreen
)

var colorNames = map[string]Color{
	"default":      ColorDefault,
	"red":          ColorRed,
	"green":        ColorGreen,
	"yellow":       ColorYellow,
	"blue":         ColorBlue,
	"magenta":      ColorMagenta,
	"cyan":         ColorCyan,
	"white":        ColorWhite,
	"bright-red":   ColorBrightRed,
	"bright-green": ColorBrightGreen,
	"gray":         ColorGray,
	"seagreen":     ColorSeaGreen,
}

// ParseColor resolves a color name from configuration.
// Unknown names fall back to ColorDefault.
func ParseColor(name string) Color {
	if c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ColorDefault
}

// String returns the configuration name of the color.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return "default"
}
