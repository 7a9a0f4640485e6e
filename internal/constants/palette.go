package constants

import "strings"

// Palette is the fixed set of habit colors offered to users.
var Palette = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#f59e0b", // amber
	"#eab308", // yellow
	"#84cc16", // lime
	"#22c55e", // green
	"#10b981", // emerald
	"#14b8a6", // teal
	"#06b6d4", // cyan
	"#0ea5e9", // sky
	"#3b82f6", // blue
	"#6366f1", // indigo
	"#8b5cf6", // violet
	"#a855f7", // purple
	"#d946ef", // fuchsia
	"#ec4899", // pink
}

// DefaultColor is used when a habit is created without a color
const DefaultColor = "#22c55e"

// InPalette reports whether color is one of the palette values.
func InPalette(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

// PaletteNames holds the display name of each Palette entry, index for index.
var PaletteNames = []string{
	"Red", "Orange", "Amber", "Yellow", "Lime", "Green", "Emerald", "Teal",
	"Cyan", "Sky", "Blue", "Indigo", "Violet", "Purple", "Fuchsia", "Pink",
}

// ColorByName resolves a palette name (case-insensitive) or a palette hex
// value to its hex value.
func ColorByName(name string) (string, bool) {
	for i, n := range PaletteNames {
		if strings.EqualFold(n, name) {
			return Palette[i], true
		}
	}
	lower := strings.ToLower(name)
	if InPalette(lower) {
		return lower, true
	}
	return "", false
}
