package core

import (
	"fmt"
	"strings"
)

// Color is a terminal foreground color: either an ANSI 256-color code
// ("6", "245") or a hex triplet ("#00f0ff"). The empty string is the
// terminal default.
type Color string

// Predefined colors for HUD and map elements.
const (
	ColorDefault Color = ""
	ColorRed     Color = "1"
	ColorGreen   Color = "2"
	ColorYellow  Color = "3"
	ColorCyan    Color = "6"
	ColorWhite   Color = "15"
	ColorGray    Color = "245"
	ColorDim     Color = "238"
)

// DefaultAccent is the accent color used when none has been chosen.
const DefaultAccent Color = "#00f0ff"

// NamedColor is an entry of the accent palette offered at character selection.
type NamedColor struct {
	Name string
	Hex  Color
}

// Palette lists the preset accent colors in selection order.
var Palette = []NamedColor{
	{"TECH CYAN", "#00f0ff"},
	{"NEURAL PINK", "#ff0055"},
	{"VOID PURPLE", "#764abc"},
	{"ENERGY GOLD", "#ffaa00"},
	{"ACID GREEN", "#ccff00"},
	{"PLASMA RED", "#ff3333"},
}

// IsHex reports whether c is a #rrggbb triplet.
func (c Color) IsHex() bool {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ParseHexColor validates and normalizes a #rrggbb color to lower case.
func ParseHexColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsHex() {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	return c, nil
}

// PaletteName returns the preset name of c, or c itself when it is not a preset.
func PaletteName(c Color) string {
	for _, p := range Palette {
		if strings.EqualFold(string(p.Hex), string(c)) {
			return p.Name
		}
	}
	return string(c)
}
