package cellui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/baaaaaaaka/cmdterm/theme"
)

// Palette holds the colors used for roles the terminal theme leaves unset.
type Palette [theme.NumRoles]theme.Color

// hex parses a palette constant; s must be a valid "#rrggbb" string.
func hex(s string) theme.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("cellui: bad palette color " + s)
	}
	return theme.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

// DefaultPalette is a plain dark scheme.
func DefaultPalette() Palette {
	var p Palette
	p[theme.Text] = hex("#d0d0d0")
	p[theme.WindowBg] = hex("#101010")
	p[theme.Border] = hex("#6c6c6c")
	p[theme.BorderShadow] = hex("#000000")
	p[theme.Button] = hex("#303a4a")
	p[theme.ButtonHovered] = hex("#3d4b60")
	p[theme.ButtonActive] = hex("#4e6080")
	p[theme.FrameBg] = hex("#262626")
	p[theme.FrameBgHovered] = hex("#303030")
	p[theme.FrameBgActive] = hex("#3a3a3a")
	p[theme.TextSelectedBg] = hex("#264f78")
	p[theme.CheckMark] = hex("#87afff")
	p[theme.TitleBg] = hex("#1c1c1c")
	p[theme.TitleBgActive] = hex("#303a4a")
	p[theme.TitleBgCollapsed] = hex("#1c1c1c")
	p[theme.MessagePanel] = hex("#121212")
	p[theme.AutoCompleteSelected] = hex("#ffffff")
	p[theme.AutoCompleteNonSelected] = hex("#8a8a8a")
	p[theme.AutoCompleteSeparator] = hex("#585858")
	p[theme.CmdBacklog] = hex("#87afd7")
	p[theme.CmdHistoryCompleted] = hex("#afaf87")
	p[theme.LogLevelDropDownListBg] = hex("#1c1c1c")
	p[theme.LogLevelActive] = hex("#4e6080")
	p[theme.LogLevelHovered] = hex("#3d4b60")
	p[theme.LogLevelSelected] = hex("#303a4a")
	p[theme.ScrollbarBg] = hex("#1c1c1c")
	p[theme.ScrollbarGrab] = hex("#4e4e4e")
	p[theme.ScrollbarGrabActive] = hex("#8a8a8a")
	p[theme.ScrollbarGrabHovered] = hex("#6c6c6c")
	return p
}

var black = colorful.Color{}

// blend composites c over under.
func blend(c theme.Color, under colorful.Color) colorful.Color {
	top := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	a := float64(c.A)
	if a >= 1 {
		return top.Clamped()
	}
	if a <= 0 {
		return under
	}
	return under.BlendRgb(top, a).Clamped()
}
