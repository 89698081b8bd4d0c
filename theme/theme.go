// Package theme describes the palette of the terminal widget as a sparse
// table: every role may carry a color, unset roles inherit the backend's
// defaults.
package theme

import (
	"strings"

	"github.com/baaaaaaaka/cmdterm/message"
)

// Color is a straight-alpha RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// OptionalColor is a color that may be absent.
type OptionalColor struct {
	Color
	Valid bool
}

// Some wraps the given components into a set OptionalColor.
func Some(r, g, b, a float32) OptionalColor {
	return OptionalColor{Color: Color{R: r, G: g, B: b, A: a}, Valid: true}
}

// Role is a visual element of the widget.
type Role int

const (
	Text Role = iota
	WindowBg
	Border
	BorderShadow
	Button
	ButtonHovered
	ButtonActive
	FrameBg
	FrameBgHovered
	FrameBgActive
	TextSelectedBg
	CheckMark
	TitleBg
	TitleBgActive
	TitleBgCollapsed
	MessagePanel
	AutoCompleteSelected
	AutoCompleteNonSelected
	AutoCompleteSeparator
	CmdBacklog
	CmdHistoryCompleted
	LogLevelDropDownListBg
	LogLevelActive
	LogLevelHovered
	LogLevelSelected
	ScrollbarBg
	ScrollbarGrab
	ScrollbarGrabActive
	ScrollbarGrabHovered

	NumRoles
)

var roleNames = [NumRoles]string{
	"text", "window_bg", "border", "border_shadow", "button", "button_hovered",
	"button_active", "frame_bg", "frame_bg_hovered", "frame_bg_active",
	"text_selected_bg", "check_mark", "title_bg", "title_bg_active",
	"title_bg_collapsed", "message_panel", "auto_complete_selected",
	"auto_complete_non_selected", "auto_complete_separator", "cmd_backlog",
	"cmd_history_completed", "log_level_drop_down_list_bg", "log_level_active",
	"log_level_hovered", "log_level_selected", "scrollbar_bg", "scrollbar_grab",
	"scrollbar_grab_active", "scrollbar_grab_hovered",
}

func (r Role) String() string {
	if r < 0 || r >= NumRoles {
		return "unknown"
	}
	return roleNames[r]
}

// Theme is a named palette. The zero Theme sets nothing.
type Theme struct {
	Name      string
	Colors    [NumRoles]OptionalColor
	LogLevels [message.NumSeverities]OptionalColor
}

// Lookup returns the color of role, if the theme sets one.
func (t *Theme) Lookup(r Role) (Color, bool) {
	if r < 0 || r >= NumRoles {
		return Color{}, false
	}
	c := t.Colors[r]
	return c.Color, c.Valid
}

// LevelColor returns the color used for lines of the given severity.
func (t *Theme) LevelColor(s message.Severity) (Color, bool) {
	if s < 0 || int(s) >= message.NumSeverities {
		return Color{}, false
	}
	c := t.LogLevels[s]
	return c.Color, c.Valid
}

// Set overrides a single role.
func (t *Theme) Set(r Role, c Color) {
	if r < 0 || r >= NumRoles {
		return
	}
	t.Colors[r] = OptionalColor{Color: c, Valid: true}
}

// Unset drops a role back to the backend default.
func (t *Theme) Unset(r Role) {
	if r < 0 || r >= NumRoles {
		return
	}
	t.Colors[r] = OptionalColor{}
}

// List returns copies of the built-in themes.
func List() []Theme {
	return []Theme{cherry, light}
}

// ByName finds a built-in theme, ignoring case.
func ByName(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, t := range List() {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Theme{}, false
}

// Cherry returns the "Dark Cherry" theme.
func Cherry() Theme { return cherry }

// Light returns the "Light Rainbow" theme.
func Light() Theme { return light }
