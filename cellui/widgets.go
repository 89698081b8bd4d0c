package cellui

import (
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/theme"
)

// Button draws " label " and reports a click.
func (u *UI) Button(label string) bool {
	w := displayWidth(label) + 2
	x, y := u.place(w)
	r := rect{y: y, x: x, h: 1, w: w}

	role := theme.Button
	if u.hovered(r) {
		role = theme.ButtonHovered
	}
	clicked := u.clickIn(r)
	if clicked {
		role = theme.ButtonActive
	}
	bg := u.bg(role)
	st := Style{Fg: u.fg(theme.Text, bg), Bg: bg}
	u.fill(r, st)
	u.put(x+1, y, label, st)
	return clicked
}

// Checkbox draws "[x] label" and flips *value on click.
func (u *UI) Checkbox(label string, value *bool) bool {
	w := 4 + displayWidth(label)
	x, y := u.place(w)
	r := rect{y: y, x: x, h: 1, w: w}

	changed := u.clickIn(r)
	if changed {
		*value = !*value
	}
	boxRole := theme.FrameBg
	if u.hovered(r) {
		boxRole = theme.FrameBgHovered
	}
	boxBg := u.bg(boxRole)
	box := Style{Fg: u.fg(theme.Text, boxBg), Bg: boxBg}
	mark := ' '
	if *value {
		mark = 'x'
	}
	u.put(x, y, "[", box)
	u.put(x+1, y, string(mark), Style{Fg: u.fg(theme.CheckMark, boxBg), Bg: boxBg, Bold: true})
	u.put(x+2, y, "]", box)
	u.put(x+4, y, label, Style{Fg: u.fg(theme.Text, u.winBg), Bg: u.winBg})
	return changed
}

func longest(items []string) int {
	w := 0
	for _, it := range items {
		w = max(w, displayWidth(it))
	}
	return w
}

// ComboWidth is the width Combo will use for label and items.
func (u *UI) ComboWidth(label string, items []string) int {
	return displayWidth(label) + 1 + longest(items) + 4
}

// Combo draws "label [ item v ]"; clicking it opens a list of items below.
func (u *UI) Combo(label string, items []string, selected *int) bool {
	id := "combo:" + label
	itemW := longest(items)
	x, y := u.place(u.ComboWidth(label, items))
	u.put(x, y, label, Style{Fg: u.fg(theme.Text, u.winBg), Bg: u.winBg})
	field := rect{y: y, x: x + displayWidth(label) + 1, h: 1, w: itemW + 4}
	list := rect{y: y + 1, x: field.x, h: len(items), w: field.w}

	changed := false
	if u.openCombo == id {
		for i := range items {
			if u.clickIn(rect{y: list.y + i, x: list.x, h: 1, w: list.w}) {
				*selected = i
				changed = true
				u.openCombo = ""
				u.logger.Debug("combo select", zap.String("label", label), zap.String("item", items[i]))
				break
			}
		}
		if !changed {
			if u.clickIn(field) || u.clickOutside(list) || u.takeKey(KeyEscape) {
				u.openCombo = ""
			}
		}
	} else if u.clickIn(field) {
		u.openCombo = id
	}

	role := theme.FrameBg
	switch {
	case u.openCombo == id:
		role = theme.LogLevelActive
	case u.hovered(field):
		role = theme.FrameBgHovered
	}
	bg := u.bg(role)
	st := Style{Fg: u.fg(theme.Text, bg), Bg: bg}
	current := ""
	if *selected >= 0 && *selected < len(items) {
		current = items[*selected]
	}
	u.fill(field, st)
	u.put(field.x+1, y, padRight(current, itemW)+" v", st)

	if u.openCombo == id {
		// resolved now: the colors are popped by the time overlays draw
		rows := make([]Style, len(items))
		for i := range items {
			role := theme.LogLevelDropDownListBg
			switch {
			case u.hovered(rect{y: list.y + i, x: list.x, h: 1, w: list.w}):
				role = theme.LogLevelHovered
			case i == *selected:
				role = theme.LogLevelSelected
			}
			bg := u.bg(role)
			rows[i] = Style{Fg: u.fg(theme.Text, bg), Bg: bg}
		}
		u.overlays = append(u.overlays, func() { u.drawComboList(list, items, rows) })
	}
	return changed
}

func (u *UI) drawComboList(list rect, items []string, styles []Style) {
	for i, it := range items {
		row := rect{y: list.y + i, x: list.x, h: 1, w: list.w}
		u.fill(row, styles[i])
		u.put(row.x+1, row.y, it, styles[i])
	}
}

// Separator draws a horizontal rule across the window.
func (u *UI) Separator() {
	y := u.newRow()
	st := Style{Fg: u.fg(theme.Border, u.winBg), Bg: u.winBg}
	for x := u.inner.x; x < u.inner.x+u.inner.w; x++ {
		u.put(x, y, "─", st)
	}
}
