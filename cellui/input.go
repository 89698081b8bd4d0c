package cellui

import (
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

type inputState struct {
	scroll int // first visible display column
}

// InputText draws a one-line text field preceded by prompt. While the field
// has focus it consumes key events, edits buf and reports them through cb;
// Enter ends the frame's input and is returned as Submitted.
func (u *UI) InputText(id, prompt string, buf *terminal.EditBuffer, takeFocus bool, cb terminal.InputCallback) terminal.InputResult {
	x, y := u.place(u.inner.w)
	r := rect{y: y, x: x, h: 1, w: u.inner.w}
	u.lastInputY = y

	if takeFocus || u.clickIn(r) {
		if u.focusID != id {
			u.logger.Debug("focus", zap.String("id", id))
		}
		u.focusID = id
	}
	res := terminal.InputResult{Active: u.focusID == id && u.hostFocused}
	if res.Active {
		res.Submitted, res.Active = u.editKeys(buf, cb)
	}
	if res.Active && !res.Submitted {
		cb(&terminal.InputCallbackData{Event: terminal.InputAlways, Buffer: buf})
	}

	text := Style{Fg: u.fg(theme.Text, u.winBg), Bg: u.winBg}
	fieldX := u.put(x, y, prompt, text)
	field := rect{y: y, x: fieldX, h: 1, w: max(0, x+r.w-fieldX)}
	role := theme.FrameBg
	if res.Active {
		role = theme.FrameBgActive
	}
	bg := u.bg(role)
	st := Style{Fg: u.fg(theme.Text, bg), Bg: bg}
	u.fill(field, st)

	state := u.inputs[id]
	if state == nil {
		state = &inputState{}
		u.inputs[id] = state
	}
	content := buf.String()
	col := displayWidth(content[:buf.Cursor()])
	if col < state.scroll {
		state.scroll = col
	}
	if field.w > 0 && col >= state.scroll+field.w {
		state.scroll = col - field.w + 1
	}
	if col == 0 {
		state.scroll = 0
	}

	cx := 0
	for _, ch := range content {
		w := displayWidth(string(ch))
		if w == 0 {
			continue
		}
		if cx >= state.scroll && cx+w-state.scroll <= field.w {
			u.surf.SetCell(field.x+cx-state.scroll, y, ch, st)
		}
		cx += w
	}
	if res.Active && field.w > 0 {
		u.surf.ShowCursor(field.x+col-state.scroll, y)
	}
	return res
}

// editKeys applies the frame's key events to buf. It returns whether Enter
// was pressed and whether the field still has focus.
func (u *UI) editKeys(buf *terminal.EditBuffer, cb terminal.InputCallback) (submitted, active bool) {
	notify := func(ev terminal.InputEvent, dir terminal.HistoryDirection) {
		cb(&terminal.InputCallbackData{Event: ev, Direction: dir, Buffer: buf})
	}
	for i := range u.events {
		p := &u.events[i]
		k, ok := p.ev.(KeyEvent)
		if p.used || !ok {
			continue
		}
		handled, edited := true, false
		switch {
		case k.Key == KeyEnter:
			p.used = true
			u.stopAt = i + 1
			return true, true
		case k.Key == KeyEscape:
			p.used = true
			u.focusID = ""
			return false, false
		case k.Key == KeyTab:
			notify(terminal.InputCompletion, 0)
		case k.Key == KeyUp:
			notify(terminal.InputHistory, terminal.HistoryUp)
		case k.Key == KeyDown:
			notify(terminal.InputHistory, terminal.HistoryDown)
		case k.Key == KeyLeft:
			buf.MoveLeft()
		case k.Key == KeyRight:
			buf.MoveRight()
		case k.Key == KeyHome:
			buf.SetCursor(0)
		case k.Key == KeyEnd:
			buf.SetCursor(buf.Len())
		case k.Key == KeyBackspace:
			edited = buf.DeleteBackward()
		case k.Key == KeyDelete:
			edited = buf.DeleteForward()
		case k.Key == KeyRune && k.Mod&ModCtrl != 0:
			switch k.Rune {
			case 'a':
				buf.SetCursor(0)
			case 'e':
				buf.SetCursor(buf.Len())
			case 'u':
				edited = buf.Delete(0, buf.Cursor()) > 0
			case 'k':
				edited = buf.Delete(buf.Cursor(), buf.Len()-buf.Cursor()) > 0
			case 'w':
				edited = buf.DeleteWordBackward()
			default:
				handled = false
			}
		case k.Key == KeyRune && k.Mod&ModAlt == 0:
			edited = buf.InsertAtCursor(string(k.Rune)) > 0
		default:
			handled = false
		}
		if handled {
			p.used = true
		}
		if edited {
			notify(terminal.InputEdit, 0)
		}
	}
	return false, true
}

// Candidates draws segments on the row above or below the last input field.
func (u *UI) Candidates(segments []terminal.Segment, above bool) {
	y := u.lastInputY + 1
	if above {
		y = u.lastInputY - 1
	}
	r := rect{y: y, x: u.inner.x, h: 1, w: u.inner.w}
	if !u.inner.contains(r.x, r.y) {
		return
	}
	bg := u.bg(theme.FrameBg)
	base := Style{Fg: u.fg(theme.Text, bg), Bg: bg}
	u.fill(r, base)
	x := r.x + 1
	for _, seg := range segments {
		st := base
		if seg.HasColor {
			st.Fg = blend(seg.Color, bg)
		}
		x = u.put(x, y, seg.Text, st)
		if x >= r.x+r.w {
			break
		}
	}
	if y >= u.nextY {
		u.nextY = y + 1
	}
}
