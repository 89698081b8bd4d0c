package cellui

import (
	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

const wheelStep = 3

type scrollState struct {
	offset int
}

type styledRow struct {
	glyphs []glyph
	styles []Style
}

// region is the scrolling area being filled between BeginScroll and
// EndScroll.
type region struct {
	id   string
	r    rect
	bg   Style
	rows []styledRow
}

// BeginScroll opens a scrolling region from the current row down to
// reserveRows rows above the bottom of the window. The last column holds the
// scrollbar.
func (u *UI) BeginScroll(id string, reserveRows int) {
	y := u.newRow()
	bottom := u.inner.y + u.inner.h - max(0, reserveRows)
	h := max(1, bottom-y)
	bg := u.bg(theme.MessagePanel)
	u.region = &region{
		id: id,
		r:  rect{y: y, x: u.inner.x, h: h, w: u.inner.w},
		bg: Style{Fg: u.fg(theme.Text, bg), Bg: bg},
	}
}

// Line adds one logical line to the open region, wrapped to the region width
// when wrap is set and cut otherwise.
func (u *UI) Line(segments []terminal.Segment, wrap bool) {
	rg := u.region
	if rg == nil {
		return
	}
	var glyphs []glyph
	styles := make([]Style, len(segments))
	for i, seg := range segments {
		styles[i] = rg.bg
		if seg.HasColor {
			styles[i].Fg = blend(seg.Color, rg.bg.Bg)
		}
		for _, ch := range seg.Text {
			if w := displayWidth(string(ch)); w > 0 {
				glyphs = append(glyphs, glyph{r: ch, width: w, span: i})
			}
		}
	}
	for _, row := range layoutLine(glyphs, rg.r.w-1, wrap) {
		rg.rows = append(rg.rows, styledRow{glyphs: row, styles: styles})
	}
}

// EndScroll draws the visible rows of the region. The view follows the
// mouse wheel, PgUp/PgDn and clicks on the scrollbar; scrollToBottom jumps
// to the end.
func (u *UI) EndScroll(scrollToBottom bool) {
	rg := u.region
	if rg == nil {
		return
	}
	u.region = nil
	st := u.scrolls[rg.id]
	if st == nil {
		st = &scrollState{}
		u.scrolls[rg.id] = st
	}

	view := rg.r.h
	maxOffset := max(0, len(rg.rows)-view)
	if scrollToBottom {
		st.offset = maxOffset
	}
	st.offset += u.wheelIn(rg.r) * wheelStep
	if u.takeKey(KeyPgUp) {
		st.offset -= view
	}
	if u.takeKey(KeyPgDn) {
		st.offset += view
	}

	bar := rect{y: rg.r.y, x: rg.r.x + rg.r.w - 1, h: view, w: 1}
	grabRole := theme.ScrollbarGrab
	if u.hovered(bar) {
		grabRole = theme.ScrollbarGrabHovered
	}
	for i := range u.events {
		p := &u.events[i]
		ev, ok := p.ev.(MouseEvent)
		if p.used || !ok || ev.Button != MouseLeft || !bar.contains(ev.X, ev.Y) {
			continue
		}
		p.used = true
		grabRole = theme.ScrollbarGrabActive
		if view > 1 {
			st.offset = (ev.Y - bar.y) * maxOffset / (view - 1)
		}
	}
	st.offset = clamp(st.offset, 0, maxOffset)

	u.fill(rg.r, rg.bg)
	for i := 0; i < view; i++ {
		idx := st.offset + i
		if idx >= len(rg.rows) {
			break
		}
		row := rg.rows[idx]
		x := rg.r.x
		for _, g := range row.glyphs {
			u.surf.SetCell(x, rg.r.y+i, g.r, row.styles[g.span])
			x += g.width
		}
	}

	barBg := u.bg(theme.ScrollbarBg)
	u.fill(bar, Style{Bg: barBg})
	if len(rg.rows) > view {
		grabH := max(1, view*view/len(rg.rows))
		grabY := bar.y
		if maxOffset > 0 {
			grabY += st.offset * (view - grabH) / maxOffset
		}
		u.fill(rect{y: grabY, x: bar.x, h: grabH, w: 1}, Style{Bg: u.bg(grabRole)})
	}

	u.nextY = rg.r.y + rg.r.h
	u.rowY = u.nextY - 1
	u.rowEnd = u.inner.x
}

// ScrollOffset returns the first visible row of the named region.
func (u *UI) ScrollOffset(id string) int {
	if st := u.scrolls[id]; st != nil {
		return st.offset
	}
	return 0
}
