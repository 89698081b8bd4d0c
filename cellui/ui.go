// Package cellui is a small immediate-mode widget toolkit drawing on a grid
// of character cells. It implements terminal.Backend so that a terminal can
// be shown in a text console (see tcellui and teaui) or on an in-memory Grid.
//
// A frame is BeginFrame, the widget calls, then EndFrame. Widgets consume the
// frame's events as they are called, so earlier widgets see input first.
package cellui

import (
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

type Options struct {
	// Palette supplies the colors of roles nobody pushed; DefaultPalette
	// when nil.
	Palette *Palette
	Logger  *zap.Logger
}

type rect struct {
	y int
	x int
	h int
	w int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type pendingEvent struct {
	ev   Event
	used bool
}

// UI holds the state that survives between frames: focus, scroll offsets,
// open popups and the color stack.
type UI struct {
	logger  *zap.Logger
	palette Palette
	stack   [theme.NumRoles][]theme.Color
	pushed  []theme.Role

	surf        Surface
	width       int
	height      int
	events      []pendingEvent
	carry       []Event
	stopAt      int
	hostFocused bool
	mouseX      int
	mouseY      int
	overlays    []func()

	focusID   string
	openCombo string
	scrolls   map[string]*scrollState
	inputs    map[string]*inputState

	win        rect
	inner      rect
	clip       rect
	winBg      colorful.Color
	rowY       int
	nextY      int
	rowEnd     int
	sameLine   bool
	sameX      int
	region     *region
	lastInputY int
}

func New(opts Options) *UI {
	u := &UI{
		logger:      opts.Logger,
		palette:     DefaultPalette(),
		hostFocused: true,
		mouseX:      -1,
		mouseY:      -1,
		scrolls:     map[string]*scrollState{},
		inputs:      map[string]*inputState{},
	}
	if opts.Palette != nil {
		u.palette = *opts.Palette
	}
	if u.logger == nil {
		u.logger = zap.NewNop()
	}
	return u
}

// BeginFrame starts a frame on surf with the given input. Key events left
// over after a submitted input field are replayed at the next frame.
func (u *UI) BeginFrame(surf Surface, events ...Event) {
	u.surf = surf
	u.width, u.height = surf.Size()
	u.events = u.events[:0]
	for _, ev := range u.carry {
		u.events = append(u.events, pendingEvent{ev: ev})
	}
	u.carry = nil
	for _, ev := range events {
		u.events = append(u.events, pendingEvent{ev: ev})
	}
	u.stopAt = -1
	for i := range u.events {
		switch ev := u.events[i].ev.(type) {
		case FocusEvent:
			u.hostFocused = ev.Focused
			u.events[i].used = true
		case MouseEvent:
			u.mouseX, u.mouseY = ev.X, ev.Y
			if ev.Button == MouseNone {
				u.events[i].used = true
			}
		}
	}

	u.overlays = u.overlays[:0]
	u.region = nil
	u.win = rect{w: u.width, h: u.height}
	u.inner = u.win
	u.clip = u.win
	u.winBg = blend(u.color(theme.WindowBg), black)
	u.fill(u.win, Style{Fg: u.fg(theme.Text, u.winBg), Bg: u.winBg})
	surf.HideCursor()
}

// EndFrame draws the popups opened during the frame.
func (u *UI) EndFrame() {
	u.clip = rect{w: u.width, h: u.height}
	for _, draw := range u.overlays {
		draw()
	}
	u.overlays = u.overlays[:0]
	if u.stopAt >= 0 {
		for _, p := range u.events[u.stopAt:] {
			if _, ok := p.ev.(KeyEvent); ok && !p.used {
				u.carry = append(u.carry, p.ev)
			}
		}
	}
	u.events = u.events[:0]
}

// Pending reports whether key events wait for the next frame.
func (u *UI) Pending() bool { return len(u.carry) > 0 }

// Focused reports whether the host window has focus.
func (u *UI) Focused() bool { return u.hostFocused }

func (u *UI) PushColor(role theme.Role, c theme.Color) {
	if role < 0 || role >= theme.NumRoles {
		return
	}
	u.stack[role] = append(u.stack[role], c)
	u.pushed = append(u.pushed, role)
}

func (u *UI) PopColor(n int) {
	for ; n > 0 && len(u.pushed) > 0; n-- {
		role := u.pushed[len(u.pushed)-1]
		u.pushed = u.pushed[:len(u.pushed)-1]
		u.stack[role] = u.stack[role][:len(u.stack[role])-1]
	}
}

func (u *UI) color(role theme.Role) theme.Color {
	if s := u.stack[role]; len(s) > 0 {
		return s[len(s)-1]
	}
	return u.palette[role]
}

func (u *UI) fg(role theme.Role, bg colorful.Color) colorful.Color {
	return blend(u.color(role), bg)
}

func (u *UI) bg(role theme.Role) colorful.Color {
	return blend(u.color(role), u.winBg)
}

// BeginWindow lays the window out over the top-left corner of the surface.
// A zero or oversized dimension fills the surface.
func (u *UI) BeginWindow(title string, width, height int) bool {
	if width <= 0 || width > u.width {
		width = u.width
	}
	if height <= 0 || height > u.height {
		height = u.height
	}
	u.win = rect{w: width, h: height}
	u.clip = u.win
	u.winBg = blend(u.color(theme.WindowBg), black)
	u.fill(u.win, Style{Fg: u.fg(theme.Text, u.winBg), Bg: u.winBg})
	u.drawFrame(title)

	u.inner = rect{y: 1, x: 1, h: max(0, height-2), w: max(0, width-2)}
	u.clip = u.inner
	u.rowY = u.inner.y
	u.nextY = u.inner.y
	u.rowEnd = u.inner.x
	u.sameLine = false
	return u.inner.w >= 8 && u.inner.h >= 4
}

func (u *UI) EndWindow() {
	u.clip = rect{w: u.width, h: u.height}
}

func (u *UI) drawFrame(title string) {
	r := u.win
	if r.w < 2 || r.h < 2 {
		return
	}
	border := Style{Fg: u.fg(theme.Border, u.winBg), Bg: u.winBg}
	for x := r.x + 1; x < r.x+r.w-1; x++ {
		u.surf.SetCell(x, r.y+r.h-1, '─', border)
	}
	for y := r.y + 1; y < r.y+r.h-1; y++ {
		u.surf.SetCell(r.x, y, '│', border)
		u.surf.SetCell(r.x+r.w-1, y, '│', border)
	}
	u.surf.SetCell(r.x, r.y+r.h-1, '└', border)
	u.surf.SetCell(r.x+r.w-1, r.y+r.h-1, '┘', border)

	titleRole := theme.TitleBg
	if u.hostFocused {
		titleRole = theme.TitleBgActive
	}
	bar := Style{Fg: u.fg(theme.Text, u.bg(titleRole)), Bg: u.bg(titleRole), Bold: u.hostFocused}
	u.fill(rect{y: r.y, x: r.x, h: 1, w: r.w}, bar)
	title = truncate(" "+title+" ", max(0, r.w-2))
	u.put(r.x+1+max(0, (r.w-2-displayWidth(title))/2), r.y, title, bar)
}

// put writes s at x,y clipped to the current clip rectangle and returns the
// column after it.
func (u *UI) put(x, y int, s string, st Style) int {
	if y < u.clip.y || y >= u.clip.y+u.clip.h {
		return x + displayWidth(s)
	}
	right := u.clip.x + u.clip.w
	for _, ch := range s {
		w := displayWidth(string(ch))
		if w == 0 {
			continue
		}
		if x+w > right {
			break
		}
		if x >= u.clip.x {
			u.surf.SetCell(x, y, ch, st)
		}
		x += w
	}
	return x
}

func (u *UI) fill(r rect, st Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			if u.clip.contains(x, y) {
				u.surf.SetCell(x, y, ' ', st)
			}
		}
	}
}

// newRow starts a row below the previous widgets.
func (u *UI) newRow() int {
	u.rowY = u.nextY
	u.nextY = u.rowY + 1
	u.rowEnd = u.inner.x
	return u.rowY
}

// place reserves w cells for a widget and returns where to draw it.
func (u *UI) place(w int) (int, int) {
	if u.sameLine {
		u.sameLine = false
		x := max(u.sameX, u.rowEnd+1)
		u.rowEnd = x + w
		return x, u.rowY
	}
	y := u.newRow()
	u.rowEnd = u.inner.x + w
	return u.inner.x, y
}

func (u *UI) SameLine() {
	u.sameLine = true
	u.sameX = u.rowEnd + 1
}

func (u *UI) SameLineAt(x int) {
	u.sameLine = true
	u.sameX = u.inner.x + x
}

func (u *UI) ContentWidth() int { return u.inner.w }

func (u *UI) TextWidth(s string) int { return displayWidth(s) }

func (u *UI) hovered(r rect) bool {
	return r.contains(u.mouseX, u.mouseY)
}

// clickIn consumes the first unused left click inside r.
func (u *UI) clickIn(r rect) bool {
	for i := range u.events {
		p := &u.events[i]
		if p.used {
			continue
		}
		if ev, ok := p.ev.(MouseEvent); ok && ev.Button == MouseLeft && r.contains(ev.X, ev.Y) {
			p.used = true
			return true
		}
	}
	return false
}

// clickOutside reports an unused left click outside r without consuming it.
func (u *UI) clickOutside(r rect) bool {
	for _, p := range u.events {
		if p.used {
			continue
		}
		if ev, ok := p.ev.(MouseEvent); ok && ev.Button == MouseLeft && !r.contains(ev.X, ev.Y) {
			return true
		}
	}
	return false
}

// wheelIn consumes the wheel steps over r; positive scrolls down.
func (u *UI) wheelIn(r rect) int {
	steps := 0
	for i := range u.events {
		p := &u.events[i]
		ev, ok := p.ev.(MouseEvent)
		if p.used || !ok || !r.contains(ev.X, ev.Y) {
			continue
		}
		switch ev.Button {
		case MouseWheelUp:
			steps--
			p.used = true
		case MouseWheelDown:
			steps++
			p.used = true
		}
	}
	return steps
}

// takeKey consumes the first unused press of key.
func (u *UI) takeKey(key Key) bool {
	for i := range u.events {
		p := &u.events[i]
		if ev, ok := p.ev.(KeyEvent); ok && !p.used && ev.Key == key {
			p.used = true
			return true
		}
	}
	return false
}

var _ terminal.Backend = (*UI)(nil)
