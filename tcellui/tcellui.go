// Package tcellui runs a cellui.UI on a real terminal through tcell.
package tcellui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/cellui"
)

var newScreen = tcell.NewScreen

type Options struct {
	// RefreshInterval redraws the screen periodically so that messages
	// added from other goroutines show up without input. Zero disables it.
	RefreshInterval time.Duration
	DisableMouse    bool
	Logger          *zap.Logger
}

type signal int

const (
	signalQuit signal = iota
	signalRefresh
)

// Surface draws cells on a tcell screen.
type Surface struct {
	screen tcell.Screen
}

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{screen: screen}
}

func (s *Surface) Size() (int, int) { return s.screen.Size() }

func (s *Surface) SetCell(x, y int, r rune, st cellui.Style) {
	s.screen.SetContent(x, y, r, nil, convertStyle(st))
}

func (s *Surface) ShowCursor(x, y int) { s.screen.ShowCursor(x, y) }

func (s *Surface) HideCursor() { s.screen.HideCursor() }

func convertStyle(st cellui.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(st.Fg)).
		Background(convertColor(st.Bg)).
		Bold(st.Bold).
		Reverse(st.Reverse).
		Underline(st.Underline)
}

func convertColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Run opens the terminal and draws frames until frame returns false or ctx
// is done. frame is called between ui.BeginFrame and ui.EndFrame with the
// input that arrived since the previous frame.
func Run(ctx context.Context, ui *cellui.UI, frame func() bool, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	screen, err := newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	if !opts.DisableMouse {
		screen.EnableMouse()
	}
	screen.EnableFocus()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			screen.PostEvent(tcell.NewEventInterrupt(signalQuit))
		case <-done:
		}
	}()

	if opts.RefreshInterval > 0 {
		interval := opts.RefreshInterval
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					screen.PostEvent(tcell.NewEventInterrupt(signalRefresh))
				case <-done:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	surf := NewSurface(screen)
	tr := &translator{}
	var events []cellui.Event
	for {
		ui.BeginFrame(surf, events...)
		keep := frame()
		ui.EndFrame()
		screen.Show()
		if !keep {
			logger.Debug("frame loop closed")
			return nil
		}

		// Widgets react to input one frame late, so a frame that had input
		// is followed by one without.
		settle := len(events) > 0
		events = events[:0]
		if settle || ui.Pending() {
			continue
		}
		ev := screen.PollEvent()
		for ev != nil {
			switch tev := ev.(type) {
			case *tcell.EventInterrupt:
				if tev.Data() == signalQuit {
					return ctx.Err()
				}
			case *tcell.EventResize:
				screen.Sync()
			default:
				if out, ok := tr.translate(ev); ok {
					events = append(events, out)
				}
			}
			if !screen.HasPendingEvent() {
				break
			}
			ev = screen.PollEvent()
		}
	}
}

// translator turns tcell events into cellui events. tcell reports a held
// button on every mouse event, so only the press is a click.
type translator struct {
	buttons tcell.ButtonMask
}

func (t *translator) translate(ev tcell.Event) (cellui.Event, bool) {
	switch tev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(tev)
	case *tcell.EventMouse:
		x, y := tev.Position()
		btn := tev.Buttons()
		pressed := btn&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = btn
		switch {
		case btn&tcell.WheelUp != 0:
			return cellui.MouseEvent{X: x, Y: y, Button: cellui.MouseWheelUp}, true
		case btn&tcell.WheelDown != 0:
			return cellui.MouseEvent{X: x, Y: y, Button: cellui.MouseWheelDown}, true
		case pressed:
			return cellui.MouseEvent{X: x, Y: y, Button: cellui.MouseLeft}, true
		}
		return cellui.MouseEvent{X: x, Y: y}, true
	case *tcell.EventFocus:
		return cellui.FocusEvent{Focused: tev.Focused}, true
	}
	return nil, false
}

var keys = map[tcell.Key]cellui.Key{
	tcell.KeyEnter:      cellui.KeyEnter,
	tcell.KeyTab:        cellui.KeyTab,
	tcell.KeyBacktab:    cellui.KeyBacktab,
	tcell.KeyBackspace:  cellui.KeyBackspace,
	tcell.KeyBackspace2: cellui.KeyBackspace,
	tcell.KeyDelete:     cellui.KeyDelete,
	tcell.KeyLeft:       cellui.KeyLeft,
	tcell.KeyRight:      cellui.KeyRight,
	tcell.KeyUp:         cellui.KeyUp,
	tcell.KeyDown:       cellui.KeyDown,
	tcell.KeyHome:       cellui.KeyHome,
	tcell.KeyEnd:        cellui.KeyEnd,
	tcell.KeyPgUp:       cellui.KeyPgUp,
	tcell.KeyPgDn:       cellui.KeyPgDn,
	tcell.KeyESC:        cellui.KeyEscape,
}

func translateKey(ev *tcell.EventKey) (cellui.Event, bool) {
	var mod cellui.Mod
	m := ev.Modifiers()
	if m&tcell.ModCtrl != 0 {
		mod |= cellui.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= cellui.ModAlt
	}
	if m&tcell.ModShift != 0 {
		mod |= cellui.ModShift
	}

	k := ev.Key()
	if k == tcell.KeyRune {
		r := ev.Rune()
		if mod&cellui.ModCtrl != 0 && r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return cellui.KeyEvent{Key: cellui.KeyRune, Rune: r, Mod: mod}, true
	}
	// Enter, Tab and Backspace share codes with Ctrl-M, Ctrl-I and Ctrl-H.
	if key, ok := keys[k]; ok {
		return cellui.KeyEvent{Key: key, Mod: mod &^ cellui.ModCtrl}, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return cellui.KeyEvent{Key: cellui.KeyRune, Rune: rune('a' + k - tcell.KeyCtrlA), Mod: mod | cellui.ModCtrl}, true
	}
	return nil, false
}
