package cellui

// Event is an input event fed to a frame.
type Event interface {
	isEvent()
}

type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyEscape
)

// Mod is a set of key modifiers.
type Mod int

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is a key press. Control combinations of letters arrive as KeyRune
// with ModCtrl and the lower-case letter.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Mod
}

type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseWheelUp
	MouseWheelDown
)

// MouseEvent is a click, a wheel step or a plain move (MouseNone).
type MouseEvent struct {
	X, Y   int
	Button MouseButton
}

// FocusEvent reports the host window gaining or losing focus.
type FocusEvent struct {
	Focused bool
}

func (KeyEvent) isEvent()   {}
func (MouseEvent) isEvent() {}
func (FocusEvent) isEvent() {}

// Rune is shorthand for a printable key press.
func Rune(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r} }

// Ctrl is shorthand for a control-letter key press.
func Ctrl(r rune) KeyEvent { return KeyEvent{Key: KeyRune, Rune: r, Mod: ModCtrl} }

// Type turns s into one key press per rune.
func Type(s string) []Event {
	out := make([]Event, 0, len(s))
	for _, r := range s {
		out = append(out, Rune(r))
	}
	return out
}
