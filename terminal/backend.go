package terminal

import "github.com/baaaaaaaka/cmdterm/theme"

// Position places the autocomplete popup relative to the command line.
type Position int

const (
	PositionDown Position = iota
	PositionUp
	PositionNowhere
)

func (p Position) String() string {
	switch p {
	case PositionDown:
		return "down"
	case PositionUp:
		return "up"
	case PositionNowhere:
		return "nowhere"
	}
	return "unknown"
}

// ParsePosition is the inverse of Position.String.
func ParsePosition(s string) (Position, bool) {
	for _, p := range []Position{PositionDown, PositionUp, PositionNowhere} {
		if p.String() == s {
			return p, true
		}
	}
	return PositionDown, false
}

// InputEvent tells the input callback why it is being called.
type InputEvent int

const (
	// InputAlways fires once per frame while the field has focus.
	InputAlways InputEvent = iota
	InputEdit
	InputCompletion
	InputHistory
)

// HistoryDirection is the arrow key behind an InputHistory event.
type HistoryDirection int

const (
	HistoryUp HistoryDirection = iota
	HistoryDown
)

// InputCallbackData is handed to the input callback. The callback may edit
// Buffer in place.
type InputCallbackData struct {
	Event     InputEvent
	Direction HistoryDirection
	Buffer    *EditBuffer
}

type InputCallback func(data *InputCallbackData)

// InputResult reports what happened to an input field during a frame.
type InputResult struct {
	Submitted bool
	Active    bool
}

// Segment is a run of text drawn with a single foreground color. Segments
// without a color use the text role.
type Segment struct {
	Text     string
	Color    theme.Color
	HasColor bool
}

// Backend is the immediate-mode UI the terminal draws itself with. Widths and
// positions are expressed in the backend's own units.
type Backend interface {
	// BeginWindow opens the terminal window; a zero size lets the backend
	// pick one. EndWindow must be called whatever BeginWindow returned.
	BeginWindow(title string, width, height int) bool
	EndWindow()

	// PushColor overrides role until the matching PopColor.
	PushColor(role theme.Role, c theme.Color)
	PopColor(n int)

	Button(label string) bool
	Checkbox(label string, value *bool) bool
	Combo(label string, items []string, selected *int) bool
	ComboWidth(label string, items []string) int
	SameLine()
	// SameLineAt places the next widget on the current row at x.
	SameLineAt(x int)
	Separator()
	ContentWidth() int
	TextWidth(s string) int

	// BeginScroll opens a scrolling region filling the window except for
	// the last reserveRows rows.
	BeginScroll(id string, reserveRows int)
	Line(segments []Segment, wrap bool)
	EndScroll(scrollToBottom bool)

	InputText(id, prompt string, buf *EditBuffer, takeFocus bool, cb InputCallback) InputResult
	// Candidates draws a single row right above or below the last input
	// field.
	Candidates(segments []Segment, above bool)
}
