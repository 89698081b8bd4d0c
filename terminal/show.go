package terminal

import (
	"fmt"

	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/theme"
)

const (
	inputID            = "##terminal:input"
	messagesID         = "##terminal:messages"
	levelLabel         = "Log level"
	candidateSeparator = " | "
)

// Show draws one frame of the terminal. It returns false when the window was
// asked to close with SetShouldClose.
func (t *Terminal[T]) Show(ui Backend) bool {
	if t.closeRequest {
		t.closeRequest = false
		return false
	}

	pushed := 0
	for r := theme.Role(0); r < theme.NumRoles; r++ {
		if c, ok := t.colors.Lookup(r); ok {
			ui.PushColor(r, c)
			pushed++
		}
	}
	if ui.BeginWindow(t.name, t.width, t.height) {
		t.drawSettings(ui)
		ui.Separator()
		t.drawMessages(ui)
		t.drawCommandLine(ui)
	}
	ui.EndWindow()
	ui.PopColor(pushed)
	return true
}

func (t *Terminal[T]) drawSettings(ui Backend) {
	if ui.Button("Clear") {
		t.Clear()
	}
	ui.SameLine()
	ui.Checkbox("Autoscroll", &t.autoscroll)
	ui.SameLine()
	ui.Checkbox("Autowrap", &t.autowrap)

	levels := message.FilterNames()
	if t.selectorWidth == 0 {
		t.selectorWidth = ui.ComboWidth(levelLabel, levels)
	}
	ui.SameLineAt(ui.ContentWidth() - t.selectorWidth)
	selected := int(t.level)
	if ui.Combo(levelLabel, levels, &selected) {
		t.SetLevelFilter(message.Severity(selected))
	}
}

func (t *Terminal[T]) drawMessages(ui Backend) {
	// separator, command line and a popup row below it
	reserve := 2
	if t.acPos == PositionDown {
		reserve++
	}
	ui.BeginScroll(messagesID, reserve)
	for _, m := range t.logs {
		if !m.Visible(t.level) {
			continue
		}
		ui.Line(t.segments(m), t.autowrap)
	}
	toBottom := t.autoscroll && t.appended != t.shownUpTo
	t.shownUpTo = t.appended
	ui.EndScroll(toBottom)
	ui.Separator()
}

// segments splits m around its color range.
func (t *Terminal[T]) segments(m message.Message) []Segment {
	before, colored, after := m.Split()
	segs := make([]Segment, 0, 3)
	if before != "" {
		segs = append(segs, Segment{Text: before})
	}
	if colored != "" {
		c, ok := t.rangeColor(m)
		segs = append(segs, Segment{Text: colored, Color: c, HasColor: ok})
	}
	if after != "" {
		segs = append(segs, Segment{Text: after})
	}
	return segs
}

func (t *Terminal[T]) rangeColor(m message.Message) (theme.Color, bool) {
	switch m.Origin {
	case message.OriginUserInput:
		return t.colors.Lookup(theme.CmdBacklog)
	case message.OriginHistoryCompletion:
		return t.colors.Lookup(theme.CmdHistoryCompleted)
	case message.OriginError:
		return t.colors.LevelColor(message.Error)
	}
	return t.colors.LevelColor(m.Severity)
}

func (t *Terminal[T]) prompt() string {
	if n := t.recallDepth(); n > 0 {
		return fmt.Sprintf("[-%d] > ", n)
	}
	return "> "
}

func (t *Terminal[T]) drawCommandLine(ui Backend) {
	res := ui.InputText(inputID, t.prompt(), t.buf, t.takeFocus, t.onInput)
	t.takeFocus = false
	t.hasFocus = res.Active
	if res.Submitted {
		t.Submit()
	}

	if !t.hasFocus || t.acPos == PositionNowhere || t.buf.Len() == 0 || len(t.candidates) == 0 {
		return
	}
	ui.Candidates(t.candidateSegments(), t.acPos == PositionUp)
}

func (t *Terminal[T]) candidateSegments() []Segment {
	sep, sepOK := t.colors.Lookup(theme.AutoCompleteSeparator)
	selected, selOK := t.colors.Lookup(theme.AutoCompleteSelected)
	other, otherOK := t.colors.Lookup(theme.AutoCompleteNonSelected)
	segs := make([]Segment, 0, 2*len(t.candidates))
	for i, s := range t.candidates {
		if i > 0 {
			segs = append(segs, Segment{Text: candidateSeparator, Color: sep, HasColor: sepOK})
		}
		if i == 0 {
			segs = append(segs, Segment{Text: s, Color: selected, HasColor: selOK})
		} else {
			segs = append(segs, Segment{Text: s, Color: other, HasColor: otherOK})
		}
	}
	return segs
}
