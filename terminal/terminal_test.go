package terminal

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/theme"
)

type fakeRegistry struct {
	cmds []*Command[int]
}

func newFakeRegistry(cmds ...Command[int]) *fakeRegistry {
	r := &fakeRegistry{}
	for i := range cmds {
		c := cmds[i]
		r.cmds = append(r.cmds, &c)
	}
	sort.Slice(r.cmds, func(i, j int) bool { return r.cmds[i].Name < r.cmds[j].Name })
	return r
}

func (r *fakeRegistry) FindCommandsByPrefix(prefix string) []*Command[int] {
	var out []*Command[int]
	for _, c := range r.cmds {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeRegistry) FindCommandsByPrefixBytes(prefix []byte) []*Command[int] {
	return r.FindCommandsByPrefix(string(prefix))
}

func (r *fakeRegistry) ListCommands() []*Command[int] { return r.cmds }

func (r *fakeRegistry) Format(raw string, kind message.Type) (message.Message, bool) {
	switch kind {
	case message.UserInput:
		text := "> " + raw
		return message.New(message.Info, text, 0, len(text), message.OriginUserInput), true
	case message.HistoryCompletion:
		text := "~> " + raw
		return message.New(message.Info, text, 0, len(text), message.OriginHistoryCompletion), true
	}
	return message.New(message.Error, raw, 0, len(raw), message.OriginError), true
}

func countOrigin(msgs []message.Message, origin message.Origin) int {
	n := 0
	for _, m := range msgs {
		if m.Origin == origin {
			n++
		}
	}
	return n
}

func TestSubmitUnknownCommand(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.SetInput("unknown_cmd x")
	term.Submit()

	msgs := term.Messages()
	if len(msgs) != 1 {
		t.Fatalf("len(Messages)=%d want 1", len(msgs))
	}
	if msgs[0].Severity != message.Error || msgs[0].Origin != message.OriginError {
		t.Fatalf("message=%+v want error", msgs[0])
	}
	if got := term.Input(); got != "unknown_cmd x" {
		t.Fatalf("Input=%q want unchanged", got)
	}
	if len(term.History()) != 0 {
		t.Fatalf("History=%q want empty", term.History())
	}
}

func TestSubmitDispatchesCommand(t *testing.T) {
	value := 0
	var calls [][]string
	reg := newFakeRegistry(Command[int]{
		Name: "say",
		Call: func(arg *Argument[int]) {
			*arg.Value++
			calls = append(calls, arg.CommandLine)
		},
	})
	term := New[int](&value, reg, Options{})
	term.SetInput("say hi")
	term.Submit()

	if diff := cmp.Diff([][]string{{"say", "hi"}}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
	if value != 1 {
		t.Fatalf("value=%d want 1", value)
	}
	if got := countOrigin(term.Messages(), message.OriginUserInput); got != 1 {
		t.Fatalf("user input messages=%d want 1", got)
	}
	if diff := cmp.Diff([]string{"say hi"}, term.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if term.Input() != "" {
		t.Fatalf("Input=%q want cleared", term.Input())
	}
}

func TestSubmitUnterminatedQuote(t *testing.T) {
	called := false
	reg := newFakeRegistry(Command[int]{Name: "echo", Call: func(*Argument[int]) { called = true }})
	term := New[int](nil, reg, Options{})
	term.SetInput(`echo "abc`)
	term.Submit()

	if called {
		t.Fatalf("command was called")
	}
	msgs := term.Messages()
	if len(msgs) != 1 || msgs[0].Severity != message.Error {
		t.Fatalf("Messages=%+v want one error", msgs)
	}
	if term.Input() != `echo "abc` {
		t.Fatalf("Input=%q want unchanged", term.Input())
	}
}

func TestSubmitBlankLine(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.SetInput("   ")
	term.Submit()
	if len(term.Messages()) != 0 || term.Input() != "" || len(term.History()) != 0 {
		t.Fatalf("Messages=%v Input=%q History=%v", term.Messages(), term.Input(), term.History())
	}
}

func TestSubmitHistoryReference(t *testing.T) {
	var got []string
	reg := newFakeRegistry(Command[int]{Name: "say", Call: func(arg *Argument[int]) { got = arg.CommandLine }})
	term := New[int](nil, reg, Options{History: []string{"say alpha beta"}})
	term.SetInput("say !:2")
	term.Submit()

	if diff := cmp.Diff([]string{"say", "beta"}, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	msgs := term.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages)=%d want 2", len(msgs))
	}
	if msgs[0].Origin != message.OriginHistoryCompletion || msgs[0].Text != "~> say beta" {
		t.Fatalf("first message=%+v", msgs[0])
	}
	if msgs[1].Origin != message.OriginUserInput || msgs[1].Text != "> say !:2" {
		t.Fatalf("second message=%+v", msgs[1])
	}
	if last := term.History()[len(term.History())-1]; last != "say !:2" {
		t.Fatalf("history entry=%q want raw line", last)
	}
}

func TestSubmitStoresResolvedHistory(t *testing.T) {
	reg := newFakeRegistry(Command[int]{Name: "say"})
	var submitted []string
	term := New[int](nil, reg, Options{
		History:         []string{"say a b"},
		HistoryResolved: true,
		OnSubmit:        func(line string) { submitted = append(submitted, line) },
	})
	term.SetInput("say !:*")
	term.Submit()
	if diff := cmp.Diff([]string{"say a b", "say a b"}, term.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"say a b"}, submitted); diff != "" {
		t.Fatalf("OnSubmit mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandPanicIsRecovered(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	reg := newFakeRegistry(Command[int]{Name: "boom", Call: func(*Argument[int]) { panic("kaboom") }})
	term := New[int](nil, reg, Options{Logger: zap.New(core)})
	term.SetInput("boom")
	term.Submit()

	if n := logs.FilterMessage("command panicked").Len(); n != 1 {
		t.Fatalf("panic log entries=%d want 1", n)
	}
	msgs := term.Messages()
	if len(msgs) != 2 || msgs[0].Origin != message.OriginUserInput || msgs[1].Origin != message.OriginError {
		t.Fatalf("Messages=%+v", msgs)
	}
	if diff := cmp.Diff([]string{"boom"}, term.History()); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestAutocompleteCommands(t *testing.T) {
	reg := newFakeRegistry(Command[int]{Name: "help"}, Command[int]{Name: "hello"}, Command[int]{Name: "exit"})
	term := New[int](nil, reg, Options{})

	term.SetInput("he")
	if diff := cmp.Diff([]string{"hello", "help"}, term.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	term.complete()
	if got := term.Input(); got != "hel" {
		t.Fatalf("Input=%q want %q", got, "hel")
	}
	if term.buf.Cursor() != 3 {
		t.Fatalf("cursor=%d want 3", term.buf.Cursor())
	}
	before := append([]string(nil), term.Candidates()...)
	term.complete()
	if term.Input() != "hel" {
		t.Fatalf("Input=%q want unchanged", term.Input())
	}
	if diff := cmp.Diff(before, term.Candidates()); diff != "" {
		t.Fatalf("candidates changed (-want +got):\n%s", diff)
	}

	term.SetInput("help")
	if diff := cmp.Diff([]string{"help"}, term.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	term.complete()
	if got := term.Input(); got != "help " {
		t.Fatalf("Input=%q want %q", got, "help ")
	}
}

func themeNames(arg *Argument[int]) []string {
	partial := arg.CommandLine[len(arg.CommandLine)-1]
	var out []string
	for _, name := range []string{"Dark Cherry", "Light Rainbow"} {
		if strings.HasPrefix(name, partial) {
			out = append(out, name)
		}
	}
	return out
}

func TestAutocompleteArgumentsQuote(t *testing.T) {
	var seen []string
	reg := newFakeRegistry(Command[int]{
		Name: "theme",
		Complete: func(arg *Argument[int]) []string {
			seen = arg.CommandLine
			return themeNames(arg)
		},
	})
	term := New[int](nil, reg, Options{})

	term.SetInput("theme Li")
	if diff := cmp.Diff([]string{"theme", "Li"}, seen); diff != "" {
		t.Fatalf("command line mismatch (-want +got):\n%s", diff)
	}
	term.complete()
	if got := term.Input(); got != `theme "Light Rainbow" ` {
		t.Fatalf("Input=%q", got)
	}

	term.SetInput(`theme "Da`)
	term.complete()
	if got := term.Input(); got != `theme "Dark Cherry" ` {
		t.Fatalf("Input=%q", got)
	}

	term.SetInput("theme ")
	if diff := cmp.Diff([]string{"Dark Cherry", "Light Rainbow"}, term.Candidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	term.complete()
	if term.Input() != "theme " {
		t.Fatalf("Input=%q want unchanged", term.Input())
	}
}

func TestAutocompleteMidLine(t *testing.T) {
	reg := newFakeRegistry(Command[int]{Name: "echo"})
	term := New[int](nil, reg, Options{})
	term.SetInput("ec hello")
	term.buf.SetCursor(2)
	term.refreshCandidates()
	term.complete()
	if got := term.Input(); got != "echo hello" {
		t.Fatalf("Input=%q want %q", got, "echo hello")
	}
	if term.buf.Cursor() != 5 {
		t.Fatalf("cursor=%d want 5", term.buf.Cursor())
	}
}

func historyKey(term *Terminal[int], dir HistoryDirection) {
	term.onInput(&InputCallbackData{Event: InputHistory, Direction: dir, Buffer: term.buf})
}

func TestHistoryNavigationWithPrefix(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{History: []string{"echo a", "ls", "echo b"}})
	term.SetInput("ec")

	historyKey(term, HistoryUp)
	if term.Input() != "echo b" || term.prompt() != "[-1] > " {
		t.Fatalf("Input=%q prompt=%q", term.Input(), term.prompt())
	}
	historyKey(term, HistoryUp)
	if term.Input() != "echo a" || term.prompt() != "[-3] > " {
		t.Fatalf("Input=%q prompt=%q", term.Input(), term.prompt())
	}
	historyKey(term, HistoryUp)
	if term.Input() != "echo a" {
		t.Fatalf("Input=%q want clamped at oldest match", term.Input())
	}
	historyKey(term, HistoryDown)
	if term.Input() != "echo b" {
		t.Fatalf("Input=%q want %q", term.Input(), "echo b")
	}
	historyKey(term, HistoryDown)
	if term.Input() != "ec" || term.prompt() != "> " {
		t.Fatalf("Input=%q prompt=%q want backup restored", term.Input(), term.prompt())
	}
}

func TestHistoryPrefixIgnoresLeadingBlanks(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{History: []string{"  say hi", "ls"}})
	term.SetInput("sa")
	historyKey(term, HistoryUp)
	if got := term.Input(); got != "  say hi" {
		t.Fatalf("Input=%q want %q", got, "  say hi")
	}

	term = New[int](nil, newFakeRegistry(), Options{History: []string{"say hi", "ls"}})
	term.SetInput(" \tsa")
	historyKey(term, HistoryUp)
	if got := term.Input(); got != "say hi" {
		t.Fatalf("Input=%q want %q", got, "say hi")
	}
}

func TestHistoryNavigationWithoutPrefix(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{
		History:                    []string{"echo a", "ls", "echo b"},
		DisableHistoryPrefixFilter: true,
	})
	term.SetInput("ec")
	historyKey(term, HistoryUp)
	historyKey(term, HistoryUp)
	if term.Input() != "ls" {
		t.Fatalf("Input=%q want %q", term.Input(), "ls")
	}

	term.onInput(&InputCallbackData{Event: InputEdit, Buffer: term.buf})
	if term.recalling {
		t.Fatalf("edit did not end history recall")
	}
}

func TestHistoryEmpty(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.SetInput("x")
	historyKey(term, HistoryUp)
	historyKey(term, HistoryDown)
	if term.Input() != "x" {
		t.Fatalf("Input=%q want unchanged", term.Input())
	}
}

func TestClearThenAddText(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.AddText("a")
	term.AddTextErr("b")
	term.Clear()
	term.AddText("x")

	want := []message.Message{{Severity: message.Info, Text: "x", Origin: message.OriginTerminal}}
	if diff := cmp.Diff(want, term.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if term.Messages()[0].Colorized() {
		t.Fatalf("message is colorized")
	}
}

func TestAddTextVariants(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.AddTextFrom("hello world", 6)
	term.AddTextErrRange("oops", 1, 99)
	term.AddFormatted("%d items", 3)

	msgs := term.Messages()
	if msgs[0].ColorBegin != 6 || msgs[0].ColorEnd != 11 {
		t.Fatalf("range=[%d,%d) want [6,11)", msgs[0].ColorBegin, msgs[0].ColorEnd)
	}
	if msgs[1].Severity != message.Warn || msgs[1].ColorEnd != 4 {
		t.Fatalf("err message=%+v", msgs[1])
	}
	if msgs[2].Text != "3 items" {
		t.Fatalf("formatted=%q", msgs[2].Text)
	}
}

func TestMaxMessagesRotation(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{MaxMessages: 3})
	for _, s := range []string{"0", "1", "2", "3", "4"} {
		term.AddText(s)
	}
	var got []string
	for _, m := range term.Messages() {
		got = append(got, m.Text)
	}
	if diff := cmp.Diff([]string{"2", "3", "4"}, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelFilter(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	term.AddMessage(message.New(message.Debug, "debug", 0, 0, message.OriginOutput))
	term.AddMessage(message.New(message.Error, "error", 0, 0, message.OriginOutput))
	term.AddMessage(message.New(message.Trace, "term", 0, 0, message.OriginTerminal))

	term.SetLevelFilter(message.Info)
	if got := len(term.Visible()); got != 2 {
		t.Fatalf("visible=%d want 2", got)
	}
	term.SetLevelFilter(message.LevelOff)
	vis := term.Visible()
	if len(vis) != 1 || vis[0].Text != "term" {
		t.Fatalf("visible=%+v want only the terminal message", vis)
	}
	term.SetLevelFilter(message.Severity(42))
	if term.LevelFilter() != message.LevelOff {
		t.Fatalf("LevelFilter=%v want clamped", term.LevelFilter())
	}
}

func TestResetColors(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{})
	if _, ok := term.Theme().Lookup(theme.Text); !ok {
		t.Fatalf("default theme has no text color")
	}
	term.ResetColors()
	for r := theme.Role(0); r < theme.NumRoles; r++ {
		if _, ok := term.Theme().Lookup(r); ok {
			t.Fatalf("role %v still set", r)
		}
	}
}

func TestEditBufferCapacityFromOptions(t *testing.T) {
	term := New[int](nil, newFakeRegistry(), Options{BufferSize: 8})
	term.SetInput("abcdefghijkl")
	if term.Input() != "abcdefg" {
		t.Fatalf("Input=%q want truncated to 7 bytes", term.Input())
	}
}
