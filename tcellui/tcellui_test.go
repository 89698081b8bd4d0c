package tcellui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/baaaaaaaka/cmdterm/cellui"
	"github.com/baaaaaaaka/cmdterm/registry"
	"github.com/baaaaaaaka/cmdterm/terminal"
)

func newTestScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(func() { screen.Fini() })
	return screen
}

type sizedScreen struct {
	tcell.Screen
}

func (s *sizedScreen) Init() error {
	if err := s.Screen.Init(); err != nil {
		return err
	}
	s.Screen.SetSize(80, 24)
	return nil
}

func useScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	prevNewScreen := newScreen
	newScreen = func() (tcell.Screen, error) {
		return &sizedScreen{Screen: screen}, nil
	}
	t.Cleanup(func() { newScreen = prevNewScreen })
	return screen
}

func postText(screen tcell.Screen, s string) {
	for _, r := range s {
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestSurfaceSetCell(t *testing.T) {
	screen := newTestScreen(t, 10, 2)
	surf := NewSurface(screen)
	if w, h := surf.Size(); w != 10 || h != 2 {
		t.Fatalf("Size=%dx%d want 10x2", w, h)
	}
	surf.SetCell(3, 1, 'x', cellui.Style{Fg: colorful.Color{R: 1}, Bold: true})
	screen.Show()
	mainc, _, style, _ := screen.GetContent(3, 1)
	if mainc != 'x' {
		t.Fatalf("rune=%q want x", mainc)
	}
	fg, _, attrs := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("fg=%v want red", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("attrs=%v want bold", attrs)
	}
}

func TestTranslateKeys(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want cellui.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), cellui.Rune('q')},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyEnter}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyTab}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyBackspace}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyUp}},
		{"pgdn", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyPgDn}},
		{"escape", tcell.NewEventKey(tcell.KeyESC, 0, tcell.ModNone), cellui.KeyEvent{Key: cellui.KeyEscape}},
		{"ctrl-w", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), cellui.Ctrl('w')},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := translateKey(tc.ev)
			if !ok {
				t.Fatalf("translateKey dropped %v", tc.ev.Name())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("translateKey mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateMouseClicksOnPress(t *testing.T) {
	tr := &translator{}
	steps := []struct {
		buttons tcell.ButtonMask
		want    cellui.MouseButton
	}{
		{tcell.Button1, cellui.MouseLeft},
		{tcell.Button1, cellui.MouseNone},
		{tcell.ButtonNone, cellui.MouseNone},
		{tcell.Button1, cellui.MouseLeft},
		{tcell.WheelUp, cellui.MouseWheelUp},
		{tcell.WheelDown, cellui.MouseWheelDown},
	}
	for i, s := range steps {
		ev, ok := tr.translate(tcell.NewEventMouse(4, 2, s.buttons, tcell.ModNone))
		if !ok {
			t.Fatalf("step %d: event dropped", i)
		}
		me := ev.(cellui.MouseEvent)
		if me.Button != s.want || me.X != 4 || me.Y != 2 {
			t.Fatalf("step %d: got %+v want button %v at 4,2", i, me, s.want)
		}
	}
}

func TestTranslateFocus(t *testing.T) {
	tr := &translator{}
	ev, ok := tr.translate(tcell.NewEventFocus(false))
	if !ok || ev != (cellui.FocusEvent{Focused: false}) {
		t.Fatalf("translate focus=%v,%v", ev, ok)
	}
}

func TestRunUntilTerminalCloses(t *testing.T) {
	screen := useScreen(t)
	var term *terminal.Terminal[int]
	reg := registry.New(terminal.Command[int]{
		Name: "exit",
		Call: func(arg *terminal.Argument[int]) { arg.Term.SetShouldClose() },
	})
	term = terminal.New[int](nil, reg, terminal.Options{})
	ui := cellui.New(cellui.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	go func() {
		time.Sleep(50 * time.Millisecond)
		postText(screen, "exit")
		screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	}()

	err := Run(ctx, ui, func() bool { return term.Show(ui) }, Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if diff := cmp.Diff([]string{"exit"}, term.History()); diff != "" {
		t.Fatalf("History mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	useScreen(t)
	term := terminal.New[int](nil, registry.New[int](), terminal.Options{})
	ui := cellui.New(cellui.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	err := Run(ctx, ui, func() bool { return term.Show(ui) }, Options{DisableMouse: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error=%v want context.Canceled", err)
	}
}

func TestRunRefreshInterval(t *testing.T) {
	useScreen(t)
	ui := cellui.New(cellui.Options{})
	frames := 0

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := Run(ctx, ui, func() bool {
		frames++
		return frames < 3
	}, Options{RefreshInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if frames != 3 {
		t.Fatalf("frames=%d want 3", frames)
	}
}

func TestRunShowsMessages(t *testing.T) {
	screen := useScreen(t)
	term := terminal.New[int](nil, registry.New[int](), terminal.Options{Name: "shown"})
	term.AddText("hello from the log")
	ui := cellui.New(cellui.Options{})

	var rows []string
	frames := 0
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := Run(ctx, ui, func() bool {
		frames++
		if frames == 2 {
			// the front buffer holds the first frame
			cells, w, _ := screen.GetContents()
			var b strings.Builder
			for i, c := range cells {
				if i > 0 && i%w == 0 {
					rows = append(rows, b.String())
					b.Reset()
				}
				if len(c.Runes) > 0 {
					b.WriteRune(c.Runes[0])
				}
			}
			rows = append(rows, b.String())
			return false
		}
		return term.Show(ui)
	}, Options{RefreshInterval: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	all := strings.Join(rows, "\n")
	if !strings.Contains(all, "shown") || !strings.Contains(all, "hello from the log") {
		t.Fatalf("screen does not show the terminal:\n%s", all)
	}
}
