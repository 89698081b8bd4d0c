// Package teaui runs a cellui.UI as a bubbletea program.
package teaui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/cellui"
)

type Options struct {
	// RefreshInterval redraws periodically so that messages added from
	// other goroutines show up without input. Zero disables it.
	RefreshInterval time.Duration

	// Width and Height size the first frames, before the program learns the
	// window size. They default to 80x24.
	Width  int
	Height int
	Logger *zap.Logger
}

type tickMsg time.Time

// Model is a bubbletea model drawing one cellui frame per message.
type Model struct {
	ui     *cellui.UI
	frame  func() bool
	opts   Options
	logger *zap.Logger
	grid   *cellui.Grid
	events []cellui.Event
	closed bool
}

func New(ui *cellui.UI, frame func() bool, opts Options) *Model {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		ui:     ui,
		frame:  frame,
		opts:   opts,
		logger: logger,
		grid:   cellui.NewGrid(opts.Width, opts.Height),
	}
}

// Run shows the frames until frame returns false, Ctrl-C is pressed or ctx
// is done.
func Run(ctx context.Context, ui *cellui.UI, frame func() bool, opts Options) error {
	p := tea.NewProgram(New(ui, frame, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.draw()
	if m.opts.RefreshInterval > 0 {
		return m.tick()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.logger.Debug("interrupted")
			return m, tea.Quit
		}
		m.events = append(m.events, translateKey(msg)...)
	case tea.MouseMsg:
		m.events = append(m.events, translateMouse(msg))
	case tea.FocusMsg:
		m.events = append(m.events, cellui.FocusEvent{Focused: true})
	case tea.BlurMsg:
		m.events = append(m.events, cellui.FocusEvent{Focused: false})
	case tickMsg:
		cmd = m.tick()
	}
	if !m.draw() {
		return m, tea.Quit
	}
	return m, cmd
}

// draw runs frames until the input is consumed. It reports false once frame
// asked to stop.
func (m *Model) draw() bool {
	for {
		settle := len(m.events) > 0
		m.ui.BeginFrame(m.grid, m.events...)
		keep := m.frame()
		m.ui.EndFrame()
		m.events = m.events[:0]
		if !keep {
			m.closed = true
			return false
		}
		if !settle && !m.ui.Pending() {
			return true
		}
	}
}

// Grid is the surface the last frame was drawn on.
func (m *Model) Grid() *cellui.Grid { return m.grid }

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	return render(m.grid)
}

// render turns the grid into styled lines, one lipgloss style per run of
// equally styled cells. The cursor cell is drawn reversed.
func render(g *cellui.Grid) string {
	w, h := g.Size()
	cx, cy, cursor := g.Cursor()
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var line strings.Builder
		var run strings.Builder
		var runStyle cellui.Style
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(lipglossStyle(runStyle).Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < w; x++ {
			c := g.Cell(x, y)
			if c.Rune == 0 {
				continue
			}
			st := c.Style
			if cursor && x == cx && y == cy {
				st.Reverse = !st.Reverse
			}
			if st != runStyle {
				flush()
				runStyle = st
			}
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

func lipglossStyle(st cellui.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipglossColor(st.Fg)).
		Background(lipglossColor(st.Bg)).
		Bold(st.Bold).
		Reverse(st.Reverse).
		Underline(st.Underline)
}

func lipglossColor(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

var keys = map[tea.KeyType]cellui.Key{
	tea.KeyEnter:     cellui.KeyEnter,
	tea.KeyTab:       cellui.KeyTab,
	tea.KeyShiftTab:  cellui.KeyBacktab,
	tea.KeyBackspace: cellui.KeyBackspace,
	tea.KeyCtrlH:     cellui.KeyBackspace,
	tea.KeyDelete:    cellui.KeyDelete,
	tea.KeyLeft:      cellui.KeyLeft,
	tea.KeyRight:     cellui.KeyRight,
	tea.KeyUp:        cellui.KeyUp,
	tea.KeyDown:      cellui.KeyDown,
	tea.KeyHome:      cellui.KeyHome,
	tea.KeyEnd:       cellui.KeyEnd,
	tea.KeyPgUp:      cellui.KeyPgUp,
	tea.KeyPgDown:    cellui.KeyPgDn,
	tea.KeyEsc:       cellui.KeyEscape,
}

func translateKey(msg tea.KeyMsg) []cellui.Event {
	var mod cellui.Mod
	if msg.Alt {
		mod |= cellui.ModAlt
	}
	switch msg.Type {
	case tea.KeyRunes:
		out := make([]cellui.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, cellui.KeyEvent{Key: cellui.KeyRune, Rune: r, Mod: mod})
		}
		return out
	case tea.KeySpace:
		return []cellui.Event{cellui.KeyEvent{Key: cellui.KeyRune, Rune: ' ', Mod: mod}}
	}
	if key, ok := keys[msg.Type]; ok {
		return []cellui.Event{cellui.KeyEvent{Key: key, Mod: mod}}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		r := rune('a' + msg.Type - tea.KeyCtrlA)
		return []cellui.Event{cellui.KeyEvent{Key: cellui.KeyRune, Rune: r, Mod: mod | cellui.ModCtrl}}
	}
	return nil
}

func translateMouse(msg tea.MouseMsg) cellui.Event {
	ev := cellui.MouseEvent{X: msg.X, Y: msg.Y}
	if msg.Action != tea.MouseActionPress {
		return ev
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = cellui.MouseLeft
	case tea.MouseButtonWheelUp:
		ev.Button = cellui.MouseWheelUp
	case tea.MouseButtonWheelDown:
		ev.Button = cellui.MouseWheelDown
	}
	return ev
}
