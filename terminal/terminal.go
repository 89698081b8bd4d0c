// Package terminal implements a command terminal widget for immediate-mode
// user interfaces: a log of colored messages, a command line with history
// and autocompletion, and a registry of commands operating on a host value
// of type T.
//
// A Terminal is not safe for concurrent use. Everything, Show included, is
// expected to run on the UI thread.
package terminal

import (
	"go.uber.org/zap"

	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/theme"
)

const defaultName = "terminal"

// Options configures a Terminal. The zero value is usable.
type Options struct {
	// Name is the window title.
	Name string
	// Width and Height are the window size; zero lets the backend decide.
	Width, Height int
	// BufferSize is the command line capacity, NUL included.
	BufferSize int
	// MaxMessages bounds the log; the oldest lines are dropped first. Zero
	// means unbounded.
	MaxMessages int
	// DisableHistoryPrefixFilter makes history navigation visit every entry
	// instead of only those starting with the text typed before navigating.
	DisableHistoryPrefixFilter bool
	// HistoryResolved stores command lines in the history after history
	// reference expansion instead of as typed.
	HistoryResolved bool
	Autocomplete    Position
	Theme           *theme.Theme
	Level           message.Severity
	// History seeds the command history, oldest first.
	History []string
	// OnSubmit is called with every line appended to the history.
	OnSubmit func(line string)
	Logger   *zap.Logger
}

// Terminal is the widget state. Create it with New.
type Terminal[T any] struct {
	value    *T
	registry Registry[T]
	logger   *zap.Logger
	name     string
	width    int
	height   int

	logs        []message.Message
	maxMessages int
	appended    uint64
	shownUpTo   uint64
	level       message.Severity
	autoscroll  bool
	autowrap    bool
	colors      theme.Theme
	acPos       Position

	buf       *EditBuffer
	prevLen   int
	takeFocus bool
	hasFocus  bool
	onInput   InputCallback

	cmdCandidates []*Command[T]
	candidates    []string

	history         []string
	recalling       bool
	recallIdx       int
	backup          string
	backupPrefix    string
	prefixFilter    bool
	historyResolved bool
	onSubmit        func(string)

	closeRequest  bool
	selectorWidth int
}

// New creates a terminal operating on value, which may be nil. reg must not
// be nil.
func New[T any](value *T, reg Registry[T], opts Options) *Terminal[T] {
	if reg == nil {
		panic("terminal: nil registry")
	}
	t := &Terminal[T]{
		value:           value,
		registry:        reg,
		logger:          opts.Logger,
		name:            opts.Name,
		width:           opts.Width,
		height:          opts.Height,
		maxMessages:     opts.MaxMessages,
		level:           opts.Level,
		autoscroll:      true,
		autowrap:        true,
		acPos:           opts.Autocomplete,
		buf:             NewEditBuffer(opts.BufferSize),
		takeFocus:       true,
		history:         append([]string(nil), opts.History...),
		prefixFilter:    !opts.DisableHistoryPrefixFilter,
		historyResolved: opts.HistoryResolved,
		onSubmit:        opts.OnSubmit,
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	if t.name == "" {
		t.name = defaultName
	}
	if opts.Theme != nil {
		t.colors = *opts.Theme
	} else {
		t.colors = theme.Cherry()
	}
	t.onInput = t.handleInput
	return t
}

// Value is the host value commands operate on.
func (t *Terminal[T]) Value() *T { return t.value }

// Registry returns the command registry.
func (t *Terminal[T]) Registry() Registry[T] { return t.registry }

// History returns the submitted command lines, oldest first. The slice must
// not be modified.
func (t *Terminal[T]) History() []string { return t.history }

// Input returns the current command line.
func (t *Terminal[T]) Input() string { return t.buf.String() }

// SetInput replaces the command line and refreshes the completion candidates.
func (t *Terminal[T]) SetInput(s string) {
	t.buf.Set(s)
	t.recalling = false
	t.refreshCandidates()
}

// Candidates returns the autocomplete candidates for the current input.
func (t *Terminal[T]) Candidates() []string { return t.candidates }

// SetShouldClose makes the next Show report that the window was closed.
func (t *Terminal[T]) SetShouldClose() { t.closeRequest = true }

// Hide tells the terminal it is not being shown this frame. The command line
// grabs the focus again on the next Show.
func (t *Terminal[T]) Hide() {
	t.hasFocus = false
	t.takeFocus = true
}

// Theme returns the live theme; changes apply on the next frame.
func (t *Terminal[T]) Theme() *theme.Theme { return &t.colors }

func (t *Terminal[T]) SetTheme(th theme.Theme) {
	t.colors = th
	t.selectorWidth = 0
}

// ResetColors clears every theme entry so that the backend's defaults apply.
func (t *Terminal[T]) ResetColors() {
	name := t.colors.Name
	t.colors = theme.Theme{Name: name}
	t.selectorWidth = 0
}

func (t *Terminal[T]) AutocompletePosition() Position { return t.acPos }

func (t *Terminal[T]) SetAutocompletePosition(p Position) { t.acPos = p }

func (t *Terminal[T]) LevelFilter() message.Severity { return t.level }

// SetLevelFilter hides output messages below level. message.LevelOff hides
// them all.
func (t *Terminal[T]) SetLevelFilter(level message.Severity) {
	if level < message.Trace {
		level = message.Trace
	}
	if level > message.LevelOff {
		level = message.LevelOff
	}
	t.level = level
}

func (t *Terminal[T]) Autoscroll() bool { return t.autoscroll }

func (t *Terminal[T]) SetAutoscroll(on bool) { t.autoscroll = on }

func (t *Terminal[T]) Autowrap() bool { return t.autowrap }

func (t *Terminal[T]) SetAutowrap(on bool) { t.autowrap = on }
