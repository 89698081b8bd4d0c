package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	xterm "golang.org/x/term"

	"github.com/baaaaaaaka/cmdterm/cellui"
	"github.com/baaaaaaaka/cmdterm/internal/config"
	"github.com/baaaaaaaka/cmdterm/logsink"
	"github.com/baaaaaaaka/cmdterm/message"
	"github.com/baaaaaaaka/cmdterm/registry"
	"github.com/baaaaaaaka/cmdterm/tcellui"
	"github.com/baaaaaaaka/cmdterm/teaui"
	"github.com/baaaaaaaka/cmdterm/terminal"
	"github.com/baaaaaaaka/cmdterm/theme"
)

const (
	backendTcell = "tcell"
	backendTea   = "tea"

	maxMessages = 5000
)

// frameRunner drives frame on a screen until it returns false.
type frameRunner func(ctx context.Context, ui *cellui.UI, frame func() bool, refresh time.Duration, logger *zap.Logger) error

var runners = map[string]frameRunner{
	backendTcell: func(ctx context.Context, ui *cellui.UI, frame func() bool, refresh time.Duration, logger *zap.Logger) error {
		return tcellui.Run(ctx, ui, frame, tcellui.Options{RefreshInterval: refresh, Logger: logger})
	},
	backendTea: func(ctx context.Context, ui *cellui.UI, frame func() bool, refresh time.Duration, logger *zap.Logger) error {
		return teaui.Run(ctx, ui, frame, teaui.Options{RefreshInterval: refresh, Logger: logger})
	},
}

var isInteractive = func() bool {
	return xterm.IsTerminal(int(os.Stdin.Fd())) && xterm.IsTerminal(int(os.Stdout.Fd()))
}

func runDemo(cmd *cobra.Command, root *rootOptions) error {
	run, ok := runners[root.backend]
	if !ok {
		return fmt.Errorf("unknown backend %q (want %s or %s)", root.backend, backendTcell, backendTea)
	}
	if !isInteractive() {
		return errors.New("cmdterm needs an interactive terminal")
	}

	store, cfg, hist, err := openState(root)
	if err != nil {
		return err
	}
	if root.themeName != "" {
		cfg.Theme = root.themeName
	}
	if root.level != "" {
		cfg.LogLevel = root.level
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	lines, err := hist.Lines()
	if err != nil {
		return err
	}

	sink := logsink.NewSink(0)
	logger, closeLog, err := newLogger(sink, root.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	state := &demo{cfg: cfg, logger: logger.Named("demo")}
	reg := registry.New(demoCommands()...)
	term := newDemoTerminal(state, reg, hist, lines, logger)
	sink.Attach(term)
	defer sink.Detach(term)

	ui := cellui.New(cellui.Options{Logger: logger.Named("ui")})
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("started", zap.String("version", buildVersion()), zap.String("backend", root.backend), zap.String("config", store.Path()))
	err = run(ctx, ui, func() bool {
		sink.Drain()
		return term.Show(ui)
	}, root.refreshInterval, logger)

	if saveErr := store.Update(func(c *config.Config) error {
		applyChanges(c, cfg, state.cfg)
		return nil
	}); saveErr != nil && err == nil {
		err = saveErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newDemoTerminal(state *demo, reg *registry.Registry[demo], hist *config.HistoryStore, lines []string, logger *zap.Logger) *terminal.Terminal[demo] {
	cfg := state.cfg
	th := theme.Cherry()
	if cfg.Theme != "" {
		th, _ = theme.ByName(cfg.Theme)
	}
	level := message.Trace
	if cfg.LogLevel != "" {
		level, _ = message.ParseSeverity(cfg.LogLevel)
	}
	pos := terminal.PositionDown
	if cfg.Autocomplete != "" {
		pos, _ = terminal.ParsePosition(cfg.Autocomplete)
	}

	term := terminal.New[demo](state, reg, terminal.Options{
		Name:         "cmdterm " + version,
		MaxMessages:  maxMessages,
		Autocomplete: pos,
		Theme:        &th,
		Level:        level,
		History:      lines,
		OnSubmit: func(line string) {
			if err := hist.Append(line); err != nil {
				logger.Warn("history not saved", zap.Error(err))
			}
		},
		Logger: logger.Named("terminal"),
	})
	term.SetAutowrap(cfg.AutowrapEnabled())
	term.SetAutoscroll(cfg.AutoscrollEnabled())
	term.AddText("type 'help' for the list of commands, Tab completes, Up/Down walk the history")
	return term
}

// applyChanges copies to dst the preferences that differ between before and
// after, so that flags given for one run are not saved.
func applyChanges(dst *config.Config, before, after config.Config) {
	if after.Theme != before.Theme {
		dst.Theme = after.Theme
	}
	if after.LogLevel != before.LogLevel {
		dst.LogLevel = after.LogLevel
	}
	if after.AutowrapEnabled() != before.AutowrapEnabled() {
		dst.SetAutowrap(after.AutowrapEnabled())
	}
	if after.AutoscrollEnabled() != before.AutoscrollEnabled() {
		dst.SetAutoscroll(after.AutoscrollEnabled())
	}
}
