package cli

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0"
	commit  = ""
	date    = ""
)

const defaultRefreshInterval = 250 * time.Millisecond

type rootOptions struct {
	configPath      string
	themeName       string
	backend         string
	level           string
	logFile         string
	refreshInterval time.Duration
}

func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "cmdterm",
		Short:         "Run the demo command terminal",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: OS user config dir)")
	cmd.Flags().StringVar(&opts.themeName, "theme", "", "Color theme (see 'cmdterm themes')")
	cmd.Flags().StringVar(&opts.backend, "backend", backendTcell, "Screen backend: tcell or tea")
	cmd.Flags().StringVar(&opts.level, "level", "", "Initial log level filter (trace, debug, info, warning, error, critical, none)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Also write log records as JSON lines to this file")
	cmd.Flags().DurationVar(&opts.refreshInterval, "refresh-interval", defaultRefreshInterval, "Redraw interval for background log records (0 to disable)")

	cmd.AddCommand(
		newHistoryCmd(opts),
		newThemesCmd(),
	)

	return cmd
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
