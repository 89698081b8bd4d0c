package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cmdterm/internal/config"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the persisted command history",
		Args:  cobra.NoArgs,
	}

	var limit int
	var asJSON bool
	cmd.Flags().IntVar(&limit, "limit", 0, "Print only the newest n lines (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON lines")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		_, _, hist, err := openState(root)
		if err != nil {
			return err
		}
		entries, err := hist.Load()
		if err != nil {
			return err
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			if asJSON {
				b, err := json.Marshal(e)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, string(b))
				continue
			}
			ts := time.Unix(e.Time, 0).Format(time.DateTime)
			_, _ = fmt.Fprintf(out, "%s  %s\n", ts, e.Text)
		}
		return nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the persisted command history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, hist, err := openState(root)
			if err != nil {
				return err
			}
			return hist.Clear()
		},
	})
	return cmd
}

// openState loads the config and opens the history file next to it.
func openState(root *rootOptions) (*config.Store, config.Config, *config.HistoryStore, error) {
	store, err := config.NewStore(root.configPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	hist, err := config.NewHistoryStore(store.HistoryPath(), cfg.Limit())
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	return store, cfg, hist, nil
}
