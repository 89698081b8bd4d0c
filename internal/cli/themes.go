package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baaaaaaaka/cmdterm/theme"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the built-in color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, th := range theme.List() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), th.Name)
			}
			return nil
		},
	}
}
