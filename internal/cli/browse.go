package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/tracker"
	"github.com/Makepad-fr/todo/internal/tui"
	"github.com/Makepad-fr/todo/internal/ui"
)

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse items interactively (space resolve, d delete, a add, e edit, u undo)",
		Long: `Browse items interactively.

Keys: space resolve/reopen, d delete, a add, e edit title, u undo, / filter.
Quitting with q or esc saves the session's changes; ctrl+c discards them.`,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := a.tracker.List(tracker.ListOptions{ShowResolved: true})
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			n, err := tui.Run(a.tracker, items)
			if n > 0 {
				ui.OK(a.opt.Stdout, fmt.Sprintf("saved %d change(s)", n))
			}
			return err
		},
	}
}
