package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/store"
	"github.com/Makepad-fr/todo/internal/tracker"
	"github.com/Makepad-fr/todo/internal/ui"
)

type listFlags struct {
	verbose  bool
	resolved bool
	group    bool
	plain    bool
	sort     string
	prefix   string
}

func (a *app) listCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:     "list [idPrefix]",
		Aliases: []string{"ls"},
		Short:   "List items (open ones unless --resolved)",
		Args:    usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.prefix = args[0]
			}
			return a.list(f)
		},
	}
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "show every field")
	cmd.Flags().BoolVarP(&f.resolved, "resolved", "r", false, "include resolved items")
	cmd.Flags().BoolVar(&f.group, "group", false, "group output by open/resolved")
	cmd.Flags().BoolVar(&f.plain, "plain", false, "one item per line, no frame (for scripts)")
	cmd.Flags().StringVar(&f.sort, "sort", "", "order by id, date or priority (default: file order)")
	return cmd
}

func (a *app) list(f listFlags) error {
	order, err := store.OrderNamed(f.sort)
	if err != nil {
		return usageError{err}
	}
	items, err := a.tracker.List(tracker.ListOptions{
		ShowResolved: f.resolved,
		Prefix:       f.prefix,
		Order:        order,
	})
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	v := ui.Short
	if f.verbose {
		v = ui.Long
	}

	out := a.opt.Stdout
	switch {
	case f.plain && v == ui.Short:
		for _, it := range items {
			fmt.Fprintf(out, "%s  %s\n", it.ShortID(), it.Title)
		}
	case f.plain:
		for _, it := range items {
			for _, l := range ui.ItemDetail(it) {
				fmt.Fprintln(out, l)
			}
			fmt.Fprintln(out)
		}
	case f.group:
		ui.Panel(out, ui.GroupLines(items, v))
	default:
		lines := ui.ListLines(items, v)
		lines = append(lines, "", ui.Current().Muted.Render("Tip: add with `todo create \"Buy milk\"`"))
		ui.Panel(out, lines)
	}
	return nil
}
