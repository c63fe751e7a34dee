package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/ui"
)

var errTitleTwice = errors.New("give the title either with --title or as arguments, not both")

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <idPrefix>",
		Short: "Show every field of one item",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.tracker.Get(args[0])
			if err != nil {
				return err
			}
			ui.Panel(a.opt.Stdout, ui.ItemDetail(it))
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:   "edit <idPrefix> [flags]",
		Short: "Change the given fields of an item, leaving the rest as stored",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := f.patch(cmd.Flags())
			it, err := a.tracker.Edit(args[0], p)
			if err != nil {
				return err
			}
			if p.Empty() {
				ui.Hint(a.opt.Stdout, "nothing to change for "+it.ShortID())
				return nil
			}
			ui.OK(a.opt.Stdout, "edited "+it.ShortID())
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

// statusCmd builds resolve and reopen, which differ only in the operation.
func (a *app) statusCmd(use, short, done string, aliases []string, op func(string) (model.Item, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use + " <idPrefix>",
		Aliases: aliases,
		Short:   short,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := op(args[0])
			if err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, done+" "+it.ShortID())
			return nil
		},
	}
}

func (a *app) resolveCmd() *cobra.Command {
	return a.statusCmd("resolve", "Mark an item resolved", "resolved", []string{"done"},
		func(p string) (model.Item, error) { return a.tracker.Resolve(p) })
}

func (a *app) reopenCmd() *cobra.Command {
	return a.statusCmd("reopen", "Mark a resolved item open again", "reopened", nil,
		func(p string) (model.Item, error) { return a.tracker.Reopen(p) })
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <idPrefix>",
		Aliases: []string{"rm"},
		Short:   "Delete an item's record",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := a.tracker.Delete(args[0])
			if err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, "removed "+it.ShortID())
			return nil
		},
	}
}
