package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Makepad-fr/todo/internal/model"
	"github.com/Makepad-fr/todo/internal/ui"
)

// fieldFlags holds the item fields settable from the command line.
type fieldFlags struct {
	title, tags, description, date string
	priority                       float64
}

func (f *fieldFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "item title")
	fs.StringVarP(&f.tags, "tags", "g", "", "tags (one free-text field)")
	fs.StringVarP(&f.description, "description", "d", "", "description (may span lines)")
	fs.Float64VarP(&f.priority, "priority", "p", model.DefaultPriority, "priority")
	fs.StringVar(&f.date, "date", "", "date text (default: now)")
}

// patch returns only the fields whose flags were given.
func (f *fieldFlags) patch(fs *pflag.FlagSet) model.Patch {
	var p model.Patch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("tags") {
		p.Tags = &f.tags
	}
	if fs.Changed("description") {
		p.Description = &f.description
	}
	if fs.Changed("priority") {
		p.Priority = &f.priority
	}
	if fs.Changed("date") {
		p.Date = &f.date
	}
	return p
}

func (a *app) createCmd() *cobra.Command {
	var f fieldFlags
	cmd := &cobra.Command{
		Use:     "create [flags] [title...]",
		Aliases: []string{"add", "new"},
		Short:   "Create an item (title can be multiple words)",
		Example: `  todo create Buy milk
  todo create -t "Write report" -g work -p 0.9 -d "draft by friday"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := f.patch(cmd.Flags())
			if p.Title == nil && len(args) > 0 {
				title := strings.Join(args, " ")
				p.Title = &title
			} else if p.Title != nil && len(args) > 0 {
				return usageError{errTitleTwice}
			}

			it, err := a.tracker.Create(p)
			if err != nil {
				return err
			}
			ui.OK(a.opt.Stdout, "created "+it.ShortID())
			if it.Title == "" {
				ui.Hint(a.opt.Stderr, "warning: item has no title, set one with `todo edit "+it.ShortID()+" -t ...`")
			}
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}
