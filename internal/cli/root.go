package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/todo/internal/config"
	"github.com/Makepad-fr/todo/internal/logging"
	"github.com/Makepad-fr/todo/internal/resolve"
	"github.com/Makepad-fr/todo/internal/store/recordstore"
	"github.com/Makepad-fr/todo/internal/tracker"
	"github.com/Makepad-fr/todo/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wires the CLI to its environment.
type Options struct {
	Stdout, Stderr io.Writer
	// ConfigPaths overrides the config files to read. Nil means the global
	// and project files; an empty slice means none.
	ConfigPaths []string
	Version     string
}

// usageError marks errors that come from how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app is the state shared by every command of one invocation.
type app struct {
	opt     Options
	cfg     *config.Config
	log     *slog.Logger
	tracker *tracker.Tracker

	dirFlag, themeFlag, logLevelFlag string
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	a := &app{opt: opt}
	root := a.rootCmd()
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitOK
	}
	return a.report(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a file-backed task tracker",
		Long: `todo keeps one small text file per item in a .todo directory next to your work.

Run without a command to list open items.`,
		Args:              noArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(listFlags{})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       a.opt.Version,
	}
	root.SetOut(a.opt.Stdout)
	root.SetErr(a.opt.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&a.dirFlag, "dir", "", "record directory (default from config, .todo)")
	root.PersistentFlags().StringVar(&a.themeFlag, "theme", "", "output theme: classic, neon or mono")
	root.PersistentFlags().StringVar(&a.logLevelFlag, "log-level", "", "diagnostics level: debug, info, warn or error")

	root.AddCommand(
		a.createCmd(),
		a.listCmd(),
		a.showCmd(),
		a.editCmd(),
		a.resolveCmd(),
		a.reopenCmd(),
		a.deleteCmd(),
		a.browseCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads config, applies the global flags and builds the tracker.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if a.opt.ConfigPaths != nil {
		cfg, err = config.LoadFrom(a.opt.ConfigPaths...)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dirFlag != "" {
		cfg.Dir = a.dirFlag
	}
	if a.themeFlag != "" {
		cfg.Theme = a.themeFlag
	}
	if a.logLevelFlag != "" {
		cfg.LogLevel = a.logLevelFlag
	}
	a.cfg = cfg

	ui.SetTheme(cfg.Theme)
	a.log, err = logging.New(a.opt.Stderr, cfg.LogLevel)
	if err != nil {
		return usageError{err}
	}
	a.tracker = tracker.New(
		recordstore.New(cfg.Dir, cfg.Extension),
		tracker.WithLogger(a.log),
		tracker.WithDefaultPriority(cfg.DefaultPriority),
		tracker.WithDateFormat(cfg.DateFormat),
	)
	return nil
}

// report prints err with a hint where one helps and maps it to an exit code.
func (a *app) report(err error) int {
	ui.Fail(a.opt.Stderr, err.Error())

	var amb *resolve.AmbiguousError
	switch {
	case errors.As(err, &amb):
		ui.Hint(a.opt.Stderr, "Hint: use a longer id prefix")
	case errors.Is(err, resolve.ErrNotFound):
		ui.Hint(a.opt.Stderr, "Hint: run `todo list -r` to see valid ids")
	}

	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, tracker.ErrInvalidArgument) {
		return ExitUsage
	}
	return ExitError
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())}
	}
	return nil
}

// usageArgs wraps a cobra argument validator so its failures exit with
// the usage code.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
