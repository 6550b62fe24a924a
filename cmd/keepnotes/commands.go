package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"keepnotes/internal/app"
)

type globalOptions struct {
	configPath string
	backend    string
	dataDir    string
	verbose    bool
}

type sessionOpener func(ctx context.Context, opts globalOptions, ui bool) (*session, error)

type commandWiring struct {
	stdout      io.Writer
	stderr      io.Writer
	openSession sessionOpener
	runUI       func(ctx context.Context, s *session) error
	version     string
	opts        *globalOptions
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	w := commandWiring{
		stdout:  stdout,
		stderr:  stderr,
		runUI:   runUI,
		version: buildVersion(),
		opts:    &globalOptions{},
	}
	w.openSession = func(ctx context.Context, opts globalOptions, ui bool) (*session, error) {
		return openSession(ctx, opts, ui, w.stderr)
	}
	return w
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	if wiring.opts == nil {
		wiring.opts = &globalOptions{}
	}
	root := &cobra.Command{
		Use:           "keepnotes",
		Short:         "Sticky notes with tags, archive and trash in your terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&wiring.opts.configPath, "config", "", "path to config.toml")
	flags.StringVar(&wiring.opts.backend, "backend", "", "storage backend: bbolt|file|sqlite|memory")
	flags.StringVar(&wiring.opts.dataDir, "data-dir", "", "data directory (default ~/.keepnotes)")
	flags.BoolVarP(&wiring.opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newUICommand(wiring),
		newListCommand(wiring),
		newAddCommand(wiring),
		newEditCommand(wiring),
		newToggleCommand(wiring, "archive"),
		newToggleCommand(wiring, "trash"),
		newTagsCommand(wiring),
		newSortCommand(wiring),
		newViewCommand(wiring),
		newExportCommand(wiring),
		newImportCommand(wiring),
		newConfigCommand(wiring),
		newVersionCommand(wiring),
	)
	return root
}

// withSession opens the store for one command and closes it afterwards.
func withSession(wiring commandWiring, ui bool, fn func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		s, err := wiring.openSession(ctx, *wiring.opts, ui)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(ctx, s, args)
	}
}

func newUICommand(wiring commandWiring) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: withSession(wiring, true, func(ctx context.Context, s *session, _ []string) error {
			return wiring.runUI(ctx, s)
		}),
	}
}

func runUI(ctx context.Context, s *session) error {
	return app.Run(ctx, s.notes,
		app.WithLogger(s.logger),
		app.WithSidebarWidth(s.cfg.SidebarWidth()),
		app.WithShowCounts(s.cfg.UI.ShowCounts),
		app.WithEditorDefaults(s.cfg.DefaultBackground(), s.cfg.DefaultPriority()),
	)
}

func newVersionCommand(wiring commandWiring) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(wiring.stdout, "keepnotes "+wiring.version)
		},
	}
}
