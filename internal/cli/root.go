package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"wikitree/internal/format"
	"wikitree/internal/model"
	"wikitree/internal/store"
	"wikitree/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	LogLevel   string

	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "wikitree",
		Short:        "Hospital intranet navigation tree: CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse and edit the navigation tree interactively
  wikitree

  # Scriptable commands
  wikitree tree show --text
  wikitree tree path "Cardiology"

  # Bulk import a numbered outline
  wikitree import outline.txt --append

  # Direct node lookup (shortcut for: wikitree nodes show <node-id>)
  wikitree node-4k2xq9ab
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lg, err := newLogger(cmd.ErrOrStderr(), app.LogLevel)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.log = lg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("WIKITREE_DIR", ""), "Path to workspace dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("WIKITREE_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WIKITREE_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("WIKITREE_LOG_LEVEL", "warn"), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newNodesCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "wikitree",
		Level:  lvl,
	}), nil
}

func (app *App) logger() *log.Logger {
	if app.log != nil {
		return app.log
	}
	return log.Default()
}

func runTUI(cmd *cobra.Command, app *App) error {
	f, s, err := loadForest(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	opt := tui.Options{Store: s, Forest: f, Log: app.logger()}
	if cfg, err := store.LoadConfig(); err == nil && cfg.TUI != nil {
		opt.DefaultOpenRoot = cfg.TUI.DefaultOpenRoot
		opt.Glyphs = cfg.TUI.Glyphs
		opt.Theme = cfg.TUI.Theme
	}
	return tui.Run(ctxOf(cmd), opt)
}

// openStore resolves the workspace dir:
// 1) --dir
// 2) --workspace
// 3) ~/.wikitree/config.json currentWorkspace
// 4) default workspace ("default")
func openStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		name, err := store.ResolveWorkspace(app.Workspace)
		if err != nil {
			return store.Store{}, err
		}
		d, err := store.WorkspaceDir(name)
		if err != nil {
			return store.Store{}, err
		}
		app.Workspace = name
		app.Dir = d
		dir = d
	}
	return store.Store{Dir: dir, Log: app.logger()}, nil
}

func loadForest(ctx context.Context, app *App) (model.Forest, store.Store, error) {
	s, err := openStore(app)
	if err != nil {
		return nil, store.Store{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := s.Load(ctx)
	if err != nil {
		return nil, s, err
	}
	return f, s, nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
