package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var (
		seedPath string
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a workspace (seeds the navigation tree on first run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := ctxOf(cmd)
			initialized, err := s.Initialized(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}

			var (
				f      model.Forest
				source string
				seeded bool
			)
			switch {
			case initialized && !force:
				if strings.TrimSpace(seedPath) != "" {
					return writeErr(cmd, errors.New("workspace already initialized (use --force to reseed)"))
				}
				f, err = s.Load(ctx)
				source = "existing"
			case strings.TrimSpace(seedPath) != "":
				f, err = store.LoadSeedFile(seedPath)
				source = filepath.Clean(seedPath)
				seeded = true
			default:
				f, source, err = s.InitialSeed()
				seeded = true
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if seeded {
				if err := s.Save(ctx, f); err != nil {
					return writeErr(cmd, err)
				}
				if err := s.AppendEvent(ctx, store.EventSave, "", map[string]any{"seed": source, "nodes": f.Count()}); err != nil {
					return writeErr(cmd, err)
				}
			}

			// First workspace initialized becomes the current one.
			if strings.TrimSpace(app.Workspace) != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        s.Dir,
					"workspace":  app.Workspace,
					"seed":       source,
					"seeded":     seeded,
					"nodes":      f.Count(),
					"sqlitePath": filepath.Join(s.Dir, "nav.sqlite"),
				},
			})
		},
	}
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML seed file (list of root nodes)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing tree with the seed")
	return cmd
}
