package cli

import (
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"wikitree/internal/importer"
	"wikitree/internal/model"
	"wikitree/internal/store"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

type importResult struct {
	Mode   importer.Mode   `json:"mode"`
	DryRun bool            `json:"dryRun,omitempty"`
	Report importer.Report `json:"report"`
	Nodes  int             `json:"nodes"`
	Roots  int             `json:"roots"`
	Forest model.Forest    `json:"forest,omitempty"`
}

func newImportCmd(app *App) *cobra.Command {
	var (
		fromClipboard bool
		appendMode    bool
		dryRun        bool
		watch         bool
		debounce      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Bulk import numbered rows (\"1.2<TAB>Title\") as a navigation forest",
		Long: strings.TrimSpace(`
Each line is "CODE<TAB>TITLE" or "CODE TITLE", where CODE is a dotted or
dashed number such as 1, 1.2 or 1-2-3. A code's parent is the text before its
last separator; codes whose parent is missing become roots.

By default the import replaces the whole tree. --append adds the imported
roots after the existing ones.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := ""
			if len(args) == 1 {
				src = strings.TrimSpace(args[0])
			}
			switch {
			case fromClipboard && src != "":
				return writeErr(cmd, errUsage("use either a file argument or --clipboard, not both"))
			case !fromClipboard && src == "":
				return writeErr(cmd, errUsage("missing input: pass a file, - for stdin, or --clipboard"))
			case watch && (src == "" || src == "-"):
				return writeErr(cmd, errUsage("--watch needs a file argument"))
			case watch && appendMode:
				return writeErr(cmd, errUsage("--watch always replaces; drop --append"))
			}
			mode := importer.ModeReplace
			if appendMode {
				mode = importer.ModeAppend
			}

			read := func() (string, error) {
				switch {
				case fromClipboard:
					return clipboard.ReadAll()
				case src == "-":
					b, err := io.ReadAll(cmd.InOrStdin())
					return string(b), err
				default:
					b, err := os.ReadFile(src)
					return string(b), err
				}
			}

			if err := runImport(cmd, app, read, mode, dryRun); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(ctxOf(cmd), os.Interrupt)
			defer stop()
			app.logger().Info("watching for changes", "file", src)
			return store.WatchFile(ctx, src, debounce, func() error {
				// Keep watching after a bad edit; the previous tree stays in place.
				if err := runImport(cmd, app, read, mode, dryRun); err != nil {
					app.logger().Error("import failed", "file", src, "err", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&fromClipboard, "clipboard", false, "Read rows from the system clipboard")
	cmd.Flags().BoolVar(&appendMode, "append", false, "Append imported roots instead of replacing the tree")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without saving")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-import whenever the file changes (until interrupted)")
	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Quiet period before re-importing with --watch")
	return cmd
}

func runImport(cmd *cobra.Command, app *App, read func() (string, error), mode importer.Mode, dryRun bool) error {
	raw, err := read()
	if err != nil {
		return writeErr(cmd, err)
	}
	imported, rep, err := importer.ParseWithReport(raw)
	if err != nil {
		return writeErr(cmd, describe(err))
	}
	app.logger().Debug("parsed import", "lines", rep.Lines, "parsed", rep.Parsed, "skipped", rep.Skipped, "orphans", rep.Orphans)

	ctx := ctxOf(cmd)
	existing, s, err := loadForest(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	next, err := importer.Merge(existing, imported, mode)
	if err != nil {
		return writeErr(cmd, err)
	}
	res := importResult{Mode: mode, DryRun: dryRun, Report: rep, Nodes: next.Count(), Roots: len(next)}
	if dryRun {
		res.Forest = next
		return writeOut(cmd, app, map[string]any{"data": res})
	}

	if err := s.Save(ctx, next); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.AppendEvent(ctx, store.EventImport, "", map[string]any{"mode": mode, "report": rep}); err != nil {
		app.logger().Warn("event append failed", "type", store.EventImport, "err", err)
	}
	return writeOut(cmd, app, map[string]any{"data": res})
}
