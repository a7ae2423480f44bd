package cli

import (
	"fmt"
	"strings"

	"wikitree/internal/navtree"
	"wikitree/internal/publish"

	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Inspect and export the navigation tree",
	}
	cmd.AddCommand(newTreeShowCmd(app))
	cmd.AddCommand(newTreePathCmd(app))
	cmd.AddCommand(newTreeValidateCmd(app))
	cmd.AddCommand(newTreeExportCmd(app))
	return cmd
}

func newTreeShowCmd(app *App) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the whole forest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadForest(ctxOf(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if text {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderText(f))
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "Print an indented plain-text tree instead of structured output")
	return cmd
}

func newTreePathCmd(app *App) *cobra.Command {
	var byID bool
	cmd := &cobra.Command{
		Use:   "path <label>",
		Short: "Resolve the root-to-node path for a topic label (first match in pre-order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadForest(ctxOf(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			target := args[0]
			var p navtree.Path
			if byID {
				p = navtree.FindPathByID(f, strings.TrimSpace(target))
			} else {
				p = navtree.FindPath(f, target)
			}
			data := map[string]any{
				"found":  !p.Empty(),
				"labels": p.Labels(),
				"ids":    p.IDs(),
			}
			if tc := navtree.Tabs(p); tc.Page != nil {
				data["tabs"] = tc
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}
	cmd.Flags().BoolVar(&byID, "id", false, "Treat the argument as a node id")
	return cmd
}

func newTreeValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check forest invariants (unique ids, separator shape, labels)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadForest(ctxOf(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			verr := f.Validate()
			data := map[string]any{"valid": verr == nil, "nodes": f.Count(), "roots": len(f)}
			if verr != nil {
				data["error"] = verr.Error()
			}
			if err := writeOut(cmd, app, map[string]any{"data": data}); err != nil {
				return err
			}
			if verr != nil {
				return writeErr(cmd, verr)
			}
			return nil
		},
	}
}

func newTreeExportCmd(app *App) *cobra.Command {
	var (
		to        string
		overwrite bool
		render    bool
		images    bool
		title     string
		width     int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tree as markdown (to a file, or to stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadForest(ctxOf(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			mdOpt := publish.MarkdownOptions{Title: title, Images: images}

			if strings.TrimSpace(to) != "" {
				res, err := publish.WriteMarkdown(f, to, publish.WriteOptions{Markdown: mdOpt, Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			}

			md := publish.RenderMarkdown(f, mdOpt)
			if render {
				out, err := publish.RenderTerminal(md, width)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Markdown file to write")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for the terminal instead of printing it raw")
	cmd.Flags().BoolVar(&images, "images", false, "Include node icons as image links")
	cmd.Flags().StringVar(&title, "title", "", "Top-level heading (default: Navigation)")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}
