package cli

import (
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/mutate"
	"wikitree/internal/navtree"
	"wikitree/internal/store"

	"github.com/spf13/cobra"
)

func newNodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Show and edit individual nodes",
	}
	cmd.AddCommand(newNodesShowCmd(app))
	cmd.AddCommand(newNodesRenameCmd(app))
	cmd.AddCommand(newNodesDeleteCmd(app))
	cmd.AddCommand(newNodesAddChildCmd(app))
	cmd.AddCommand(newNodesAddRootCmd(app))
	cmd.AddCommand(newNodesHideChildrenCmd(app))
	return cmd
}

type nodeView struct {
	Node model.Node `json:"node"`
	Path []string   `json:"path"`
}

func newNodesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <node-id>",
		Short: "Show a node and its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := loadForest(ctxOf(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			v, ok := locate(f, id)
			if !ok {
				return writeErr(cmd, describe(&mutate.NotFoundError{Kind: "node", ID: id}))
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}
}

// locate reports a node and its label path. The path resolver never matches
// separators, so a separator is reported with the path of its parent.
func locate(f model.Forest, id string) (nodeView, bool) {
	if p := navtree.FindPathByID(f, id); !p.Empty() {
		last, _ := p.Last()
		return nodeView{Node: last, Path: p.Labels()}, true
	}
	n, ok := f.Find(id)
	if !ok {
		return nodeView{}, false
	}
	parents, _ := ancestorLabels(f, id)
	return nodeView{Node: n, Path: parents}, true
}

func ancestorLabels(nodes []model.Node, id string) ([]string, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return []string{}, true
		}
		if sub, ok := ancestorLabels(n.Children, id); ok {
			return append([]string{n.Label}, sub...), true
		}
	}
	return nil, false
}

// mutation is one CLI edit: it returns the new forest, the node to report and
// the event to record.
type mutation func(f model.Forest) (next model.Forest, reportID string, ev event, err error)

type event struct {
	typ     string
	nodeID  string
	payload any
}

// runMutation loads, applies, saves and records. A failed mutation saves
// nothing.
func runMutation(cmd *cobra.Command, app *App, fn mutation) error {
	ctx := ctxOf(cmd)
	f, s, err := loadForest(ctx, app)
	if err != nil {
		return writeErr(cmd, err)
	}
	next, reportID, ev, err := fn(f)
	if err != nil {
		return writeErr(cmd, describe(err))
	}
	if err := s.Save(ctx, next); err != nil {
		return writeErr(cmd, err)
	}
	if err := s.AppendEvent(ctx, ev.typ, ev.nodeID, ev.payload); err != nil {
		app.logger().Warn("event append failed", "type", ev.typ, "err", err)
	}
	app.logger().Info("tree updated", "event", ev.typ, "node", ev.nodeID)

	if reportID == "" {
		return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": ev.nodeID, "nodes": next.Count()}})
	}
	v, _ := locate(next, reportID)
	return writeOut(cmd, app, map[string]any{"data": v})
}

func newNodesRenameCmd(app *App) *cobra.Command {
	var (
		label string
		image string
	)
	cmd := &cobra.Command{
		Use:   "rename <node-id>",
		Short: "Change a node's label (and optionally its icon)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			var imageURL *string
			if cmd.Flags().Changed("image") {
				imageURL = &image
			}
			return runMutation(cmd, app, func(f model.Forest) (model.Forest, string, event, error) {
				next, err := mutate.Rename(f, id, label, imageURL)
				payload := map[string]any{"label": strings.TrimSpace(label)}
				if imageURL != nil {
					payload["imageUrl"] = *imageURL
				}
				return next, id, event{typ: store.EventRename, nodeID: id, payload: payload}, err
			})
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "New label")
	cmd.Flags().StringVar(&image, "image", "", "Icon URL (empty clears it)")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func newNodesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a node and its whole subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return runMutation(cmd, app, func(f model.Forest) (model.Forest, string, event, error) {
				removed := 0
				if n, ok := f.Find(id); ok {
					removed = n.Count()
				}
				next, err := mutate.Delete(f, id)
				return next, "", event{typ: store.EventDelete, nodeID: id, payload: map[string]int{"removed": removed}}, err
			})
		},
	}
}

func addFlags(cmd *cobra.Command, label, kind *string) {
	cmd.Flags().StringVar(label, "label", "", "Label (default: "+mutate.PlaceholderLabel+")")
	cmd.Flags().StringVar(kind, "kind", "item", "Node kind (item|group|separator)")
}

func newNodesAddChildCmd(app *App) *cobra.Command {
	var label, kind string
	cmd := &cobra.Command{
		Use:   "add-child <parent-id>",
		Short: "Append a new node under a parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			parentID := strings.TrimSpace(args[0])
			return runMutation(cmd, app, func(f model.Forest) (model.Forest, string, event, error) {
				n, err := mutate.NewNode(f, label, k)
				if err != nil {
					return f, "", event{}, err
				}
				next, err := mutate.AddChild(f, parentID, n)
				return next, n.ID, event{typ: store.EventAddChild, nodeID: n.ID, payload: map[string]any{"parentId": parentID, "label": n.Label, "kind": n.EffectiveKind()}}, err
			})
		},
	}
	addFlags(cmd, &label, &kind)
	return cmd
}

func newNodesAddRootCmd(app *App) *cobra.Command {
	var label, kind string
	cmd := &cobra.Command{
		Use:   "add-root",
		Short: "Append a new root node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := model.ParseKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			return runMutation(cmd, app, func(f model.Forest) (model.Forest, string, event, error) {
				n, err := mutate.NewNode(f, label, k)
				if err != nil {
					return f, "", event{}, err
				}
				next, err := mutate.AddRoot(f, n)
				return next, n.ID, event{typ: store.EventAddRoot, nodeID: n.ID, payload: map[string]any{"label": n.Label, "kind": n.EffectiveKind()}}, err
			})
		},
	}
	addFlags(cmd, &label, &kind)
	return cmd
}

func newNodesHideChildrenCmd(app *App) *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "hide-children <node-id>",
		Short: "Show a node's children as tabs instead of nested entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return runMutation(cmd, app, func(f model.Forest) (model.Forest, string, event, error) {
				next, err := mutate.SetHideChildren(f, id, !off)
				return next, id, event{typ: store.EventHideChildren, nodeID: id, payload: map[string]bool{"hide": !off}}, err
			})
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "Render children inline again")
	return cmd
}
