package publish

import (
	"errors"
	"path/filepath"
	"strings"

	"wikitree/internal/model"
	"wikitree/internal/store"
)

type WriteOptions struct {
	Markdown  MarkdownOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
	Nodes   int      `json:"nodes"`
}

// WriteMarkdown renders f to a markdown file at path.
func WriteMarkdown(f model.Forest, path string, opt WriteOptions) (WriteResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	path = filepath.Clean(path)
	md := RenderMarkdown(f, opt.Markdown)
	if err := store.WriteFileAtomic(path, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}, Nodes: f.Count()}, nil
}
