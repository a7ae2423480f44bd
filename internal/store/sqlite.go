package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"wikitree/internal/model"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

const (
	metaInitialized = "initialized_at"
	metaSavedAt     = "saved_at"
	metaSchema      = "schema_version"

	schemaVersion = 1
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout covers a TUI and a CLI
	// writing the same workspace.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			parent_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			label TEXT NOT NULL,
			json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			node_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO state_meta(k, v) VALUES(?, ?)`, metaSchema, strconv.Itoa(schemaVersion))
	return err
}

func readMeta(ctx context.Context, db *sql.DB, k string) (string, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

// saveForest stores the forest as flat (parent, position) rows, replacing
// whatever was there.
func saveForest(ctx context.Context, db *sql.DB, f model.Forest) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return err
	}

	var insert func(parentID string, nodes []model.Node) error
	insert = func(parentID string, nodes []model.Node) error {
		for pos, n := range nodes {
			row := n
			row.Children = nil
			raw, err := json.Marshal(row)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO nodes(id, parent_id, position, kind, label, json) VALUES(?, ?, ?, ?, ?, ?)`,
				n.ID, parentID, pos, string(n.EffectiveKind()), n.Label, string(raw)); err != nil {
				return err
			}
			if err := insert(n.ID, n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert("", f); err != nil {
		return err
	}

	now := strconv.FormatInt(time.Now().UTC().UnixMilli(), 10)
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO state_meta(k, v) VALUES(?, ?)`, metaInitialized, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, metaSavedAt, now); err != nil {
		return err
	}
	return tx.Commit()
}

type nodeRow struct {
	parentID string
	node     model.Node
}

// loadForest rebuilds the tree from flat rows. Rows whose parent is missing, or
// that are only reachable through a parent cycle, become roots.
func loadForest(ctx context.Context, db *sql.DB) (model.Forest, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, parent_id, json FROM nodes ORDER BY parent_id, position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []nodeRow
	present := map[string]bool{}
	for rows.Next() {
		var id, parent, js string
		if err := rows.Scan(&id, &parent, &js); err != nil {
			return nil, err
		}
		var n model.Node
		if err := json.Unmarshal([]byte(js), &n); err != nil {
			return nil, err
		}
		n.ID = id
		all = append(all, nodeRow{parentID: strings.TrimSpace(parent), node: n})
		present[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	children := map[string][]model.Node{}
	var roots []model.Node
	for _, r := range all {
		if r.parentID == "" || !present[r.parentID] || r.parentID == r.node.ID {
			roots = append(roots, r.node)
			continue
		}
		children[r.parentID] = append(children[r.parentID], r.node)
	}

	visited := map[string]bool{}
	var build func(n model.Node) model.Node
	build = func(n model.Node) model.Node {
		visited[n.ID] = true
		for _, ch := range children[n.ID] {
			if visited[ch.ID] {
				continue
			}
			n.Children = append(n.Children, build(ch))
		}
		return n
	}

	out := model.Forest{}
	for _, r := range roots {
		out = append(out, build(r))
	}
	for _, r := range all {
		if !visited[r.node.ID] {
			out = append(out, build(r.node))
		}
	}
	return out, nil
}
