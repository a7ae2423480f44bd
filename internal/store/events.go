package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"wikitree/internal/model"

	"github.com/goccy/go-json"
)

const (
	EventRename       = "tree.rename"
	EventDelete       = "tree.delete"
	EventAddChild     = "tree.add_child"
	EventAddRoot      = "tree.add_root"
	EventHideChildren = "tree.hide_children"
	EventImport       = "tree.import"
	EventSave         = "tree.save"
)

// AppendEvent records one audit entry. Payload is stored as JSON.
func (s Store) AppendEvent(ctx context.Context, typ, nodeID string, payload any) error {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return errEmptyEventType
	}
	raw := []byte("null")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = b
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `INSERT INTO events(ts_unixms, type, node_id, payload_json) VALUES(?, ?, ?, ?)`,
		time.Now().UTC().UnixMilli(), typ, nodeID, string(raw))
	return err
}

// Events lists recorded events, newest first. limit <= 0 returns all.
func (s Store) Events(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, ts_unixms, type, node_id, payload_json FROM events ORDER BY id DESC`
	var rows *sql.Rows
	if limit > 0 {
		rows, err = db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			ev     model.Event
			tsMS   int64
			rawPay string
		)
		if err := rows.Scan(&ev.ID, &tsMS, &ev.Type, &ev.NodeID, &rawPay); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(tsMS).UTC()
		if rawPay != "" && rawPay != "null" {
			var p any
			if err := json.Unmarshal([]byte(rawPay), &p); err != nil {
				return nil, err
			}
			ev.Payload = p
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
