package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"quire-cli/internal/model"
)

// AppendEvent records a mutation. Callers treat failures as best-effort (the state tables are
// the source of truth).
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO events(id, type, entity_id, payload_json, created_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		"evt-"+uuid.NewString(), strings.TrimSpace(typ), strings.TrimSpace(entityID), string(raw), time.Now().UTC().UnixMilli())
	return err
}

// ReadEvents returns the most recent events, oldest first. limit <= 0 means all.
func (s Store) ReadEvents(ctx context.Context, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, type, entity_id, payload_json, created_at_unixms FROM events ORDER BY created_at_unixms DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var (
			ev          model.Event
			payloadJSON string
			ms          int64
		)
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.EntityID, &payloadJSON, &ms); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ms).UTC()
		if payloadJSON != "" {
			var p any
			if err := json.Unmarshal([]byte(payloadJSON), &p); err == nil {
				ev.Payload = p
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}
