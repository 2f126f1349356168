package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendForgeEvent(ctx context.Context, data ForgeEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO forge_events
			(created_at, request_id, goal, source, success, module_count, latency_ms, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.timestamp(), data.RequestID, data.Goal, data.Source,
		boolToInt(data.Success), data.ModuleCount, data.LatencyMs, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save forge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryForgeEvents(ctx context.Context, opts QueryOpts) ([]ForgeEvent, error) {
	where, args := timeFilter(opts)
	q := `SELECT id, created_at, request_id, goal, source, success, module_count, latency_ms, error_message
		FROM forge_events` + where + ` ORDER BY id DESC` + limitClause(opts)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query forge events: %w", err)
	}
	defer rows.Close()

	var out []ForgeEvent
	for rows.Next() {
		var (
			e       ForgeEvent
			created int64
			success int
		)
		if err := rows.Scan(&e.ID, &created, &e.RequestID, &e.Goal, &e.Source,
			&success, &e.ModuleCount, &e.LatencyMs, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan forge event: %w", err)
		}
		e.Timestamp = time.UnixMilli(created)
		e.Success = success != 0
		out = append(out, e)
	}
	return out, rows.Err()
}
