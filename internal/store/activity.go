package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const authEventsTable = "auth_events"

// activityRepo implements ActivityRepo on the auth_events table.
type activityRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *activityRepo) AppendAuthEvent(ctx context.Context, data AuthEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(authEventsTable).
		Columns("sequence", "timestamp", "op", "email", "success", "error_kind", "error_message").
		Values(seqNum, ts.UnixNano(), data.Op, data.Email, data.Success, data.ErrorKind, data.ErrorMessage).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save auth event: %w", err)
	}
	return nil
}

func (r *activityRepo) QueryAuthEvents(ctx context.Context, opts QueryOpts) ([]AuthEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "op", "email", "success", "error_kind", "error_message").
		From(entsql.Table(authEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyRange(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	defer rows.Close()

	var records []AuthEventRecord
	for rows.Next() {
		var (
			rec AuthEventRecord
			ts  int64
		)
		err := rows.Scan(&rec.Sequence, &ts, &rec.Op, &rec.Email, &rec.Success, &rec.ErrorKind, &rec.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan auth event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query auth events: %w", err)
	}
	return records, nil
}

func (r *activityRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(authEventsTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear auth events: %w", err)
	}
	return nil
}
