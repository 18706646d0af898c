package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const progressTable = "progress"

// progressRepo implements ProgressRepo on the progress table.
type progressRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *progressRepo) Save(ctx context.Context, p *Progress) error {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return fmt.Errorf("marshal progress data: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(progressTable).
		Columns("sequence", "timestamp", "data").
		Values(seqNum, p.Timestamp.UnixNano(), string(data)).
		Query()

	var res entsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	p.ID = int(id)
	p.Sequence = seqNum
	return nil
}

func (r *progressRepo) Latest(ctx context.Context) (*Progress, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(progressTable)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query latest progress: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query latest progress: %w", err)
		}
		return nil, nil
	}

	var (
		p    Progress
		ts   int64
		data string
	)
	if err := rows.Scan(&p.ID, &p.Sequence, &ts, &data); err != nil {
		return nil, fmt.Errorf("scan progress: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &p.Data); err != nil {
		return nil, fmt.Errorf("unmarshal progress data: %w", err)
	}
	p.Timestamp = time.Unix(0, ts).UTC()
	return &p, nil
}

func (r *progressRepo) Prune(ctx context.Context, keep int) error {
	// Find the sequence of the newest capture that falls outside keep.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(progressTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return fmt.Errorf("query progress for prune: %w", err)
	}
	var threshold int64
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("query progress for prune: %w", err)
	}
	if !found {
		return nil // fewer than keep captures exist
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(progressTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(progressTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
