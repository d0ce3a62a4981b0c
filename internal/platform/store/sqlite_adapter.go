package store

import (
	"context"
	"database/sql"

	"incidentsaver/internal/platform/store/sqlite"
)

// sqlExecer is the part of *sql.DB and *sql.Tx the adapter needs
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteAdapter implements TxRunner over database/sql
type sqliteAdapter struct {
	db *sqlite.DB
	sqlQuerier
}

func newSQLiteAdapter(db *sqlite.DB) *sqliteAdapter {
	return &sqliteAdapter{db: db, sqlQuerier: sqlQuerier{x: db.DB}}
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlQuerier{x: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

type sqlQuerier struct{ x sqlExecer }

func (q sqlQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	res, err := q.x.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlTag{res}, nil
}

func (q sqlQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rs, err := q.x.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rs}, nil
}

func (q sqlQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	return q.x.QueryRowContext(ctx, query, args...)
}

type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() { _ = r.Rows.Close() }

type sqlTag struct{ r sql.Result }

func (t sqlTag) RowsAffected() int64 {
	n, _ := t.r.RowsAffected()
	return n
}
