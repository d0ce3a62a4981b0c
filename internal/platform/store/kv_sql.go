package store

import (
	"context"
	"strconv"
	"time"

	perr "incidentsaver/internal/platform/errors"
)

// kvTable holds every key; the schema is identical across SQL dialects
const kvTable = "incident_kv"

// Dialect covers the SQL differences between the backends sharing SQLKV
type Dialect struct {
	Name string

	// Placeholder renders the n-th (1-based) bind parameter
	Placeholder func(n int) string

	// Schema is run once by EnsureSchema
	Schema string

	// Wrap classifies a driver error into a project error
	Wrap func(err error, msg string) error
}

// SQLiteDialect uses ? placeholders
var SQLiteDialect = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	Schema: `CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`,
	Wrap: perr.FromSQLite,
}

// PostgresDialect uses $n placeholders
var PostgresDialect = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	Schema: `CREATE TABLE IF NOT EXISTS ` + kvTable + ` (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	Wrap: perr.FromPostgres,
}

// SQLKV implements KV over a single table
type SQLKV struct {
	q TxRunner
	d Dialect

	getSQL, setSQL, delSQL, allSQL, clearSQL string
}

var _ KV = (*SQLKV)(nil)

// NewSQLKV prepares the statements for d. Call EnsureSchema before first use
func NewSQLKV(q TxRunner, d Dialect) *SQLKV {
	p := d.Placeholder
	return &SQLKV{
		q:      q,
		d:      d,
		getSQL: `SELECT value FROM ` + kvTable + ` WHERE key = ` + p(1),
		setSQL: `INSERT INTO ` + kvTable + ` (key, value, updated_at) VALUES (` + p(1) + `, ` + p(2) + `, ` + p(3) + `)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		delSQL:   `DELETE FROM ` + kvTable + ` WHERE key = ` + p(1),
		allSQL:   `SELECT key, value FROM ` + kvTable,
		clearSQL: `DELETE FROM ` + kvTable,
	}
}

// EnsureSchema creates the table if missing
func (s *SQLKV) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, s.d.Schema)
	return s.d.Wrap(err, "kv: ensure schema")
}

// Get implements KV
func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rows, err := s.q.Query(ctx, s.getSQL, key)
	if err != nil {
		return nil, false, s.d.Wrap(err, "kv: get "+key)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, false, s.d.Wrap(rows.Err(), "kv: get "+key)
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return nil, false, s.d.Wrap(err, "kv: scan "+key)
	}
	return []byte(v), true, nil
}

// Set implements KV as an upsert
func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.q.Exec(ctx, s.setSQL, key, string(value), s.now())
	return s.d.Wrap(err, "kv: set "+key)
}

// SetMany implements KV as upserts in one transaction
func (s *SQLKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	now := s.now()
	err := s.q.Tx(ctx, func(q RowQuerier) error {
		for k, v := range entries {
			if _, err := q.Exec(ctx, s.setSQL, k, string(v), now); err != nil {
				return err
			}
		}
		return nil
	})
	return s.d.Wrap(err, "kv: set many")
}

// Delete implements KV
func (s *SQLKV) Delete(ctx context.Context, key string) error {
	_, err := s.q.Exec(ctx, s.delSQL, key)
	return s.d.Wrap(err, "kv: delete "+key)
}

// GetAll implements KV
func (s *SQLKV) GetAll(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.q.Query(ctx, s.allSQL)
	if err != nil {
		return nil, s.d.Wrap(err, "kv: get all")
	}
	defer rows.Close()
	out := map[string][]byte{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, s.d.Wrap(err, "kv: scan all")
		}
		out[k] = []byte(v)
	}
	if err := rows.Err(); err != nil {
		return nil, s.d.Wrap(err, "kv: get all")
	}
	return out, nil
}

// Clear implements KV in one transaction
func (s *SQLKV) Clear(ctx context.Context) error {
	err := s.q.Tx(ctx, func(q RowQuerier) error {
		_, err := q.Exec(ctx, s.clearSQL)
		return err
	})
	return s.d.Wrap(err, "kv: clear")
}

// Ping runs a trivial query
func (s *SQLKV) Ping(ctx context.Context) error {
	var one int
	return s.d.Wrap(s.q.QueryRow(ctx, "SELECT 1").Scan(&one), "kv: ping")
}

// now is the updated_at value; sqlite stores text, postgres a timestamptz
func (s *SQLKV) now() any {
	t := time.Now().UTC()
	if s.d.Name == SQLiteDialect.Name {
		return t.Format(time.RFC3339Nano)
	}
	return t
}
