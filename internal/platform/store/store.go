// Package store wires the key-value backends and the optional ClickHouse ledger behind small seams
package store

import (
	"context"
	"errors"
	"fmt"

	"incidentsaver/internal/platform/logger"
)

// KV is the string-keyed persistence contract incident data lives in.
// Values are opaque bytes (JSON records, the current-incident pointer)
type KV interface {
	// Get returns ok=false with a nil error when key is absent
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes every entry or none of them
	SetMany(ctx context.Context, entries map[string][]byte) error
	// Delete of an absent key is not an error
	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is the facade over the configured backends; unused seams stay nil
type Store struct {
	Log logger.Logger

	// KV is always set after Open
	KV KV

	// PG is set when the postgres backend is selected
	PG TxRunner

	// CH is set when the ledger is enabled
	CH Clickhouse

	closers []func() error
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration contract for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports the outcome of a write
type CommandTag interface {
	RowsAffected() int64
}

// RowQuerier is the SQL surface the KV implementation runs on
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn inside a transaction, rolling back when fn errors
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the append-only columnar seam
type Clickhouse interface {
	// Insert appends rows into table in one batch; each row matches the table's column order
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open builds the Store for cfg.Backend and, when enabled, the ClickHouse ledger
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: *logger.Named("store")}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	switch cfg.Backend {
	case BackendMemory:
		s.KV = NewMemoryKV()
	case BackendSQLite, "":
		s.KV, err = openSQLite(ctx, cfg, s)
	case BackendPostgres:
		s.KV, err = openPG(ctx, cfg, s)
	default:
		err = fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		_ = s.Close(ctx)
		return nil, err
	}

	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	s.Log.Info().Str("backend", string(cfg.Backend)).Bool("ledger", s.CH != nil).Msg("store opened")
	return s, nil
}

// Guard pings every configured seam that supports it
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for name, seam := range map[string]any{"kv": s.KV, "ch": s.CH} {
		if p, ok := seam.(Pinger); ok && p != nil {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases backends in reverse open order
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Store) onClose(fn func() error) { s.closers = append(s.closers, fn) }
