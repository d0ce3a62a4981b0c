package store

import (
	"context"
	"fmt"
	"time"

	perr "incidentsaver/internal/platform/errors"
	chx "incidentsaver/internal/platform/store/ch"
	"incidentsaver/internal/platform/store/pg"
	"incidentsaver/internal/platform/store/sqlite"
)

// openSQLite opens the file, creates the KV table and registers the closer
func openSQLite(ctx context.Context, cfg Config, s *Store) (KV, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.SQLite.Path, BusyTimeout: cfg.SQLite.BusyTimeout})
	if err != nil {
		return nil, err
	}
	a := newSQLiteAdapter(db)
	s.onClose(a.Close)

	kv := NewSQLKV(a, SQLiteDialect)
	if err := kv.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	s.Log.Debug().Str("path", db.Path).Msg("sqlite ready")
	return kv, nil
}

// openPG opens the pool, waits for the server with capped exponential backoff, then creates the KV table
func openPG(ctx context.Context, cfg Config, s *Store) (KV, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = 20
	}
	pingTimeout := cfg.PG.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const (
		backoffStart   = 150 * time.Millisecond
		backoffCeiling = 2 * time.Second
	)

	var lastErr error
	backoff := backoffStart
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			break
		}
		if !pingRetryable(lastErr) {
			break
		}
		s.Log.Debug().Err(lastErr).Int("attempt", i+1).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	if lastErr != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", lastErr)
	}

	a := newPGAdapter(p)
	s.PG = a
	s.onClose(a.Close)

	kv := NewSQLKV(a, PostgresDialect)
	if err := kv.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return kv, nil
}

// pingRetryable keeps waiting on network faults and transient server states,
// and gives up on server answers such as bad credentials or a missing database
func pingRetryable(err error) bool {
	if _, ok := perr.ExtractPgError(err); ok {
		return perr.IsRetryable(err)
	}
	return true
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		Addr:     cfg.CH.Addr,
		Database: cfg.CH.Database,
		User:     cfg.CH.User,
		Password: cfg.CH.Password,
		Role:     cfg.CH.Role,
	})
	if err != nil {
		return nil, err
	}
	s.onClose(c.Close)
	return chLogged{CH: c, s: s}, nil
}
