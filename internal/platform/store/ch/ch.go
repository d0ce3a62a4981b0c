// Package ch is the ClickHouse client behind the capture ledger
package ch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the native-protocol connection
type Config struct {
	Addr     []string
	Database string
	User     string
	Password string

	// Role and Tag end up in system.query_log client info
	Role string
	Tag  string

	DialTimeout time.Duration
}

// batch is the part of driver.Batch the client uses
type batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

// conn is the seam over driver.Conn
type conn interface {
	prepare(ctx context.Context, query string) (batch, error)
	Exec(ctx context.Context, query string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

type driverConn struct{ driver.Conn }

func (d driverConn) prepare(ctx context.Context, query string) (batch, error) {
	return d.PrepareBatch(ctx, query)
}

// CH is a ClickHouse client
type CH struct{ c conn }

var dial = func(opts *clickhouse.Options) (conn, error) {
	c, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return driverConn{c}, nil
}

// Open connects and pings
func Open(ctx context.Context, cfg Config) (*CH, error) {
	if len(cfg.Addr) == 0 {
		return nil, fmt.Errorf("ch: no addresses configured")
	}
	dt := cfg.DialTimeout
	if dt <= 0 {
		dt = 5 * time.Second
	}
	c, err := dial(&clickhouse.Options{
		Addr: cfg.Addr,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		DialTimeout: dt,
		ClientInfo:  BuildClientInfo(cfg.Role, cfg.Tag),
	})
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("ch: ping %s: %w", strings.Join(cfg.Addr, ","), err)
	}
	return &CH{c: c}, nil
}

// Insert appends rows to table as one batch. An empty rows slice is a no-op
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	b, err := c.c.prepare(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := b.Append(r...); err != nil {
			_ = b.Abort()
			return fmt.Errorf("ch: append %s row %d: %w", table, i, err)
		}
	}
	if err := b.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Exec runs DDL or a statement without results
func (c *CH) Exec(ctx context.Context, query string, args ...any) error {
	return c.c.Exec(ctx, query, args...)
}

// Ping checks the connection
func (c *CH) Ping(ctx context.Context) error { return c.c.Ping(ctx) }

// Close closes the connection
func (c *CH) Close() error { return c.c.Close() }
