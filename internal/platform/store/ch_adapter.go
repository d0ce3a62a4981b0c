package store

import (
	"context"

	"incidentsaver/internal/platform/store/ch"
)

var _ Clickhouse = (*ch.CH)(nil)
var _ Pinger = (*ch.CH)(nil)

// chLogged wraps the ClickHouse client so failed ledger writes show up in the store log
type chLogged struct {
	*ch.CH
	s *Store
}

func (c chLogged) Insert(ctx context.Context, table string, rows [][]any) error {
	err := c.CH.Insert(ctx, table, rows)
	if err != nil {
		c.s.Log.Warn().Err(err).Str("table", table).Int("rows", len(rows)).Msg("ch insert failed")
	}
	return err
}
