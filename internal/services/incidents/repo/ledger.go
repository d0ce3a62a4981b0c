package repo

import (
	"context"

	"incidentsaver/internal/platform/store"
	"incidentsaver/internal/services/incidents/domain"

	"github.com/google/uuid"
)

// CapturesTable receives one row per applied event
const CapturesTable = "incident_captures"

const capturesDDL = `CREATE TABLE IF NOT EXISTS ` + CapturesTable + ` (
	id          UUID,
	received_at DateTime64(3, 'UTC'),
	action      LowCardinality(String),
	incident    String,
	selection   String,
	value       String,
	matcher     LowCardinality(String)
) ENGINE = MergeTree
ORDER BY (incident, received_at)`

// Ledger implements domain.CaptureSink on ClickHouse
type Ledger struct {
	ch store.Clickhouse
}

// NewLedger wraps an open ClickHouse seam
func NewLedger(ch store.Clickhouse) *Ledger { return &Ledger{ch: ch} }

// EnsureSchema creates the captures table when missing
func (l *Ledger) EnsureSchema(ctx context.Context) error {
	return l.ch.Exec(ctx, capturesDDL)
}

// Append implements domain.CaptureSink. A blank or malformed ID gets a fresh one
func (l *Ledger) Append(ctx context.Context, c domain.Capture) error {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		id = uuid.New()
	}
	row := []any{
		id,
		c.ReceivedAt.UTC(),
		string(c.Action),
		c.Incident,
		c.Selection,
		c.Value,
		c.Matcher,
	}
	return l.ch.Insert(ctx, CapturesTable, [][]any{row})
}

// Discard is the sink used when no ledger is configured
type Discard struct{}

// Append implements domain.CaptureSink
func (Discard) Append(context.Context, domain.Capture) error { return nil }
