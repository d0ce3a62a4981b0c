package domain

import (
	"context"

	"incidentsaver/internal/core/dateparse"
	"incidentsaver/internal/core/incident"
)

// RecordStore loads and saves incident records
type RecordStore interface {
	// Load returns nil with a nil error when the incident has no record yet
	Load(ctx context.Context, number string) (*incident.Record, error)
	Save(ctx context.Context, r incident.Record) error
	// All returns every decodable record, valid or not
	All(ctx context.Context) ([]incident.Record, error)
	Clear(ctx context.Context) error
}

// PointerStore owns the current-incident pointer
type PointerStore interface {
	Current(ctx context.Context) (number string, ok bool, err error)
	// SaveCurrent saves r and points at it in a single write
	SaveCurrent(ctx context.Context, r incident.Record) error
}

// CaptureSink receives applied events. Failures are logged, never surfaced
type CaptureSink interface {
	Append(ctx context.Context, c Capture) error
}

// EventPort is the single entry point for context-menu events
type EventPort interface {
	Handle(ctx context.Context, action Action, selection string) (Result, error)
}

// QueryPort is the read side used by presentation
type QueryPort interface {
	List(ctx context.Context) ([]incident.Record, error)
	Current(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
	Extract(text string) (dateparse.Result, bool)
}

// ServicePort is everything the incidents service exposes
type ServicePort interface {
	EventPort
	QueryPort
}
