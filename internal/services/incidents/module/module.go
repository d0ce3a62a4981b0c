// Package module wires the incidents service, its stores and routes
package module

import (
	"context"

	"incidentsaver/internal/modkit"
	"incidentsaver/internal/platform/store"

	"incidentsaver/internal/services/incidents/domain"
	inchttp "incidentsaver/internal/services/incidents/http"
	"incidentsaver/internal/services/incidents/repo"
	"incidentsaver/internal/services/incidents/service"
)

// DatesPrefix mounts the extraction preview next to the incidents routes
const DatesPrefix = "/dates"

// Module defines the incidents module
type Module struct {
	b     modkit.Built
	svc   *service.Service
	ports Ports
}

// New constructs the incidents module. Zero override fields keep FromConfig values
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	if overrides.Location != nil {
		o.Location = overrides.Location
	}
	if overrides.SchemaTimeout != 0 {
		o.SchemaTimeout = overrides.SchemaTimeout
	}

	kv := deps.KV
	if kv == nil {
		deps.Log.Warn().Msg("incidents: no kv configured; using memory")
		kv = store.NewMemoryKV()
	}
	records := repo.NewKV(kv)

	svc := service.New(records, records, service.Options{
		Location: o.Location,
		Sink:     ledger(deps, o),
	})

	m := &Module{
		b:   modkit.Build("incidents", "/incidents", opts...),
		svc: svc,
	}
	m.ports = Ports{Events: svc, Query: svc}
	if m.b.Ports != nil {
		if p, ok := m.b.Ports.(Ports); ok {
			m.ports = p
		}
	}
	return m
}

// ledger picks the capture sink; a failed schema check keeps the ledger and logs
func ledger(deps modkit.Deps, o Options) domain.CaptureSink {
	if deps.CH == nil {
		return repo.Discard{}
	}
	l := repo.NewLedger(deps.CH)
	ctx, cancel := context.WithTimeout(context.Background(), o.SchemaTimeout)
	defer cancel()
	if err := l.EnsureSchema(ctx); err != nil {
		deps.Log.Warn().Err(err).Str("table", repo.CapturesTable).Msg("incidents: ledger schema check failed")
	}
	return l
}

// Service returns the concrete service for in-process callers such as the CLI
func (m *Module) Service() *service.Service { return m.svc }

// Ports returns the module ports (Events, Query)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// MountRoutes mounts /incidents and the /dates preview
func (m *Module) MountRoutes(r modkit.Router) {
	m.b.Mount(r, func(rr modkit.Router) {
		inchttp.Register(rr, m.svc)
	})
	r.Route(DatesPrefix, func(rr modkit.Router) {
		inchttp.RegisterDates(rr, m.svc)
	})
}
