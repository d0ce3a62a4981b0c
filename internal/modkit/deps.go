package modkit

import (
	"context"

	"incidentsaver/internal/platform/config"
	"incidentsaver/internal/platform/logger"
	"incidentsaver/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// KV is the incident store; always set outside tests
	KV store.KV

	// CH is the capture ledger; nil when disabled
	CH store.Clickhouse
}

// FromStore fills the storage seams from an opened store
func FromStore(cfg config.Conf, st *store.Store) Deps {
	return Deps{Log: st.Log, Cfg: cfg, KV: st.KV, CH: st.CH}
}

// Check is one named readiness check
type Check struct {
	Name string
	Ping func(context.Context) error // nil means the seam is not configured
}

// Checks returns readiness checks for every storage seam that can ping
func (d Deps) Checks() []Check {
	return []Check{seamCheck("kv", d.KV), seamCheck("ch", d.CH)}
}

func seamCheck(name string, seam any) Check {
	c := Check{Name: name}
	if p, ok := seam.(store.Pinger); ok && p != nil {
		c.Ping = p.Ping
	}
	return c
}
