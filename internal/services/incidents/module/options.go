package module

import (
	"time"

	"incidentsaver/internal/platform/config"
)

// Options controls the incidents module
type Options struct {
	// Location reads offset-less selections and renders display strings
	Location *time.Location

	// SchemaTimeout bounds the ledger DDL at startup
	SchemaTimeout time.Duration
}

// FromConfig reads with INCIDENTS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("INCIDENTS_")
	return Options{
		Location:      c.MayLocation("TZ"),
		SchemaTimeout: c.MayDuration("LEDGER_SCHEMA_TIMEOUT", 5*time.Second),
	}
}
