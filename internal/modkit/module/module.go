// Package module holds the bootstrap-time helpers for looking up module ports
package module

import "incidentsaver/internal/modkit"

// Module is the modkit contract; aliased so callers only import this package for lookups
type Module = modkit.Module
