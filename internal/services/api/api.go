// Package api provides the HTTP API for the application
package api

import (
	"time"

	"incidentsaver/internal/platform/config"
	phttp "incidentsaver/internal/platform/net/http"
	"incidentsaver/internal/platform/store"

	"incidentsaver/internal/modkit"
	"incidentsaver/internal/modkit/httpkit"
	"incidentsaver/internal/modkit/module"
	"incidentsaver/internal/modkit/swaggerkit"

	metamod "incidentsaver/internal/services/api/meta/module"
	incmod "incidentsaver/internal/services/incidents/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool

	// CORSOrigins allowed to call /api/v1; empty means any
	CORSOrigins []string
	// SlowRequest promotes access log lines to warn
	SlowRequest time.Duration
	// DocsTitleSuffix is appended to the served OpenAPI title
	DocsTitleSuffix string
}

// FromConfig reads with API_ prefix under cfg
func FromConfig(cfg config.Conf, st *store.Store) Options {
	c := cfg.Prefix("API_")
	return Options{
		Config:          cfg,
		Store:           st,
		EnableSwagger:   c.MayBool("SWAGGER", true),
		EnableProfiler:  c.MayBool("PROFILER", false),
		CORSOrigins:     c.MayCSV("CORS_ORIGINS", nil),
		SlowRequest:     c.MayDuration("SLOW_REQUEST", time.Second),
		DocsTitleSuffix: c.MayString("DOCS_TITLE_SUFFIX", ""),
	}
}

// Mount mounts the API service onto the given router and returns the incidents module
func Mount(r phttp.Router, opt Options) *incmod.Module {
	deps := modkit.FromStore(opt.Config, opt.Store)

	incidents := incmod.New(deps, incmod.Options{})
	mods := []module.Module{
		metamod.New(deps),
		incidents,
	}

	swaggerkit.Mount(r, opt.EnableSwagger, swaggerkit.Options{TitleSuffix: opt.DocsTitleSuffix})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		SlowRequest: opt.SlowRequest,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// register ports under module names for cross-module lookups
		module.RegisterAll(mods...)
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
	return incidents
}
