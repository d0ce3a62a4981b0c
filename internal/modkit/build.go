package modkit

import (
	"net/http"

	phttp "incidentsaver/internal/platform/net/http"
	pstrings "incidentsaver/internal/platform/strings"
)

// Router is the platform router seam
type Router = phttp.Router

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// Register adds extra endpoints; never nil
	Register func(Router)
}

// Build applies opts over the defaults name and prefix
func Build(name, prefix string, opts ...Option) Built {
	c := buildCfg{name: name, prefix: prefix}
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   pstrings.MustPrefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount scopes r to b.Prefix, applies b.Mw, then calls own and the extra register hook
func (b Built) Mount(r Router, own func(Router)) {
	r.Route(b.Prefix, func(rr Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		b.Register(rr)
	})
}
