// Package http provides http transport for incidents
package http

import (
	stdhttp "net/http"
	"sync"
	"time"

	"incidentsaver/internal/modkit/httpkit"
	perr "incidentsaver/internal/platform/errors"
	"incidentsaver/internal/platform/net/http/bind"
	ptime "incidentsaver/internal/platform/time"
	"incidentsaver/internal/services/incidents/domain"
	"incidentsaver/internal/services/incidents/export"

	"github.com/go-playground/validator/v10"
)

// Service is what the handlers need from the incidents service
type Service interface {
	domain.ServicePort
	Location() *time.Location
}

var registerOnce sync.Once

// registerValidators adds the incident_action tag used by EventInput
func registerValidators() {
	registerOnce.Do(func() {
		_ = bind.RegisterValidation("incident_action",
			"{0} must be one of set_incident set_occurrence set_detection set_resolve",
			func(fl validator.FieldLevel) bool {
				return domain.Action(fl.Field().String()).Valid()
			})
	})
}

// Register mounts incident routes on r (already scoped to /incidents)
func Register(r httpkit.Router, s Service) {
	registerValidators()
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.EventInput](r, "/events", h.event)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/current", h.current)
	r.Get("/export.csv", httpkit.Handle(h.exportCSV))
	httpkit.Delete(r, "/", h.clear)
}

// RegisterDates mounts the extraction preview on r (already scoped to /dates)
func RegisterDates(r httpkit.Router, s Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ExtractInput](r, "/extract", h.extract)
}

type handlers struct{ svc Service }

// event applies one context-menu event
func (h *handlers) event(r *stdhttp.Request, in domain.EventInput) (any, error) {
	return h.svc.Handle(r.Context(), in.Action, in.Selection)
}

// list returns valid incidents with display strings
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	rs, err := h.svc.List(r.Context())
	if err != nil {
		return nil, err
	}
	return export.Items(rs, h.svc.Location()), nil
}

// current names the incident timestamps apply to
func (h *handlers) current(r *stdhttp.Request) (any, error) {
	n, ok, err := h.svc.Current(r.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, perr.New(perr.ErrorCodeNoCurrentIncident, "no current incident set")
	}
	return domain.CurrentOutput{Incident: n}, nil
}

// exportCSV downloads incidents.csv
func (h *handlers) exportCSV(r *stdhttp.Request) httpkit.Response {
	rs, err := h.svc.List(r.Context())
	if err != nil {
		return httpkit.Error(err)
	}
	b, err := export.CSV(rs)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Attachment(export.Filename, "text/csv; charset=utf-8", b)
}

// clear deletes every incident and the current pointer
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// extract previews date extraction without storing anything
func (h *handlers) extract(_ *stdhttp.Request, in domain.ExtractInput) (any, error) {
	res, ok := h.svc.Extract(in.Text)
	if !ok {
		return domain.ExtractOutput{OK: false}, nil
	}
	iso := ptime.ISO(res.At)
	return domain.ExtractOutput{
		OK:      true,
		At:      iso,
		Local:   export.FormatMDY(&iso, h.svc.Location()),
		Matcher: res.Matcher,
		Input:   res.Input,
	}, nil
}
