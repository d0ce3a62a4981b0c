// Package service routes context-menu events onto incident records
package service

import (
	"context"
	"sort"
	"time"

	"incidentsaver/internal/core/dateparse"
	"incidentsaver/internal/core/incident"
	"incidentsaver/internal/core/normalize"
	perr "incidentsaver/internal/platform/errors"
	"incidentsaver/internal/platform/logger"
	pstrings "incidentsaver/internal/platform/strings"
	ptime "incidentsaver/internal/platform/time"
	"incidentsaver/internal/services/incidents/domain"
)

// Options for the incidents service; zero values are usable
type Options struct {
	// Location reads offset-less selections; nil means time.Local
	Location *time.Location

	// Sink receives applied events; nil discards them
	Sink domain.CaptureSink

	// Now stamps ledger rows; nil means time.Now
	Now func() time.Time
}

// Service implements domain.ServicePort
type Service struct {
	records  domain.RecordStore
	pointers domain.PointerStore
	sink     domain.CaptureSink
	x        *dateparse.Extractor
	now      func() time.Time
	locks    *keyLock
}

var _ domain.ServicePort = (*Service)(nil)

// New constructs the service. records and pointers are usually the same repo.KV
func New(records domain.RecordStore, pointers domain.PointerStore, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		records:  records,
		pointers: pointers,
		sink:     opts.Sink,
		x:        dateparse.New(opts.Location),
		now:      opts.Now,
		locks:    newKeyLock(),
	}
}

// Location returns the zone used for parsing and display
func (s *Service) Location() *time.Location { return s.x.Location() }

// Handle implements domain.EventPort. Dropped events return a Result with a
// reason code and a nil error; only storage faults are errors
func (s *Service) Handle(ctx context.Context, action domain.Action, selection string) (domain.Result, error) {
	switch action {
	case domain.ActionSetIncident:
		return s.setIncident(ctx, selection)
	case domain.ActionSetOccurrence, domain.ActionSetDetection, domain.ActionSetResolve:
		return s.stamp(ctx, action, selection)
	}
	return domain.Result{Action: action}, perr.InvalidArgf("unknown action %q", action)
}

func (s *Service) setIncident(ctx context.Context, selection string) (domain.Result, error) {
	a := domain.ActionSetIncident
	number := normalize.Selection(selection)
	if number == "" {
		logger.C(ctx).Debug().Str("action", string(a)).Msg("empty selection ignored")
		return domain.Dropped(a, perr.ErrorCodeEmptySelection), nil
	}
	ctx = logger.WithIncident(ctx, number)
	log := logger.C(ctx)

	unlock := s.locks.Lock(number)
	defer unlock()

	existing, err := s.records.Load(ctx, number)
	if err != nil {
		return s.storageFault(ctx, a, err)
	}
	rec := incident.Merge(existing, incident.WithNumber(number))
	if err := s.pointers.SaveCurrent(ctx, rec); err != nil {
		return s.storageFault(ctx, a, err)
	}

	log.Info().Bool("new", existing == nil).Msg("current incident set")
	s.capture(ctx, domain.Capture{Action: a, Incident: number, Selection: selection, Value: number})
	return domain.Result{Applied: true, Action: a, Incident: number, Record: &rec}, nil
}

func (s *Service) stamp(ctx context.Context, a domain.Action, selection string) (domain.Result, error) {
	clean := normalize.Selection(selection)
	if clean == "" {
		logger.C(ctx).Debug().Str("action", string(a)).Msg("empty selection ignored")
		return domain.Dropped(a, perr.ErrorCodeEmptySelection), nil
	}

	number, ok, err := s.pointers.Current(ctx)
	if err != nil {
		return s.storageFault(ctx, a, err)
	}
	if !ok {
		logger.C(ctx).Warn().Str("action", string(a)).Msg("no current incident set, save an incident number first")
		return domain.Dropped(a, perr.ErrorCodeNoCurrentIncident), nil
	}
	ctx = logger.WithIncident(ctx, number)
	log := logger.C(ctx)

	parsed, ok := s.x.ExtractResult(clean)
	if !ok {
		log.Warn().Str("action", string(a)).Str("selection", pstrings.Clip(clean, 80)).Msg("could not parse a date from selection")
		r := domain.Dropped(a, perr.ErrorCodeUnparsableDate)
		r.Incident = number
		return r, nil
	}

	changes := incident.Stamp(a.Field(), parsed.At)
	changes.Number = &number

	unlock := s.locks.Lock(number)
	defer unlock()

	existing, err := s.records.Load(ctx, number)
	if err != nil {
		return s.storageFault(ctx, a, err)
	}
	rec := incident.Merge(existing, changes)
	if err := s.records.Save(ctx, rec); err != nil {
		return s.storageFault(ctx, a, err)
	}

	iso := ptime.ISO(parsed.At)
	log.Info().
		Str("field", a.Field()).
		Str("at", iso).
		Str("matcher", parsed.Matcher).
		Msg("timestamp saved")
	s.capture(ctx, domain.Capture{Action: a, Incident: number, Selection: selection, Value: iso, Matcher: parsed.Matcher})
	return domain.Result{Applied: true, Action: a, Incident: number, Matcher: parsed.Matcher, Record: &rec}, nil
}

func (s *Service) storageFault(ctx context.Context, a domain.Action, err error) (domain.Result, error) {
	if !perr.IsCode(err, perr.ErrorCodeStorage) && !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		err = perr.Storagef(err, "incident store")
	}
	logger.C(ctx).Error().Err(err).Str("action", string(a)).Msg("incident store failed")
	return domain.Result{Action: a}, err
}

// capture writes to the ledger; a failing ledger never fails the event
func (s *Service) capture(ctx context.Context, c domain.Capture) {
	if s.sink == nil {
		return
	}
	c.ReceivedAt = s.now()
	c.Selection = pstrings.Clip(c.Selection, 512)
	if err := s.sink.Append(ctx, c); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("capture ledger append failed")
	}
}

// List implements domain.QueryPort: valid records sorted by number
func (s *Service) List(ctx context.Context) ([]incident.Record, error) {
	all, err := s.records.All(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, r := range all {
		if r.Valid() {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Current implements domain.QueryPort
func (s *Service) Current(ctx context.Context) (string, bool, error) {
	return s.pointers.Current(ctx)
}

// Clear implements domain.QueryPort. Both records and the pointer go
func (s *Service) Clear(ctx context.Context) error {
	if err := s.records.Clear(ctx); err != nil {
		return err
	}
	logger.C(ctx).Info().Msg("all incidents cleared")
	return nil
}

// Extract implements domain.QueryPort without touching the store
func (s *Service) Extract(text string) (dateparse.Result, bool) {
	return s.x.ExtractResult(text)
}
