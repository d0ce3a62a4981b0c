// Package repo maps incident records and the current pointer onto the KV store
package repo

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"incidentsaver/internal/core/incident"
	perr "incidentsaver/internal/platform/errors"
	"incidentsaver/internal/platform/logger"
	"incidentsaver/internal/platform/store"
)

// Key scheme shared with exports made by the browser extension
const (
	KeyPrefix  = "incident:"
	KeyCurrent = "_currentIncident"
)

// Key returns the storage key for an incident number
func Key(number string) string { return KeyPrefix + number }

// KV implements domain.RecordStore and domain.PointerStore over a store.KV
type KV struct {
	kv store.KV
}

// NewKV wraps kv
func NewKV(kv store.KV) *KV { return &KV{kv: kv} }

// Load implements domain.RecordStore
func (r *KV) Load(ctx context.Context, number string) (*incident.Record, error) {
	b, ok, err := r.kv.Get(ctx, Key(number))
	if err != nil {
		return nil, storageErr(err, "load incident")
	}
	if !ok {
		return nil, nil
	}
	var rec incident.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, perr.Storagef(err, "decode incident %q", number)
	}
	return &rec, nil
}

// Save implements domain.RecordStore
func (r *KV) Save(ctx context.Context, rec incident.Record) error {
	if !rec.Valid() {
		return perr.InvalidArgf("record has no incident number")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return perr.Storagef(err, "encode incident %q", rec.Number)
	}
	return storageErr(r.kv.Set(ctx, Key(rec.Number), b), "save incident")
}

// All implements domain.RecordStore. Undecodable entries are skipped with a warning;
// the result is sorted by incident number
func (r *KV) All(ctx context.Context) ([]incident.Record, error) {
	all, err := r.kv.GetAll(ctx)
	if err != nil {
		return nil, storageErr(err, "list incidents")
	}
	out := make([]incident.Record, 0, len(all))
	for k, v := range all {
		if !strings.HasPrefix(k, KeyPrefix) {
			continue
		}
		var rec incident.Record
		if err := json.Unmarshal(v, &rec); err != nil {
			logger.C(ctx).Warn().Err(err).Str("key", k).Msg("skipping undecodable incident")
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// Clear implements domain.RecordStore. It wipes the pointer too
func (r *KV) Clear(ctx context.Context) error {
	return storageErr(r.kv.Clear(ctx), "clear incidents")
}

// Current implements domain.PointerStore.
// The pointer is a JSON string; a bare value written by hand is accepted too
func (r *KV) Current(ctx context.Context) (string, bool, error) {
	b, ok, err := r.kv.Get(ctx, KeyCurrent)
	if err != nil {
		return "", false, storageErr(err, "load current incident")
	}
	if !ok {
		return "", false, nil
	}
	var n string
	if json.Unmarshal(b, &n) != nil {
		n = strings.TrimSpace(string(b))
	}
	return n, n != "", nil
}

// SaveCurrent implements domain.PointerStore. The record and the pointer land
// together or not at all
func (r *KV) SaveCurrent(ctx context.Context, rec incident.Record) error {
	if !rec.Valid() {
		return perr.InvalidArgf("record has no incident number")
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return perr.Storagef(err, "encode incident %q", rec.Number)
	}
	ptr, _ := json.Marshal(rec.Number)
	return storageErr(r.kv.SetMany(ctx, map[string][]byte{
		Key(rec.Number): b,
		KeyCurrent:      ptr,
	}), "save current incident")
}

// storageErr keeps a classified backend error (storage, unavailable) and tags it with op;
// anything unclassified becomes a storage error
func storageErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := perr.As(err); ok {
		return perr.WithOp(err, op)
	}
	return perr.Storagef(err, "%s", op)
}
