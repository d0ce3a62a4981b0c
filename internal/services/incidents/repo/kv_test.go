package repo

import (
	"context"
	"errors"
	"testing"

	"incidentsaver/internal/core/incident"
	perr "incidentsaver/internal/platform/errors"
	"incidentsaver/internal/platform/store"
)

func sp(s string) *string { return &s }

func TestKV_SaveLoad(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryKV()
	r := NewKV(mem)

	got, err := r.Load(ctx, "INC-1")
	if err != nil || got != nil {
		t.Fatalf("absent load = %v, %v", got, err)
	}

	rec := incident.Merge(nil, incident.Changes{Number: sp("INC-1"), Occurrence: sp("2025-10-30T17:00:00.000Z")})
	if err := r.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	raw, ok, _ := mem.Get(ctx, "incident:INC-1")
	if !ok || string(raw) != `{"incidentNumber":"INC-1","eventOccurrence":"2025-10-30T17:00:00.000Z"}` {
		t.Fatalf("stored %q", raw)
	}

	got, err = r.Load(ctx, "INC-1")
	if err != nil || got == nil || *got.Occurrence != "2025-10-30T17:00:00.000Z" {
		t.Fatalf("load = %+v, %v", got, err)
	}
}

func TestKV_SaveRejectsInvalid(t *testing.T) {
	r := NewKV(store.NewMemoryKV())
	if err := r.Save(context.Background(), incident.Record{}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if err := r.SaveCurrent(context.Background(), incident.Record{}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("save current err = %v", err)
	}
}

func TestKV_AllSkipsPointerAndJunk(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryKV()
	r := NewKV(mem)
	_ = r.Save(ctx, incident.Record{Number: "INC-9"})
	_ = r.Save(ctx, incident.Record{Number: "INC-10"})
	_ = r.SaveCurrent(ctx, incident.Record{Number: "INC-9"})
	_ = mem.Set(ctx, "incident:broken", []byte("{not json"))
	_ = mem.Set(ctx, "settings", []byte(`{"incidentNumber":"nope"}`))

	all, err := r.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Number != "INC-10" || all[1].Number != "INC-9" {
		t.Fatalf("all = %+v", all)
	}
}

func TestKV_Pointer(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryKV()
	r := NewKV(mem)

	if _, ok, err := r.Current(ctx); ok || err != nil {
		t.Fatalf("fresh store has a pointer: ok=%v err=%v", ok, err)
	}
	if err := r.SaveCurrent(ctx, incident.Record{Number: "INC-42"}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := mem.Get(ctx, Key("INC-42")); !ok {
		t.Fatal("record not written with the pointer")
	}
	raw, _, _ := mem.Get(ctx, KeyCurrent)
	if string(raw) != `"INC-42"` {
		t.Fatalf("pointer stored as %q", raw)
	}
	n, ok, err := r.Current(ctx)
	if err != nil || !ok || n != "INC-42" {
		t.Fatalf("current = %q %v %v", n, ok, err)
	}

	_ = mem.Set(ctx, KeyCurrent, []byte("INC-7"))
	if n, _, _ := r.Current(ctx); n != "INC-7" {
		t.Fatalf("bare pointer read as %q", n)
	}
}

func TestKV_ClearWipesEverything(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryKV()
	r := NewKV(mem)
	_ = r.SaveCurrent(ctx, incident.Record{Number: "INC-1"})
	if err := r.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if mem.Len() != 0 {
		t.Fatalf("keys left: %v", mem.Keys())
	}
}

type brokenKV struct{ store.KV }

var errDisk = errors.New("disk on fire")

func (brokenKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDisk }
func (brokenKV) Set(context.Context, string, []byte) error        { return errDisk }
func (brokenKV) SetMany(context.Context, map[string][]byte) error  { return errDisk }
func (brokenKV) GetAll(context.Context) (map[string][]byte, error) { return nil, errDisk }
func (brokenKV) Clear(context.Context) error                      { return perr.Unavailablef("busy") }

func TestKV_ErrorsAreClassified(t *testing.T) {
	ctx := context.Background()
	r := NewKV(brokenKV{})

	if _, err := r.Load(ctx, "x"); !perr.IsCode(err, perr.ErrorCodeStorage) || !errors.Is(err, errDisk) {
		t.Fatalf("load err = %v", err)
	}
	if err := r.Save(ctx, incident.Record{Number: "x"}); !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("save err = %v", err)
	}
	if _, err := r.All(ctx); !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("all err = %v", err)
	}
	if err := r.SaveCurrent(ctx, incident.Record{Number: "x"}); !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("save current err = %v", err)
	}
	if _, _, err := r.Current(ctx); !perr.IsCode(err, perr.ErrorCodeStorage) {
		t.Fatalf("current err = %v", err)
	}
	// already classified errors keep their code
	if err := r.Clear(ctx); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("clear err = %v", err)
	}
}

func TestKey(t *testing.T) {
	if Key("INC-42") != "incident:INC-42" {
		t.Fatal(Key("INC-42"))
	}
}
