package module

import (
	"testing"

	phttp "incidentsaver/internal/platform/net/http"
	"incidentsaver/internal/platform/testkit"
)

type lister interface{ List() []string }

type fakeLister struct{}

func (fakeLister) List() []string { return []string{"INC-1"} }

type portSet struct {
	Lister lister
	hidden lister
}

type stub struct {
	name  string
	ports any
}

func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }
func (s stub) Name() string             { return s.name }

func TestPortsOf(t *testing.T) {
	direct := stub{name: "d", ports: fakeLister{}}
	if _, ok := PortsOf[lister](direct); !ok {
		t.Fatal("direct implementation not found")
	}

	field := stub{name: "f", ports: portSet{Lister: fakeLister{}}}
	l, ok := PortsOf[lister](field)
	if !ok || l.List()[0] != "INC-1" {
		t.Fatal("field implementation not found")
	}

	hiddenOnly := stub{name: "h", ports: portSet{hidden: fakeLister{}}}
	if _, ok := PortsOf[lister](hiddenOnly); ok {
		t.Fatal("unexported field should be skipped")
	}
	if _, ok := PortsOf[lister](stub{name: "n"}); ok {
		t.Fatal("nil ports should not match")
	}
	if _, ok := PortsOf[lister](stub{name: "i", ports: 7}); ok {
		t.Fatal("non struct ports should not match")
	}

	testkit.MustPanic(t, func() { MustPortsOf[lister](stub{name: "none"}) })
	testkit.MustNotPanic(t, func() { MustPortsOf[lister](direct) })
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	RegisterAll(stub{name: "incidents", ports: portSet{Lister: fakeLister{}}}, stub{name: "meta"})
	ps, ok := PortsAs[portSet]("incidents")
	if !ok || ps.Lister == nil {
		t.Fatalf("PortsAs = %+v %v", ps, ok)
	}
	if _, ok := PortsAs[portSet]("meta"); ok {
		t.Fatal("nil ports should not assert")
	}
	if _, ok := PortsAs[int]("incidents"); ok {
		t.Fatal("wrong type should not assert")
	}
	if _, ok := PortsAs[portSet]("missing"); ok {
		t.Fatal("missing name should not be found")
	}

	Register("incidents", 1)
	if n, ok := PortsAs[int]("incidents"); !ok || n != 1 {
		t.Fatal("Register should replace")
	}
}
