package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChi_RouteGroupUse(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)

	var hits int
	r.Route("/api", func(api Router) {
		api.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				hits++
				next.ServeHTTP(w, r)
			})
		})
		api.Group(func(g Router) {
			g.Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(204) })
		})
		api.Post("/echo", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(201) })
		api.Delete("/all", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(202) })
	})

	cases := []struct {
		method, path string
		want         int
	}{
		{"GET", "/api/ping", 204},
		{"POST", "/api/echo", 201},
		{"DELETE", "/api/all", 202},
		{"GET", "/api/echo", stdhttp.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.want {
			t.Fatalf("%s %s = %d, want %d", c.method, c.path, rec.Code, c.want)
		}
	}
	if hits != 4 {
		t.Fatalf("middleware hits = %d", hits)
	}
}

func TestMountProfiler(t *testing.T) {
	m := chi.NewRouter()
	r := AdaptChi(m)
	MountProfiler(r, "/debug", false)
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler status = %d", rec.Code)
	}

	MountProfiler(r, "/debug", true)
	rec = httptest.NewRecorder()
	m.ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status = %d", rec.Code)
	}
}
