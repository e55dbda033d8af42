package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shashiranjanraj/vastra/pkg/router"
)

func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong")) //nolint:errcheck
}

func TestGroupPrefixes(t *testing.T) {
	r := router.New()
	api := r.Group("/api/v1")
	api.Get("/ping", "ping", ping)

	nested := api.Group("/admin")
	nested.Get("/ping", "admin.ping", ping)

	for _, path := range []string{"/api/v1/ping", "/api/v1/admin/ping"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: got %d, want 200", path, rec.Code)
		}
	}
}

func TestMethodNotRegistered(t *testing.T) {
	r := router.New()
	r.Get("/only-get", "", ping)

	req := httptest.NewRequest(http.MethodPost, "/only-get", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("got %d, want 405", rec.Code)
	}
}

func TestNamedURL(t *testing.T) {
	r := router.New()
	g := r.Group("/products")
	g.Get("/{id}", "products.get", ping)

	url, err := r.URL("products.get", map[string]string{"id": "abc123"})
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if url != "/products/abc123" {
		t.Errorf("got %q, want /products/abc123", url)
	}

	if _, err := r.URL("products.get", nil); err == nil {
		t.Error("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	g := r.Group("/categories")
	g.Get("", "categories.list", ping)
	g.Post("", "categories.create", ping)

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("got %d routes, want 2", len(infos))
	}
	for _, ri := range infos {
		if ri.Path != "/categories" {
			t.Errorf("got path %q, want /categories", ri.Path)
		}
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var seen bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = true
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	g := r.Group("/guarded", mw)
	g.Get("/ping", "", ping)

	req := httptest.NewRequest(http.MethodGet, "/guarded/ping", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)
	if !seen {
		t.Error("group middleware did not run")
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/hello.txt", []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := router.New()
	r.Static("/public", dir)

	req := httptest.NewRequest(http.MethodGet, "/public/hello.txt", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if rec.Body.String() != "hi" {
		t.Errorf("got body %q, want hi", rec.Body.String())
	}
}
