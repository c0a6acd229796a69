package core

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"weatherdesk/internal/types"
)

func newTestServerForRoutes(t *testing.T) (*Server, *mockMetricsCollector) {
	t.Helper()
	srv := newTestServer(t)
	metrics := &mockMetricsCollector{}
	srv.Metrics = metrics
	srv.RouteRegistrars = append(srv.RouteRegistrars, func(r chi.Router) {
		r.Get("/echo/{word}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(strings.Repeat(chi.URLParam(r, "word"), 500)))
		})
		r.Get("/request-id", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(types.GetRequestID(r.Context())))
		})
		r.Get("/deadline", func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); !ok {
				w.WriteHeader(http.StatusInternalServerError)
			}
		})
		r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
	})
	srv.MountRoutes()
	return srv, metrics
}

func TestMountRoutes_RegistrarsMounted(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo/hi", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Body.String(), "hihi") {
		t.Errorf("unexpected body prefix: %q", rec.Body.String()[:10])
	}
}

func TestMountRoutes_UnknownRoute404(t *testing.T) {
	srv, metrics := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if len(metrics.calls) != 1 || metrics.calls[0].route != "unmatched" {
		t.Errorf("expected one unmatched metric, got %+v", metrics.calls)
	}
}

func TestMountRoutes_RequestIDGenerated(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/request-id", nil))

	id := rec.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-Id %q is not a UUID: %v", id, err)
	}
	if rec.Body.String() != id {
		t.Errorf("context request ID %q does not match header %q", rec.Body.String(), id)
	}
}

func TestMountRoutes_RequestIDPropagated(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	req := httptest.NewRequest(http.MethodGet, "/request-id", nil)
	req.Header.Set("X-Request-Id", "client-supplied")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-Id"); got != "client-supplied" {
		t.Errorf("expected propagated request ID, got %q", got)
	}
}

func TestMountRoutes_ContextDeadline(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deadline", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected request context to carry a deadline")
	}
}

func TestMountRoutes_PanicRecovered(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers should survive a panic")
	}
}

func TestMountRoutes_MetricsUseRoutePattern(t *testing.T) {
	srv, metrics := newTestServerForRoutes(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo/abc", nil))

	if len(metrics.calls) != 1 {
		t.Fatalf("expected 1 metrics call, got %d", len(metrics.calls))
	}
	call := metrics.calls[0]
	if call.route != "/echo/{word}" {
		t.Errorf("route = %q, want pattern", call.route)
	}
	if call.method != http.MethodGet || call.status != "200" {
		t.Errorf("unexpected call: %+v", call)
	}
}

func TestMountRoutes_Gzip(t *testing.T) {
	srv, _ := newTestServerForRoutes(t)

	req := httptest.NewRequest(http.MethodGet, "/echo/weather", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip encoding, got headers %v", rec.Header())
	}
	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	body, _ := io.ReadAll(zr)
	if string(body) != strings.Repeat("weather", 500) {
		t.Errorf("decompressed body mismatch (len %d)", len(body))
	}
}

func TestContextTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	handler := ContextTimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if remaining := time.Until(deadline); remaining > time.Second || remaining <= 0 {
		t.Errorf("unexpected deadline remaining: %v", remaining)
	}
}

func TestRequestIDMiddleware_StoresInContext(t *testing.T) {
	var got string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = types.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
	req.Header.Set("X-Request-Id", "abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "abc" {
		t.Errorf("request ID in context = %q, want %q", got, "abc")
	}
}
