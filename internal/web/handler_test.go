package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsk-kalender/internal/cache"
	"finsk-kalender/internal/model"
)

type fakeSource struct {
	services []model.ChurchService
	err      error
	calls    int
}

func (f *fakeSource) Services(ctx context.Context) ([]model.ChurchService, error) {
	f.calls++
	return f.services, f.err
}

func newTestHandler(t *testing.T, src Source) *http.ServeMux {
	t.Helper()

	c, err := cache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("cache.New failed: %v", err)
	}

	mux := http.NewServeMux()
	New(src, c).RegisterRoutes(mux)
	return mux
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestHandleServicesSortsAndFiltersForDisplay(t *testing.T) {
	src := &fakeSource{services: []model.ChurchService{
		{Date: futureDate(7), DayOfWeek: "Söndag", ServiceName: "Liturgi"},
		{Date: "2000-01-01", DayOfWeek: "Lördag", ServiceName: "Förfluten"},
		{Date: futureDate(2), DayOfWeek: "Onsdag", ServiceName: "Vesper"},
	}}
	mux := newTestHandler(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var got []model.ChurchService
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected past event filtered out, got %d records", len(got))
	}
	if got[0].ServiceName != "Vesper" || got[1].ServiceName != "Liturgi" {
		t.Errorf("expected date order, got %q then %q", got[0].ServiceName, got[1].ServiceName)
	}
}

func TestHandleServicesUsesCache(t *testing.T) {
	src := &fakeSource{services: []model.ChurchService{
		{Date: futureDate(1), DayOfWeek: "Tisdag", ServiceName: "Liturgi"},
	}}
	mux := newTestHandler(t, src)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}

	if src.calls != 1 {
		t.Errorf("expected a single source fetch, got %d", src.calls)
	}
}

func TestHandleServicesSourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("site unreachable")}
	mux := newTestHandler(t, src)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/services", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestHandleHealth(t *testing.T) {
	mux := newTestHandler(t, &fakeSource{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleIndex(t *testing.T) {
	mux := newTestHandler(t, &fakeSource{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path: got %d, want 404", rec.Code)
	}
}
