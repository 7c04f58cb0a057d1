package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fixturePage = `<html><body><section class="calendar">
<div class="calendar-item">
  <div class="meta">2026-02-20 | Fredag</div>
  <div class="calendar-item-content">
    <h3>Aftonsång</h3>
    <div><strong>Tid:</strong> 18:00</div>
  </div>
</div>
</section></body></html>`

func TestServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.HasPrefix(ua, "finsk-kalender/") {
			t.Errorf("unexpected User-Agent: %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(fixturePage))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	services, err := client.Services(context.Background())
	if err != nil {
		t.Fatalf("Services failed: %v", err)
	}

	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}
	if services[0].ServiceName != "Aftonsång" {
		t.Errorf("ServiceName: got %q", services[0].ServiceName)
	}
}

func TestFetchRejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 404 response")
	} else if !strings.Contains(err.Error(), "unexpected status") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchPropagatesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL, time.Second)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewDefaults(t *testing.T) {
	client := New("", 0)
	if client.URL() != DefaultURL {
		t.Errorf("URL: got %q, want default", client.URL())
	}
	if client.client.Timeout != DefaultTimeout {
		t.Errorf("Timeout: got %v, want default", client.client.Timeout)
	}
}
