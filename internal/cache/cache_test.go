package cache

import (
	"testing"
	"time"

	"finsk-kalender/internal/model"
)

func sample() []model.ChurchService {
	return []model.ChurchService{
		{Date: "2026-02-20", DayOfWeek: "Fredag", ServiceName: "Aftonsång"},
	}
}

func TestCacheSetGet(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, ok := c.Get("kalender"); ok {
		t.Error("expected miss on empty cache")
	}

	if err := c.Set("kalender", sample()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get("kalender")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if len(got) != 1 || got[0].ServiceName != "Aftonsång" {
		t.Errorf("unexpected cached value: %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	dir := t.TempDir()

	c, err := New(dir, time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.Set("kalender", sample()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Same directory, zero TTL: the entry is already stale.
	stale, err := New(dir, 0)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := stale.Get("kalender"); ok {
		t.Error("expected miss for expired entry")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := c.Invalidate("kalender"); err != nil {
		t.Errorf("Invalidate on missing entry: %v", err)
	}

	if err := c.Set("kalender", sample()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Invalidate("kalender"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok := c.Get("kalender"); ok {
		t.Error("expected miss after Invalidate")
	}
}
