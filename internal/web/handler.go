// Package web serves the extracted calendar over HTTP.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"finsk-kalender/internal/cache"
	"finsk-kalender/internal/model"
)

//go:embed templates/index.html
var templates embed.FS

const cacheKey = "kalender"

// Source provides service records, typically by fetching and extracting
// the live calendar page.
type Source interface {
	Services(ctx context.Context) ([]model.ChurchService, error)
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	source Source
	cache  *cache.Cache
}

// New creates a Handler over the given source and cache.
func New(source Source, c *cache.Cache) *Handler {
	return &Handler{
		source: source,
		cache:  c,
	}
}

// RegisterRoutes registers all HTTP routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.noCache(h.handleIndex))
	mux.HandleFunc("/services", h.noCache(h.handleServices))
	mux.HandleFunc("/health", h.handleHealth)
}

func (h *Handler) noCache(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next(w, r)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, _ := templates.ReadFile("templates/index.html")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (h *Handler) handleServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	services, err := h.servicesWithCache(ctx)
	if err != nil {
		log.Printf("Fetching services failed: %v", err)
		http.Error(w, "calendar source unavailable", http.StatusBadGateway)
		return
	}

	services = filterAndSort(services)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(services)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) servicesWithCache(ctx context.Context) ([]model.ChurchService, error) {
	if cached, ok := h.cache.Get(cacheKey); ok {
		return cached, nil
	}

	services, err := h.source.Services(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(cacheKey, services); err != nil {
		log.Printf("Caching services failed: %v", err)
	}
	return services, nil
}

// filterAndSort drops past events and orders the rest by date, then time.
// Display concern only: extraction itself preserves document order.
func filterAndSort(services []model.ChurchService) []model.ChurchService {
	today := time.Now().Format("2006-01-02")

	var future []model.ChurchService
	for _, s := range services {
		if s.Date >= today {
			future = append(future, s)
		}
	}

	sort.Slice(future, func(i, j int) bool {
		if future[i].Date != future[j].Date {
			return future[i].Date < future[j].Date
		}
		timeI := ""
		timeJ := ""
		if future[i].Time != nil {
			timeI = *future[i].Time
		}
		if future[j].Time != nil {
			timeJ = *future[j].Time
		}
		return timeI < timeJ
	})

	return future
}
