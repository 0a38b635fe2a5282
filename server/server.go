// Package server exposes the company scraper over HTTP
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"companyscraper/cache"
	"companyscraper/scraper"
)

// errNothingFound keeps reports without any result out of the cache
var errNothingFound = errors.New("no result for either query")

// CompanyScraper produces the report for one company
type CompanyScraper interface {
	ScrapeCompany(ctx context.Context, company string) scraper.Report
}

// Server serves scrape reports
type Server struct {
	scraper     CompanyScraper
	cache       *cache.Cache
	ttl         time.Duration
	failureMode string
}

// New creates a server; a nil cache disables caching
func New(s CompanyScraper, c *cache.Cache, ttl time.Duration, failureMode string) *Server {
	return &Server{
		scraper:     s,
		cache:       c,
		ttl:         ttl,
		failureMode: failureMode,
	}
}

// Handler returns the routed handler. Access logs go to accessLog when it is not nil.
func (s *Server) Handler(accessLog io.Writer) http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/api/scrape", s.ScrapeHandler).Methods(http.MethodGet)
	router.HandleFunc("/scrape/{name}", s.ScrapeHandler).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)

	var h http.Handler = router
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
	)(h)
	if accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	return handlers.RecoveryHandler()(h)
}

// ScrapeHandler takes the company from the {name} path variable or the name query parameter
func (s *Server) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	company := mux.Vars(r)["name"]
	if company == "" {
		company = r.URL.Query().Get("name")
	}
	if company == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing company name"})
		return
	}

	key := "scrape:" + s.failureMode + ":" + company
	body, err := cache.Memoize(r.Context(), s.cache, key, s.ttl, func() (json.RawMessage, error) {
		report := s.scraper.ScrapeCompany(r.Context(), company)
		data, err := report.JSON(s.failureMode)
		if err != nil {
			return nil, err
		}
		if !report.Found() {
			return data, errNothingFound
		}
		return data, nil
	})
	if err != nil && !errors.Is(err, errNothingFound) {
		slog.Error("failed to build report", "company", company, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
