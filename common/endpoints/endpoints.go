// Package endpoints serves the admin surface shared by the modelcheck processes:
// a health probe and the finagle style stats rendering.
package endpoints

import (
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/twitter/modelcheck/common/stats"
)

type StatScope string

// MakeStatsReceiver returns a finagle receiver scoped to scope, with
// latencies rendered in milliseconds.
func MakeStatsReceiver(scope StatScope) stats.StatsReceiver {
	return stats.NewFinagleStatsReceiver().Scope(string(scope)).Precision(time.Millisecond)
}

type AdminServer struct {
	Addr  string
	Stats stats.StatsReceiver
	mux   *http.ServeMux
}

func NewAdminServer(addr string, stat stats.StatsReceiver) *AdminServer {
	s := &AdminServer{Addr: addr, Stats: stat, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", helpHandler)
	s.mux.HandleFunc("/health", healthHandler)
	s.mux.HandleFunc("/admin/metrics.json", s.statsHandler)
	return s
}

// Handle adds an extra route next to the admin ones.
func (s *AdminServer) Handle(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

func (s *AdminServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve blocks until the listener fails.
func (s *AdminServer) Serve() error {
	log.Infof("Serving http & stats on %s", s.Addr)
	return http.ListenAndServe(s.Addr, s)
}

func helpHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Error(w, "Common paths: '/health', '/admin/metrics.json?pretty=true'", http.StatusNotImplemented)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "ok")
}

func (s *AdminServer) statsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	pretty := r.URL.Query().Get("pretty") == "true"
	reset := r.URL.Query().Get("reset") == "true"
	if _, err := w.Write(s.Stats.Render(pretty, reset)); err != nil {
		log.Errorf("writing stats: %v", err)
	}
}
