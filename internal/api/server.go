package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"salonmate/internal/app"
)

// HTTPServer exposes the scheduler over HTTP for the operator UI.
type HTTPServer struct {
	ctrl   *app.Controller
	logger *zerolog.Logger
	server *http.Server
}

func NewHTTPServer(port int, ctrl *app.Controller, logger *zerolog.Logger) *HTTPServer {
	s := &HTTPServer{ctrl: ctrl, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/api/calendar", s.requireAuth(s.handleCalendar))
	mux.HandleFunc("/api/day", s.requireAuth(s.handleDay))
	mux.HandleFunc("/api/upcoming", s.requireAuth(s.handleUpcoming))
	mux.HandleFunc("/api/search", s.requireAuth(s.handleSearch))
	mux.HandleFunc("/api/reservations", s.requireAuth(s.handleReservations))
	mux.HandleFunc("/api/reservations/", s.requireAuth(s.handleReservationByID))
	mux.HandleFunc("/api/refresh", s.requireAuth(s.handleRefresh))
	mux.HandleFunc("/api/options", s.requireAuth(s.handleOptions))
	mux.HandleFunc("/api/slots", s.requireAuth(s.handleSlots))
	mux.HandleFunc("/api/export", s.requireAuth(s.handleExport))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// Handler exposes the routed mux for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until the context is cancelled, then shuts down
// gracefully.
func (s *HTTPServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.server.Addr).Msg("API server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *HTTPServer) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.ctrl.Authenticated(r.Context()) {
			writeError(w, http.StatusUnauthorized, "로그인이 필요합니다.")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
