// Package web serves the life calendar over HTTP: an HTML page that draws
// the grid and a small JSON API the page calls back into.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/storage"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Server exposes a calendar.Model over HTTP. Every model call happens under
// mu, so the model sees one caller at a time.
type Server struct {
	mu    sync.Mutex
	model *calendar.Model
	mux   *http.ServeMux
	now   func() time.Time
}

// NewServer constructs a Server for model.
func NewServer(model *calendar.Model) *Server {
	s := &Server{
		model: model,
		mux:   http.NewServeMux(),
		now:   time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return logRequests(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "listen", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	s.mux.HandleFunc("POST /api/birthday", s.handleBirthday)
	s.mux.HandleFunc("GET /api/events", s.handleListEvents)
	s.mux.HandleFunc("POST /api/events", s.handleSaveEvent)
	s.mux.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)
	s.mux.HandleFunc("GET /export/{format}", s.handleExport)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type calendarResponse struct {
	Birthday string                `json:"birthday,omitempty"`
	Calendar *calendar.RenderModel `json:"calendar,omitempty"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, err := s.model.Render()
	if errors.Is(err, calendar.ErrNoBirthday) {
		writeJSON(w, http.StatusOK, calendarResponse{})
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{
		Birthday: rm.Anchor.Format("2006-01-02"),
		Calendar: &rm,
	})
}

type birthdayRequest struct {
	Birthday string `json:"birthday"`
}

type birthdayResponse struct {
	Birthday string `json:"birthday"`
	Warning  string `json:"warning,omitempty"`
}

func (s *Server) handleBirthday(w http.ResponseWriter, r *http.Request) {
	var req birthdayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.model.SubmitBirthday(req.Birthday)
	warn, ok := s.handleError(w, err)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, birthdayResponse{Birthday: d.Format("2006-01-02"), Warning: warn})
}

func (s *Server) handleListEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.model.Events())
}

type eventResponse struct {
	Event   event.Event `json:"event"`
	Warning string      `json:"warning,omitempty"`
}

func (s *Server) handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	var form calendar.Form
	if !decodeJSON(w, r, &form) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.model.SaveEvent(form)
	warn, ok := s.handleError(w, err)
	if !ok {
		return
	}
	status := http.StatusOK
	if form.ID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, eventResponse{Event: e, Warning: warn})
}

type statusResponse struct {
	OK      bool   `json:"ok"`
	Warning string `json:"warning,omitempty"`
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	warn, ok := s.handleError(w, s.model.DeleteEvent(id))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Warning: warn})
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	warn, ok := s.handleError(w, s.model.Reset())
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Warning: warn})
}

// handleError maps a model error onto the response. Storage failures are
// not fatal: they come back as a warning and ok stays true. When ok is
// false the response has been written.
func (s *Server) handleError(w http.ResponseWriter, err error) (warning string, ok bool) {
	var ve *calendar.ValidationError
	switch {
	case err == nil:
		return "", true
	case errors.Is(err, storage.ErrUnavailable):
		logger.Warn("storage unavailable", "err", err)
		return "changes could not be saved: " + err.Error(), true
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Message, Rule: ve.Rule})
	case errors.Is(err, calendar.ErrNoBirthday):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, calendar.ErrEventNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("request failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
	return "", false
}

// logRequests logs every request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
