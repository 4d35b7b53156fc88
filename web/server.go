// ABOUTME: JSON HTTP API over the action service
// ABOUTME: Serves dashboards, per-lead actions, completion and lead records with chi
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

const maxBodySize = 1 << 20

type Server struct {
	svc   *actions.Service
	owner string
	log   logrus.FieldLogger
}

// NewServer serves svc. owner is the default salesperson scope when a
// request names none; an explicit empty ?owner= means everyone.
func NewServer(svc *actions.Service, owner string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{svc: svc, owner: owner, log: log}
}

func (s *Server) ownerFor(r *http.Request) string {
	q := r.URL.Query()
	if q.Has("owner") {
		return q.Get("owner")
	}
	return s.owner
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/actions", s.handleDashboard)
		r.Post("/actions/{id}/complete", s.handleComplete)

		r.Get("/leads", s.handleListLeads)
		r.Post("/leads", s.handleCreateLead)
		r.Get("/leads/{id}", s.handleGetLead)
		r.Get("/leads/{id}/actions", s.handleLeadActions)
		r.Post("/leads/{id}/status", s.handleLeadStatus)
		r.Post("/leads/{id}/activities", s.handleLogActivity)
		r.Post("/leads/{id}/bookings", s.handleAddBooking)
		r.Post("/leads/{id}/tasks", s.handleAddTask)
	})

	return r
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type actionsResponse struct {
	Date    string                     `json:"date"`
	Actions []models.RecommendedAction `json:"actions"`
}

func (s *Server) actionsResponse(list []models.RecommendedAction) actionsResponse {
	return actionsResponse{
		Date:    clock.Today(s.svc.Clock()).Format(actions.DateLayout),
		Actions: list,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Dashboard(r.Context(), s.ownerFor(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.actionsResponse(list))
}

func (s *Server) handleLeadActions(w http.ResponseWriter, r *http.Request) {
	id, ok := s.leadID(w, r)
	if !ok {
		return
	}
	list, err := s.svc.ForLead(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.actionsResponse(list))
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	done, err := s.svc.CompleteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	leads, err := s.svc.FindLeads(r.Context(), db.LeadFilter{
		OwnerID: s.ownerFor(r),
		Status:  q.Get("status"),
		Source:  q.Get("source"),
		Query:   q.Get("q"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (s *Server) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	var in actions.LeadInput
	if !s.decode(w, r, &in) {
		return
	}
	lead, err := s.svc.AddLead(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	id, ok := s.leadID(w, r)
	if !ok {
		return
	}
	lead, err := s.svc.GetLead(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleLeadStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.leadID(w, r)
	if !ok {
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !s.decode(w, r, &in) {
		return
	}
	if err := s.svc.UpdateLeadStatus(r.Context(), id, in.Status); err != nil {
		s.writeError(w, err)
		return
	}
	lead, err := s.svc.GetLead(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	var in actions.ActivityInput
	if !s.decode(w, r, &in) {
		return
	}
	in.LeadID = chi.URLParam(r, "id")
	activity, err := s.svc.LogActivity(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (s *Server) handleAddBooking(w http.ResponseWriter, r *http.Request) {
	var in actions.BookingInput
	if !s.decode(w, r, &in) {
		return
	}
	in.LeadID = chi.URLParam(r, "id")
	booking, err := s.svc.AddBooking(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var in actions.TaskInput
	if !s.decode(w, r, &in) {
		return
	}
	in.LeadID = chi.URLParam(r, "id")
	task, err := s.svc.AddTask(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) leadID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		s.writeError(w, apperr.Validation(fmt.Sprintf("invalid lead id %q", raw)))
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, apperr.Validation(fmt.Sprintf("invalid request body: %v", err)))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": err.Error(),
			"type":    apperr.GetKind(err).String(),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
