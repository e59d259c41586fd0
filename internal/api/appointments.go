package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/papusbarbershop/backend/internal/service"
)

// handleListAppointments returns the most recent appointments.
func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)
	appts, err := s.appointmentSvc.List(r.Context(), limit)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appts)
}

// handleCreateAppointment books a new appointment. The confirmation email is
// queued asynchronously, so a full mail queue or a provider outage never
// delays or fails this request.
func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	appt, err := s.appointmentSvc.Create(r.Context(), req)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// handleGetAppointment returns a single appointment by ID.
func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := s.appointmentSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// handleCancelAppointment marks an appointment cancelled.
func (s *Server) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := s.appointmentSvc.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func parseLimit(r *http.Request, def int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
