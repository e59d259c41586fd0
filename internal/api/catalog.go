package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/papusbarbershop/backend/internal/storage"
)

// handleListBarbers returns all active barbers.
func (s *Server) handleListBarbers(w http.ResponseWriter, r *http.Request) {
	barbers, err := s.catalogSvc.ListBarbers(r.Context())
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, barbers)
}

// handleGetBarber returns a single barber by ID.
func (s *Server) handleGetBarber(w http.ResponseWriter, r *http.Request) {
	b, err := s.catalogSvc.GetBarber(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleSaveBarber creates or updates a barber. The path ID wins over any ID
// in the body.
func (s *Server) handleSaveBarber(w http.ResponseWriter, r *http.Request) {
	var b storage.Barber
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	b.ID = chi.URLParam(r, "id")

	saved, err := s.catalogSvc.SaveBarber(r.Context(), &b)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleListHaircuts returns all active haircuts.
func (s *Server) handleListHaircuts(w http.ResponseWriter, r *http.Request) {
	haircuts, err := s.catalogSvc.ListHaircuts(r.Context())
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, haircuts)
}

// handleGetHaircut returns a single haircut by ID.
func (s *Server) handleGetHaircut(w http.ResponseWriter, r *http.Request) {
	h, err := s.catalogSvc.GetHaircut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// handleSaveHaircut creates or updates a haircut.
func (s *Server) handleSaveHaircut(w http.ResponseWriter, r *http.Request) {
	var h storage.Haircut
	if err := json.NewDecoder(r.Body).Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}
	h.ID = chi.URLParam(r, "id")

	saved, err := s.catalogSvc.SaveHaircut(r.Context(), &h)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
