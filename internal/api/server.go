package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/papusbarbershop/backend/internal/blob"
	"github.com/papusbarbershop/backend/internal/config"
	"github.com/papusbarbershop/backend/internal/service"
)

const errInvalidJSONBody = "invalid JSON body"

// Server holds all dependencies for the REST API handlers.
type Server struct {
	appointmentSvc  service.AppointmentService
	catalogSvc      service.CatalogService
	notificationSvc service.NotificationService
	signer          *blob.Signer
	shop            *config.ShopProfile
	logger          *slog.Logger
}

// New creates a new API Server backed by the provided services.
func New(
	appointmentSvc service.AppointmentService,
	catalogSvc service.CatalogService,
	notificationSvc service.NotificationService,
	signer *blob.Signer,
	shop *config.ShopProfile,
	logger *slog.Logger,
) *Server {
	return &Server{
		appointmentSvc:  appointmentSvc,
		catalogSvc:      catalogSvc,
		notificationSvc: notificationSvc,
		signer:          signer,
		shop:            shop,
		logger:          logger,
	}
}

// Mount registers all API routes under the given router.
func (s *Server) Mount(r chi.Router) {
	// Appointments
	r.Get("/appointments", s.handleListAppointments)
	r.Post("/appointments", s.handleCreateAppointment)
	r.Get("/appointments/{id}", s.handleGetAppointment)
	r.Post("/appointments/{id}/cancel", s.handleCancelAppointment)

	// Catalog
	r.Get("/barbers", s.handleListBarbers)
	r.Get("/barbers/{id}", s.handleGetBarber)
	r.Put("/barbers/{id}", s.handleSaveBarber)
	r.Get("/haircuts", s.handleListHaircuts)
	r.Get("/haircuts/{id}", s.handleGetHaircut)
	r.Put("/haircuts/{id}", s.handleSaveHaircut)

	// Notification log and test send
	r.Get("/notifications", s.handleListNotifications)
	r.Post("/notifications/test", s.handleTestNotification)

	// Image uploads via presigned S3 URLs
	r.Post("/uploads/presign", s.handlePresignUpload)
	r.Get("/uploads/download-url", s.handleDownloadURL)
	r.Delete("/uploads", s.handleDeleteUpload)

	// Shop profile
	r.Get("/shop", s.handleGetShop)
}

// handleGetShop returns the public shop profile.
func (s *Server) handleGetShop(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.shop)
}

// ─── Shared helpers ───────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func httpErr(w http.ResponseWriter, err error) {
	var nf *service.NotFoundError
	var ve *service.ValidationError
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Error())
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, blob.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
