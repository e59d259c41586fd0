package api

import (
	"encoding/json"
	"net/http"
)

// handleListNotifications returns the most recent delivery log entries.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 100)
	entries, err := s.notificationSvc.ListDeliveries(r.Context(), limit)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleTestNotification queues a test email to the given recipient. A 202
// only means the message was accepted; the outcome appears in the delivery
// log.
func (s *Server) handleTestNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string `json:"recipient"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	if err := s.notificationSvc.SendTest(r.Context(), req.Recipient); err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
