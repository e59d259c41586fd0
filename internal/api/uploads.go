package api

import (
	"encoding/json"
	"net/http"
)

// handlePresignUpload issues a presigned PUT URL for an image upload.
func (s *Server) handlePresignUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName    string `json:"file_name"`
		Folder      string `json:"folder"`
		ContentType string `json:"content_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidJSONBody)
		return
	}

	up, err := s.signer.PresignUpload(r.Context(), req.FileName, req.Folder, req.ContentType)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, up)
}

// handleDownloadURL issues a presigned GET URL for a stored object. The
// object must exist; a URL for a missing key would just defer the 404 to S3.
func (s *Server) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	exists, err := s.signer.Exists(r.Context(), key)
	if err != nil {
		httpErr(w, err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "no such object")
		return
	}

	url, err := s.signer.PresignDownload(r.Context(), key)
	if err != nil {
		httpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// handleDeleteUpload removes a stored object.
func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := s.signer.Delete(r.Context(), key); err != nil {
		httpErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
