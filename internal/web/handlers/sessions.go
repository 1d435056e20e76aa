package handlers

import (
	"net/http"
	"strings"

	"github.com/photodrive/photodrive/internal/config"
)

// SessionsHandler lists past upload sessions in a bucket.
type SessionsHandler struct {
	config *config.Config
	store  ObjectStore
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(cfg *config.Config, store ObjectStore) *SessionsHandler {
	return &SessionsHandler{
		config: cfg,
		store:  store,
	}
}

// List returns the upload sessions found under uploads/ in the bucket.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	bucket := strings.TrimSpace(r.URL.Query().Get("bucket"))
	if bucket == "" {
		bucket = h.config.S3.Bucket
	}
	if bucket == "" {
		respondError(w, http.StatusBadRequest, "bucket is required")
		return
	}

	sessions, err := h.store.ListSessions(r.Context(), bucket)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"bucket":   bucket,
		"sessions": sessions,
	})
}
