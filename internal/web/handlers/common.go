package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/photodrive/photodrive/internal/faceapi"
	"github.com/photodrive/photodrive/internal/objectstore"
	"github.com/photodrive/photodrive/internal/uploader"
)

// ObjectStore is the storage surface the handlers need: session uploads plus
// listing of past sessions.
type ObjectStore interface {
	uploader.Store
	ListSessions(ctx context.Context, bucket string) ([]objectstore.SessionInfo, error)
}

// FaceVerifier compares two local images through the face service.
type FaceVerifier interface {
	Verify(ctx context.Context, img1Path, img2Path string) (*faceapi.VerifyResult, error)
}

// maxUploadSize bounds one multipart form: 1 GiB covers a typical shoot batch.
const maxUploadSize = 1 << 30

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
