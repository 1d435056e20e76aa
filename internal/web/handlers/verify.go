package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// VerifyHandler proxies face verification of two uploaded images to the
// face service.
type VerifyHandler struct {
	faces FaceVerifier
}

// NewVerifyHandler creates a new verify handler. faces may be nil when no
// face service is configured.
func NewVerifyHandler(faces FaceVerifier) *VerifyHandler {
	return &VerifyHandler{faces: faces}
}

// saveFormFile writes one named form file into a per-field subdirectory of
// dir and returns its path. Both images often carry the same camera basename
// (IMG_0001.jpg), so they must not share a directory.
func saveFormFile(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%s is required", field)
	}
	defer file.Close()

	fieldDir := filepath.Join(dir, field)
	if err := os.Mkdir(fieldDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create temp directory")
	}

	return saveTempImage(file, header, fieldDir)
}

func saveTempImage(file multipart.File, header *multipart.FileHeader, dir string) (string, error) {
	path := filepath.Join(dir, filepath.Base(header.Filename))
	out, err := os.Create(path) //nolint:gosec // filename sanitized via filepath.Base
	if err != nil {
		return "", fmt.Errorf("failed to create temp file")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to save file")
	}
	return path, nil
}

// Verify compares the two images in the form fields img1 and img2.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if h.faces == nil {
		respondError(w, http.StatusServiceUnavailable, "face service is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	tempDir, err := os.MkdirTemp("", "photodrive-verify-*")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create temp directory")
		return
	}
	defer os.RemoveAll(tempDir)

	img1, err := saveFormFile(r, "img1", tempDir)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	img2, err := saveFormFile(r, "img2", tempDir)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.faces.Verify(r.Context(), img1, img2)
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("face verification failed: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}
