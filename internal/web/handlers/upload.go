package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/uploader"
)

// UploadHandler handles batch uploads into a new gallery session.
type UploadHandler struct {
	config *config.Config
	store  uploader.Store
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(cfg *config.Config, store uploader.Store) *UploadHandler {
	return &UploadHandler{
		config: cfg,
		store:  store,
	}
}

// saveUploadedFiles saves multipart files to a temporary directory and returns their paths.
func saveUploadedFiles(files []*multipart.FileHeader, tempDir string) ([]string, error) {
	var filePaths []string
	for _, fileHeader := range files {
		if err := func() error {
			file, err := fileHeader.Open()
			if err != nil {
				return fmt.Errorf("failed to open file: %s", fileHeader.Filename)
			}
			defer file.Close()

			safeName := filepath.Base(fileHeader.Filename)
			tempPath := filepath.Join(tempDir, safeName)
			out, err := os.Create(tempPath) //nolint:gosec // filename sanitized via filepath.Base
			if err != nil {
				return errors.New("failed to create temp file")
			}

			if _, err := io.Copy(out, file); err != nil {
				out.Close()
				return errors.New("failed to save file")
			}
			out.Close()

			filePaths = append(filePaths, tempPath)
			return nil
		}(); err != nil {
			return nil, err
		}
	}
	return filePaths, nil
}

// Upload handles one batch: every file goes into a fresh session folder in
// the bucket, then the gallery link for the session is returned.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	bucket := strings.TrimSpace(r.FormValue("bucket"))
	if bucket == "" {
		bucket = h.config.S3.Bucket
	}
	if bucket == "" {
		respondError(w, http.StatusBadRequest, "bucket is required")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	tempDir, err := os.MkdirTemp("", "photodrive-upload-*")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create temp directory")
		return
	}
	defer os.RemoveAll(tempDir)

	filePaths, err := saveUploadedFiles(files, tempDir)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	session := uploader.NewSession(h.store, bucket, h.config.S3.PresignExpiry)
	result, err := session.UploadAll(r.Context(), filePaths, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to upload files: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, result)
}
