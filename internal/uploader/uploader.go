// Package uploader orchestrates one upload session: a batch of local files
// goes into uploads/<session-id>/ in the target bucket, each object gets a
// pre-signed URL, and a gallery page linking them all is published last.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/photodrive/photodrive/internal/gallery"
	"github.com/photodrive/photodrive/internal/objectstore"
)

// Store is the object-store surface a session needs.
type Store interface {
	MultipartUpload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error
	Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// Link is a pre-signed URL for one uploaded file.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Result summarizes a finished session.
type Result struct {
	SessionID  string   `json:"session_id"`
	GalleryURL string   `json:"gallery_url"`
	Links      []Link   `json:"links"`
	Errors     []string `json:"errors,omitempty"`
}

// Session is a single upload batch with its own random folder in the bucket.
type Session struct {
	store  Store
	bucket string
	id     string
	expiry time.Duration
}

// NewSession starts a session against the given bucket. Pre-signed URLs
// generated by the session use the given expiry.
func NewSession(store Store, bucket string, expiry time.Duration) *Session {
	return &Session{
		store:  store,
		bucket: bucket,
		id:     uuid.NewString(),
		expiry: expiry,
	}
}

// ID returns the session identifier (the folder name in the bucket).
func (s *Session) ID() string {
	return s.id
}

// UploadFile uploads one local file into the session folder and returns its
// pre-signed link. Zero-byte files cannot go through the multipart path, so
// they fall back to a managed single-shot upload.
func (s *Session) UploadFile(ctx context.Context, filePath string) (Link, error) {
	name := filepath.Base(filePath)
	key := objectstore.SessionKey(s.id, name)
	contentType := objectstore.ContentType(name)

	file, err := os.Open(filePath) //nolint:gosec // user-provided file path for upload
	if err != nil {
		return Link{}, fmt.Errorf("could not open file: %w", err)
	}
	defer file.Close()

	err = s.store.MultipartUpload(ctx, s.bucket, key, file, contentType)
	if errors.Is(err, objectstore.ErrEmptyObject) {
		err = s.store.Upload(ctx, s.bucket, key, bytes.NewReader(nil), contentType)
	}
	if err != nil {
		return Link{}, err
	}

	url, err := s.store.PresignGet(ctx, s.bucket, key, s.expiry)
	if err != nil {
		return Link{}, fmt.Errorf("presigning %s: %w", name, err)
	}

	return Link{Name: name, URL: url}, nil
}

// UploadAll uploads every path, collecting per-file errors instead of
// stopping, then publishes the gallery page for the files that made it.
// progress, if non-nil, is called after each file with its upload error.
// An error is returned only when no file uploaded successfully or the
// gallery itself could not be published.
func (s *Session) UploadAll(ctx context.Context, paths []string, progress func(name string, err error)) (*Result, error) {
	result := &Result{SessionID: s.id}

	for _, path := range paths {
		name := filepath.Base(path)
		link, err := s.UploadFile(ctx, path)
		if progress != nil {
			progress(name, err)
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		result.Links = append(result.Links, link)
	}

	if len(result.Links) == 0 {
		return result, errors.New("no files were uploaded successfully")
	}

	galleryURL, err := s.PublishGallery(ctx, result.Links)
	if err != nil {
		return result, err
	}
	result.GalleryURL = galleryURL

	return result, nil
}

// PublishGallery renders the gallery page for the given links, uploads it as
// uploads/<session-id>/gallery.html and returns its pre-signed URL.
func (s *Session) PublishGallery(ctx context.Context, links []Link) (string, error) {
	images := make([]gallery.Image, 0, len(links))
	for _, l := range links {
		images = append(images, gallery.Image{Name: l.Name, URL: l.URL})
	}

	page, err := gallery.Render(images)
	if err != nil {
		return "", err
	}

	key := objectstore.SessionKey(s.id, objectstore.GalleryObject)
	if err := s.store.Upload(ctx, s.bucket, key, bytes.NewReader(page), "text/html"); err != nil {
		return "", fmt.Errorf("publishing gallery: %w", err)
	}

	url, err := s.store.PresignGet(ctx, s.bucket, key, s.expiry)
	if err != nil {
		return "", fmt.Errorf("presigning gallery: %w", err)
	}
	return url, nil
}
