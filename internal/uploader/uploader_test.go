package uploader

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/photodrive/photodrive/internal/objectstore"
)

type storedObject struct {
	key         string
	contentType string
	size        int
	multipart   bool
}

// fakeStore records uploads and presign calls per object key.
type fakeStore struct {
	objects   []storedObject
	presigned []string

	failKeys map[string]error // key suffix -> error for uploads
}

func (f *fakeStore) failFor(key string) error {
	for suffix, err := range f.failKeys {
		if strings.HasSuffix(key, suffix) {
			return err
		}
	}
	return nil
}

func (f *fakeStore) MultipartUpload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	if err := f.failFor(key); err != nil {
		return err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return objectstore.ErrEmptyObject
	}
	f.objects = append(f.objects, storedObject{key: key, contentType: contentType, size: len(body), multipart: true})
	return nil
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	if err := f.failFor(key); err != nil {
		return err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects = append(f.objects, storedObject{key: key, contentType: contentType, size: len(body)})
	return nil
}

func (f *fakeStore) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.presigned = append(f.presigned, key)
	return "https://signed.example/" + key, nil
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func (f *fakeStore) find(suffix string) *storedObject {
	for i := range f.objects {
		if strings.HasSuffix(f.objects[i].key, suffix) {
			return &f.objects[i]
		}
	}
	return nil
}

func TestUploadAll_Success(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestFile(t, dir, "one.jpg", "fake jpeg data"),
		writeTestFile(t, dir, "two.png", "fake png data"),
	}

	store := &fakeStore{}
	session := NewSession(store, "bucket", time.Hour)

	result, err := session.UploadAll(context.Background(), paths, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.SessionID != session.ID() {
		t.Errorf("result session id %q does not match session %q", result.SessionID, session.ID())
	}

	if len(result.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(result.Links))
	}
	for _, link := range result.Links {
		if !strings.Contains(link.URL, "uploads/"+session.ID()+"/") {
			t.Errorf("link URL missing session folder: %s", link.URL)
		}
	}

	jpg := store.find("one.jpg")
	if jpg == nil {
		t.Fatal("one.jpg was not uploaded")
	}
	if !jpg.multipart {
		t.Error("expected one.jpg to go through the multipart path")
	}
	if jpg.contentType != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", jpg.contentType)
	}

	html := store.find("gallery.html")
	if html == nil {
		t.Fatal("gallery was not published")
	}
	if html.contentType != "text/html" {
		t.Errorf("expected gallery content type text/html, got %s", html.contentType)
	}
	if html.multipart {
		t.Error("gallery should use the managed upload path")
	}

	if result.GalleryURL == "" {
		t.Error("expected a gallery URL")
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
}

func TestUploadAll_ContinuesAfterFileError(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestFile(t, dir, "bad.jpg", "data"),
		writeTestFile(t, dir, "good.jpg", "data"),
	}

	store := &fakeStore{failKeys: map[string]error{"bad.jpg": errors.New("boom")}}
	session := NewSession(store, "bucket", time.Hour)

	var seen []string
	result, err := session.UploadAll(context.Background(), paths, func(name string, err error) {
		seen = append(seen, name)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 2 {
		t.Errorf("expected progress for both files, got %v", seen)
	}

	if len(result.Links) != 1 || result.Links[0].Name != "good.jpg" {
		t.Errorf("expected only good.jpg in links, got %+v", result.Links)
	}

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "bad.jpg") {
		t.Errorf("expected one error naming bad.jpg, got %v", result.Errors)
	}

	if result.GalleryURL == "" {
		t.Error("gallery should still be published for the surviving file")
	}
}

func TestUploadAll_AllFilesFail(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeTestFile(t, dir, "bad.jpg", "data")}

	store := &fakeStore{failKeys: map[string]error{"bad.jpg": errors.New("boom")}}
	session := NewSession(store, "bucket", time.Hour)

	result, err := session.UploadAll(context.Background(), paths, nil)
	if err == nil {
		t.Fatal("expected error when no file uploads")
	}

	if store.find("gallery.html") != nil {
		t.Error("gallery must not be published when nothing uploaded")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %v", result.Errors)
	}
}

func TestUploadFile_EmptyFallsBackToManagedUpload(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "empty.jpg", "")

	store := &fakeStore{}
	session := NewSession(store, "bucket", time.Hour)

	link, err := session.UploadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	obj := store.find("empty.jpg")
	if obj == nil {
		t.Fatal("empty.jpg was not uploaded")
	}
	if obj.multipart {
		t.Error("empty file must use the managed upload path")
	}
	if obj.size != 0 {
		t.Errorf("expected empty object, got %d bytes", obj.size)
	}
	if link.URL == "" {
		t.Error("expected a presigned link for the empty object")
	}
}

func TestUploadFile_MissingFile(t *testing.T) {
	store := &fakeStore{}
	session := NewSession(store, "bucket", time.Hour)

	_, err := session.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestUploadFile_UsesBaseName(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "nested.jpg", "data")

	store := &fakeStore{}
	session := NewSession(store, "bucket", time.Hour)

	link, err := session.UploadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if link.Name != "nested.jpg" {
		t.Errorf("expected link name nested.jpg, got %s", link.Name)
	}
	obj := store.objects[0]
	if obj.key != "uploads/"+session.ID()+"/nested.jpg" {
		t.Errorf("unexpected object key: %s", obj.key)
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	store := &fakeStore{}
	a := NewSession(store, "bucket", time.Hour)
	b := NewSession(store, "bucket", time.Hour)

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct non-empty session ids, got %q and %q", a.ID(), b.ID())
	}
}
