package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/photodrive/photodrive/internal/config"
	"github.com/photodrive/photodrive/internal/faceapi"
	"github.com/photodrive/photodrive/internal/objectstore"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		S3: config.S3Config{
			PresignExpiry: time.Hour,
		},
	}
}

type storedObject struct {
	bucket      string
	key         string
	contentType string
}

// fakeStore implements ObjectStore in memory.
type fakeStore struct {
	objects  []storedObject
	sessions []objectstore.SessionInfo

	uploadErr error
	listErr   error
}

func (f *fakeStore) MultipartUpload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return err
	}
	f.objects = append(f.objects, storedObject{bucket: bucket, key: key, contentType: contentType})
	return nil
}

func (f *fakeStore) Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string) error {
	return f.MultipartUpload(ctx, bucket, key, r, contentType)
}

func (f *fakeStore) PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) ListSessions(ctx context.Context, bucket string) ([]objectstore.SessionInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sessions, nil
}

// fakeVerifier returns a canned verification result. The image contents are
// captured at call time because the handler's temp files are gone afterwards.
type fakeVerifier struct {
	result *faceapi.VerifyResult
	err    error
	calls  int

	img1Data []byte
	img2Data []byte
}

func (f *fakeVerifier) Verify(ctx context.Context, img1Path, img2Path string) (*faceapi.VerifyResult, error) {
	f.calls++
	f.img1Data, _ = os.ReadFile(img1Path)
	f.img2Data, _ = os.ReadFile(img2Path)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// multipartBody builds a multipart form with the given fields and files.
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", field, err)
		}
		if _, err := io.Copy(part, strings.NewReader("fake image data")); err != nil {
			t.Fatalf("failed to write form file %s: %v", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks that the response carries the expected error message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["error"] != expected {
		t.Errorf("expected error %q, got %q", expected, resp["error"])
	}
}
