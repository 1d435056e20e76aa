package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/photodrive/photodrive/internal/objectstore"
)

func TestSessionsHandler_List(t *testing.T) {
	store := &fakeStore{sessions: []objectstore.SessionInfo{
		{ID: "sess-a", Objects: 3, HasGallery: true},
		{ID: "sess-b", Objects: 1},
	}}
	handler := NewSessionsHandler(testConfig(), store)

	req := httptest.NewRequest("GET", "/api/v1/sessions?bucket=my-bucket", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Bucket   string                    `json:"bucket"`
		Sessions []objectstore.SessionInfo `json:"sessions"`
	}
	parseJSONResponse(t, recorder, &resp)

	if resp.Bucket != "my-bucket" {
		t.Errorf("expected bucket my-bucket, got %s", resp.Bucket)
	}
	if len(resp.Sessions) != 2 || resp.Sessions[0].ID != "sess-a" {
		t.Errorf("unexpected sessions: %+v", resp.Sessions)
	}
}

func TestSessionsHandler_MissingBucket(t *testing.T) {
	handler := NewSessionsHandler(testConfig(), &fakeStore{})

	req := httptest.NewRequest("GET", "/api/v1/sessions", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusBadRequest)
	assertJSONError(t, recorder, "bucket is required")
}

func TestSessionsHandler_StoreFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("access denied")}
	handler := NewSessionsHandler(testConfig(), store)

	req := httptest.NewRequest("GET", "/api/v1/sessions?bucket=b", nil)
	recorder := httptest.NewRecorder()

	handler.List(recorder, req)

	assertStatusCode(t, recorder, http.StatusInternalServerError)
}
