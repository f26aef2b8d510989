package storage

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestS3(t *testing.T) *S3Storage {
	t.Helper()
	bucket := Bucket{
		Name:        "gallery",
		StorageType: StorageTypeS3,
		Path:        "uploads",
		Endpoint:    "http://127.0.0.1:9000",
		S3Key:       "key",
		S3Secret:    "secret",
	}
	if err := bucket.TryInit(); err != nil {
		t.Fatalf("TryInit: %v", err)
	}
	return NewS3Storage(&bucket)
}

func TestS3Storage_ServeRedirectsToPresignedURL(t *testing.T) {
	s := newTestS3(t)

	w := httptest.NewRecorder()
	s.Serve("photo.png", false, httptest.NewRequest(http.MethodGet, "/uploads/photo.png", nil), w)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.Contains(location, "/gallery/uploads/photo.png") || !strings.Contains(location, "X-Amz-Signature") {
		t.Errorf("Location = %q, want presigned path-style URL", location)
	}
	if strings.Contains(location, "response-content-disposition") {
		t.Errorf("inline URL carries a content disposition: %q", location)
	}

	w = httptest.NewRecorder()
	s.Serve("photo.png", true, httptest.NewRequest(http.MethodGet, "/download/photo.png", nil), w)
	if !strings.Contains(w.Header().Get("Location"), "response-content-disposition") {
		t.Errorf("download URL is missing the attachment disposition")
	}
}

func TestS3Storage_Location(t *testing.T) {
	s := newTestS3(t)
	if got := s.Location("a.gif"); got != "uploads/a.gif" {
		t.Errorf("Location() = %q, want uploads/a.gif", got)
	}
	if s.GetFreeSpace() != 0 || s.GetTotalSpace() != 0 {
		t.Errorf("S3 space must be reported as unknown")
	}
}

func TestS3Storage_RejectsBadNames(t *testing.T) {
	s := newTestS3(t)
	if _, err := s.Save("../x", strings.NewReader("x")); err != ErrBadName {
		t.Errorf("Save() error = %v, want ErrBadName", err)
	}
	if err := s.Delete("a/b"); err != ErrBadName {
		t.Errorf("Delete() error = %v, want ErrBadName", err)
	}
	if s.Exists("..") {
		t.Errorf("Exists(\"..\") = true")
	}
}
