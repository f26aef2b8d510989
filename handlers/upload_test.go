package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"uploader/config"
	"uploader/models"
	"uploader/storage"
)

func TestUpload_GalleryPhoto(t *testing.T) {
	s := newTestServer(t, config.VariantGallery)

	w := s.do(multipartRequest(t, "/upload", formFile{"image", "photo.png", "image/png", []byte{1, 2, 3}}))
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", w.Code, w.Body.String())
	}
	var uploaded struct {
		Msg    string           `json:"msg"`
		Result models.BookImage `json:"result"`
	}
	decode(t, w, &uploaded)
	if uploaded.Msg != "Image uploaded successfully" {
		t.Errorf("msg = %q", uploaded.Msg)
	}
	if uploaded.Result.ID == 0 || !strings.HasPrefix(uploaded.Result.Cover, "photo-") {
		t.Errorf("result = %+v", uploaded.Result)
	}

	w = s.get("/images")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listing struct {
		Image []models.BookImage `json:"image"`
	}
	decode(t, w, &listing)
	if len(listing.Image) != 1 || !strings.HasSuffix(listing.Image[0].Cover, ".png") {
		t.Fatalf("listing = %+v", listing)
	}

	w = s.get("/uploads/" + listing.Image[0].Cover)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), []byte{1, 2, 3}) {
		t.Errorf("view body = %v, want [1 2 3]", w.Body.Bytes())
	}
	if s.blobCount(t) != 1 || s.recordCount(t) != 1 {
		t.Errorf("blobs = %d, records = %d, want 1 and 1", s.blobCount(t), s.recordCount(t))
	}
}

func TestUpload_FileManager(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)

	w := s.do(multipartRequest(t, "/api/upload", formFile{"file", "Report.PDF", "application/pdf", []byte("%PDF-1.4")}))
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, body %s", w.Code, w.Body.String())
	}
	var uploaded struct {
		Message string      `json:"message"`
		Result  models.File `json:"result"`
	}
	decode(t, w, &uploaded)
	if uploaded.Message != "File Uploaded Successfully" {
		t.Errorf("message = %q", uploaded.Message)
	}
	file := uploaded.Result
	if !strings.HasPrefix(file.Filename, "file-") || !strings.HasSuffix(file.Filename, ".pdf") {
		t.Errorf("filename = %q, want file-<...>.pdf", file.Filename)
	}
	if file.Filetype != "application/pdf" {
		t.Errorf("filetype = %q", file.Filetype)
	}
	if !strings.HasSuffix(file.Filepath, "/"+file.Filename) {
		t.Errorf("filepath = %q", file.Filepath)
	}
	if file.UploadedAt.IsZero() {
		t.Errorf("uploaded_at not set")
	}

	var listing []models.File
	decode(t, s.get("/api/files"), &listing)
	if len(listing) != 1 || listing[0].ID != file.ID {
		t.Errorf("listing = %+v", listing)
	}
	var alias []models.File
	decode(t, s.get("/files"), &alias)
	if len(alias) != 1 {
		t.Errorf("/files listing = %+v", alias)
	}
}

func TestUpload_FiletypeGuessedFromExtension(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)
	w := s.do(multipartRequest(t, "/api/upload", formFile{"file", "page.html", "", []byte("<p>")}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var uploaded struct {
		Result models.File `json:"result"`
	}
	decode(t, w, &uploaded)
	if !strings.HasPrefix(uploaded.Result.Filetype, "text/html") {
		t.Errorf("filetype = %q, want text/html", uploaded.Result.Filetype)
	}
}

func TestUpload_NoFile(t *testing.T) {
	for _, variant := range []string{config.VariantGallery, config.VariantFiles} {
		t.Run(variant, func(t *testing.T) {
			s := newTestServer(t, variant)
			path := s.h.Variant.UploadPath

			// Multipart without the expected field
			w := s.do(multipartRequest(t, path, formFile{"other", "photo.png", "image/png", []byte("x")}))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			decode(t, w, &body)
			if body[s.h.Variant.MessageKey] != ErrNoFile.Error() {
				t.Errorf("body = %v", body)
			}

			// Not multipart at all
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"image":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			if w = s.do(req); w.Code != http.StatusBadRequest {
				t.Errorf("json body status = %d, want 400", w.Code)
			}
			s.assertNoSideEffects(t)
		})
	}
}

func TestUpload_GalleryRejectsDisallowedExtension(t *testing.T) {
	s := newTestServer(t, config.VariantGallery)
	for _, name := range []string{"notes.txt", "archive.tar.gz", "noextension", "image.png.exe"} {
		w := s.do(multipartRequest(t, "/upload", formFile{"image", name, "image/png", []byte("x")}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
		var body map[string]string
		decode(t, w, &body)
		if body["msg"] != ErrFileType.Error() {
			t.Errorf("%s: body = %v", name, body)
		}
	}
	s.assertNoSideEffects(t)

	w := s.do(multipartRequest(t, "/upload", formFile{"image", "SHOUTING.JPG", "image/jpeg", []byte("x")}))
	if w.Code != http.StatusOK {
		t.Errorf("upper case extension status = %d, want 200", w.Code)
	}
}

func TestUpload_TooManyFiles(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)
	w := s.do(multipartRequest(t, "/api/upload",
		formFile{"file", "a.txt", "text/plain", []byte("a")},
		formFile{"file", "b.txt", "text/plain", []byte("b")},
	))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	s.assertNoSideEffects(t)
}

func TestUpload_TooLarge(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)
	s.h.Variant.MaxUploadSize = 1024

	w := s.do(multipartRequest(t, "/api/upload", formFile{"file", "big.bin", "", bytes.Repeat([]byte("x"), 2048)}))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	s.assertNoSideEffects(t)

	w = s.do(multipartRequest(t, "/api/upload", formFile{"file", "small.bin", "", bytes.Repeat([]byte("x"), 1024)}))
	if w.Code != http.StatusOK {
		t.Errorf("file at the limit: status = %d, want 200", w.Code)
	}
}

func TestUpload_SameNameTwiceDoesNotOverwrite(t *testing.T) {
	s := newTestServer(t, config.VariantGallery)
	// Same millisecond for both uploads
	fixed := time.UnixMilli(1700000000000)
	s.h.now = func() time.Time { return fixed }

	requests := []*http.Request{
		multipartRequest(t, "/upload", formFile{"image", "same.gif", "image/gif", []byte{1}}),
		multipartRequest(t, "/upload", formFile{"image", "same.gif", "image/gif", []byte{2}}),
	}
	var wg sync.WaitGroup
	codes := make([]int, len(requests))
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req *http.Request) {
			defer wg.Done()
			codes[i] = s.do(req).Code
		}(i, req)
	}
	wg.Wait()
	for i, code := range codes {
		if code != http.StatusOK {
			t.Fatalf("upload %d status = %d", i, code)
		}
	}
	assets, err := s.records.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(assets) != 2 || assets[0].Filename == assets[1].Filename {
		t.Fatalf("assets = %+v, want two distinct stored names", assets)
	}
	if s.blobCount(t) != 2 {
		t.Errorf("blobs = %d, want 2", s.blobCount(t))
	}
}

type failingBlobs struct {
	*storage.DiskStorage
}

func (failingBlobs) Save(string, io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

func TestUpload_StoreWriteFailureLeavesNoRecord(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)
	h := New(s.h.Variant, s.records, failingBlobs{s.blobs})
	s.router.POST("/failing/upload", h.Upload)

	w := s.do(multipartRequest(t, "/failing/upload", formFile{"file", "a.txt", "text/plain", []byte("a")}))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	s.assertNoSideEffects(t)
}

type failingRecords struct {
	models.RecordStore
}

func (failingRecords) Create(*models.Asset) error {
	return errors.New("connection lost")
}

func TestUpload_InsertFailureRemovesBlob(t *testing.T) {
	s := newTestServer(t, config.VariantFiles)
	h := New(s.h.Variant, failingRecords{s.records}, s.blobs)
	s.router.POST("/failing/upload", h.Upload)

	w := s.do(multipartRequest(t, "/failing/upload", formFile{"file", "a.txt", "text/plain", []byte("a")}))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["message"] != msgDBError1 {
		t.Errorf("body = %v, want generic message", body)
	}
	s.assertNoSideEffects(t)
}
