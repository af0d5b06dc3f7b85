package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wahyudsn/absensi/models"
)

// pngHeader is a minimal payload that sniffs as image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

type mockFotoRepo struct {
	recorded []models.UploadedFoto
	fotos    []models.UploadedFoto
}

func (m *mockFotoRepo) Record(ctx context.Context, foto *models.UploadedFoto) error {
	m.recorded = append(m.recorded, *foto)
	return nil
}

func (m *mockFotoRepo) FindAll(ctx context.Context) ([]models.UploadedFoto, error) {
	return m.fotos, nil
}

func setupFotoRouter(t *testing.T, repo *mockFotoRepo) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	ctl := NewFotoController(repo, dir, 10)
	r := gin.New()
	r.POST("/foto", ctl.Upload)
	r.GET("/images", ctl.List)
	r.GET("/images/:filename", ctl.Serve)
	return r, dir
}

func postFoto(t *testing.T, r *gin.Engine, field, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/foto", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	repo := &mockFotoRepo{}
	r, dir := setupFotoRouter(t, repo)

	w := postFoto(t, r, "foto", "selfie.png", pngHeader)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Foto uploaded" {
		t.Fatalf("message = %v", body["message"])
	}
	link, _ := body["link"].(string)
	if !strings.HasPrefix(link, "/images/") || !strings.HasSuffix(link, ".png") {
		t.Fatalf("link = %q", link)
	}

	name := strings.TrimPrefix(link, "/images/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Fatal("stored file does not match upload")
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("recorded rows = %d, want 1", len(repo.recorded))
	}
	if repo.recorded[0].Filename != name || repo.recorded[0].SizeBytes != int64(len(pngHeader)) {
		t.Fatalf("recorded row = %+v", repo.recorded[0])
	}
}

func TestUploadFallbackFieldName(t *testing.T) {
	repo := &mockFotoRepo{}
	r, _ := setupFotoRouter(t, repo)

	w := postFoto(t, r, "file", "selfie.png", pngHeader)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	repo := &mockFotoRepo{}
	r, dir := setupFotoRouter(t, repo)

	w := postFoto(t, r, "foto", "notes.txt", []byte("hello, this is plain text"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Only image uploads are allowed" {
		t.Fatalf("error message = %v", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d files on disk", len(entries))
	}
	if len(repo.recorded) != 0 {
		t.Fatal("rejected upload was recorded")
	}
}

func TestUploadMissingFile(t *testing.T) {
	repo := &mockFotoRepo{}
	r, _ := setupFotoRouter(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/foto", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxxx")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "foto file is required" {
		t.Fatalf("error message = %v", got)
	}
}

func TestServeImage(t *testing.T) {
	repo := &mockFotoRepo{}
	r, dir := setupFotoRouter(t, repo)

	if err := os.WriteFile(filepath.Join(dir, "known.png"), pngHeader, 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/known.png", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !bytes.Equal(w.Body.Bytes(), pngHeader) {
		t.Fatal("served bytes do not match stored file")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := decodeBody(t, w)["error"]; got != "Image not found" {
		t.Fatalf("error message = %v", got)
	}
}

func TestListFotos(t *testing.T) {
	repo := &mockFotoRepo{fotos: []models.UploadedFoto{{ID: 1, Filename: "a.png", URL: "/images/a.png"}}}
	r, _ := setupFotoRouter(t, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got []models.UploadedFoto
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].Filename != "a.png" {
		t.Fatalf("fotos = %+v", got)
	}
}
