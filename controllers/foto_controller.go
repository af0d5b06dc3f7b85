package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/repository"
	"github.com/wahyudsn/absensi/utils"
)

// FotoController stores and serves attendance photos on the local filesystem.
type FotoController struct {
	repo    repository.FotoRepository
	dir     string
	maxSize int64
}

// NewFotoController creates a new controller instance. maxSizeMB caps upload size.
func NewFotoController(repo repository.FotoRepository, dir string, maxSizeMB int) *FotoController {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &FotoController{repo: repo, dir: dir, maxSize: int64(maxSizeMB) * 1024 * 1024}
}

// Upload stores a single image file and returns the link for /absen events.
// The content type is sniffed from the payload, not trusted from the header.
func (f *FotoController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("foto")
	if err != nil {
		// accept 'file' as a fallback field name
		file, header, err = ctx.Request.FormFile("file")
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, "foto file is required")
			return
		}
	}
	defer file.Close()

	if header.Size > 0 && header.Size > f.maxSize {
		utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("file size exceeds %dMB", f.maxSize/(1024*1024)))
		return
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		logError("read upload failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		utils.Error(ctx, http.StatusBadRequest, "Only image uploads are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		logError("rewind upload failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		logError("create upload directory failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	dstPath := filepath.Join(f.dir, name)

	out, err := os.Create(dstPath)
	if err != nil {
		logError("create upload file failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: f.maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		logError("write upload file failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if written > f.maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("file size exceeds %dMB", f.maxSize/(1024*1024)))
		return
	}

	link := "/images/" + name
	record := models.UploadedFoto{
		Filename:    name,
		URL:         link,
		ContentType: contentType,
		SizeBytes:   written,
	}
	// bookkeeping row is best-effort; the upload already succeeded
	if err := f.repo.Record(ctx.Request.Context(), &record); err != nil {
		logError("record uploaded foto failed", err)
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Foto uploaded", "link": link})
}

// List returns the stored photos, newest first.
func (f *FotoController) List(ctx *gin.Context) {
	fotos, err := f.repo.FindAll(ctx.Request.Context())
	if err != nil {
		logError("list fotos failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if fotos == nil {
		fotos = []models.UploadedFoto{}
	}
	ctx.JSON(http.StatusOK, fotos)
}

// Serve streams one stored photo by filename.
func (f *FotoController) Serve(ctx *gin.Context) {
	name := filepath.Base(ctx.Param("filename"))
	if name == "." || name == ".." || name == "/" {
		utils.Error(ctx, http.StatusNotFound, "Image not found")
		return
	}

	path := filepath.Join(f.dir, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		utils.Error(ctx, http.StatusNotFound, "Image not found")
		return
	}
	ctx.File(path)
}
