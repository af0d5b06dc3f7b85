package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/services"
	"github.com/wahyudsn/absensi/utils"
)

const (
	cacheKeyAbsenList   = "cache:absen:list"
	cacheKeyAbsenPrefix = "cache:absen"
)

// AbsenResolver is the attendance service surface the controller depends on.
// Implemented by services.AbsenService.
type AbsenResolver interface {
	RecordEvent(ctx context.Context, nomorKartu, fotoLink string, now time.Time) (*models.Absen, services.EventKind, error)
	FindAll(ctx context.Context) ([]models.Absen, error)
	FindByID(ctx context.Context, id uint) (*models.Absen, error)
}

// AbsenController handles the attendance endpoints.
type AbsenController struct {
	svc AbsenResolver
	now func() time.Time
}

// NewAbsenController creates a new controller instance.
func NewAbsenController(svc AbsenResolver) *AbsenController {
	return &AbsenController{svc: svc, now: time.Now}
}

// List returns every attendance record, newest first.
func (a *AbsenController) List(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(cacheKeyAbsenList); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	absens, err := a.svc.FindAll(ctx.Request.Context())
	if err != nil {
		logError("list absen failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if absens == nil {
		absens = []models.Absen{}
	}

	utils.CacheSetJSON(cacheKeyAbsenList, absens, time.Minute)
	ctx.JSON(http.StatusOK, absens)
}

// Get returns one attendance record by id.
func (a *AbsenController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, services.ErrAbsenNotFound.Error())
		return
	}

	absen, err := a.svc.FindByID(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAbsenNotFound) {
			utils.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		logError("get absen failed", err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		return
	}
	ctx.JSON(http.StatusOK, absen)
}

// Record runs the check-in/check-out resolver for a scanned card.
func (a *AbsenController) Record(ctx *gin.Context) {
	var req struct {
		Kartu string `json:"kartu"`
		Link  string `json:"link"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, services.ErrKartuLinkRequired.Error())
		return
	}

	record, kind, err := a.svc.RecordEvent(ctx.Request.Context(), req.Kartu, req.Link, a.now())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKartuLinkRequired):
			utils.Error(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrKartuNotFound), errors.Is(err, services.ErrAkunNotFound):
			utils.Error(ctx, http.StatusNotFound, err.Error())
		default:
			logError("record attendance failed", err)
			utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	if kind != services.EventAlreadyComplete {
		utils.InvalidateByPrefix(cacheKeyAbsenPrefix)
	}

	status := http.StatusOK
	var message string
	switch kind {
	case services.EventCheckIn:
		status = http.StatusCreated
		message = "Check-in recorded"
	case services.EventCheckOut:
		message = "Check-out recorded"
	default:
		message = "User has already checked in and out today"
	}

	ctx.JSON(status, gin.H{"message": message, "absen": record})
}

func logError(msg string, err error) {
	if utils.Sugar != nil {
		utils.Sugar.Errorf("%s: %v", msg, err)
	}
}
