package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/services"
	"github.com/wahyudsn/absensi/utils"
)

// AkunManager is the account service surface the controller depends on.
// Implemented by services.AkunService.
type AkunManager interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.Akun, error)
	Update(ctx context.Context, id uint, in services.UpdateInput) (*models.Akun, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Akun, error)
	FindAll(ctx context.Context) ([]models.Akun, error)
}

// AkunController handles account management endpoints.
type AkunController struct {
	svc AkunManager
}

// NewAkunController creates a new controller instance.
func NewAkunController(svc AkunManager) *AkunController {
	return &AkunController{svc: svc}
}

// Register creates an account, creating or reusing the kartu by its number.
func (a *AkunController) Register(ctx *gin.Context) {
	var req struct {
		Kartu    string `json:"kartu"`
		Role     uint   `json:"role"`
		Username string `json:"username"`
		Password string `json:"password"`
		Nama     string `json:"nama"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, services.ErrRegisterFieldsRequired.Error())
		return
	}

	akun, err := a.svc.Register(ctx.Request.Context(), services.RegisterInput{
		NomorKartu: req.Kartu,
		IDRole:     req.Role,
		Username:   req.Username,
		Password:   req.Password,
		Nama:       req.Nama,
	})
	if err != nil {
		a.writeError(ctx, "register user failed", err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "User registered", "akun": akun})
}

// Update applies a partial account update.
func (a *AkunController) Update(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req struct {
		Kartu    *string `json:"kartu"`
		Role     *uint   `json:"role"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Nama     *string `json:"nama"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	akun, err := a.svc.Update(ctx.Request.Context(), id, services.UpdateInput{
		NomorKartu: req.Kartu,
		IDRole:     req.Role,
		Username:   req.Username,
		Password:   req.Password,
		Nama:       req.Nama,
	})
	if err != nil {
		a.writeError(ctx, "update user failed", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User updated", "akun": akun})
}

// Delete removes an account.
func (a *AkunController) Delete(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	if err := a.svc.Delete(ctx.Request.Context(), id); err != nil {
		a.writeError(ctx, "delete user failed", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Get returns one account by id.
func (a *AkunController) Get(ctx *gin.Context) {
	id, ok := parseUserID(ctx)
	if !ok {
		return
	}

	akun, err := a.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		a.writeError(ctx, "get user failed", err)
		return
	}
	ctx.JSON(http.StatusOK, akun)
}

// List returns every account.
func (a *AkunController) List(ctx *gin.Context) {
	akuns, err := a.svc.FindAll(ctx.Request.Context())
	if err != nil {
		a.writeError(ctx, "list users failed", err)
		return
	}
	if akuns == nil {
		akuns = []models.Akun{}
	}
	ctx.JSON(http.StatusOK, akuns)
}

func (a *AkunController) writeError(ctx *gin.Context, logMsg string, err error) {
	switch {
	case errors.Is(err, services.ErrRegisterFieldsRequired),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrNomorKartuTaken):
		utils.Error(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrKartuNotFound):
		utils.Error(ctx, http.StatusNotFound, err.Error())
	default:
		logError(logMsg, err)
		utils.Error(ctx, http.StatusInternalServerError, "Something went wrong")
	}
}

func parseUserID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusNotFound, services.ErrUserNotFound.Error())
		return 0, false
	}
	return uint(id), true
}
