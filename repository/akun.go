package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wahyudsn/absensi/models"
)

// AkunRepository is the account directory boundary. Lookups return (nil, nil)
// when no row matches.
type AkunRepository interface {
	FindByKartuID(ctx context.Context, kartuID uint) (*models.Akun, error)
	FindByUsername(ctx context.Context, username string) (*models.Akun, error)
	FindByID(ctx context.Context, id uint) (*models.Akun, error)
	FindAll(ctx context.Context) ([]models.Akun, error)
	Create(ctx context.Context, akun *models.Akun) error
	Update(ctx context.Context, akun *models.Akun) error
	Delete(ctx context.Context, id uint) error
}

type gormAkunRepository struct {
	db *gorm.DB
}

// NewAkunRepository creates a GORM-backed account directory.
func NewAkunRepository(db *gorm.DB) AkunRepository {
	return &gormAkunRepository{db: db}
}

func (r *gormAkunRepository) FindByKartuID(ctx context.Context, kartuID uint) (*models.Akun, error) {
	var akun models.Akun
	err := r.db.WithContext(ctx).Where("id_kartu = ?", kartuID).First(&akun).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &akun, nil
}

func (r *gormAkunRepository) FindByUsername(ctx context.Context, username string) (*models.Akun, error) {
	var akun models.Akun
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&akun).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &akun, nil
}

func (r *gormAkunRepository) FindByID(ctx context.Context, id uint) (*models.Akun, error) {
	var akun models.Akun
	err := r.db.WithContext(ctx).First(&akun, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &akun, nil
}

func (r *gormAkunRepository) FindAll(ctx context.Context) ([]models.Akun, error) {
	var akuns []models.Akun
	if err := r.db.WithContext(ctx).Order("id_user").Find(&akuns).Error; err != nil {
		return nil, err
	}
	return akuns, nil
}

func (r *gormAkunRepository) Create(ctx context.Context, akun *models.Akun) error {
	return r.db.WithContext(ctx).Create(akun).Error
}

func (r *gormAkunRepository) Update(ctx context.Context, akun *models.Akun) error {
	return r.db.WithContext(ctx).Save(akun).Error
}

func (r *gormAkunRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Akun{}, id).Error
}
