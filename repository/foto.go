package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wahyudsn/absensi/models"
)

// FotoRepository keeps the bookkeeping rows behind /images.
type FotoRepository interface {
	Record(ctx context.Context, foto *models.UploadedFoto) error
	FindAll(ctx context.Context) ([]models.UploadedFoto, error)
}

type gormFotoRepository struct {
	db *gorm.DB
}

// NewFotoRepository creates a GORM-backed photo index.
func NewFotoRepository(db *gorm.DB) FotoRepository {
	return &gormFotoRepository{db: db}
}

func (r *gormFotoRepository) Record(ctx context.Context, foto *models.UploadedFoto) error {
	return r.db.WithContext(ctx).Create(foto).Error
}

func (r *gormFotoRepository) FindAll(ctx context.Context) ([]models.UploadedFoto, error) {
	var fotos []models.UploadedFoto
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&fotos).Error; err != nil {
		return nil, err
	}
	return fotos, nil
}
