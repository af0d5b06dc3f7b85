package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wahyudsn/absensi/models"
)

// KartuRepository is the card directory boundary. Lookups return (nil, nil)
// when no row matches.
type KartuRepository interface {
	FindByNomor(ctx context.Context, nomor string) (*models.Kartu, error)
	FindByID(ctx context.Context, id uint) (*models.Kartu, error)
	Create(ctx context.Context, kartu *models.Kartu) error
	Update(ctx context.Context, kartu *models.Kartu) error
}

type gormKartuRepository struct {
	db *gorm.DB
}

// NewKartuRepository creates a GORM-backed card directory.
func NewKartuRepository(db *gorm.DB) KartuRepository {
	return &gormKartuRepository{db: db}
}

func (r *gormKartuRepository) FindByNomor(ctx context.Context, nomor string) (*models.Kartu, error) {
	var kartu models.Kartu
	err := r.db.WithContext(ctx).Where("nomor_kartu = ?", nomor).First(&kartu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &kartu, nil
}

func (r *gormKartuRepository) FindByID(ctx context.Context, id uint) (*models.Kartu, error) {
	var kartu models.Kartu
	err := r.db.WithContext(ctx).First(&kartu, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &kartu, nil
}

func (r *gormKartuRepository) Create(ctx context.Context, kartu *models.Kartu) error {
	return r.db.WithContext(ctx).Create(kartu).Error
}

func (r *gormKartuRepository) Update(ctx context.Context, kartu *models.Kartu) error {
	return r.db.WithContext(ctx).Save(kartu).Error
}
