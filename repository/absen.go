package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wahyudsn/absensi/models"
)

// AbsenRepository is the attendance ledger boundary. Transaction runs fn
// against a repository bound to one database transaction; FindSince takes a
// row lock inside that transaction so the day's record cannot be opened twice
// by concurrent requests.
type AbsenRepository interface {
	FindAll(ctx context.Context) ([]models.Absen, error)
	FindByID(ctx context.Context, id uint) (*models.Absen, error)
	FindSince(ctx context.Context, userID uint, dayStart time.Time) (*models.Absen, error)
	Create(ctx context.Context, absen *models.Absen) error
	Save(ctx context.Context, absen *models.Absen) error
	Transaction(ctx context.Context, fn func(tx AbsenRepository) error) error
}

type gormAbsenRepository struct {
	db *gorm.DB
}

// NewAbsenRepository creates a GORM-backed attendance ledger.
func NewAbsenRepository(db *gorm.DB) AbsenRepository {
	return &gormAbsenRepository{db: db}
}

func (r *gormAbsenRepository) FindAll(ctx context.Context) ([]models.Absen, error) {
	var absens []models.Absen
	if err := r.db.WithContext(ctx).Order("jam_masuk DESC").Find(&absens).Error; err != nil {
		return nil, err
	}
	return absens, nil
}

func (r *gormAbsenRepository) FindByID(ctx context.Context, id uint) (*models.Absen, error) {
	var absen models.Absen
	err := r.db.WithContext(ctx).First(&absen, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absen, nil
}

// FindSince returns the newest record for the user whose jam_masuk falls at or
// after dayStart. The SELECT is issued FOR UPDATE; inside Transaction this
// serializes concurrent resolvers for the same user and day.
func (r *gormAbsenRepository) FindSince(ctx context.Context, userID uint, dayStart time.Time) (*models.Absen, error) {
	var absen models.Absen
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id_user = ? AND jam_masuk >= ?", userID, dayStart).
		Order("jam_masuk DESC").
		First(&absen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &absen, nil
}

func (r *gormAbsenRepository) Create(ctx context.Context, absen *models.Absen) error {
	return r.db.WithContext(ctx).Create(absen).Error
}

func (r *gormAbsenRepository) Save(ctx context.Context, absen *models.Absen) error {
	return r.db.WithContext(ctx).Save(absen).Error
}

func (r *gormAbsenRepository) Transaction(ctx context.Context, fn func(tx AbsenRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAbsenRepository{db: tx})
	})
}
