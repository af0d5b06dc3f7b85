package models

import (
	"time"

	"gorm.io/gorm"
)

// Absen is one day's check-in/check-out pair for a user. JamPulang stays null
// until the matching check-out event arrives.
type Absen struct {
	IDAbsen    uint       `gorm:"column:id_absen;primaryKey" json:"id_absen"`
	IDUser     uint       `gorm:"column:id_user;not null;index:idx_absen_user_masuk,priority:1" json:"id_user"`
	JamMasuk   time.Time  `gorm:"column:jam_masuk;not null;index:idx_absen_user_masuk,priority:2" json:"jam_masuk"`
	JamPulang  *time.Time `gorm:"column:jam_pulang" json:"jam_pulang"`
	FotoMasuk  string     `gorm:"column:foto_masuk;size:512" json:"foto_masuk"`
	FotoPulang *string    `gorm:"column:foto_pulang;size:512" json:"foto_pulang"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName keeps the legacy table name.
func (Absen) TableName() string { return "absen" }

// Selesai reports whether both events of the day are recorded.
func (a *Absen) Selesai() bool { return a.JamPulang != nil }

// BeforeCreate hook ensures timestamps are set even when not provided.
func (a *Absen) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	return nil
}
