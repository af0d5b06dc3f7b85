package models

import "time"

// UploadedFoto records a stored attendance photo so /images can list uploads
// without walking the filesystem.
type UploadedFoto struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Filename    string    `gorm:"size:255;not null;uniqueIndex" json:"filename"`
	URL         string    `gorm:"size:512;not null" json:"url"` // public URL like /images/<filename>
	ContentType string    `gorm:"size:64" json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the table name explicit alongside the legacy tables.
func (UploadedFoto) TableName() string { return "uploaded_foto" }
