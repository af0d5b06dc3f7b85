package models

// Kartu maps a physical card number to its internal id.
type Kartu struct {
	IDKartu    uint   `gorm:"column:id_kartu;primaryKey" json:"id_kartu"`
	NomorKartu string `gorm:"column:nomor_kartu;size:64;not null;uniqueIndex" json:"nomor_kartu"`
}

// TableName keeps the legacy table name.
func (Kartu) TableName() string { return "kartu" }
