package models

// Akun is a user account bound to exactly one kartu. Passwords are stored as bcrypt hashes only.
type Akun struct {
	IDUser   uint   `gorm:"column:id_user;primaryKey" json:"id_user"`
	IDKartu  uint   `gorm:"column:id_kartu;not null;index" json:"id_kartu"`
	IDRole   uint   `gorm:"column:id_role;not null" json:"id_role"`
	Username string `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Nama     string `gorm:"column:nama;size:255;not null" json:"nama"`
}

// TableName keeps the legacy table name.
func (Akun) TableName() string { return "akun" }
