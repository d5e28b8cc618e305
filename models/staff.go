package models

// Staff is an operator account. The password hash never leaves the server.
type Staff struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	StaffCode *string `gorm:"uniqueIndex" json:"staff_code"`
	Name      *string `json:"name"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	IsActive  bool    `gorm:"not null;default:true" json:"is_active"`

	HashedPassword string `gorm:"not null" json:"-"`
}
