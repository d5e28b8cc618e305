package models

import "time"

// Customer is a salon customer and their marketing profile. LastVisitDate is
// derived from the customer's visits and is recomputed by the visit service on
// every create/update/delete; it must never be written directly.
type Customer struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;index" json:"name"`

	Kana  *string `gorm:"index" json:"kana"`
	Phone *string `gorm:"index" json:"phone"`
	Email *string `gorm:"index" json:"email"`
	Note  *string `json:"note"`

	Birthday      *time.Time `json:"birthday"`
	EmailOptIn    bool       `gorm:"not null;default:true" json:"email_opt_in"`
	LastVisitDate *time.Time `json:"last_visit_date"`

	CreatedAt time.Time `json:"created_at"`

	Visits []Visit `gorm:"foreignKey:CustomerID" json:"-"`
}
