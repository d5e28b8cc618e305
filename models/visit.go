package models

import "time"

// Visit is one attendance/purchase event, owned by a Customer. The staff
// reference is informational only and may be nil.
type Visit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CustomerID uint       `gorm:"not null;index" json:"customer_id"`
	VisitDate  time.Time  `gorm:"not null" json:"visit_date"`
	Memo       *string    `json:"memo"`
	StaffID    *uint      `gorm:"index" json:"staff_id"`
	CreatedAt  time.Time  `json:"created_at"`
	Items      []VisitItem `gorm:"foreignKey:VisitID" json:"items"`
}

// VisitItem is one purchased category line within a visit. FollowDueDate is
// fixed at creation from the category offset table and is not recomputed if
// the table later changes. FollowSentAt moves from unset to set exactly once.
type VisitItem struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	VisitID     uint       `gorm:"not null;index" json:"visit_id"`
	Category    string     `gorm:"not null;index" json:"category"`
	ProductName *string    `json:"product_name"`
	Note        *string    `json:"note"`

	FollowDueDate time.Time  `gorm:"not null;index" json:"follow_due_date"`
	FollowSentAt  *time.Time `json:"follow_sent_at"`

	CreatedAt time.Time `json:"created_at"`
}
