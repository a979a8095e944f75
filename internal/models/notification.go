package models

import (
	"time"

	"listen/internal/domain"
)

// Notification is one durable event of interest to back-office staff.
//
// TargetRole restricts live delivery only; it is stored for audit regardless
// of who was connected at push time. Read flips false->true exclusively via
// the bulk mark-all operation and never reverts. Cleanup is a hard delete,
// so there is no soft-delete column here.
type Notification struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Message    string          `gorm:"type:text;not null" json:"message"`
	Category   domain.Category `gorm:"size:40;not null;index" json:"category"`
	TargetRole domain.Role     `gorm:"size:20;index" json:"target_role"` // empty = broadcast
	RelatedID  *uint           `json:"related_id"`                       // opaque business-entity reference
	Read       bool            `gorm:"not null;default:false;index" json:"read"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
