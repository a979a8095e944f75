package models

import "time"

// AuditLog records admin-surface mutations (who did what to which entity).
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Entity    string    `gorm:"size:64;not null" json:"entity"`
	EntityID  uint      `gorm:"index" json:"entity_id"`
	Detail    string    `gorm:"size:512" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
