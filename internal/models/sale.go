package models

import (
	"time"

	"gorm.io/gorm"
)

// Sale is an outbound order. Reference is a stable identifier safe to hand
// to clients (the numeric ID stays internal).
type Sale struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Reference  string         `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	ClientID   uint           `gorm:"not null;index" json:"client_id"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // PENDING | PAID | SHIPPED | DELIVERED | CANCELLED
	TotalCents int64          `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

type SaleItem struct {
	ID             uint  `gorm:"primaryKey" json:"id"`
	SaleID         uint  `gorm:"not null;index" json:"sale_id"`
	ProductID      uint  `gorm:"not null;index" json:"product_id"`
	Quantity       int   `gorm:"not null" json:"quantity"`
	UnitPriceCents int64 `gorm:"not null" json:"unit_price_cents"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
