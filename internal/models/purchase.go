package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase is an inbound stock order placed with a supplier.
type Purchase struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SupplierID uint           `gorm:"not null;index" json:"supplier_id"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // ORDERED | RECEIVED | CANCELLED
	TotalCents int64          `gorm:"not null" json:"total_cents"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Supplier *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

type PurchaseItem struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	PurchaseID    uint  `gorm:"not null;index" json:"purchase_id"`
	ProductID     uint  `gorm:"not null;index" json:"product_id"`
	Quantity      int   `gorm:"not null" json:"quantity"`
	UnitCostCents int64 `gorm:"not null" json:"unit_cost_cents"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
