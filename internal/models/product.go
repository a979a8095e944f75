package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"size:255;not null;index" json:"name"`
	SKU               string         `gorm:"uniqueIndex;size:64;not null" json:"sku"`
	Description       string         `gorm:"type:text" json:"description"`
	PriceCents        int64          `gorm:"not null" json:"price_cents"`
	Stock             int            `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int            `gorm:"not null;default:5" json:"low_stock_threshold"`
	ImageURL          string         `gorm:"size:512" json:"image_url"`
	ThumbnailURL      string         `gorm:"size:512" json:"thumbnail_url"`
	SupplierID        *uint          `gorm:"index" json:"supplier_id"` // preferred supplier, optional
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// LowOnStock reports whether the product is at or below its threshold but not depleted.
func (p *Product) LowOnStock() bool {
	return p.Stock > 0 && p.Stock <= p.LowStockThreshold
}
