package models

import "time"

// Invoice is the durable billing record for a sale. One per sale.
type Invoice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SaleID     uint      `gorm:"uniqueIndex;not null" json:"sale_id"`
	Number     string    `gorm:"uniqueIndex;size:36;not null" json:"number"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	IssuedAt   time.Time `gorm:"autoCreateTime" json:"issued_at"`

	Sale *Sale `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}
