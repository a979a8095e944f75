package repository

import (
	"listen/internal/models"

	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(i *models.Invoice) error {
	return r.db.Create(i).Error
}

func (r *InvoiceRepository) GetBySaleID(saleID uint) (*models.Invoice, error) {
	var i models.Invoice
	if err := r.db.Where("sale_id = ?", saleID).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InvoiceRepository) List(limit, offset int) ([]models.Invoice, error) {
	var list []models.Invoice
	err := r.db.Order("issued_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
