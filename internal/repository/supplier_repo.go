package repository

import (
	"listen/internal/models"

	"gorm.io/gorm"
)

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(s *models.Supplier) error {
	return r.db.Create(s).Error
}

func (r *SupplierRepository) GetByID(id uint) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) List() ([]models.Supplier, error) {
	var list []models.Supplier
	err := r.db.Order("name").Find(&list).Error
	return list, err
}

func (r *SupplierRepository) Update(s *models.Supplier) error {
	return r.db.Save(s).Error
}

func (r *SupplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}
