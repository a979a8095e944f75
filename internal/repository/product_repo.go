package repository

import (
	"errors"

	"listen/internal/models"

	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a decrement would take stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.Preload("Supplier").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetBySKU(sku string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Where("sku = ?", sku).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(limit, offset int) ([]models.Product, error) {
	var list []models.Product
	err := r.db.Order("name").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// ListInStock returns products with stock available, for the public catalog.
func (r *ProductRepository) ListInStock(limit, offset int) ([]models.Product, error) {
	var list []models.Product
	err := r.db.Where("stock > 0").Order("name").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DecrementStock atomically subtracts qty, refusing to go negative.
// tx may be a transaction handle or the base DB.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, productID uint, qty int) error {
	if tx == nil {
		tx = r.db
	}
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// IncrementStock adds qty back (purchase received, sale cancelled).
func (r *ProductRepository) IncrementStock(tx *gorm.DB, productID uint, qty int) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", qty)).Error
}
