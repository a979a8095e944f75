package repository

import (
	"listen/internal/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(c *models.Client) error {
	return r.db.Create(c).Error
}

func (r *ClientRepository) GetByID(id uint) (*models.Client, error) {
	var c models.Client
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByEmail(email string) (*models.Client, error) {
	var c models.Client
	if err := r.db.Where("email = ?", email).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) GetByGoogleID(googleID string) (*models.Client, error) {
	var c models.Client
	if err := r.db.Where("google_id = ?", googleID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) List() ([]models.Client, error) {
	var list []models.Client
	err := r.db.Order("name").Find(&list).Error
	return list, err
}

func (r *ClientRepository) Update(c *models.Client) error {
	return r.db.Save(c).Error
}

func (r *ClientRepository) Delete(id uint) error {
	return r.db.Delete(&models.Client{}, id).Error
}
