package repository

import (
	"time"

	"listen/internal/models"

	"gorm.io/gorm"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) DB() *gorm.DB { return r.db }

func (r *SaleRepository) Create(tx *gorm.DB, s *models.Sale) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(s).Error
}

func (r *SaleRepository) GetByID(id uint) (*models.Sale, error) {
	var s models.Sale
	if err := r.db.Preload("Client").Preload("Items").Preload("Items.Product").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepository) List(limit, offset int) ([]models.Sale, error) {
	var list []models.Sale
	err := r.db.Preload("Client").Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *SaleRepository) ListByClient(clientID uint, limit, offset int) ([]models.Sale, error) {
	var list []models.Sale
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *SaleRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.Sale{}).Where("id = ?", id).Update("status", status).Error
}

// SalesSummary aggregates sales between two instants for reporting.
type SalesSummary struct {
	Count      int64            `json:"count"`
	TotalCents int64            `json:"total_cents"`
	ByStatus   map[string]int64 `json:"by_status"`
}

func (r *SaleRepository) Summarize(from, to time.Time) (*SalesSummary, error) {
	base := r.db.Model(&models.Sale{}).Where("created_at >= ? AND created_at < ?", from, to)

	var sum SalesSummary
	if err := base.Session(&gorm.Session{}).Count(&sum.Count).Error; err != nil {
		return nil, err
	}
	var total struct{ Total int64 }
	if err := base.Session(&gorm.Session{}).Select("COALESCE(SUM(total_cents),0) AS total").Scan(&total).Error; err != nil {
		return nil, err
	}
	sum.TotalCents = total.Total

	var rows []struct {
		Status string
		N      int64
	}
	if err := base.Session(&gorm.Session{}).Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	sum.ByStatus = make(map[string]int64, len(rows))
	for _, row := range rows {
		sum.ByStatus[row.Status] = row.N
	}
	return &sum, nil
}
