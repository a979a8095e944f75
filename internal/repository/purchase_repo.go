package repository

import (
	"time"

	"listen/internal/models"

	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// DB exposes the handle for cross-repo transactions owned by services.
func (r *PurchaseRepository) DB() *gorm.DB { return r.db }

func (r *PurchaseRepository) Create(tx *gorm.DB, p *models.Purchase) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(p).Error
}

func (r *PurchaseRepository) GetByID(id uint) (*models.Purchase, error) {
	var p models.Purchase
	if err := r.db.Preload("Supplier").Preload("Items").Preload("Items.Product").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepository) List(limit, offset int) ([]models.Purchase, error) {
	var list []models.Purchase
	err := r.db.Preload("Supplier").Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *PurchaseRepository) UpdateStatus(tx *gorm.DB, id uint, status string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Model(&models.Purchase{}).Where("id = ?", id).Update("status", status).Error
}

// PurchaseSummary aggregates purchases between two instants for reporting.
type PurchaseSummary struct {
	Count      int64            `json:"count"`
	TotalCents int64            `json:"total_cents"`
	ByStatus   map[string]int64 `json:"by_status"`
}

func (r *PurchaseRepository) Summarize(from, to time.Time) (*PurchaseSummary, error) {
	base := r.db.Model(&models.Purchase{}).Where("created_at >= ? AND created_at < ?", from, to)

	var sum PurchaseSummary
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
