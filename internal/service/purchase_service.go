package service

import (
	"errors"
	"fmt"

	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var ErrEmptyPurchase = errors.New("purchase requires at least one item")

type PurchaseItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	// Pointer so a zero-cost line still satisfies required.
	UnitCostCents *int64 `json:"unit_cost_cents" binding:"required,min=0"`
}

type PurchaseService struct {
	purchaseRepo *repository.PurchaseRepository
	productRepo  *repository.ProductRepository
	supplierRepo *repository.SupplierRepository
	notifier     *NotificationService
}

func NewPurchaseService(purchaseRepo *repository.PurchaseRepository, productRepo *repository.ProductRepository,
	supplierRepo *repository.SupplierRepository, notifier *NotificationService) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		notifier:     notifier,
	}
}

// Create records an inbound stock order. Stock does not move until the
// purchase is marked received.
func (s *PurchaseService) Create(supplierID uint, items []PurchaseItemInput) (*models.Purchase, error) {
	if len(items) == 0 {
		return nil, ErrEmptyPurchase
	}
	supplier, err := s.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	purchase := &models.Purchase{
		SupplierID: supplierID,
		Status:     domain.PurchaseStatusOrdered,
	}
	for _, item := range items {
		if _, err := s.productRepo.GetByID(item.ProductID); err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
		purchase.Items = append(purchase.Items, models.PurchaseItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitCostCents: *item.UnitCostCents,
		})
		purchase.TotalCents += *item.UnitCostCents * int64(item.Quantity)
	}
	if err := s.purchaseRepo.Create(nil, purchase); err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyNewPurchase(purchase.ID, supplier.Name, purchase.TotalCents); err != nil {
		log.Warn().Err(err).Uint("purchase_id", purchase.ID).Msg("new-purchase notification failed")
	}
	return purchase, nil
}

// UpdateStatus moves a purchase to RECEIVED or CANCELLED. Receiving
// increments stock per line inside one transaction.
func (s *PurchaseService) UpdateStatus(purchaseID uint, status string) (*models.Purchase, error) {
	if status != domain.PurchaseStatusReceived && status != domain.PurchaseStatusCancelled {
		return nil, fmt.Errorf("%w: -> %s", ErrInvalidTransition, status)
	}
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchaseStatusOrdered {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, purchase.Status, status)
	}
	err = s.purchaseRepo.DB().Transaction(func(tx *gorm.DB) error {
		if status == domain.PurchaseStatusReceived {
			for _, item := range purchase.Items {
				if err := s.productRepo.IncrementStock(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return s.purchaseRepo.UpdateStatus(tx, purchaseID, status)
	})
	if err != nil {
		return nil, err
	}
	purchase.Status = status

	supplierName := ""
	if purchase.Supplier != nil {
		supplierName = purchase.Supplier.Name
	}
	if err := s.notifier.NotifyPurchaseStatus(purchase.ID, supplierName, status); err != nil {
		log.Warn().Err(err).Uint("purchase_id", purchase.ID).Msg("purchase-status notification failed")
	}
	return purchase, nil
}
