package service

import (
	"errors"
	"fmt"

	"listen/internal/domain"
	"listen/internal/models"
	"listen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrEmptySale         = errors.New("sale requires at least one item")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvoiceExists     = errors.New("invoice already generated for this sale")
)

type SaleItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SaleService struct {
	saleRepo    *repository.SaleRepository
	productRepo *repository.ProductRepository
	clientRepo  *repository.ClientRepository
	invoiceRepo *repository.InvoiceRepository
	notifier    *NotificationService
}

func NewSaleService(saleRepo *repository.SaleRepository, productRepo *repository.ProductRepository,
	clientRepo *repository.ClientRepository, invoiceRepo *repository.InvoiceRepository,
	notifier *NotificationService) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
	}
}

// saleTransitions holds the allowed status moves. CANCELLED is reachable
// until the goods have shipped; DELIVERED and CANCELLED are terminal.
var saleTransitions = map[string][]string{
	domain.SaleStatusPending: {domain.SaleStatusPaid, domain.SaleStatusCancelled},
	domain.SaleStatusPaid:    {domain.SaleStatusShipped, domain.SaleStatusCancelled},
	domain.SaleStatusShipped: {domain.SaleStatusDelivered},
}

func saleTransitionAllowed(from, to string) bool {
	for _, s := range saleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Create places a sale for a client, decrementing stock per line inside one
// transaction. Any line with insufficient stock rejects the whole sale.
// Notifications fire after commit and never fail the sale.
func (s *SaleService) Create(clientID uint, items []SaleItemInput) (*models.Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptySale
	}
	if _, err := s.clientRepo.GetByID(clientID); err != nil {
		return nil, err
	}

	sale := &models.Sale{
		Reference: uuid.NewString(),
		ClientID:  clientID,
		Status:    domain.SaleStatusPending,
	}
	var productIDs []uint
	err := s.saleRepo.DB().Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var p models.Product
			if err := tx.First(&p, item.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			if err := s.productRepo.DecrementStock(tx, p.ID, item.Quantity); err != nil {
				return fmt.Errorf("product %s: %w", p.Name, err)
			}
			sale.Items = append(sale.Items, models.SaleItem{
				ProductID:      p.ID,
				Quantity:       item.Quantity,
				UnitPriceCents: p.PriceCents,
			})
			sale.TotalCents += p.PriceCents * int64(item.Quantity)
			productIDs = append(productIDs, p.ID)
		}
		return s.saleRepo.Create(tx, sale)
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.NotifyNewSale(sale.ID, sale.Reference, sale.TotalCents); err != nil {
		log.Warn().Err(err).Uint("sale_id", sale.ID).Msg("new-sale notification failed")
	}
	s.raiseStockAlerts(productIDs)
	return sale, nil
}

// raiseStockAlerts re-reads the touched products and raises low/out-of-stock
// notifications for any that crossed their threshold.
func (s *SaleService) raiseStockAlerts(productIDs []uint) {
	for _, id := range productIDs {
		p, err := s.productRepo.GetByID(id)
		if err != nil {
			log.Warn().Err(err).Uint("product_id", id).Msg("stock alert check failed")
			continue
		}
		switch {
		case p.Stock == 0:
			if err := s.notifier.NotifyOutOfStock(p); err != nil {
				log.Warn().Err(err).Uint("product_id", id).Msg("out-of-stock notification failed")
			}
		case p.LowOnStock():
			if err := s.notifier.NotifyLowStock(p); err != nil {
				log.Warn().Err(err).Uint("product_id", id).Msg("low-stock notification failed")
			}
		}
	}
}

// UpdateStatus moves a sale along its lifecycle. Cancelling before shipment
// restores the decremented stock.
func (s *SaleService) UpdateStatus(saleID uint, status string) (*models.Sale, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if !saleTransitionAllowed(sale.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sale.Status, status)
	}
	err = s.saleRepo.DB().Transaction(func(tx *gorm.DB) error {
		if status == domain.SaleStatusCancelled {
			for _, item := range sale.Items {
				if err := s.productRepo.IncrementStock(tx, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return s.saleRepo.UpdateStatus(tx, saleID, status)
	})
	if err != nil {
		return nil, err
	}
	sale.Status = status

	if err := s.notifier.NotifySaleStatus(sale.ID, sale.Reference, status); err != nil {
		log.Warn().Err(err).Uint("sale_id", sale.ID).Msg("sale-status notification failed")
	}
	return sale, nil
}

// GenerateInvoice creates the one invoice for a sale and raises the
// invoice-generated notification.
func (s *SaleService) GenerateInvoice(saleID uint) (*models.Invoice, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.invoiceRepo.GetBySaleID(saleID); err == nil {
		return nil, ErrInvoiceExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	inv := &models.Invoice{
		SaleID:     sale.ID,
		Number:     uuid.NewString(),
		TotalCents: sale.TotalCents,
	}
	if err := s.invoiceRepo.Create(inv); err != nil {
		return nil, err
	}
	if err := s.notifier.NotifyInvoiceGenerated(sale.ID, inv.Number); err != nil {
		log.Warn().Err(err).Uint("sale_id", sale.ID).Msg("invoice notification failed")
	}
	return inv, nil
}
