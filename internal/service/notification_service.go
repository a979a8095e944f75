package service

import (
	"errors"
	"fmt"

	"listen/internal/domain"
	"listen/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyMessage    = errors.New("notification message must not be empty")
	ErrUnknownCategory = errors.New("unknown notification category")
)

// NotificationStore is the durable side of the subsystem. Implemented by
// repository.NotificationRepository.
type NotificationStore interface {
	Create(*models.Notification) error
	ListAll() ([]models.Notification, error)
	CountUnread() (int64, error)
	MarkAllRead() error
	DeleteRead() (int64, error)
}

// Broadcaster pushes a persisted notification to live connections.
// Implemented by ws.Hub.
type Broadcaster interface {
	Broadcast(*models.Notification)
}

// NotificationService is the single entry point producers use to raise a
// notification. The persisted record is the source of truth; the live push
// is a best-effort accelerant on top of it.
type NotificationService struct {
	store NotificationStore
	hub   Broadcaster
}

func NewNotificationService(store NotificationStore, hub Broadcaster) *NotificationService {
	return &NotificationService{store: store, hub: hub}
}

// Raise persists the record, then fans it out to matching live connections.
// A persistence failure is returned to the producer and nothing is pushed;
// producers must treat that error as non-fatal to their own transaction.
// Fan-out itself cannot fail Raise: unreachable connections are skipped and
// late joiners only ever see the record via the historical feed.
func (s *NotificationService) Raise(message string, category domain.Category, targetRole domain.Role, relatedID *uint) error {
	if message == "" {
		return ErrEmptyMessage
	}
	if !category.Valid() {
		return ErrUnknownCategory
	}
	n := &models.Notification{
		Message:    message,
		Category:   category,
		TargetRole: targetRole,
		RelatedID:  relatedID,
	}
	if err := s.store.Create(n); err != nil {
		log.Error().Err(err).Str("category", string(category)).Msg("persist notification")
		return err
	}
	s.hub.Broadcast(n)
	return nil
}

// ListAll returns every record, newest first, plus the unread count.
func (s *NotificationService) ListAll() ([]models.Notification, int64, error) {
	list, err := s.store.ListAll()
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.store.CountUnread()
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *NotificationService) MarkAllRead() error {
	return s.store.MarkAllRead()
}

func (s *NotificationService) DeleteRead() (int64, error) {
	return s.store.DeleteRead()
}

// Per-scenario wrappers. Pure message formatting over Raise; only the admin
// user wrappers restrict delivery to a role.

func (s *NotificationService) NotifyLowStock(p *models.Product) error {
	id := p.ID
	return s.Raise(fmt.Sprintf("Low stock: %s has %d units left", p.Name, p.Stock),
		domain.CategoryLowStock, "", &id)
}

func (s *NotificationService) NotifyOutOfStock(p *models.Product) error {
	id := p.ID
	return s.Raise(fmt.Sprintf("Out of stock: %s is depleted", p.Name),
		domain.CategoryOutOfStock, "", &id)
}

func (s *NotificationService) NotifyNewSale(saleID uint, reference string, totalCents int64) error {
	id := saleID
	return s.Raise(fmt.Sprintf("New sale %s for %s", reference, formatCents(totalCents)),
		domain.CategoryNewSale, "", &id)
}

func (s *NotificationService) NotifySaleStatus(saleID uint, reference, status string) error {
	id := saleID
	return s.Raise(fmt.Sprintf("Sale %s is now %s", reference, status),
		domain.CategorySaleStatus, "", &id)
}

func (s *NotificationService) NotifyNewPurchase(purchaseID uint, supplierName string, totalCents int64) error {
	id := purchaseID
	return s.Raise(fmt.Sprintf("New purchase from %s for %s", supplierName, formatCents(totalCents)),
		domain.CategoryNewPurchase, "", &id)
}

func (s *NotificationService) NotifyPurchaseStatus(purchaseID uint, supplierName, status string) error {
	id := purchaseID
	return s.Raise(fmt.Sprintf("Purchase from %s is now %s", supplierName, status),
		domain.CategoryPurchaseStatus, "", &id)
}

func (s *NotificationService) NotifyInvoiceGenerated(saleID uint, number string) error {
	id := saleID
	return s.Raise(fmt.Sprintf("Invoice %s generated", number),
		domain.CategoryInvoiceGenerated, "", &id)
}

func (s *NotificationService) NotifyUserCreated(userID uint, email string) error {
	id := userID
	return s.Raise(fmt.Sprintf("User %s was created", email),
		domain.CategoryAdminUser, domain.RoleAdmin, &id)
}

func (s *NotificationService) NotifyUserUpdated(userID uint, email string) error {
	id := userID
	return s.Raise(fmt.Sprintf("User %s was updated", email),
		domain.CategoryAdminUser, domain.RoleAdmin, &id)
}

func (s *NotificationService) NotifyUserDeleted(userID uint, email string) error {
	id := userID
	return s.Raise(fmt.Sprintf("User %s was deleted", email),
		domain.CategoryAdminUser, domain.RoleAdmin, &id)
}

func (s *NotificationService) NotifyReportGenerated(kind string) error {
	return s.Raise(fmt.Sprintf("%s report generated", kind),
		domain.CategoryReportGenerated, "", nil)
}

func (s *NotificationService) NotifyInfo(message string) error {
	return s.Raise(message, domain.CategoryInfo, "", nil)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
