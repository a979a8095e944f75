package repository

import (
	"listen/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListAll returns every notification, most recent first.
func (r *NotificationRepository) ListAll() ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnread() (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).Where("`read` = ?", false).Count(&n).Error
	return n, err
}

// MarkAllRead flips every unread notification to read. Set-based, idempotent.
func (r *NotificationRepository) MarkAllRead() error {
	return r.db.Model(&models.Notification{}).
		Where("`read` = ?", false).
		Update("read", true).Error
}

// DeleteRead hard-deletes every read notification and returns the count removed.
func (r *NotificationRepository) DeleteRead() (int64, error) {
	res := r.db.Where("`read` = ?", true).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
