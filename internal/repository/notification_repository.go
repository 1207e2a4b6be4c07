package repository

import (
	"errors"

	"friendchat/internal/model"

	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned by GetByID when no row matches.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository persists notifications. Callers are trusted to
// address them correctly; there is no authorization logic here.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a NotificationRepository.
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification.
func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

// GetByID fetches a notification by id.
func (r *NotificationRepository) GetByID(id string) (*model.Notification, error) {
	var n model.Notification
	err := r.db.First(&n, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

// MarkRead flips a notification to READ.
func (r *NotificationRepository) MarkRead(id string) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("status", model.NotificationRead).Error
}

// Delete removes a notification.
func (r *NotificationRepository) Delete(id string) error {
	return r.db.Delete(&model.Notification{}, "id = ?", id).Error
}

// ListByRecipient returns a user's notifications in creation order.
func (r *NotificationRepository) ListByRecipient(recipientID string) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at ASC, id ASC").
		Find(&notifications).Error
	return notifications, err
}
