package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sppg/backend/internal/domain/notification"
	"github.com/sppg/backend/internal/domain/shared"
)

// GormNotificationRepository stores notification delivery records
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Save creates or updates a notification record
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// FindAllForTenant finds notification records for a tenant, newest first
func (r *GormNotificationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	var notifications []notification.Notification
	query := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("tenant_id = ?", tenantID)

	if channel, ok := filter.Filters["channel"].(string); ok && channel != "" {
		query = query.Where("channel = ?", channel)
	}
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	sortField := ValidateSortField(filter.OrderBy, NotificationSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if err := query.Offset(filter.Offset()).Limit(filter.PageSize).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

var _ notification.Repository = (*GormNotificationRepository)(nil)
