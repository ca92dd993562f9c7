package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sppg/backend/internal/domain/shared"
)

// Channel is the delivery medium for a notification
type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
)

// IsValid checks if the channel is a known value
func (c Channel) IsValid() bool {
	return c == ChannelWhatsApp || c == ChannelEmail
}

// Status tracks delivery of a notification
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Notification is a persisted outbound message. Delivery is best effort and
// never blocks the business transaction that triggered it.
type Notification struct {
	shared.BaseEntity
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Channel   Channel   `gorm:"type:varchar(20);not null"`
	Recipient string    `gorm:"type:varchar(200);not null"`
	Subject   string    `gorm:"type:varchar(200)"`
	Body      string    `gorm:"type:text;not null"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	LastError string    `gorm:"type:text"`
	SentAt    *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a pending notification
func NewNotification(tenantID uuid.UUID, channel Channel, recipient, subject, body string) (*Notification, error) {
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Unknown notification channel")
	}
	if strings.TrimSpace(recipient) == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Notification body cannot be empty")
	}
	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		Channel:    channel,
		Recipient:  strings.TrimSpace(recipient),
		Subject:    strings.TrimSpace(subject),
		Body:       body,
		Status:     StatusPending,
	}, nil
}

// MarkSent records a successful delivery
func (n *Notification) MarkSent() {
	now := time.Now()
	n.Status = StatusSent
	n.SentAt = &now
	n.LastError = ""
	n.Touch()
}

// MarkFailed records a delivery failure with its cause
func (n *Notification) MarkFailed(err error) {
	n.Status = StatusFailed
	if err != nil {
		n.LastError = err.Error()
	}
	n.Touch()
}

// Gateway delivers a notification over one channel. Implementations live in
// infrastructure (Fonnte for WhatsApp, Resend for email).
type Gateway interface {
	Channel() Channel
	Send(ctx context.Context, recipient, subject, body string) error
}

// Repository stores notification records
type Repository interface {
	Save(ctx context.Context, notification *Notification) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Notification, error)
}
