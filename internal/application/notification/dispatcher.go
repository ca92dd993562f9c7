package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sppg/backend/internal/domain/identity"
	"github.com/sppg/backend/internal/domain/notification"
)

const sendTimeout = 30 * time.Second

// Dispatcher resolves recipients from the organization record and delivers
// over every configured gateway. Sends run in a goroutine detached from the
// caller's context; a failure is logged and recorded on the notification row
// but never propagated to the business operation that triggered it.
type Dispatcher struct {
	repo     notification.Repository
	sppgRepo identity.SppgRepository
	gateways []notification.Gateway
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the configured gateways
func NewDispatcher(repo notification.Repository, sppgRepo identity.SppgRepository, gateways []notification.Gateway, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		sppgRepo: sppgRepo,
		gateways: gateways,
		logger:   logger,
	}
}

// Broadcast sends the message to the organization's contact points over every
// gateway that has a recipient. Fire and forget.
func (d *Dispatcher) Broadcast(ctx context.Context, tenantID uuid.UUID, subject, body string) {
	org, err := d.sppgRepo.FindByID(ctx, tenantID)
	if err != nil {
		d.logger.Warn("notification recipient lookup failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		return
	}

	for _, gateway := range d.gateways {
		recipient := recipientFor(org, gateway.Channel())
		if recipient == "" {
			continue
		}
		record, err := notification.NewNotification(tenantID, gateway.Channel(), recipient, subject, body)
		if err != nil {
			d.logger.Warn("invalid notification skipped",
				zap.String("channel", string(gateway.Channel())),
				zap.Error(err))
			continue
		}
		if err := d.repo.Save(ctx, record); err != nil {
			d.logger.Warn("notification record not persisted",
				zap.String("channel", string(gateway.Channel())),
				zap.Error(err))
			continue
		}

		d.wg.Add(1)
		go d.deliver(gateway, record)
	}
}

// Wait blocks until all in-flight deliveries finish, used on shutdown
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(gateway notification.Gateway, record *notification.Notification) {
	defer d.wg.Done()

	// Detached from the request context so an HTTP response doesn't cancel
	// the delivery mid-flight.
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := gateway.Send(ctx, record.Recipient, record.Subject, record.Body); err != nil {
		record.MarkFailed(err)
		d.logger.Warn("notification delivery failed",
			zap.String("channel", string(record.Channel)),
			zap.String("recipient", record.Recipient),
			zap.Error(err))
	} else {
		record.MarkSent()
		d.logger.Info("notification delivered",
			zap.String("channel", string(record.Channel)),
			zap.String("recipient", record.Recipient))
	}

	if err := d.repo.Save(ctx, record); err != nil {
		d.logger.Warn("notification status not persisted",
			zap.String("notification_id", record.ID.String()),
			zap.Error(err))
	}
}

func recipientFor(org *identity.Sppg, channel notification.Channel) string {
	switch channel {
	case notification.ChannelWhatsApp:
		return org.Phone
	case notification.ChannelEmail:
		return org.Email
	}
	return ""
}
