package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brainswarm/booking-api/internal/events"
)

// mailSendTimeout bounds one provider round trip. Sends outlive the request
// that triggered them.
const mailSendTimeout = 10 * time.Second

var bookingConfirmationHTML = template.Must(template.New("booking_confirmation").Parse(
	`<p>Hi {{.Username}},</p><p>we received your <strong>{{.ServiceType}}</strong> booking for {{.PreferredDate}}.</p><p>Status: pending.</p>`,
))

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
	pending    sync.WaitGroup
}

// NewNotificationService creates the service. A nil mailer disables email.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventBookingCreated, n.handleBookingCreated)
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("event_id", event.ID), zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleBookingCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("BookingCreated", zap.String("event_id", event.ID), zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))

	payload, ok := event.Payload.(events.BookingCreatedPayload)
	if !ok || n.mailer == nil || payload.Email == "" {
		return nil
	}

	msg, err := bookingConfirmation(payload)
	if err != nil {
		return err
	}

	n.pending.Add(1)
	go n.send(context.WithoutCancel(ctx), payload.BookingID, msg)
	return nil
}

func (n *NotificationService) send(ctx context.Context, bookingID int64, msg EmailMessage) {
	defer n.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("booking confirmation email panicked", zap.Int64("booking_id", bookingID), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, mailSendTimeout)
	defer cancel()
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Warn("booking confirmation email failed", zap.Int64("booking_id", bookingID), zap.Error(err))
		return
	}
	n.logger.Debug("booking confirmation sent", zap.Int64("booking_id", bookingID))
}

// Wait blocks until in-flight emails finish or ctx is done.
func (n *NotificationService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func bookingConfirmation(payload events.BookingCreatedPayload) (EmailMessage, error) {
	var html bytes.Buffer
	if err := bookingConfirmationHTML.Execute(&html, payload); err != nil {
		return EmailMessage{}, fmt.Errorf("render booking confirmation: %w", err)
	}
	return EmailMessage{
		ToName:    payload.Username,
		ToAddress: payload.Email,
		Subject:   fmt.Sprintf("Booking #%d received", payload.BookingID),
		PlainText: fmt.Sprintf("Hi %s, we received your %s booking for %s. Status: pending.",
			payload.Username, payload.ServiceType, payload.PreferredDate),
		HTML: html.String(),
	}, nil
}
