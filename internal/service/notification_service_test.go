package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/brainswarm/booking-api/internal/config"
	"github.com/brainswarm/booking-api/internal/events"
)

func bookingEvent(email string) events.Event {
	return events.NewEvent(events.EventBookingCreated, 1, events.BookingCreatedPayload{
		BookingID:     5,
		ServiceType:   "design",
		PreferredDate: "2025-10-01",
		Username:      "alice",
		Email:         email,
	})
}

func TestNotificationService_SendsBookingConfirmation(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	mailer := &recordingMailer{}
	notifications := NewNotificationService(dispatcher, mailer, nil)
	notifications.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), bookingEvent("alice@x.com")))
	require.NoError(t, notifications.Wait(context.Background()))

	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "alice@x.com", msg.ToAddress)
	assert.Equal(t, "Booking #5 received", msg.Subject)
	assert.Contains(t, msg.PlainText, "design")
	assert.Contains(t, msg.HTML, "2025-10-01")
}

func TestNotificationService_SkipsWithoutMailerOrAddress(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	mailer := &recordingMailer{}
	notifications := NewNotificationService(dispatcher, mailer, nil)
	notifications.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), bookingEvent("")))
	require.NoError(t, notifications.Wait(context.Background()))
	assert.Empty(t, mailer.sent)

	noMail := events.NewInMemoryDispatcher(nil)
	NewNotificationService(noMail, nil, nil).RegisterHandlers()
	assert.NoError(t, noMail.Publish(context.Background(), bookingEvent("alice@x.com")))
}

func TestNotificationService_MailFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	dispatcher := events.NewInMemoryDispatcher(zap.New(core))
	notifications := NewNotificationService(dispatcher, &recordingMailer{err: errors.New("503")}, zap.New(core))
	notifications.RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), bookingEvent("alice@x.com")))
	require.NoError(t, notifications.Wait(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("booking confirmation email failed").Len())
	assert.Zero(t, logs.FilterMessage("event handler failed").Len())
}

func TestNotificationService_EscapesUserInputInHTML(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	mailer := &recordingMailer{}
	notifications := NewNotificationService(dispatcher, mailer, nil)
	notifications.RegisterHandlers()

	event := events.NewEvent(events.EventBookingCreated, 1, events.BookingCreatedPayload{
		BookingID:     6,
		ServiceType:   `<a href="https://evil.example">Reset password</a>`,
		PreferredDate: "<script>alert(1)</script>",
		Username:      "<b>alice</b>",
		Email:         "alice@x.com",
	})
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.NoError(t, notifications.Wait(context.Background()))

	require.Len(t, mailer.sent, 1)
	html := mailer.sent[0].HTML
	assert.NotContains(t, html, "<a href")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>alice")
	assert.Contains(t, html, "&lt;a href=&#34;https://evil.example&#34;&gt;Reset password&lt;/a&gt;")
	assert.Contains(t, html, "<strong>")
}

func TestNotificationService_PublishDoesNotWaitForMail(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	mailer := &blockingMailer{release: make(chan struct{}), started: make(chan struct{})}
	notifications := NewNotificationService(dispatcher, mailer, nil)
	notifications.RegisterHandlers()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, dispatcher.Publish(ctx, bookingEvent("alice@x.com")))
	cancel()

	<-mailer.started
	short, stop := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer stop()
	assert.ErrorIs(t, notifications.Wait(short), context.DeadlineExceeded)

	close(mailer.release)
	require.NoError(t, notifications.Wait(context.Background()))
	assert.NoError(t, mailer.ctxErr, "send context must outlive the request")
}

func TestNewSendGridMailer_RequiresKeyAndSender(t *testing.T) {
	assert.Nil(t, NewSendGridMailer(config.NotificationConfig{}))
	assert.Nil(t, NewSendGridMailer(config.NotificationConfig{SendGridAPIKey: "SG.x"}))
	assert.NotNil(t, NewSendGridMailer(config.NotificationConfig{SendGridAPIKey: "SG.x", EmailFrom: "noreply@brainswarm.com"}))
}
