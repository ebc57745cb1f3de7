package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/i18n"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const notificationListLimit = 100

// NotificationService turns domain events into in-app notifications and serves them to users.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	translator    *i18n.Translator
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NotificationDependencies bundles collaborators for the notification service.
type NotificationDependencies struct {
	Dispatcher       events.Dispatcher
	NotificationRepo repository.NotificationRepository
	Translator       *i18n.Translator
	Logger           *zap.Logger
	Config           config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		dispatcher:    deps.Dispatcher,
		notifications: deps.NotificationRepo,
		translator:    deps.Translator,
		logger:        loggerOrNop(deps.Logger),
		cfg:           deps.Config,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventVendorApproved, n.handleVendorModerated)
	n.dispatcher.Subscribe(events.EventVendorRejected, n.handleVendorModerated)
	n.dispatcher.Subscribe(events.EventReviewCreated, n.handleReviewCreated)
	n.dispatcher.Subscribe(events.EventContractCreated, n.handleContractCreated)
	n.dispatcher.Subscribe(events.EventPaymentReceived, n.handlePaymentReceived)
}

// Message describes a notification to render and store.
type Message struct {
	Kind     domain.NotificationKind
	TitleKey string
	BodyKey  string
	Data     map[string]any
	Link     string
}

// Notify renders msg in the configured locale and stores it for userID.
func (n *NotificationService) Notify(ctx context.Context, userID string, msg Message) (*domain.Notification, error) {
	if userID == "" {
		return nil, nil
	}
	notification := &domain.Notification{
		UserID: userID,
		Kind:   msg.Kind,
		Title:  n.translator.T(msg.TitleKey, msg.Data),
		Body:   n.translator.T(msg.BodyKey, msg.Data),
		Link:   msg.Link,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		return nil, err
	}
	n.sendEmailNotificationStub(ctx, notification)
	n.sendWebhookNotificationStub(ctx, notification)
	return notification, nil
}

// List returns the caller's notifications, newest first.
func (n *NotificationService) List(ctx context.Context, actor *domain.User) ([]domain.Notification, error) {
	return n.notifications.ListByUser(ctx, actor.ID, notificationListLimit)
}

// UnreadCount counts the caller's unread notifications.
func (n *NotificationService) UnreadCount(ctx context.Context, actor *domain.User) (int64, error) {
	return n.notifications.CountUnread(ctx, actor.ID)
}

// MarkRead flags one of the caller's notifications as read.
func (n *NotificationService) MarkRead(ctx context.Context, actor *domain.User, id string) error {
	return apperrors.NotFoundOr(n.notifications.MarkRead(ctx, actor.ID, id), "notification")
}

// MarkAllRead flags every notification of the caller as read.
func (n *NotificationService) MarkAllRead(ctx context.Context, actor *domain.User) (int64, error) {
	return n.notifications.MarkAllRead(ctx, actor.ID)
}

// Delete removes one of the caller's notifications.
func (n *NotificationService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return apperrors.NotFoundOr(n.notifications.Delete(ctx, actor.ID, id), "notification")
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return nil
	}
	msg := Message{
		Kind:     domain.NotificationMessage,
		TitleKey: "notify_message_title",
		BodyKey:  "notify_message_body",
		Data:     map[string]any{"Sender": p.SenderName, "Preview": p.BodyPreview},
		Link:     "/chats/" + p.ChatID,
	}
	return n.notifyAll(ctx, event, p.Recipients, msg)
}

func (n *NotificationService) handleVendorModerated(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.VendorPayload)
	if !ok {
		return nil
	}
	msg := Message{
		Kind:     domain.NotificationVendorApproved,
		TitleKey: "notify_vendor_approved_title",
		BodyKey:  "notify_vendor_approved_body",
		Data:     map[string]any{"Business": p.BusinessName, "Reason": p.Reason},
		Link:     "/vendors/" + event.AggregateID,
	}
	if event.Type == events.EventVendorRejected {
		msg.Kind = domain.NotificationVendorRejected
		msg.TitleKey = "notify_vendor_rejected_title"
		msg.BodyKey = "notify_vendor_rejected_body"
	}
	return n.notifyAll(ctx, event, []string{p.OwnerID}, msg)
}

func (n *NotificationService) handleReviewCreated(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.ReviewCreatedPayload)
	if !ok {
		return nil
	}
	return n.notifyAll(ctx, event, []string{p.VendorOwnerID}, Message{
		Kind:     domain.NotificationReview,
		TitleKey: "notify_review_title",
		BodyKey:  "notify_review_body",
		Data:     map[string]any{"Business": p.BusinessName, "Rating": p.Rating},
		Link:     "/vendors/" + p.VendorID,
	})
}

func (n *NotificationService) handleContractCreated(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.ContractCreatedPayload)
	if !ok {
		return nil
	}
	return n.notifyAll(ctx, event, []string{p.VendorOwnerID, p.CustomerID}, Message{
		Kind:     domain.NotificationContract,
		TitleKey: "notify_contract_title",
		BodyKey:  "notify_contract_body",
		Data:     map[string]any{"Fee": formatMoney(p.TotalFee), "Deadline": formatDate(p.Deadline)},
		Link:     "/contracts/" + event.AggregateID,
	})
}

func (n *NotificationService) handlePaymentReceived(ctx context.Context, event events.Event) error {
	p, ok := event.Payload.(events.PaymentReceivedPayload)
	if !ok {
		return nil
	}
	bodyKey := "notify_payment_body"
	if p.Settled {
		bodyKey = "notify_payment_settled_body"
	}
	return n.notifyAll(ctx, event, []string{p.VendorOwnerID}, Message{
		Kind:     domain.NotificationPayment,
		TitleKey: "notify_payment_title",
		BodyKey:  bodyKey,
		Data:     map[string]any{"Amount": formatMoney(p.Amount)},
		Link:     "/contracts/" + p.ContractID,
	})
}

// notifyAll stores msg for every recipient except the actor that caused event.
func (n *NotificationService) notifyAll(ctx context.Context, event events.Event, recipients []string, msg Message) error {
	seen := map[string]bool{}
	for _, userID := range recipients {
		if userID == "" || userID == event.ActorID || seen[userID] {
			continue
		}
		seen[userID] = true
		if _, err := n.Notify(ctx, userID, msg); err != nil {
			n.logger.Warn("store notification",
				zap.String("event_type", string(event.Type)),
				zap.String("user_id", userID),
				zap.Error(err))
			return err
		}
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, notification *domain.Notification) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", notification.UserID),
		zap.String("kind", string(notification.Kind)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, notification *domain.Notification) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", notification.UserID),
		zap.String("kind", string(notification.Kind)))
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
