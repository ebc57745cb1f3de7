package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const (
	maxMessageLength = 4000
	previewLength    = 80
)

// MessageService posts and reads chat messages.
type MessageService struct {
	messages   repository.MessageRepository
	chats      repository.ChatRepository
	chatSvc    *ChatService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// MessageDependencies bundles collaborators for the message service.
type MessageDependencies struct {
	MessageRepo repository.MessageRepository
	ChatRepo    repository.ChatRepository
	ChatService *ChatService
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(deps MessageDependencies) *MessageService {
	return &MessageService{
		messages:   deps.MessageRepo,
		chats:      deps.ChatRepo,
		chatSvc:    deps.ChatService,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Send posts content to chatID on behalf of actor and notifies the other participants.
func (s *MessageService) Send(ctx context.Context, actor *domain.User, chatID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("message content required", map[string]any{"content": "required"})
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperrors.NewValidationError("message too long", map[string]any{"content": "at most 4000 characters"})
	}

	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "chat")
	}
	ok, err := s.chatSvc.IsParticipant(ctx, actor, chat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbidden("not a participant of this chat")
	}

	msg := &domain.Message{ChatID: chat.ID, SenderID: actor.ID, Content: content}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	preview := truncate(content, previewLength)
	if err := s.chats.TouchLastMessage(ctx, chat.ID, preview, msg.CreatedAt); err != nil {
		return nil, err
	}

	participants, err := s.chatSvc.Participants(ctx, chat)
	if err != nil {
		s.logger.Warn("resolve chat participants", zap.String("chat_id", chat.ID), zap.Error(err))
	}
	recipients := make([]string, 0, len(participants))
	seen := map[string]bool{actor.ID: true}
	for _, id := range participants {
		if !seen[id] {
			seen[id] = true
			recipients = append(recipients, id)
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventMessageSent,
		AggregateID: chat.ID,
		ActorID:     actor.ID,
		Payload: events.MessageSentPayload{
			MessageID:   msg.ID,
			ChatID:      chat.ID,
			SenderName:  actor.Name,
			Recipients:  recipients,
			BodyPreview: preview,
		},
	})
	return msg, nil
}

// ListByChat returns messages of chatID in chronological order.
func (s *MessageService) ListByChat(ctx context.Context, actor *domain.User, chatID string) ([]domain.Message, error) {
	if _, err := s.chatSvc.Get(ctx, actor, chatID); err != nil {
		return nil, err
	}
	return s.messages.ListByChat(ctx, chatID)
}

// MarkSeen flags every message in chatID not sent by actor as seen and returns how many changed.
func (s *MessageService) MarkSeen(ctx context.Context, actor *domain.User, chatID string) (int64, error) {
	if _, err := s.chatSvc.Get(ctx, actor, chatID); err != nil {
		return 0, err
	}
	return s.messages.MarkSeen(ctx, chatID, actor.ID)
}

// UnreadCount counts unseen messages addressed to actor.
func (s *MessageService) UnreadCount(ctx context.Context, actor *domain.User) (int64, error) {
	return s.messages.CountUnread(ctx, actor.ID, actor.IsAdmin())
}

// Unread lists unseen messages addressed to actor.
func (s *MessageService) Unread(ctx context.Context, actor *domain.User) ([]domain.Message, error) {
	return s.messages.ListUnread(ctx, actor.ID, actor.IsAdmin())
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
