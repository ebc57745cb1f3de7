package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

// ChatService opens conversations and resolves who takes part in them.
type ChatService struct {
	chats   repository.ChatRepository
	vendors repository.VendorRepository
	users   repository.UserRepository
}

// ChatDependencies bundles repositories for the chat service.
type ChatDependencies struct {
	ChatRepo   repository.ChatRepository
	VendorRepo repository.VendorRepository
	UserRepo   repository.UserRepository
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	return &ChatService{chats: deps.ChatRepo, vendors: deps.VendorRepo, users: deps.UserRepo}
}

// OpenWithVendor returns the chat between actor and vendorID, creating it on first use.
func (s *ChatService) OpenWithVendor(ctx context.Context, actor *domain.User, vendorID string) (*domain.Chat, bool, error) {
	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, false, apperrors.NotFoundOr(err, "vendor")
	}
	if vendor.UserID == actor.ID {
		return nil, false, apperrors.NewValidationError("cannot open a chat with your own vendor", nil)
	}
	userID := actor.ID
	return s.chats.FindOrCreate(ctx, &domain.Chat{
		Kind:     domain.ChatKindUserVendor,
		UserID:   &userID,
		VendorID: &vendor.ID,
	})
}

// OpenWithPeerVendor returns the chat between actor's vendor and peerVendorID. The pair is
// unordered: either side opening it yields the same chat.
func (s *ChatService) OpenWithPeerVendor(ctx context.Context, actor *domain.User, peerVendorID string) (*domain.Chat, bool, error) {
	own, err := s.vendors.GetByUserID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, apperrors.NewForbidden("only vendor owners can open vendor chats")
		}
		return nil, false, err
	}
	peer, err := s.vendors.GetByID(ctx, peerVendorID)
	if err != nil {
		return nil, false, apperrors.NotFoundOr(err, "vendor")
	}
	if own.ID == peer.ID {
		return nil, false, apperrors.NewValidationError("cannot open a chat with your own vendor", nil)
	}

	first, second := own.ID, peer.ID
	if second < first {
		first, second = second, first
	}
	return s.chats.FindOrCreate(ctx, &domain.Chat{
		Kind:         domain.ChatKindVendorVendor,
		VendorID:     &first,
		PeerVendorID: &second,
	})
}

// OpenSupport returns actor's support chat, creating it on first use.
func (s *ChatService) OpenSupport(ctx context.Context, actor *domain.User) (*domain.Chat, bool, error) {
	userID := actor.ID
	return s.chats.FindOrCreate(ctx, &domain.Chat{Kind: domain.ChatKindSupport, UserID: &userID})
}

// Get loads a chat visible to actor.
func (s *ChatService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Chat, error) {
	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "chat")
	}
	if actor.IsAdmin() {
		return chat, nil
	}
	ok, err := s.IsParticipant(ctx, actor, chat)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NewForbidden("not a participant of this chat")
	}
	return chat, nil
}

// ListByUser returns chats userID takes part in as a customer.
func (s *ChatService) ListByUser(ctx context.Context, actor *domain.User, userID string) ([]domain.Chat, error) {
	if err := requireAccess(actor, userID); err != nil {
		return nil, err
	}
	return s.chats.ListByUser(ctx, userID)
}

// ListByVendor returns chats vendorID takes part in.
func (s *ChatService) ListByVendor(ctx context.Context, actor *domain.User, vendorID string) ([]domain.Chat, error) {
	if _, err := ownsVendor(ctx, s.vendors, actor, vendorID); err != nil {
		return nil, err
	}
	return s.chats.ListByVendor(ctx, vendorID)
}

// ListSupport returns support chats, most recently active first.
func (s *ChatService) ListSupport(ctx context.Context) ([]domain.Chat, error) {
	chats, err := s.chats.ListByKind(ctx, domain.ChatKindSupport)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(chats, func(i, j int) bool {
		return lastActivity(chats[i]).After(lastActivity(chats[j]))
	})
	return chats, nil
}

// IsParticipant reports whether actor may post in chat. Admins take part in support chats.
func (s *ChatService) IsParticipant(ctx context.Context, actor *domain.User, chat *domain.Chat) (bool, error) {
	if chat.Kind == domain.ChatKindSupport && actor.IsAdmin() {
		return true, nil
	}
	participants, err := s.Participants(ctx, chat)
	if err != nil {
		return false, err
	}
	for _, id := range participants {
		if id == actor.ID {
			return true, nil
		}
	}
	return false, nil
}

// Participants resolves the user ids taking part in chat. Vendors resolve to their owners;
// support chats include every admin.
func (s *ChatService) Participants(ctx context.Context, chat *domain.Chat) ([]string, error) {
	var ids []string
	if chat.UserID != nil {
		ids = append(ids, *chat.UserID)
	}
	for _, vendorID := range []*string{chat.VendorID, chat.PeerVendorID} {
		if vendorID == nil {
			continue
		}
		vendor, err := s.vendors.GetByID(ctx, *vendorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		ids = append(ids, vendor.UserID)
	}
	if chat.Kind == domain.ChatKindSupport {
		users, err := s.users.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.Role == domain.UserRoleAdmin {
				ids = append(ids, u.ID)
			}
		}
	}
	return ids, nil
}

func lastActivity(c domain.Chat) time.Time {
	if c.LastMessageAt != nil {
		return *c.LastMessageAt
	}
	return c.CreatedAt
}
