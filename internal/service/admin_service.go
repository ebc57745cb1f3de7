package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/cache"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const (
	defaultGrowthMonths = 6
	maxGrowthMonths     = 24
	defaultBestVendors  = 10
	maxBestVendors      = 50
)

// AdminService backs the moderation and analytics endpoints.
type AdminService struct {
	stats      repository.StatsRepository
	vendors    repository.VendorRepository
	chats      *ChatService
	cache      *cache.Cache
	cacheCfg   config.CacheConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AdminDependencies bundles collaborators for the admin service.
type AdminDependencies struct {
	StatsRepo   repository.StatsRepository
	VendorRepo  repository.VendorRepository
	ChatService *ChatService
	Cache       *cache.Cache
	CacheConfig config.CacheConfig
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Clock       func() time.Time
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AdminService{
		stats:      deps.StatsRepo,
		vendors:    deps.VendorRepo,
		chats:      deps.ChatService,
		cache:      deps.Cache,
		cacheCfg:   deps.CacheConfig,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
		now:        clock,
	}
}

// Dashboard returns platform totals, served from cache for a short while.
func (s *AdminService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var cached domain.DashboardStats
	if hit, err := s.cache.GetJSON(ctx, cache.DashboardStatsKey(), &cached); err != nil {
		s.logger.Warn("dashboard cache read", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cache.DashboardStatsKey(), stats, ttl(s.cacheCfg.DashboardTTLSeconds)); err != nil {
		s.logger.Warn("dashboard cache write", zap.Error(err))
	}
	return stats, nil
}

// PendingVendors lists vendors awaiting moderation, newest first.
func (s *AdminService) PendingVendors(ctx context.Context) ([]domain.Vendor, error) {
	pending := domain.VendorStatusPending
	return s.vendors.List(ctx, repository.VendorFilter{Status: &pending, Limit: maxPageSize})
}

// ApproveVendor publishes vendorID.
func (s *AdminService) ApproveVendor(ctx context.Context, actor *domain.User, vendorID string) (*domain.Vendor, error) {
	return s.moderate(ctx, actor, vendorID, domain.VendorStatusApproved, "", events.EventVendorApproved)
}

// RejectVendor declines vendorID with reason.
func (s *AdminService) RejectVendor(ctx context.Context, actor *domain.User, vendorID, reason string) (*domain.Vendor, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason required", map[string]any{"reason": "required"})
	}
	return s.moderate(ctx, actor, vendorID, domain.VendorStatusRejected, reason, events.EventVendorRejected)
}

func (s *AdminService) moderate(ctx context.Context, actor *domain.User, vendorID string, status domain.VendorStatus, reason string, eventType events.EventType) (*domain.Vendor, error) {
	vendor, err := s.vendors.SetStatus(ctx, vendorID, status, reason)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	if err := s.cache.Delete(ctx, cache.DashboardStatsKey()); err != nil {
		s.logger.Warn("dashboard cache invalidate", zap.Error(err))
	}
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        eventType,
		AggregateID: vendor.ID,
		ActorID:     actor.ID,
		Payload:     vendorPayload(vendor),
	})
	return vendor, nil
}

// SupportChats lists support conversations, most recently active first.
func (s *AdminService) SupportChats(ctx context.Context) ([]domain.Chat, error) {
	return s.chats.ListSupport(ctx)
}

// BestVendors ranks approved vendors with at least one review by rating, then review count.
func (s *AdminService) BestVendors(ctx context.Context, limit int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = defaultBestVendors
	}
	if limit > maxBestVendors {
		limit = maxBestVendors
	}
	approved := domain.VendorStatusApproved
	return s.vendors.List(ctx, repository.VendorFilter{
		Status:        &approved,
		MinReviews:    1,
		OrderByRating: true,
		Limit:         limit,
	})
}

// Growth reports monthly sign-ups and creations for the last months calendar months,
// including the current one. Months without activity are reported as zeros.
func (s *AdminService) Growth(ctx context.Context, months int) ([]domain.GrowthPoint, error) {
	if months == 0 {
		months = defaultGrowthMonths
	}
	if months < 1 || months > maxGrowthMonths {
		return nil, apperrors.NewValidationError("months must be between 1 and 24", map[string]any{"months": months})
	}

	now := s.now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := current.AddDate(0, -(months - 1), 0)

	rows, err := s.stats.Growth(ctx, since)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[time.Time]domain.GrowthPoint, len(rows))
	for _, p := range rows {
		m := p.Month.UTC()
		key := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[key] = p
	}

	points := make([]domain.GrowthPoint, 0, months)
	for i := 0; i < months; i++ {
		month := since.AddDate(0, i, 0)
		p := byMonth[month]
		p.Month = month
		points = append(points, p)
	}
	return points, nil
}
