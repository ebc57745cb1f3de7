package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/cache"
	"github.com/spec-kit/event-marketplace/internal/config"
	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	featuredLimit   = 8
)

// VendorService coordinates vendor listing, registration and profile updates.
type VendorService struct {
	vendors    repository.VendorRepository
	packages   repository.PackageRepository
	reviews    repository.ReviewRepository
	users      repository.UserRepository
	cache      *cache.Cache
	cacheCfg   config.CacheConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// VendorDependencies bundles collaborators for the vendor service.
type VendorDependencies struct {
	VendorRepo  repository.VendorRepository
	PackageRepo repository.PackageRepository
	ReviewRepo  repository.ReviewRepository
	UserRepo    repository.UserRepository
	Cache       *cache.Cache
	CacheConfig config.CacheConfig
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// VendorListInput describes public listing filters.
type VendorListInput struct {
	Category *string
	Location *string
	Search   *string
	Page     int
	PageSize int
}

// VendorInput carries vendor profile fields. Nil fields are left unchanged on update.
type VendorInput struct {
	BusinessName *string
	Category     *string
	Description  *string
	Location     *string
	Phone        *string
	Email        *string
	ImageURL     *string
	PriceFrom    *float64
	Featured     *bool
}

// NewVendorService constructs the service.
func NewVendorService(deps VendorDependencies) *VendorService {
	return &VendorService{
		vendors:    deps.VendorRepo,
		packages:   deps.PackageRepo,
		reviews:    deps.ReviewRepo,
		users:      deps.UserRepo,
		cache:      deps.Cache,
		cacheCfg:   deps.CacheConfig,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// RegisterHandlers subscribes cache invalidation to vendor lifecycle events.
func (s *VendorService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventVendorUpdated, s.invalidate)
	s.dispatcher.Subscribe(events.EventVendorApproved, s.invalidate)
	s.dispatcher.Subscribe(events.EventVendorRejected, s.invalidate)
}

func (s *VendorService) invalidate(ctx context.Context, event events.Event) error {
	return s.cache.Delete(ctx, cache.VendorDetailsKey(event.AggregateID), cache.FeaturedVendorsKey())
}

// List returns approved vendors matching input.
func (s *VendorService) List(ctx context.Context, input VendorListInput) ([]domain.Vendor, error) {
	approved := domain.VendorStatusApproved
	limit, offset := paginate(input.Page, input.PageSize)
	return s.vendors.List(ctx, repository.VendorFilter{
		Status:     &approved,
		Category:   nonEmpty(input.Category),
		Location:   nonEmpty(input.Location),
		SearchTerm: nonEmpty(input.Search),
		Limit:      limit,
		Offset:     offset,
	})
}

// Featured returns flagged vendors, or the top-rated approved vendors when none are flagged.
func (s *VendorService) Featured(ctx context.Context) ([]domain.Vendor, error) {
	var cached []domain.Vendor
	if hit, err := s.cache.GetJSON(ctx, cache.FeaturedVendorsKey(), &cached); err != nil {
		s.logger.Warn("featured cache read", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	approved := domain.VendorStatusApproved
	vendors, err := s.vendors.List(ctx, repository.VendorFilter{
		Status:        &approved,
		FeaturedOnly:  true,
		OrderByRating: true,
		Limit:         featuredLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(vendors) == 0 {
		vendors, err = s.vendors.List(ctx, repository.VendorFilter{
			Status:        &approved,
			OrderByRating: true,
			Limit:         featuredLimit,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.cache.SetJSON(ctx, cache.FeaturedVendorsKey(), vendors, ttl(s.cacheCfg.FeaturedTTLSeconds)); err != nil {
		s.logger.Warn("featured cache write", zap.Error(err))
	}
	return vendors, nil
}

// Get loads a vendor by id.
func (s *VendorService) Get(ctx context.Context, id string) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	return vendor, nil
}

// GetByUser loads the vendor owned by userID.
func (s *VendorService) GetByUser(ctx context.Context, userID string) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	return vendor, nil
}

// Details returns the vendor with its packages and reviews.
func (s *VendorService) Details(ctx context.Context, id string) (*domain.VendorDetails, error) {
	key := cache.VendorDetailsKey(id)
	var cached domain.VendorDetails
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn("vendor details cache read", zap.String("vendor_id", id), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	packages, err := s.packages.ListByVendor(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.reviews.ListByVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	details := &domain.VendorDetails{Vendor: *vendor, Packages: packages, Reviews: reviews}
	if err := s.cache.SetJSON(ctx, key, details, ttl(s.cacheCfg.VendorTTLSeconds)); err != nil {
		s.logger.Warn("vendor details cache write", zap.String("vendor_id", id), zap.Error(err))
	}
	return details, nil
}

// Register creates a pending vendor owned by actor and upgrades a customer to the vendor role.
func (s *VendorService) Register(ctx context.Context, actor *domain.User, input VendorInput) (*domain.Vendor, error) {
	if _, err := s.vendors.GetByUserID(ctx, actor.ID); err == nil {
		return nil, apperrors.NewConflict("user already owns a vendor", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	vendor := &domain.Vendor{UserID: actor.ID, Status: domain.VendorStatusPending}
	applyVendorInput(vendor, input, false)
	if err := validateVendor(vendor); err != nil {
		return nil, err
	}

	if err := s.vendors.Create(ctx, vendor); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("user already owns a vendor", nil)
		}
		return nil, err
	}

	if actor.Role == domain.UserRoleCustomer {
		actor.Role = domain.UserRoleVendor
		if err := s.users.Update(ctx, actor); err != nil {
			return nil, err
		}
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventVendorRegistered,
		AggregateID: vendor.ID,
		ActorID:     actor.ID,
		Payload:     vendorPayload(vendor),
	})
	return vendor, nil
}

// Update changes the vendor profile. Only the owner or an admin may do so; only an admin may
// toggle the featured flag.
func (s *VendorService) Update(ctx context.Context, actor *domain.User, id string, input VendorInput) (*domain.Vendor, error) {
	vendor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAccess(actor, vendor.UserID); err != nil {
		return nil, err
	}
	if input.Featured != nil && !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can feature vendors")
	}

	applyVendorInput(vendor, input, actor.IsAdmin())
	if err := validateVendor(vendor); err != nil {
		return nil, err
	}
	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventVendorUpdated,
		AggregateID: vendor.ID,
		ActorID:     actor.ID,
		Payload:     vendorPayload(vendor),
	})
	return vendor, nil
}

func applyVendorInput(v *domain.Vendor, in VendorInput, allowFeatured bool) {
	set := func(dst *string, src *string) {
		if t := trimmed(src); t != nil {
			*dst = *t
		}
	}
	set(&v.BusinessName, in.BusinessName)
	set(&v.Category, in.Category)
	set(&v.Description, in.Description)
	set(&v.Location, in.Location)
	set(&v.Phone, in.Phone)
	set(&v.Email, in.Email)
	set(&v.ImageURL, in.ImageURL)
	if in.PriceFrom != nil {
		v.PriceFrom = *in.PriceFrom
	}
	if allowFeatured && in.Featured != nil {
		v.Featured = *in.Featured
	}
}

func validateVendor(v *domain.Vendor) error {
	details := map[string]any{}
	if v.BusinessName == "" {
		details["business_name"] = "required"
	}
	if v.Category == "" {
		details["category"] = "required"
	}
	if v.PriceFrom < 0 {
		details["price_from"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid vendor", details)
	}
	return nil
}

func vendorPayload(v *domain.Vendor) events.VendorPayload {
	return events.VendorPayload{
		OwnerID:      v.UserID,
		BusinessName: v.BusinessName,
		Status:       string(v.Status),
		Reason:       v.RejectionReason,
		Rating:       v.Rating,
		ReviewCount:  v.ReviewCount,
	}
}

func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageSize, (page - 1) * pageSize
}

func nonEmpty(s *string) *string {
	if t := trimmed(s); t != nil && *t != "" {
		return t
	}
	return nil
}

func ttl(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// ownsVendor loads vendorID and checks that actor owns it or is an admin.
func ownsVendor(ctx context.Context, vendors repository.VendorRepository, actor *domain.User, vendorID string) (*domain.Vendor, error) {
	vendor, err := vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	if err := requireAccess(actor, vendor.UserID); err != nil {
		return nil, err
	}
	return vendor, nil
}
