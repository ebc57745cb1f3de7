package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
	"github.com/spec-kit/event-marketplace/internal/repository"
	apperrors "github.com/spec-kit/event-marketplace/pkg/util"
)

// PackageService manages the priced offerings of a vendor.
type PackageService struct {
	packages   repository.PackageRepository
	vendors    repository.VendorRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// PackageDependencies bundles collaborators for the package service.
type PackageDependencies struct {
	PackageRepo repository.PackageRepository
	VendorRepo  repository.VendorRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// PackageInput carries package fields. Nil fields are left unchanged on update.
type PackageInput struct {
	Name        *string
	Description *string
	Price       *float64
	Features    []string
}

// NewPackageService constructs the service.
func NewPackageService(deps PackageDependencies) *PackageService {
	return &PackageService{
		packages:   deps.PackageRepo,
		vendors:    deps.VendorRepo,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// List returns the packages of vendorID.
func (s *PackageService) List(ctx context.Context, vendorID string) ([]domain.VendorPackage, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, apperrors.NotFoundOr(err, "vendor")
	}
	return s.packages.ListByVendor(ctx, vendorID)
}

// Create adds a package to vendorID.
func (s *PackageService) Create(ctx context.Context, actor *domain.User, vendorID string, input PackageInput) (*domain.VendorPackage, error) {
	vendor, err := ownsVendor(ctx, s.vendors, actor, vendorID)
	if err != nil {
		return nil, err
	}

	pkg := &domain.VendorPackage{VendorID: vendorID}
	applyPackageInput(pkg, input)
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	s.touchVendor(ctx, actor, vendor)
	return pkg, nil
}

// Update changes a package of vendorID.
func (s *PackageService) Update(ctx context.Context, actor *domain.User, vendorID, packageID string, input PackageInput) (*domain.VendorPackage, error) {
	vendor, err := ownsVendor(ctx, s.vendors, actor, vendorID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.get(ctx, vendorID, packageID)
	if err != nil {
		return nil, err
	}

	applyPackageInput(pkg, input)
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := s.packages.Update(ctx, pkg); err != nil {
		return nil, err
	}
	s.touchVendor(ctx, actor, vendor)
	return pkg, nil
}

// Delete removes a package of vendorID.
func (s *PackageService) Delete(ctx context.Context, actor *domain.User, vendorID, packageID string) error {
	vendor, err := ownsVendor(ctx, s.vendors, actor, vendorID)
	if err != nil {
		return err
	}
	if _, err := s.get(ctx, vendorID, packageID); err != nil {
		return err
	}
	if err := s.packages.Delete(ctx, vendorID, packageID); err != nil {
		return apperrors.NotFoundOr(err, "package")
	}
	s.touchVendor(ctx, actor, vendor)
	return nil
}

func (s *PackageService) get(ctx context.Context, vendorID, packageID string) (*domain.VendorPackage, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, apperrors.NotFoundOr(err, "package")
	}
	if pkg.VendorID != vendorID {
		return nil, apperrors.NewNotFound("package", nil)
	}
	return pkg, nil
}

func (s *PackageService) touchVendor(ctx context.Context, actor *domain.User, vendor *domain.Vendor) {
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:        events.EventVendorUpdated,
		AggregateID: vendor.ID,
		ActorID:     actor.ID,
		Payload:     vendorPayload(vendor),
	})
}

func applyPackageInput(pkg *domain.VendorPackage, in PackageInput) {
	if name := trimmed(in.Name); name != nil {
		pkg.Name = *name
	}
	if desc := trimmed(in.Description); desc != nil {
		pkg.Description = *desc
	}
	if in.Price != nil {
		pkg.Price = *in.Price
	}
	if in.Features != nil {
		features := make([]string, 0, len(in.Features))
		for _, f := range in.Features {
			if f = strings.TrimSpace(f); f != "" {
				features = append(features, f)
			}
		}
		pkg.Features = features
	}
}

func validatePackage(pkg *domain.VendorPackage) error {
	details := map[string]any{}
	if pkg.Name == "" {
		details["name"] = "required"
	}
	if pkg.Price < 0 {
		details["price"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid package", details)
	}
	return nil
}
