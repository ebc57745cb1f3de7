package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/dto"
	"github.com/spec-kit/event-marketplace/internal/service"
)

// VendorsHandler exposes vendor and package endpoints.
type VendorsHandler struct {
	vendors  *service.VendorService
	packages *service.PackageService
}

func NewVendorsHandler(vendors *service.VendorService, packages *service.PackageService) *VendorsHandler {
	return &VendorsHandler{vendors: vendors, packages: packages}
}

// List handles GET /api/vendors.
func (h *VendorsHandler) List(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "page_size", 0)
	if err != nil {
		return err
	}
	vendors, err := h.vendors.List(c.UserContext(), service.VendorListInput{
		Category: queryString(c, "category"),
		Location: queryString(c, "location"),
		Search:   queryString(c, "search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorList(vendors))
}

// Featured handles GET /api/vendors/featured.
func (h *VendorsHandler) Featured(c *fiber.Ctx) error {
	vendors, err := h.vendors.Featured(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorList(vendors))
}

// Get handles GET /api/vendors/:id.
func (h *VendorsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "vendor")
	if err != nil {
		return err
	}
	vendor, err := h.vendors.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorResponse(vendor))
}

// Details handles GET /api/vendors/:id/details.
func (h *VendorsHandler) Details(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "vendor")
	if err != nil {
		return err
	}
	details, err := h.vendors.Details(c.UserContext(), id)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorDetailsResponse(details))
}

// GetByUser handles GET /api/vendors/user/:userId.
func (h *VendorsHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := pathID(c, "userId", "vendor")
	if err != nil {
		return err
	}
	vendor, err := h.vendors.GetByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorResponse(vendor))
}

// Register handles POST /api/vendors/register.
func (h *VendorsHandler) Register(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.VendorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	vendor, err := h.vendors.Register(c.UserContext(), caller, vendorInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewVendorResponse(vendor))
}

// Update handles PUT /api/vendors/:id.
func (h *VendorsHandler) Update(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "vendor")
	if err != nil {
		return err
	}
	var req dto.VendorRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	vendor, err := h.vendors.Update(c.UserContext(), caller, id, vendorInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.NewVendorResponse(vendor))
}

// ListPackages handles GET /api/vendors/:vendorId/packages.
func (h *VendorsHandler) ListPackages(c *fiber.Ctx) error {
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	pkgs, err := h.packages.List(c.UserContext(), vendorID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewPackageList(pkgs))
}

// CreatePackage handles POST /api/vendors/:vendorId/packages.
func (h *VendorsHandler) CreatePackage(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	var req dto.PackageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pkg, err := h.packages.Create(c.UserContext(), caller, vendorID, packageInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewPackageResponse(pkg))
}

// UpdatePackage handles PUT /api/vendors/:vendorId/packages/:packageId.
func (h *VendorsHandler) UpdatePackage(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	packageID, err := pathID(c, "packageId", "package")
	if err != nil {
		return err
	}
	var req dto.PackageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pkg, err := h.packages.Update(c.UserContext(), caller, vendorID, packageID, packageInput(req))
	if err != nil {
		return err
	}
	return ok(c, dto.NewPackageResponse(pkg))
}

// DeletePackage handles DELETE /api/vendors/:vendorId/packages/:packageId.
func (h *VendorsHandler) DeletePackage(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	vendorID, err := pathID(c, "vendorId", "vendor")
	if err != nil {
		return err
	}
	packageID, err := pathID(c, "packageId", "package")
	if err != nil {
		return err
	}
	if err := h.packages.Delete(c.UserContext(), caller, vendorID, packageID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func vendorInput(req dto.VendorRequest) service.VendorInput {
	return service.VendorInput{
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Description:  req.Description,
		Location:     req.Location,
		Phone:        req.Phone,
		Email:        req.Email,
		ImageURL:     req.ImageURL,
		PriceFrom:    req.PriceFrom,
		Featured:     req.Featured,
	}
}

func packageInput(req dto.PackageRequest) service.PackageInput {
	return service.PackageInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
	}
}
