package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexahost/portal-api/internal/application/catalog"
	"github.com/nexahost/portal-api/internal/application/dto"
)

// CatalogHandler handles the public plan catalog.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListCategories lists catalog categories.
// GET /api/categories
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory creates a category (admin).
// POST /api/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListServices lists catalog services, optionally by category.
// GET /api/services?category_id=1
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	var categoryID int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid category_id"})
		}
		categoryID = id
	}
	out, err := h.uc.ListServices(c.Context(), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateService creates a catalog service (admin).
// POST /api/services
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.CreateService(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateService applies partial updates to a catalog service (admin).
// PUT /api/services/:id
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid service id"})
	}
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.UpdateService(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
