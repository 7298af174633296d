package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/application/requests"
)

// RequestHandler handles service request intake and review.
type RequestHandler struct {
	intake *requests.IntakeUseCase
	review *requests.ReviewUseCase
}

// NewRequestHandler builds the handler.
func NewRequestHandler(intake *requests.IntakeUseCase, review *requests.ReviewUseCase) *RequestHandler {
	return &RequestHandler{intake: intake, review: review}
}

// Create submits a new service request.
// POST /api/requests
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.intake.Submit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Approve approves a pending request, creating the billing record and invoice.
// POST /api/requests/:id/approve
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request id"})
	}
	var in dto.ApproveRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.review.Approve(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Reject rejects a pending request.
// POST /api/requests/:id/reject
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request id"})
	}
	var in dto.RejectRequestInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	resp, err := h.review.Reject(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns a single request.
// GET /api/requests/:id
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request id"})
	}
	resp, err := h.review.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List returns requests newest first, optionally filtered by status.
// GET /api/requests?status=PENDING&limit=20&offset=0
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	resp, err := h.review.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
