package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nexahost/portal-api/internal/application/billing"
	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/domain/entity"
)

// PurchaseHandler handles billing record listings and invoice downloads.
type PurchaseHandler struct {
	uc *billing.DownloadUseCase
}

// NewPurchaseHandler builds the handler.
func NewPurchaseHandler(uc *billing.DownloadUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// List returns purchases: all for admins, own for everyone else.
// GET /api/purchases?limit=20&offset=0
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	list, err := h.uc.ListPurchases(c.Context(), GetUserID(c), GetRole(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return c.JSON(out)
}

// DownloadInvoice streams the invoice PDF for a purchase. Owners and admins
// only; 404 until the document has been rendered.
// GET /api/purchases/:id/invoice
func (h *PurchaseHandler) DownloadInvoice(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid purchase id"})
	}

	reader, filename, err := h.uc.DownloadInvoice(c.Context(), GetUserID(c), GetRole(c), id)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.SendStream(reader)
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		PlanID:        p.PlanID,
		ServiceType:   p.ServiceType,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: p.PaymentStatus,
		TransactionID: p.TransactionID,
		ExpiresAt:     p.ExpiresAt,
		PlanType:      p.PlanType,
		InvoicePath:   p.InvoicePath,
		CreatedAt:     p.CreatedAt,
	}
}
