package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/domain"
	domainbilling "github.com/nexahost/portal-api/internal/domain/billing"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
	"github.com/nexahost/portal-api/pkg/logger"
)

// ReviewUseCase drives the admin review of service requests: the single
// PENDING -> APPROVED | REJECTED transition, plus the billing side effects of
// an approval.
type ReviewUseCase struct {
	txRunner     TxRunner
	requestRepo  repository.ServiceRequestRepository
	purchaseRepo repository.PurchaseRepository
	invoices     InvoiceIssuer
	log          *logger.Logger
}

// NewReviewUseCase builds the use case.
func NewReviewUseCase(
	txRunner TxRunner,
	requestRepo repository.ServiceRequestRepository,
	purchaseRepo repository.PurchaseRepository,
	invoices InvoiceIssuer,
	log *logger.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		txRunner:     txRunner,
		requestRepo:  requestRepo,
		purchaseRepo: purchaseRepo,
		invoices:     invoices,
		log:          log,
	}
}

// Approve transitions a PENDING request to APPROVED and creates its billing
// record. Inside one transaction (the request row is locked, so concurrent
// reviews of the same id serialize): re-check PENDING, resolve the account by
// email, create the purchase, link and finalize the request. After commit the
// invoice PDF is rendered and attached to the purchase; a rendering failure
// is reported to the caller but leaves the committed writes in place, and the
// purchase simply has no invoice path yet.
func (uc *ReviewUseCase) Approve(ctx context.Context, requestID, reviewerID int64, in dto.ApproveRequestInput) (*dto.ApprovalResponse, error) {
	if in.Amount == nil || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount is required", domain.ErrInvalidInput)
	}
	amount := *in.Amount

	var (
		req      *entity.ServiceRequest
		account  *entity.User
		purchase *entity.Purchase
	)
	err := uc.txRunner.RunApproval(ctx, func(
		requestRepo repository.ServiceRequestRepository,
		userRepo repository.UserRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		var err error
		req, err = requestRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return fmt.Errorf("load request: %w", err)
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return fmt.Errorf("%w: request already processed", domain.ErrConflict)
		}

		now := time.Now()

		// Find-or-create the account keyed on email. The upsert plus the DB
		// unique constraint guarantee a single account per email even under
		// concurrent approvals.
		account, err = userRepo.UpsertByEmail(&entity.User{
			Email:       req.Email,
			Name:        req.FullName,
			CompanyName: req.CompanyName,
			TaxID:       req.TaxID,
			Address:     req.Address,
			Role:        entity.RoleUser,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("resolve account: %w", err)
		}

		purchase = &entity.Purchase{
			UserID:        account.ID,
			PlanID:        req.PlanID,
			ServiceType:   entity.ServiceTypeServer,
			Amount:        amount,
			Currency:      "INR",
			PaymentMethod: entity.PaymentMethodPartnerRequest,
			PaymentStatus: entity.PaymentStatusCompleted,
			TransactionID: domainbilling.TransactionID(req.ID, now),
			ExpiresAt:     domainbilling.ExpiryFrom(now, req.BillingCycle),
			PlanType:      domainbilling.PlanTypeFor(req.BillingCycle),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}

		req.Status = entity.RequestStatusApproved
		req.AdminNotes = in.AdminNotes
		req.ReviewedBy = &reviewerID
		req.ReviewedAt = &now
		req.PurchaseID = &purchase.ID
		req.UpdatedAt = now
		if err := requestRepo.Update(req); err != nil {
			return fmt.Errorf("finalize request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Rendering happens outside the transaction. The approval and the billing
	// record are already committed; on failure the purchase stays without an
	// invoice path and retrieval reports "invoice not yet available".
	path, err := uc.invoices.IssueInvoice(ctx, purchase, req, account)
	if err != nil {
		uc.log.Error().Err(err).Int64("request_id", requestID).Int64("purchase_id", purchase.ID).
			Msg("invoice rendering failed after approval commit")
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	if err := uc.purchaseRepo.UpdateInvoicePath(purchase.ID, path); err != nil {
		uc.log.Error().Err(err).Int64("purchase_id", purchase.ID).Str("path", path).
			Msg("could not attach invoice path to purchase")
		return nil, fmt.Errorf("attach invoice: %w", err)
	}
	purchase.InvoicePath = path

	uc.log.Info().Int64("request_id", requestID).Int64("purchase_id", purchase.ID).
		Str("transaction_id", purchase.TransactionID).Msg("service request approved")

	return &dto.ApprovalResponse{
		Request:  *toRequestResponse(req),
		Purchase: *toPurchaseResponse(purchase),
	}, nil
}

// Reject transitions a PENDING request to REJECTED, storing the reviewer's
// notes. No billing side effects; terminal.
func (uc *ReviewUseCase) Reject(ctx context.Context, requestID, reviewerID int64, in dto.RejectRequestInput) (*dto.RequestResponse, error) {
	var req *entity.ServiceRequest
	err := uc.txRunner.RunApproval(ctx, func(
		requestRepo repository.ServiceRequestRepository,
		_ repository.UserRepository,
		_ repository.PurchaseRepository,
	) error {
		var err error
		req, err = requestRepo.GetByIDForUpdate(requestID)
		if err != nil {
			return fmt.Errorf("load request: %w", err)
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.RequestStatusPending {
			return fmt.Errorf("%w: request already processed", domain.ErrConflict)
		}

		now := time.Now()
		req.Status = entity.RequestStatusRejected
		req.AdminNotes = in.AdminNotes
		req.ReviewedBy = &reviewerID
		req.ReviewedAt = &now
		req.UpdatedAt = now
		return requestRepo.Update(req)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("request_id", requestID).Msg("service request rejected")
	return toRequestResponse(req), nil
}

// Get returns a request by id.
func (uc *ReviewUseCase) Get(ctx context.Context, id int64) (*dto.RequestResponse, error) {
	req, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toRequestResponse(req), nil
}

// List returns requests newest first, optionally filtered by status.
func (uc *ReviewUseCase) List(ctx context.Context, status string, limit, offset int) ([]*dto.RequestResponse, error) {
	list, err := uc.requestRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRequestResponse(r))
	}
	return out, nil
}

func toRequestResponse(r *entity.ServiceRequest) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:             r.ID,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		CompanyName:    r.CompanyName,
		TaxID:          r.TaxID,
		Address:        r.Address,
		PlanID:         r.PlanID,
		ServiceType:    r.ServiceType,
		ServerLocation: r.ServerLocation,
		BillingCycle:   r.BillingCycle,
		Notes:          r.Notes,
		Status:         r.Status,
		AdminNotes:     r.AdminNotes,
		ReviewedBy:     r.ReviewedBy,
		ReviewedAt:     r.ReviewedAt,
		PurchaseID:     r.PurchaseID,
		CreatedAt:      r.CreatedAt,
	}
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
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
