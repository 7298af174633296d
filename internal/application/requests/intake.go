package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

// Intake defaults.
const (
	defaultServiceType    = entity.ServiceTypeCloud
	defaultServerLocation = "India"
)

// IntakeUseCase accepts partner-submitted service requests.
type IntakeUseCase struct {
	requestRepo repository.ServiceRequestRepository
}

// NewIntakeUseCase builds the use case.
func NewIntakeUseCase(requestRepo repository.ServiceRequestRepository) *IntakeUseCase {
	return &IntakeUseCase{requestRepo: requestRepo}
}

// Submit validates the payload, applies defaults and persists a PENDING
// request. Repeated identical submissions are accepted independently; no
// deduplication is performed.
func (uc *IntakeUseCase) Submit(ctx context.Context, in dto.CreateRequestInput) (*dto.RequestResponse, error) {
	if in.FullName == "" || in.Email == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: full_name, email and phone are required", domain.ErrInvalidInput)
	}
	if in.PlanID == "" {
		return nil, fmt.Errorf("%w: plan_id is required", domain.ErrInvalidInput)
	}

	serviceType := in.ServiceType
	if serviceType == "" {
		serviceType = defaultServiceType
	}
	location := in.ServerLocation
	if location == "" {
		location = defaultServerLocation
	}
	cycle := in.BillingCycle
	if cycle == "" {
		cycle = entity.CycleMonthly
	}

	now := time.Now()
	req := &entity.ServiceRequest{
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		CompanyName:    in.CompanyName,
		TaxID:          in.TaxID,
		Address:        in.Address,
		PlanID:         in.PlanID,
		ServiceType:    serviceType,
		ServerLocation: location,
		BillingCycle:   cycle,
		Notes:          in.Notes,
		Status:         entity.RequestStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, fmt.Errorf("create service request: %w", err)
	}
	return toRequestResponse(req), nil
}
