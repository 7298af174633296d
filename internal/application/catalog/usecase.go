package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nexahost/portal-api/internal/application/dto"
	"github.com/nexahost/portal-api/internal/domain"
	"github.com/nexahost/portal-api/internal/domain/entity"
	"github.com/nexahost/portal-api/internal/domain/repository"
)

// Cache is the injectable TTL cache the catalog reads go through. Get returns
// (nil, nil) on a miss. Implementations: Redis for deployments, an in-memory
// map for tests and single-instance setups.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Cache keys for the catalog listings.
const (
	cacheKeyCategories = "catalog:categories"
	cacheKeyServices   = "catalog:services"
)

// UseCase serves the public plan catalog with cached reads.
type UseCase struct {
	categoryRepo repository.CategoryRepository
	serviceRepo  repository.ServiceRepository
	cache        Cache
	ttl          time.Duration
}

// NewUseCase builds the catalog use case.
func NewUseCase(categoryRepo repository.CategoryRepository, serviceRepo repository.ServiceRepository, cache Cache, ttl time.Duration) *UseCase {
	return &UseCase{categoryRepo: categoryRepo, serviceRepo: serviceRepo, cache: cache, ttl: ttl}
}

// ListCategories returns all categories, served from cache when possible.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	if cached, err := uc.cache.Get(ctx, cacheKeyCategories); err == nil && cached != nil {
		var out []dto.CategoryResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		// A corrupt cache entry falls through to the DB read.
	}

	list, err := uc.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	if data, err := json.Marshal(out); err == nil {
		_ = uc.cache.Set(ctx, cacheKeyCategories, data, uc.ttl)
	}
	return out, nil
}

// ListServices returns catalog services; the unfiltered listing is cached.
func (uc *UseCase) ListServices(ctx context.Context, categoryID int64) ([]dto.ServiceResponse, error) {
	if categoryID == 0 {
		if cached, err := uc.cache.Get(ctx, cacheKeyServices); err == nil && cached != nil {
			var out []dto.ServiceResponse
			if err := json.Unmarshal(cached, &out); err == nil {
				return out, nil
			}
		}
	}

	list, err := uc.serviceRepo.List(categoryID)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toServiceResponse(s))
	}
	if categoryID == 0 {
		if data, err := json.Marshal(out); err == nil {
			_ = uc.cache.Set(ctx, cacheKeyServices, data, uc.ttl)
		}
	}
	return out, nil
}

// CreateCategory persists a category and invalidates the cached listing.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Category{Name: in.Name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.categoryRepo.Create(c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	_ = uc.cache.Invalidate(ctx, cacheKeyCategories)
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}, nil
}

// CreateService persists a service and invalidates the cached listing.
func (uc *UseCase) CreateService(ctx context.Context, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Code == "" || in.Name == "" || in.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category_id, code and name are required", domain.ErrInvalidInput)
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	s := &entity.Service{
		CategoryID:   in.CategoryID,
		Code:         in.Code,
		Name:         in.Name,
		Description:  in.Description,
		MonthlyPrice: in.MonthlyPrice,
		Location:     in.Location,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.serviceRepo.Create(s); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	_ = uc.cache.Invalidate(ctx, cacheKeyServices)
	resp := toServiceResponse(s)
	return &resp, nil
}

// UpdateService applies partial updates and invalidates the cached listing.
func (uc *UseCase) UpdateService(ctx context.Context, id int64, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	s, err := uc.serviceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		s.Name = in.Name
	}
	if in.Description != "" {
		s.Description = in.Description
	}
	if in.MonthlyPrice != nil {
		s.MonthlyPrice = *in.MonthlyPrice
	}
	if in.Location != "" {
		s.Location = in.Location
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()
	if err := uc.serviceRepo.Update(s); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	_ = uc.cache.Invalidate(ctx, cacheKeyServices)
	resp := toServiceResponse(s)
	return &resp, nil
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		Code:         s.Code,
		Name:         s.Name,
		Description:  s.Description,
		MonthlyPrice: s.MonthlyPrice,
		Location:     s.Location,
		Active:       s.Active,
	}
}
