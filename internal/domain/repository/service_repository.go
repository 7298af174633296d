package repository

import "github.com/nexahost/portal-api/internal/domain/entity"

// ServiceRepository persistence port for catalog services (plans).
type ServiceRepository interface {
	Create(s *entity.Service) error
	GetByID(id int64) (*entity.Service, error)
	GetByCode(code string) (*entity.Service, error)
	List(categoryID int64) ([]*entity.Service, error) // categoryID 0 = all
	Update(s *entity.Service) error
}
