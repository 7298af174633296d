package repository

import "github.com/nexahost/portal-api/internal/domain/entity"

// ServiceRequestRepository persistence port for service requests.
// Get methods return (nil, nil) when the row does not exist.
type ServiceRequestRepository interface {
	// Create persists the request and fills ID.
	Create(r *entity.ServiceRequest) error
	GetByID(id int64) (*entity.ServiceRequest, error)
	// GetByIDForUpdate reads the row with a row-level lock. Only meaningful
	// inside a transaction; approval/rejection use it to serialize the
	// PENDING check with the status write.
	GetByIDForUpdate(id int64) (*entity.ServiceRequest, error)
	Update(r *entity.ServiceRequest) error
	// List returns requests newest first; status filters when non-empty.
	List(status string, limit, offset int) ([]*entity.ServiceRequest, error)
}
