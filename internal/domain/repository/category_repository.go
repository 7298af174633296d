package repository

import "github.com/nexahost/portal-api/internal/domain/entity"

// CategoryRepository persistence port for catalog categories.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id int64) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
