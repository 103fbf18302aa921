package repository

import (
	"context"

	"github.com/askarbek/carvault/internal/domain"
)

// UpdateCarInput carries a partial update. Nil fields keep their prior value.
type UpdateCarInput struct {
	Title       *string
	Tags        []string
	Description *string
	Images      []string
}

type CarRepository interface {
	Create(ctx context.Context, c *domain.Car) (*domain.Car, error)
	// GetByID resolves the car by id alone so callers can distinguish
	// a missing car from one owned by somebody else.
	GetByID(ctx context.Context, id string) (*domain.Car, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Car, error)
	Update(ctx context.Context, id string, input UpdateCarInput) (*domain.Car, error)
	Delete(ctx context.Context, id string) error
}
