package repository

import (
	"context"

	"garage-api/internal/domain"
)

// VehicleRepository exposes persistence operations for Vehicle entities.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (int64, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ExistsByNaturalKey(ctx context.Context, name, brand string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
}
