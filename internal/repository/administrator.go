package repository

import (
	"context"

	"garage-api/internal/domain"
)

// AdministratorRepository defines persistence operations for Administrator entities.
// Lookups of missing records return domain.ErrNotFound; unique key violations
// return domain.ErrDuplicate.
type AdministratorRepository interface {
	Create(ctx context.Context, admin *domain.Administrator) (int64, error)
	Update(ctx context.Context, admin *domain.Administrator) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	// ExistsByNaturalKey reports whether another administrator already uses
	// the (name, email) pair. excludeID of 0 excludes nothing.
	ExistsByNaturalKey(ctx context.Context, name, email string, excludeID int64) (bool, error)
	// List returns every administrator ordered by id.
	List(ctx context.Context) ([]domain.Administrator, error)
}
