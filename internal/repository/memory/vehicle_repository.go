package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

type VehicleRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Vehicle
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)

func NewVehicleRepository() *VehicleRepository {
	return &VehicleRepository{rows: make(map[int64]domain.Vehicle)}
}

func (r *VehicleRepository) Create(_ context.Context, vehicle *domain.Vehicle) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(vehicle.Name, vehicle.Brand, 0) {
		return 0, fmt.Errorf("insert vehicle: %w", domain.ErrDuplicate)
	}
	r.nextID++
	vehicle.ID = r.nextID
	r.rows[vehicle.ID] = *vehicle
	return vehicle.ID, nil
}

func (r *VehicleRepository) Update(_ context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[vehicle.ID]; !ok {
		return fmt.Errorf("vehicle %d: %w", vehicle.ID, domain.ErrNotFound)
	}
	if r.conflictLocked(vehicle.Name, vehicle.Brand, vehicle.ID) {
		return fmt.Errorf("update vehicle: %w", domain.ErrDuplicate)
	}
	r.rows[vehicle.ID] = *vehicle
	return nil
}

func (r *VehicleRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("vehicle %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *VehicleRepository) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %d: %w", id, domain.ErrNotFound)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) ExistsByNaturalKey(_ context.Context, name, brand string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflictLocked(name, brand, excludeID), nil
}

func (r *VehicleRepository) List(_ context.Context) ([]domain.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	vehicles := make([]domain.Vehicle, 0, len(ids))
	for _, id := range ids {
		vehicles = append(vehicles, r.rows[id])
	}
	return vehicles, nil
}

func (r *VehicleRepository) conflictLocked(name, brand string, excludeID int64) bool {
	for id, vehicle := range r.rows {
		if id != excludeID && vehicle.Name == name && vehicle.Brand == brand {
			return true
		}
	}
	return false
}
