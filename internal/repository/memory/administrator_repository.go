// Package memory holds map-backed repositories. They enforce the same unique
// keys as the sqlite schema and are safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

type AdministratorRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Administrator
}

var _ repository.AdministratorRepository = (*AdministratorRepository)(nil)

func NewAdministratorRepository() *AdministratorRepository {
	return &AdministratorRepository{rows: make(map[int64]domain.Administrator)}
}

func (r *AdministratorRepository) Create(_ context.Context, admin *domain.Administrator) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflictLocked(admin.Name, admin.Email, 0) {
		return 0, fmt.Errorf("insert administrator: %w", domain.ErrDuplicate)
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	r.nextID++
	admin.ID = r.nextID
	r.rows[admin.ID] = *admin
	return admin.ID, nil
}

func (r *AdministratorRepository) Update(_ context.Context, admin *domain.Administrator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[admin.ID]
	if !ok {
		return fmt.Errorf("administrator %d: %w", admin.ID, domain.ErrNotFound)
	}
	if r.conflictLocked(admin.Name, admin.Email, admin.ID) {
		return fmt.Errorf("update administrator: %w", domain.ErrDuplicate)
	}
	admin.CreatedAt = current.CreatedAt
	r.rows[admin.ID] = *admin
	return nil
}

func (r *AdministratorRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("administrator %d: %w", id, domain.ErrNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *AdministratorRepository) GetByID(_ context.Context, id int64) (*domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("administrator %d: %w", id, domain.ErrNotFound)
	}
	return &admin, nil
}

func (r *AdministratorRepository) GetByEmail(_ context.Context, email string) (*domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.sortedIDsLocked() {
		if admin := r.rows[id]; admin.Email == email {
			return &admin, nil
		}
	}
	return nil, fmt.Errorf("administrator %q: %w", email, domain.ErrNotFound)
}

func (r *AdministratorRepository) ExistsByNaturalKey(_ context.Context, name, email string, excludeID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conflictLocked(name, email, excludeID), nil
}

func (r *AdministratorRepository) List(_ context.Context) ([]domain.Administrator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admins := make([]domain.Administrator, 0, len(r.rows))
	for _, id := range r.sortedIDsLocked() {
		admins = append(admins, r.rows[id])
	}
	return admins, nil
}

func (r *AdministratorRepository) conflictLocked(name, email string, excludeID int64) bool {
	for id, admin := range r.rows {
		if id != excludeID && admin.Name == name && admin.Email == email {
			return true
		}
	}
	return false
}

func (r *AdministratorRepository) sortedIDsLocked() []int64 {
	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
