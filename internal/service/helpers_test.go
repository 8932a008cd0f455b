package service

import (
	"strings"
	"sync/atomic"
	"testing"

	"garage-api/internal/repository/memory"
)

// plainHasher is a fast PasswordHasher that counts verifications.
type plainHasher struct {
	verifies atomic.Int64
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (h *plainHasher) Verify(password, hash string) bool {
	h.verifies.Add(1)
	return strings.TrimPrefix(hash, "plain:") == password && strings.HasPrefix(hash, "plain:")
}

type fixture struct {
	admins    *memory.AdministratorRepository
	vehicles  *memory.VehicleRepository
	hasher    *plainHasher
	validator *Validator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	admins := memory.NewAdministratorRepository()
	vehicles := memory.NewVehicleRepository()
	return &fixture{
		admins:    admins,
		vehicles:  vehicles,
		hasher:    &plainHasher{},
		validator: NewValidator(admins, vehicles),
	}
}
