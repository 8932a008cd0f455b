package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage-api/internal/domain"
)

func TestValidateAdministratorFields(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	valid := func() *domain.Administrator {
		return &domain.Administrator{Name: "Ana", Email: "ana@mail.com", Password: "secret", Role: domain.RoleUser}
	}

	tests := []struct {
		name      string
		mutate    func(a *domain.Administrator)
		wantField string
	}{
		{name: "blank name", mutate: func(a *domain.Administrator) { a.Name = "   " }, wantField: "name"},
		{name: "long name", mutate: func(a *domain.Administrator) { a.Name = strings.Repeat("n", 101) }, wantField: "name"},
		{name: "empty email", mutate: func(a *domain.Administrator) { a.Email = "" }, wantField: "email"},
		{name: "long email", mutate: func(a *domain.Administrator) { a.Email = strings.Repeat("e", 101) }, wantField: "email"},
		{name: "blank password", mutate: func(a *domain.Administrator) { a.Password = " \t" }, wantField: "password"},
		{name: "password over 72 bytes", mutate: func(a *domain.Administrator) { a.Password = strings.Repeat("p", 73) }, wantField: "password"},
		{name: "multibyte password over 72 bytes", mutate: func(a *domain.Administrator) { a.Password = strings.Repeat("é", 40) }, wantField: "password"},
		{name: "missing role", mutate: func(a *domain.Administrator) { a.Role = "" }, wantField: "role"},
		{name: "unknown role", mutate: func(a *domain.Administrator) { a.Role = "ROOT" }, wantField: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			admin := valid()
			tt.mutate(admin)

			err := fx.validator.ValidateAdministrator(context.Background(), admin, 0)
			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, fx.validator.ValidateAdministrator(context.Background(), valid(), 0))
	})

	t.Run("password of exactly 72 bytes", func(t *testing.T) {
		t.Parallel()
		admin := valid()
		admin.Password = strings.Repeat("é", 36)
		assert.NoError(t, fx.validator.ValidateAdministrator(context.Background(), admin, 0))
	})

	t.Run("existing hash satisfies password", func(t *testing.T) {
		t.Parallel()
		admin := valid()
		admin.Password = ""
		admin.PasswordHash = "plain:x"
		assert.NoError(t, fx.validator.ValidateAdministrator(context.Background(), admin, 0))
	})
}

func TestValidateRejectsNilEntities(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	assert.ErrorIs(t, fx.validator.ValidateAdministrator(context.Background(), nil, 0), domain.ErrValidation)
	assert.ErrorIs(t, fx.validator.ValidateVehicle(context.Background(), nil, 0), domain.ErrValidation)
}

func TestValidateAdministratorUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fx := newFixture(t)

	existing := &domain.Administrator{Name: "Ana", Email: "ana@mail.com", PasswordHash: "plain:x", Role: domain.RoleUser}
	_, err := fx.admins.Create(ctx, existing)
	require.NoError(t, err)

	same := &domain.Administrator{Name: "Ana", Email: "ana@mail.com", Password: "y", Role: domain.RoleUser}
	assert.ErrorIs(t, fx.validator.ValidateAdministrator(ctx, same, 0), domain.ErrDuplicate)

	// the record being updated never collides with itself
	assert.NoError(t, fx.validator.ValidateAdministrator(ctx, same, existing.ID))

	otherEmail := &domain.Administrator{Name: "Ana", Email: "ana2@mail.com", Password: "y", Role: domain.RoleUser}
	assert.NoError(t, fx.validator.ValidateAdministrator(ctx, otherEmail, 0))
}

func TestValidateVehicle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fx := newFixture(t)
	date := domain.NewDate(2025, time.October, 7)

	tests := []struct {
		name      string
		vehicle   domain.Vehicle
		wantField string
	}{
		{name: "blank name", vehicle: domain.Vehicle{Name: " ", Brand: "Fiat", RegistrationDate: date}, wantField: "name"},
		{name: "name over 150", vehicle: domain.Vehicle{Name: strings.Repeat("v", 151), Brand: "Fiat", RegistrationDate: date}, wantField: "name"},
		{name: "blank brand", vehicle: domain.Vehicle{Name: "Uno", Brand: "", RegistrationDate: date}, wantField: "brand"},
		{name: "brand over 100", vehicle: domain.Vehicle{Name: "Uno", Brand: strings.Repeat("b", 101), RegistrationDate: date}, wantField: "brand"},
		{name: "missing date", vehicle: domain.Vehicle{Name: "Uno", Brand: "Fiat"}, wantField: "registrationDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vehicle := tt.vehicle
			err := fx.validator.ValidateVehicle(ctx, &vehicle, 0)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}

	t.Run("name of exactly 150 is accepted", func(t *testing.T) {
		t.Parallel()
		vehicle := domain.Vehicle{Name: strings.Repeat("v", 150), Brand: "Fiat", RegistrationDate: date}
		assert.NoError(t, fx.validator.ValidateVehicle(ctx, &vehicle, 0))
	})
}

func TestValidateVehicleUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fx := newFixture(t)
	date := domain.NewDate(2025, time.October, 7)

	stored := &domain.Vehicle{Name: "Gol", Brand: "Volkswagen", RegistrationDate: date}
	_, err := fx.vehicles.Create(ctx, stored)
	require.NoError(t, err)

	dup := &domain.Vehicle{Name: "Gol", Brand: "Volkswagen", RegistrationDate: date}
	assert.ErrorIs(t, fx.validator.ValidateVehicle(ctx, dup, 0), domain.ErrDuplicate)
	assert.NoError(t, fx.validator.ValidateVehicle(ctx, dup, stored.ID))

	other := &domain.Vehicle{Name: "Gol", Brand: "VW", RegistrationDate: date}
	assert.NoError(t, fx.validator.ValidateVehicle(ctx, other, 0))
}
