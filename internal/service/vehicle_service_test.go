package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage-api/internal/domain"
)

func newVehicleService(t *testing.T) VehicleService {
	t.Helper()
	fx := newFixture(t)
	return NewVehicleService(fx.vehicles, fx.validator)
}

func TestVehicleLifecycle(t *testing.T) {
	t.Parallel()
	svc := newVehicleService(t)
	ctx := context.Background()
	date := domain.NewDate(2025, time.October, 7)

	created, err := svc.Create(ctx, VehicleInput{Name: " Civic ", Brand: "Honda", RegistrationDate: date})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Civic", created.Name)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, date.Equal(got.RegistrationDate))
	assert.Equal(t, "2025-10-07", got.RegistrationDate.String())

	// unchanged name and brand must not collide with the record itself
	updated, err := svc.Update(ctx, created.ID, VehicleInput{Name: "Civic", Brand: "Honda", RegistrationDate: domain.NewDate(2024, time.January, 2)})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", updated.RegistrationDate.String())

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestVehicleCreateValidation(t *testing.T) {
	t.Parallel()
	svc := newVehicleService(t)
	ctx := context.Background()
	date := domain.NewDate(2025, time.October, 7)

	_, err := svc.Create(ctx, VehicleInput{Name: "", Brand: "Honda", RegistrationDate: date})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(ctx, VehicleInput{Name: "Civic", Brand: "Honda"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "registrationDate", verr.Field)

	_, err = svc.Create(ctx, VehicleInput{Name: "Civic", Brand: "Honda", RegistrationDate: date})
	require.NoError(t, err)
	_, err = svc.Create(ctx, VehicleInput{Name: "Civic", Brand: "Honda", RegistrationDate: date})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = svc.Create(ctx, VehicleInput{Name: "Civic", Brand: "Toyota", RegistrationDate: date})
	assert.NoError(t, err)
}

func TestVehicleUpdateUnknownID(t *testing.T) {
	t.Parallel()
	svc := newVehicleService(t)

	_, err := svc.Update(context.Background(), 404, VehicleInput{Name: "Civic", Brand: "Honda", RegistrationDate: domain.NewDate(2025, time.October, 7)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVehicleList(t *testing.T) {
	t.Parallel()
	svc := newVehicleService(t)
	ctx := context.Background()
	date := domain.NewDate(2025, time.October, 7)

	brands := []string{"Honda", "Toyota", "Fiat"}
	for i := 1; i <= 12; i++ {
		_, err := svc.Create(ctx, VehicleInput{
			Name:             fmt.Sprintf("car-%02d", i),
			Brand:            brands[i%len(brands)],
			RegistrationDate: date,
		})
		require.NoError(t, err)
	}

	first, err := svc.List(ctx, 1, VehicleFilter{})
	require.NoError(t, err)
	assert.Equal(t, 12, first.Total)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, "car-01", first.Items[0].Name)

	second, err := svc.List(ctx, 2, VehicleFilter{})
	require.NoError(t, err)
	assert.Len(t, second.Items, 2)

	toyota, err := svc.List(ctx, 1, VehicleFilter{Brand: "Toyota"})
	require.NoError(t, err)
	assert.Equal(t, 4, toyota.Total)

	// substring matching is case-sensitive
	lower, err := svc.List(ctx, 1, VehicleFilter{Brand: "toyota"})
	require.NoError(t, err)
	assert.Zero(t, lower.Total)

	both, err := svc.List(ctx, 1, VehicleFilter{Name: "car-1", Brand: "Honda"})
	require.NoError(t, err)
	// car-10, car-11, car-12 with i%3==0 -> car-12
	assert.Equal(t, 1, both.Total)
}
