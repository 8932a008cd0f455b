package service

import (
	"context"
	"strings"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

// VehicleInput carries the mutable fields of a vehicle.
type VehicleInput struct {
	Name             string
	Brand            string
	RegistrationDate domain.Date
}

// VehicleFilter narrows a listing by substrings of name and brand.
type VehicleFilter struct {
	Name  string
	Brand string
}

// VehicleService coordinates vehicle operations backed by a repository.
type VehicleService interface {
	Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, in VehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page int, filter VehicleFilter) (Page[domain.Vehicle], error)
}

type vehicleService struct {
	vehicles  repository.VehicleRepository
	validator *Validator
}

func NewVehicleService(vehicles repository.VehicleRepository, validator *Validator) VehicleService {
	return &vehicleService{
		vehicles:  vehicles,
		validator: validator,
	}
}

func (s *vehicleService) Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		Name:             strings.TrimSpace(in.Name),
		Brand:            strings.TrimSpace(in.Brand),
		RegistrationDate: in.RegistrationDate,
	}
	if err := s.validator.ValidateVehicle(ctx, vehicle, 0); err != nil {
		return nil, err
	}

	if _, err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, id int64, in VehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vehicle.Name = strings.TrimSpace(in.Name)
	vehicle.Brand = strings.TrimSpace(in.Brand)
	vehicle.RegistrationDate = in.RegistrationDate

	if err := s.validator.ValidateVehicle(ctx, vehicle, id); err != nil {
		return nil, err
	}
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) Delete(ctx context.Context, id int64) error {
	if _, err := s.vehicles.GetByID(ctx, id); err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, page int, filter VehicleFilter) (Page[domain.Vehicle], error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return Page[domain.Vehicle]{}, err
	}

	return Paginate(vehicles, page,
		ContainsFilter(filter.Name, func(v domain.Vehicle) string { return v.Name }),
		ContainsFilter(filter.Brand, func(v domain.Vehicle) string { return v.Brand }),
	), nil
}
