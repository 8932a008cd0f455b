package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

// AdministratorInput carries the mutable fields of an administrator.
type AdministratorInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AdministratorFilter narrows a listing. Role is matched case-insensitively
// against the known roles; an unknown role matches nothing.
type AdministratorFilter struct {
	Name string
	Role string
}

// AdministratorService describes administrator lifecycle operations.
type AdministratorService interface {
	Create(ctx context.Context, in AdministratorInput) (*domain.Administrator, error)
	Get(ctx context.Context, id int64) (*domain.Administrator, error)
	Update(ctx context.Context, id int64, in AdministratorInput) (*domain.Administrator, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page int, filter AdministratorFilter) (Page[domain.AdministratorSummary], error)
	// EnsureMaster creates the administrator described by in unless one
	// with the same email already exists.
	EnsureMaster(ctx context.Context, in AdministratorInput) (bool, error)
}

type administratorService struct {
	admins    repository.AdministratorRepository
	validator *Validator
	hasher    PasswordHasher
}

func NewAdministratorService(admins repository.AdministratorRepository, validator *Validator, hasher PasswordHasher) AdministratorService {
	return &administratorService{
		admins:    admins,
		validator: validator,
		hasher:    hasher,
	}
}

func (s *administratorService) Create(ctx context.Context, in AdministratorInput) (*domain.Administrator, error) {
	admin := &domain.Administrator{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     in.Role,
	}
	if err := s.validator.ValidateAdministrator(ctx, admin, 0); err != nil {
		return nil, err
	}
	if err := s.hashPassword(admin); err != nil {
		return nil, err
	}

	if _, err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return sanitizeAdministrator(admin), nil
}

func (s *administratorService) Get(ctx context.Context, id int64) (*domain.Administrator, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeAdministrator(admin), nil
}

// Update keeps the stored hash when in.Password is empty and the stored
// role when in.Role is empty.
func (s *administratorService) Update(ctx context.Context, id int64, in AdministratorInput) (*domain.Administrator, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	admin.Name = strings.TrimSpace(in.Name)
	admin.Email = strings.TrimSpace(in.Email)
	if in.Role != "" {
		admin.Role = in.Role
	}
	if in.Password != "" {
		admin.Password = in.Password
		admin.PasswordHash = ""
	}

	if err := s.validator.ValidateAdministrator(ctx, admin, id); err != nil {
		return nil, err
	}
	if err := s.hashPassword(admin); err != nil {
		return nil, err
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return sanitizeAdministrator(admin), nil
}

func (s *administratorService) Delete(ctx context.Context, id int64) error {
	if _, err := s.admins.GetByID(ctx, id); err != nil {
		return err
	}
	return s.admins.Delete(ctx, id)
}

func (s *administratorService) List(ctx context.Context, page int, filter AdministratorFilter) (Page[domain.AdministratorSummary], error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return Page[domain.AdministratorSummary]{}, err
	}

	summaries := make([]domain.AdministratorSummary, len(admins))
	for i := range admins {
		summaries[i] = admins[i].Summary()
	}

	filters := []Filter[domain.AdministratorSummary]{
		ContainsFilter(filter.Name, func(a domain.AdministratorSummary) string { return a.Name }),
	}
	if filter.Role != "" {
		role, err := domain.ParseRole(filter.Role)
		if err != nil {
			filters = append(filters, MatchNone[domain.AdministratorSummary]())
		} else {
			filters = append(filters, func(a domain.AdministratorSummary) bool { return a.Role == role })
		}
	}

	return Paginate(summaries, page, filters...), nil
}

func (s *administratorService) EnsureMaster(ctx context.Context, in AdministratorInput) (bool, error) {
	_, err := s.admins.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("lookup master administrator: %w", err)
	}

	if _, err := s.Create(ctx, in); err != nil {
		return false, fmt.Errorf("create master administrator: %w", err)
	}
	return true, nil
}

func (s *administratorService) hashPassword(admin *domain.Administrator) error {
	if admin.Password == "" {
		return nil
	}
	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return err
	}
	admin.PasswordHash = hash
	admin.Password = ""
	return nil
}

func sanitizeAdministrator(admin *domain.Administrator) *domain.Administrator {
	if admin == nil {
		return nil
	}
	return &domain.Administrator{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		CreatedAt: admin.CreatedAt,
	}
}
