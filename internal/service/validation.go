package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

// Validator runs the field and uniqueness checks that guard every create
// and update. It performs reads only.
type Validator struct {
	admins   repository.AdministratorRepository
	vehicles repository.VehicleRepository
	fields   *validator.Validate
}

func NewValidator(admins repository.AdministratorRepository, vehicles repository.VehicleRepository) *Validator {
	fields := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for a malformed tag name
	_ = fields.RegisterValidation("notblank", validators.NotBlank)
	fields.RegisterTagNameFunc(fieldName)

	return &Validator{
		admins:   admins,
		vehicles: vehicles,
		fields:   fields,
	}
}

// ValidateAdministrator checks admin before it is written. excludeID is the
// id of the record being updated, or 0 on create.
func (v *Validator) ValidateAdministrator(ctx context.Context, admin *domain.Administrator, excludeID int64) error {
	if admin == nil {
		return domain.NewValidationError("administrator", "is required")
	}
	if err := v.checkFields(admin); err != nil {
		return err
	}
	if strings.TrimSpace(admin.Password) == "" && admin.PasswordHash == "" {
		return domain.NewValidationError("password", "is required")
	}
	if len(admin.Password) > MaxPasswordBytes {
		return domain.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}

	exists, err := v.admins.ExistsByNaturalKey(ctx, admin.Name, admin.Email, excludeID)
	if err != nil {
		return fmt.Errorf("check administrator uniqueness: %w", err)
	}
	if exists {
		return fmt.Errorf("administrator with the same name and email: %w", domain.ErrDuplicate)
	}
	return nil
}

func (v *Validator) ValidateVehicle(ctx context.Context, vehicle *domain.Vehicle, excludeID int64) error {
	if vehicle == nil {
		return domain.NewValidationError("vehicle", "is required")
	}
	if err := v.checkFields(vehicle); err != nil {
		return err
	}
	if vehicle.RegistrationDate.IsZero() {
		return domain.NewValidationError("registrationDate", "is required")
	}

	exists, err := v.vehicles.ExistsByNaturalKey(ctx, vehicle.Name, vehicle.Brand, excludeID)
	if err != nil {
		return fmt.Errorf("check vehicle uniqueness: %w", err)
	}
	if exists {
		return fmt.Errorf("vehicle with the same name and brand: %w", domain.ErrDuplicate)
	}
	return nil
}

// checkFields reports the first failing field in declaration order.
func (v *Validator) checkFields(entity any) error {
	err := v.fields.Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate fields: %w", err)
	}
	first := fieldErrs[0]
	return domain.NewValidationError(first.Field(), reasonFor(first))
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "is invalid"
	}
}

func fieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name != "" && name != "-" {
		return name
	}
	runes := []rune(f.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
