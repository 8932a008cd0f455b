package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

const selectVehicle = `
SELECT id, name, brand, registration_date
FROM vehicles`

type VehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO vehicles (name, brand, registration_date)
VALUES (?, ?, ?)`,
		vehicle.Name,
		vehicle.Brand,
		vehicle.RegistrationDate.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert vehicle: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	vehicle.ID = id
	return id, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE vehicles
SET name=?, brand=?, registration_date=?
WHERE id=?`,
		vehicle.Name,
		vehicle.Brand,
		vehicle.RegistrationDate.String(),
		vehicle.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update vehicle: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	return requireAffected(res, "vehicle", vehicle.ID)
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return requireAffected(res, "vehicle", id)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx, selectVehicle+`
WHERE id=?`,
		id,
	)
	return scanVehicle(row)
}

func (r *VehicleRepository) ExistsByNaturalKey(ctx context.Context, name, brand string, excludeID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM vehicles
	WHERE name = ? AND brand = ? AND id <> ?
)`,
		name,
		brand,
		excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check vehicle key: %w", err)
	}
	return exists == 1, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, selectVehicle+`
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}

	return vehicles, rows.Err()
}

func scanVehicle(scanner rowScanner) (*domain.Vehicle, error) {
	var (
		vehicle domain.Vehicle
		date    string
	)

	if err := scanner.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Brand,
		&date,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vehicle: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan vehicle: %w", err)
	}

	parsed, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("vehicle %d registration date: %w", vehicle.ID, err)
	}
	vehicle.RegistrationDate = parsed
	return &vehicle, nil
}
