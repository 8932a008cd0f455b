package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"garage-api/internal/domain"
	"garage-api/internal/repository"
)

const selectAdministrator = `
SELECT id, name, email, password_hash, role, created_at
FROM administrators`

type AdministratorRepository struct {
	db *sql.DB
}

func NewAdministratorRepository(db *sql.DB) repository.AdministratorRepository {
	return &AdministratorRepository{db: db}
}

func (r *AdministratorRepository) Create(ctx context.Context, admin *domain.Administrator) (int64, error) {
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO administrators (name, email, password_hash, role, created_at)
VALUES (?, ?, ?, ?, ?)`,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		string(admin.Role),
		admin.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert administrator: %w", domain.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert administrator: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("administrator last insert id: %w", err)
	}
	admin.ID = id
	return id, nil
}

// Update rewrites the mutable columns; created_at is never touched.
func (r *AdministratorRepository) Update(ctx context.Context, admin *domain.Administrator) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE administrators
SET name=?, email=?, password_hash=?, role=?
WHERE id=?`,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		string(admin.Role),
		admin.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update administrator: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update administrator: %w", err)
	}
	return requireAffected(res, "administrator", admin.ID)
}

func (r *AdministratorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM administrators WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete administrator: %w", err)
	}
	return requireAffected(res, "administrator", id)
}

func (r *AdministratorRepository) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	row := r.db.QueryRowContext(ctx, selectAdministrator+`
WHERE id = ?`,
		id,
	)
	return scanAdministrator(row)
}

func (r *AdministratorRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	row := r.db.QueryRowContext(ctx, selectAdministrator+`
WHERE email = ?
ORDER BY id ASC
LIMIT 1`,
		email,
	)
	return scanAdministrator(row)
}

func (r *AdministratorRepository) ExistsByNaturalKey(ctx context.Context, name, email string, excludeID int64) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `
SELECT EXISTS (
	SELECT 1 FROM administrators
	WHERE name = ? AND email = ? AND id <> ?
)`,
		name,
		email,
		excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check administrator key: %w", err)
	}
	return exists == 1, nil
}

func (r *AdministratorRepository) List(ctx context.Context) ([]domain.Administrator, error) {
	rows, err := r.db.QueryContext(ctx, selectAdministrator+`
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query administrators: %w", err)
	}
	defer rows.Close()

	var admins []domain.Administrator
	for rows.Next() {
		admin, err := scanAdministrator(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *admin)
	}

	return admins, rows.Err()
}

func scanAdministrator(row rowScanner) (*domain.Administrator, error) {
	var (
		admin domain.Administrator
		role  string
	)
	if err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&role,
		&admin.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("administrator: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan administrator: %w", err)
	}
	admin.Role = domain.Role(role)
	admin.CreatedAt = admin.CreatedAt.UTC()
	return &admin, nil
}

func requireAffected(res sql.Result, entity string, id int64) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
