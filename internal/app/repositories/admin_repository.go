package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

// AdminRepository handles database operations for administrator accounts
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password, created_at FROM admins WHERE email = $1`,
		email).Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Password, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}

	return &admin, nil
}

// GetByID retrieves an admin by id
func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, password, created_at FROM admins WHERE id = $1`,
		id).Scan(&admin.ID, &admin.Name, &admin.Email, &admin.Password, &admin.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}

	return &admin, nil
}

// Insert creates a new admin account and returns its id
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) (int64, error) {
	query, args, err := squirrel.Insert("admins").
		Columns("name", "email", "password").
		Values(admin.Name, admin.Email, admin.Password).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building admin insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting admin: %w", err)
	}

	return id, nil
}

// UpdatePassword sets a new password hash for an admin
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.Exec(ctx, `UPDATE admins SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("error updating admin password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}
