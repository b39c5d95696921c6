package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

// ResetTokenInfo describes a stored password reset token
type ResetTokenInfo struct {
	Role       models.Role
	AccountID  int64
	ExpiryDate time.Time
	Used       bool
}

// PasswordResetTokenRepository manages password reset tokens in the database
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
	}
}

// CreateToken stores a new password reset token for an account
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, role models.Role, accountID int64, token string, expiryDate time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (account_role, account_id, token, expiry_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, role, accountID, token, expiryDate)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}

	return nil
}

// GetTokenInfo retrieves the account and expiry info for a given token
func (r *PasswordResetTokenRepository) GetTokenInfo(ctx context.Context, token string) (*ResetTokenInfo, error) {
	query := `
		SELECT account_role, account_id, expiry_date, used
		FROM password_reset_tokens
		WHERE token = $1
	`

	var info ResetTokenInfo
	err := r.db.QueryRow(ctx, query, token).Scan(&info.Role, &info.AccountID, &info.ExpiryDate, &info.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}

	return &info, nil
}

// MarkTokenAsUsed marks a token as used to prevent reuse
func (r *PasswordResetTokenRepository) MarkTokenAsUsed(ctx context.Context, token string) error {
	query := `
		UPDATE password_reset_tokens
		SET used = true
		WHERE token = $1
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("error marking token as used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}

	return nil
}

// DeleteTokensForAccount removes all tokens for one account
func (r *PasswordResetTokenRepository) DeleteTokensForAccount(ctx context.Context, role models.Role, accountID int64) error {
	query := `
		DELETE FROM password_reset_tokens
		WHERE account_role = $1 AND account_id = $2
	`

	_, err := r.db.Exec(ctx, query, role, accountID)
	if err != nil {
		return fmt.Errorf("error deleting password reset tokens for account: %w", err)
	}

	return nil
}

// DeleteExpiredTokens removes all expired tokens
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	query := `
		DELETE FROM password_reset_tokens
		WHERE expiry_date < $1
	`

	_, err := r.db.Exec(ctx, query, time.Now())
	if err != nil {
		return fmt.Errorf("error deleting expired password reset tokens: %w", err)
	}

	return nil
}
