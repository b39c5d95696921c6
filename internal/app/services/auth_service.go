package services

import (
	"context"
	"errors"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/app/repositories"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/auth"
	"github.com/omkar/campuslms/internal/pkg/email"
)

const resetTokenTTL = time.Hour

// AdminAccounts is the slice of admin persistence the auth flow needs
type AdminAccounts interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// TeacherAccounts is the slice of teacher persistence the auth flow needs
type TeacherAccounts interface {
	GetByEmail(ctx context.Context, email string) (*models.Teacher, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchResetRequest(ctx context.Context, id int64, at time.Time) error
}

// StudentAccounts is the slice of student persistence the auth flow needs
type StudentAccounts interface {
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchResetRequest(ctx context.Context, id int64, at time.Time) error
}

// ResetTokenStore persists single-use password reset tokens
type ResetTokenStore interface {
	CreateToken(ctx context.Context, role models.Role, accountID int64, token string, expiryDate time.Time) error
	GetTokenInfo(ctx context.Context, token string) (*repositories.ResetTokenInfo, error)
	MarkTokenAsUsed(ctx context.Context, token string) error
	DeleteTokensForAccount(ctx context.Context, role models.Role, accountID int64) error
}

// AuthService handles unified login and the password reset flow across the
// three account roles
type AuthService struct {
	admins     AdminAccounts
	teachers   TeacherAccounts
	students   StudentAccounts
	tokens     ResetTokenStore
	jwtService *auth.JWTService
	mailer     email.Service
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	admins AdminAccounts,
	teachers TeacherAccounts,
	students StudentAccounts,
	tokens ResetTokenStore,
	jwtService *auth.JWTService,
	mailer email.Service,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		admins:     admins,
		teachers:   teachers,
		students:   students,
		tokens:     tokens,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
	}
}

type resolvedAccount struct {
	id       int64
	name     string
	email    string
	role     models.Role
	password string
	profile  interface{}
}

// Login authenticates one email/password pair against the admin, teacher and
// student tables in that order and issues an access token for the first
// match.
func (s *AuthService) Login(ctx context.Context, loginEmail, password string) (*dto.AuthResponse, error) {
	account, err := s.resolveAccount(ctx, loginEmail)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Imported accounts start without a password; they must go through the
	// reset flow before first login.
	if account.password == "" {
		return nil, apperrors.ErrPasswordNotSet
	}

	if !auth.CheckPassword(account.password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(account.id, account.email, account.name, account.role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("email", account.email).
		Str("role", string(account.role)).
		Msg("Account logged in")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Account: dto.AccountInfo{
			ID:    account.id,
			Name:  account.name,
			Email: account.email,
			Role:  account.role,
		},
		Profile: account.profile,
	}, nil
}

// ForgotPassword issues a single-use reset token for whichever account owns
// the email and sends the reset link. Mail failure is logged, not fatal: the
// token stays valid and support can hand over the link.
func (s *AuthService) ForgotPassword(ctx context.Context, accountEmail string) error {
	account, err := s.resolveAccount(ctx, accountEmail)
	if err != nil {
		return err
	}
	if account == nil {
		return apperrors.ErrAccountNotFound
	}

	token, err := email.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.tokens.DeleteTokensForAccount(ctx, account.role, account.id); err != nil {
		return err
	}
	if err := s.tokens.CreateToken(ctx, account.role, account.id, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	now := time.Now()
	switch account.role {
	case models.RoleTeacher:
		err = s.teachers.TouchResetRequest(ctx, account.id, now)
	case models.RoleStudent:
		err = s.students.TouchResetRequest(ctx, account.id, now)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("email", account.email).Msg("Failed to record reset request time")
	}

	if err := s.mailer.SendPasswordReset(account.email, account.name, token); err != nil {
		s.logger.Warn().Err(err).Str("email", account.email).Msg("Password reset email failed")
	}

	return nil
}

// ResetPassword validates a reset token, enforces the password policy and
// stores the new hash. The token is single-use.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	info, err := s.tokens.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}
	if info.Used {
		return apperrors.ErrTokenUsed
	}
	if time.Now().After(info.ExpiryDate) {
		return apperrors.ErrTokenExpired
	}

	if err := ValidatePasswordPolicy(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	switch info.Role {
	case models.RoleAdmin:
		err = s.admins.UpdatePassword(ctx, info.AccountID, hash)
	case models.RoleTeacher:
		err = s.teachers.UpdatePassword(ctx, info.AccountID, hash)
	case models.RoleStudent:
		err = s.students.UpdatePassword(ctx, info.AccountID, hash)
	default:
		err = apperrors.ErrInvalidRole
	}
	if err != nil {
		return err
	}

	return s.tokens.MarkTokenAsUsed(ctx, token)
}

// resolveAccount looks up an email across the role tables in priority order.
// A nil account with nil error means no table holds the email.
func (s *AuthService) resolveAccount(ctx context.Context, accountEmail string) (*resolvedAccount, error) {
	admin, err := s.admins.GetByEmail(ctx, accountEmail)
	if err == nil {
		return &resolvedAccount{
			id: admin.ID, name: admin.Name, email: admin.Email,
			role: models.RoleAdmin, password: admin.Password, profile: admin,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, err
	}

	teacher, err := s.teachers.GetByEmail(ctx, accountEmail)
	if err == nil {
		return &resolvedAccount{
			id: teacher.ID, name: teacher.Name, email: teacher.Email,
			role: models.RoleTeacher, password: teacher.Password, profile: teacher,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrTeacherNotFound) {
		return nil, err
	}

	student, err := s.students.GetByEmail(ctx, accountEmail)
	if err == nil {
		return &resolvedAccount{
			id: student.ID, name: student.Name, email: student.Email,
			role: models.RoleStudent, password: student.Password, profile: student,
		}, nil
	}
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	return nil, nil
}

// ValidatePasswordPolicy enforces the minimum password shape: at least 8
// characters with upper, lower, digit and special characters.
func ValidatePasswordPolicy(password string) error {
	if len(password) < 8 {
		return &apperrors.CustomError{
			Err:     apperrors.ErrInvalidPassword,
			Message: "password must be at least 8 characters long",
		}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return &apperrors.CustomError{
			Err:     apperrors.ErrInvalidPassword,
			Message: "password must contain upper and lower case letters, a digit and a special character",
		}
	}

	return nil
}
