package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar/campuslms/internal/app/models"
	"github.com/omkar/campuslms/internal/app/repositories"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
	"github.com/omkar/campuslms/internal/pkg/auth"
)

type fakeAdminAccounts struct {
	admins    map[string]*models.Admin
	passwords map[int64]string
}

func (f *fakeAdminAccounts) GetByEmail(ctx context.Context, mail string) (*models.Admin, error) {
	if a, ok := f.admins[mail]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAccountNotFound
}

func (f *fakeAdminAccounts) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.passwords[id] = hash
	return nil
}

type fakeTeacherAccounts struct {
	teachers  map[string]*models.Teacher
	passwords map[int64]string
	touched   map[int64]time.Time
}

func (f *fakeTeacherAccounts) GetByEmail(ctx context.Context, mail string) (*models.Teacher, error) {
	if t, ok := f.teachers[mail]; ok {
		return t, nil
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f *fakeTeacherAccounts) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.passwords[id] = hash
	return nil
}

func (f *fakeTeacherAccounts) TouchResetRequest(ctx context.Context, id int64, at time.Time) error {
	f.touched[id] = at
	return nil
}

type fakeStudentAccounts struct {
	students  map[string]*models.Student
	passwords map[int64]string
	touched   map[int64]time.Time
}

func (f *fakeStudentAccounts) GetByEmail(ctx context.Context, mail string) (*models.Student, error) {
	if s, ok := f.students[mail]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentAccounts) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.passwords[id] = hash
	return nil
}

func (f *fakeStudentAccounts) TouchResetRequest(ctx context.Context, id int64, at time.Time) error {
	f.touched[id] = at
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*repositories.ResetTokenInfo
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, role models.Role, accountID int64, token string, expiryDate time.Time) error {
	f.tokens[token] = &repositories.ResetTokenInfo{Role: role, AccountID: accountID, ExpiryDate: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenInfo(ctx context.Context, token string) (*repositories.ResetTokenInfo, error) {
	if info, ok := f.tokens[token]; ok {
		return info, nil
	}
	return nil, apperrors.ErrTokenNotFound
}

func (f *fakeTokenStore) MarkTokenAsUsed(ctx context.Context, token string) error {
	info, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	info.Used = true
	return nil
}

func (f *fakeTokenStore) DeleteTokensForAccount(ctx context.Context, role models.Role, accountID int64) error {
	for token, info := range f.tokens {
		if info.Role == role && info.AccountID == accountID {
			delete(f.tokens, token)
		}
	}
	return nil
}

type authFixture struct {
	admins   *fakeAdminAccounts
	teachers *fakeTeacherAccounts
	students *fakeStudentAccounts
	tokens   *fakeTokenStore
	mailer   *fakeMailer
	service  *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		admins:   &fakeAdminAccounts{admins: map[string]*models.Admin{}, passwords: map[int64]string{}},
		teachers: &fakeTeacherAccounts{teachers: map[string]*models.Teacher{}, passwords: map[int64]string{}, touched: map[int64]time.Time{}},
		students: &fakeStudentAccounts{students: map[string]*models.Student{}, passwords: map[int64]string{}, touched: map[int64]time.Time{}},
		tokens:   &fakeTokenStore{tokens: map[string]*repositories.ResetTokenInfo{}},
		mailer:   &fakeMailer{failFor: map[string]bool{}},
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	f.service = NewAuthService(f.admins, f.teachers, f.students, f.tokens, jwtService, f.mailer, zerolog.Nop())
	return f
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestLogin_TeacherWithPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.teachers.teachers["asha@college.edu"] = &models.Teacher{
		ID: 7, Name: "Asha Kulkarni", Email: "asha@college.edu",
		Password: mustHash(t, "Secret@123"),
	}

	resp, err := f.service.Login(context.Background(), "asha@college.edu", "Secret@123")
	require.NoError(t, err)

	assert.Equal(t, models.RoleTeacher, resp.Account.Role)
	assert.Equal(t, int64(7), resp.Account.ID)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotNil(t, resp.Profile)
}

func TestLogin_AdminWinsOverTeacherOnSameEmail(t *testing.T) {
	f := newAuthFixture(t)
	shared := "head@college.edu"
	f.admins.admins[shared] = &models.Admin{ID: 1, Name: "Head", Email: shared, Password: mustHash(t, "Secret@123")}
	f.teachers.teachers[shared] = &models.Teacher{ID: 2, Name: "Head", Email: shared, Password: mustHash(t, "Secret@123")}

	resp, err := f.service.Login(context.Background(), shared, "Secret@123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.Account.Role)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Login(context.Background(), "nobody@college.edu", "Secret@123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.students.students["rahul@college.edu"] = &models.Student{
		ID: 3, Name: "Rahul", Email: "rahul@college.edu", Password: mustHash(t, "Secret@123"),
	}

	_, err := f.service.Login(context.Background(), "rahul@college.edu", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_ImportedAccountWithoutPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.students.students["rahul@college.edu"] = &models.Student{
		ID: 3, Name: "Rahul", Email: "rahul@college.edu", Password: "",
	}

	_, err := f.service.Login(context.Background(), "rahul@college.edu", "anything")
	assert.ErrorIs(t, err, apperrors.ErrPasswordNotSet)
}

func TestForgotPassword_IssuesSingleToken(t *testing.T) {
	f := newAuthFixture(t)
	f.teachers.teachers["asha@college.edu"] = &models.Teacher{ID: 7, Name: "Asha", Email: "asha@college.edu"}

	require.NoError(t, f.service.ForgotPassword(context.Background(), "asha@college.edu"))
	assert.Len(t, f.tokens.tokens, 1)
	assert.Contains(t, f.mailer.sent, "asha@college.edu")
	assert.Contains(t, f.teachers.touched, int64(7))

	// A second request replaces the first token instead of stacking.
	require.NoError(t, f.service.ForgotPassword(context.Background(), "asha@college.edu"))
	assert.Len(t, f.tokens.tokens, 1)
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.ForgotPassword(context.Background(), "nobody@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestForgotPassword_MailFailureKeepsToken(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.failFor["asha@college.edu"] = true
	f.teachers.teachers["asha@college.edu"] = &models.Teacher{ID: 7, Name: "Asha", Email: "asha@college.edu"}

	require.NoError(t, f.service.ForgotPassword(context.Background(), "asha@college.edu"))
	assert.Len(t, f.tokens.tokens, 1)
}

func TestResetPassword_FullFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.students.students["rahul@college.edu"] = &models.Student{ID: 3, Name: "Rahul", Email: "rahul@college.edu"}

	require.NoError(t, f.service.ForgotPassword(context.Background(), "rahul@college.edu"))
	var token string
	for tok := range f.tokens.tokens {
		token = tok
	}

	require.NoError(t, f.service.ResetPassword(context.Background(), token, "NewSecret@123"))

	hash, ok := f.students.passwords[int64(3)]
	require.True(t, ok)
	assert.True(t, auth.CheckPassword(hash, "NewSecret@123"))

	// The token is single-use.
	err := f.service.ResetPassword(context.Background(), token, "Another@123")
	assert.ErrorIs(t, err, apperrors.ErrTokenUsed)
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.tokens["stale"] = &repositories.ResetTokenInfo{
		Role: models.RoleTeacher, AccountID: 7, ExpiryDate: time.Now().Add(-time.Minute),
	}

	err := f.service.ResetPassword(context.Background(), "stale", "NewSecret@123")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.service.ResetPassword(context.Background(), "missing", "NewSecret@123")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestResetPassword_RejectsWeakPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.tokens.tokens["fresh"] = &repositories.ResetTokenInfo{
		Role: models.RoleTeacher, AccountID: 7, ExpiryDate: time.Now().Add(time.Hour),
	}

	err := f.service.ResetPassword(context.Background(), "fresh", "weak")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	// The token survives a rejected password so the user can retry.
	assert.False(t, f.tokens.tokens["fresh"].Used)
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Secret@123", true},
		{"short", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigits!!", false},
		{"NoSpecial123", false},
	}

	for _, tt := range tests {
		err := ValidatePasswordPolicy(tt.password)
		if tt.valid {
			assert.NoError(t, err, tt.password)
		} else {
			assert.ErrorIs(t, err, apperrors.ErrInvalidPassword, tt.password)
		}
	}
}
