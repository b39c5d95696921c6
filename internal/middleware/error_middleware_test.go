package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkar/campuslms/internal/app/models/dto"
	"github.com/omkar/campuslms/internal/pkg/apperrors"
)

func handleErr(t *testing.T, err error) (int, *dto.APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	HandleAPIError(c, err)

	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, &body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"teacher not found", apperrors.ErrTeacherNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"class not found", apperrors.ErrClassNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, 403, dto.ErrorCodeForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidCredentials},
		{"password not set", apperrors.ErrPasswordNotSet, 401, dto.ErrorCodePasswordNotSet},
		{"token expired", apperrors.ErrTokenExpired, 401, dto.ErrorCodeExpiredToken},
		{"token used", apperrors.ErrTokenUsed, 401, dto.ErrorCodeInvalidToken},
		{"weak password", apperrors.ErrInvalidPassword, 400, dto.ErrorCodeWeakPassword},
		{"invalid batch", apperrors.ErrInvalidBatch, 400, dto.ErrorCodeInvalidBatch},
		{"invalid role", apperrors.ErrInvalidRole, 400, dto.ErrorCodeValidationFailed},
		{"email exists", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"unknown error", errors.New("boom"), 500, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleErr(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleAPIError_UnwrapsCustomError(t *testing.T) {
	wrapped := &apperrors.CustomError{
		Err:     apperrors.ErrInvalidPassword,
		Message: "password must be at least 8 characters long",
	}

	status, body := handleErr(t, wrapped)
	assert.Equal(t, 400, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeWeakPassword, body.Error.Code)
}
