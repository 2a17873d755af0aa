package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/internal/domain"
)

// decodeErrorResponse unmarshals the recorded error payload.
func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError_ResourceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found",
			err:         domain.ErrUserNotFound(errors.New("no rows")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "UserNotFound",
			wantMessage: "The user ID is not found in the database.",
		},
		{
			name:        "conflict",
			err:         domain.ErrUserAlreadyExists("alice", errors.New("unique violation")),
			wantStatus:  http.StatusConflict,
			wantCode:    "UserAlreadyExists",
			wantMessage: "The user alice already exists.",
		},
		{
			name:        "internal",
			err:         domain.ErrCreateUser("alice", errors.New("disk full")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "CreateUserError",
			wantMessage: "Error while creating the user alice.",
		},
		{
			name:        "missing code falls back to Undefined",
			err:         domain.NewResourceError("", "Something specific happened.", http.StatusConflict, nil),
			wantStatus:  http.StatusConflict,
			wantCode:    "Undefined",
			wantMessage: "Something specific happened.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/123", nil)
			rec := httptest.NewRecorder()

			WriteError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeErrorResponse(t, rec)
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			assert.Equal(t, tt.wantMessage, body.ErrorMessage)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "http://example.com/users/123", body.RequestURL)
		})
	}
}

func TestWriteError_ValidationErrors(t *testing.T) {
	t.Parallel()

	v := newValidator()

	t.Run("all fields missing", func(t *testing.T) {
		err := v.Struct(CreateUserRequest{})
		require.Error(t, err)

		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		rec := httptest.NewRecorder()

		WriteError(rec, req, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeErrorResponse(t, rec)
		assert.Equal(t, "FormValidationError", body.ErrorCode)
		assert.Equal(t,
			"The username is required. The email is required. The password is required.",
			body.ErrorMessage)
	})

	t.Run("malformed email", func(t *testing.T) {
		err := v.Struct(CreateUserRequest{
			Username: "alice",
			Email:    "not-an-email",
			Password: "pw",
		})
		require.Error(t, err)

		req := httptest.NewRequest(http.MethodPost, "/users", nil)
		rec := httptest.NewRecorder()

		WriteError(rec, req, err)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeErrorResponse(t, rec)
		assert.Equal(t, "FormValidationError", body.ErrorCode)
		assert.Equal(t, "The email must be a valid email address.", body.ErrorMessage)
	})
}

func TestWriteError_MalformedBody(t *testing.T) {
	t.Parallel()

	var syntaxTarget CreateUserRequest
	err := json.Unmarshal([]byte("{not json"), &syntaxTarget)
	require.Error(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, "MalformedRequestBody", body.ErrorCode)
}

func TestWriteError_Unclassified(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/users?page=2", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, errors.New("kaboom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeErrorResponse(t, rec)
	assert.Equal(t, "500", body.ErrorCode)
	assert.Equal(t, "kaboom", body.ErrorMessage)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.Equal(t, "http://example.com/users?page=2", body.RequestURL)
}
