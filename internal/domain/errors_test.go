package domain

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestResourceErrorUnwrap(t *testing.T) {
	cause := errors.New("row not found")
	resErr := ErrUserNotFound(cause)

	if !errors.Is(resErr, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}

	var target *ResourceError
	if !errors.As(error(resErr), &target) {
		t.Error("Expected errors.As to match *ResourceError")
	}

	if resErr.Error() != resErr.Message {
		t.Errorf("Expected Error() to return the message, got %q", resErr.Error())
	}
}

func TestResourceErrorConstructors(t *testing.T) {
	cause := errors.New("cause")
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	tests := []struct {
		name        string
		err         *ResourceError
		wantCode    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "user not found",
			err:         ErrUserNotFound(cause),
			wantCode:    "UserNotFound",
			wantStatus:  http.StatusNotFound,
			wantMessage: "The user ID is not found in the database.",
		},
		{
			name:        "user already exists",
			err:         ErrUserAlreadyExists("alice", cause),
			wantCode:    "UserAlreadyExists",
			wantStatus:  http.StatusConflict,
			wantMessage: "The user alice already exists.",
		},
		{
			name:        "create failure",
			err:         ErrCreateUser("alice", cause),
			wantCode:    "CreateUserError",
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error while creating the user alice.",
		},
		{
			name:        "update failure",
			err:         ErrUpdateUser(id, cause),
			wantCode:    "UpdateUserError",
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error while updating the user with the ID 11111111-2222-3333-4444-555555555555.",
		},
		{
			name:        "delete failure",
			err:         ErrDeleteUser(id, cause),
			wantCode:    "DeleteUserError",
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error while deleting the user with the ID 11111111-2222-3333-4444-555555555555.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Expected code %q, got %q", tt.wantCode, tt.err.Code)
			}
			if tt.err.Status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, tt.err.Status)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Expected message %q, got %q", tt.wantMessage, tt.err.Message)
			}
			if !errors.Is(tt.err, cause) {
				t.Error("Expected the constructor to wrap the cause")
			}
		})
	}
}
