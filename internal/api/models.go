package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/userhub/userhub/internal/domain"
	"github.com/userhub/userhub/internal/store"
)

// CreateUserRequest defines the payload for creating a user. The
// notblank rule rejects whitespace-only values, which the plain
// required tag would let through.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,notblank"`
}

// UpdateUserRequest defines the payload for partially updating a user.
// Email and Password overwrite the stored values iff present and
// non-empty; absent or empty fields leave the existing value
// untouched. Username is not updatable.
type UpdateUserRequest struct {
	ID       uuid.UUID `json:"id"       validate:"required"`
	Email    string    `json:"email"    validate:"omitempty,email"`
	Password string    `json:"password" validate:"omitempty,notblank"`
}

// UserResponse is the transfer shape of a user record. The password
// is deliberately absent: the system this replaces leaked it in the
// DTO, which was a flagged defect, not a contract.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageResponse wraps one page of user records.
// TotalPages is always ceil(TotalElements / pageSize).
type PageResponse struct {
	Content       []UserResponse `json:"content"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	CurrentPage   int            `json:"currentPage"`
}

// NewUserResponse converts a domain user to its transfer shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewPageResponse converts a store page to its transfer shape.
func NewPageResponse(p *store.UserPage) PageResponse {
	content := make([]UserResponse, len(p.Users))
	for i, user := range p.Users {
		content[i] = NewUserResponse(user)
	}

	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int((p.Total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}

	return PageResponse{
		Content:       content,
		TotalElements: p.Total,
		TotalPages:    totalPages,
		CurrentPage:   p.Page,
	}
}
