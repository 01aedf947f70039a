package dto

import "starbank/internal/models"

// CreateUserRequest is the payload for POST /users
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"omitempty,max=128"`
	LastName  string `json:"last_name" validate:"omitempty,max=128"`
}

// UpdateUserRequest carries optional fields for PUT /users/:id. Nil means
// leave the stored value alone.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=128"`
	LastName  *string `json:"last_name" validate:"omitempty,max=128"`
}

// ListUsersResponse wraps a user page with its pagination metadata
type ListUsersResponse struct {
	Users      []*models.User `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
