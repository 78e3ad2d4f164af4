package dto

import (
	"time"

	"github.com/billsphere/billing_backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed for local registration.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token for rotation. The refresh token is
// opaque, so the owning user must be named explicitly. The token itself may come
// from the body or from the refresh cookie.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken"`
}

// UpdateUserRequest defines the data allowed for updating a user profile.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// UserResponse defines the data returned for a user. Credential fields never
// leave the service layer.
type UserResponse struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	AuthProvider string    `json:"authProvider"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ListUsersResponse wraps a paginated list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Username:     u.Username,
		Name:         u.Name,
		AuthProvider: string(u.AuthProvider),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// ToListUsersResponse converts users to the list DTO.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	res := ListUsersResponse{
		Users: make([]UserResponse, len(users)),
	}
	for i, u := range users {
		res.Users[i] = ToUserResponse(&u)
	}
	return res
}
