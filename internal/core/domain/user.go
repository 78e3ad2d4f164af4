package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an application user.
type User struct {
	UserID       string       `json:"userID"` // Primary Key (e.g., UUID)
	Username     string       `json:"username"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // bcrypt; empty for external providers
	AuthProvider AuthProvider `json:"authProvider"`
	ProviderID   string       `json:"-"` // Subject from the external provider

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	IsActive bool `json:"isActive"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google userinfo endpoint response we consume.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
