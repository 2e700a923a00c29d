package model

import (
	"fmt"
	"time"
)

// Role decides which routes a user may call. It never changes after signup.
type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleRealtor Role = "REALTOR"
)

// ParseRole validates a role name as it appears in paths and payloads.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleBuyer, RoleRealtor:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User represents a user in the database.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// SignupRequest represents a registration request. ProductKey is required
// for every role except BUYER.
type SignupRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"required,phone"`
	Password   string `json:"password" validate:"required,min=5,bcrypt_max"`
	ProductKey string `json:"productKey,omitempty"`
}

// SigninRequest represents a login request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProductKeyRequest asks for the product key of an email and role pair.
type ProductKeyRequest struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"userType" validate:"required,role"`
}

// AuthResponse carries a freshly issued session token.
type AuthResponse struct {
	Token string `json:"token"`
}

// ProductKeyResponse carries a generated product key.
type ProductKeyResponse struct {
	ProductKey string `json:"productKey"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse strips the password hash.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
