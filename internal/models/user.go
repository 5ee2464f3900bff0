package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        *string   `json:"email,omitempty"`
	PlayerNumber *string   `json:"player_number,omitempty"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	BalanceCents int64     `json:"balance_cents"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserRole string

const (
	RolePlayer    UserRole = "player"
	RoleAdmin     UserRole = "admin"
	RoleTreasurer UserRole = "treasurer"
)

func ValidRole(role string) bool {
	switch UserRole(role) {
	case RolePlayer, RoleAdmin, RoleTreasurer:
		return true
	}
	return false
}

type RegisterRequest struct {
	DisplayName  string `json:"display_name"`
	Email        string `json:"email"`
	PlayerNumber string `json:"player_number"`
	Password     string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

type Balance struct {
	UserID       int   `json:"user_id"`
	BalanceCents int64 `json:"balance_cents"`
}
