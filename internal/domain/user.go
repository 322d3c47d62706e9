package domain

import "time"

// Role is the closed set of authorization levels a user can hold.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a requested role string onto a known Role. Anything
// unrecognized, including the empty string, registers as a client.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleClient
}

// User represents a registered account of the shop.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
