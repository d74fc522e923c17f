package entity

import "time"

// Roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator" // warehouse staff: sanitisation/grading
	RoleDriver   = "driver"
)

// User is an authenticated actor: admin, warehouse operator or driver.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Vehicle      string // drivers only
	Status       string // "active" | "disabled"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
