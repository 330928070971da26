package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, employee
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role pertenece al conjunto de roles soportados.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
