package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("Product not found")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("User already exists with this email")
	ErrUsernameTaken      = errors.New("Username is already taken")
	ErrProductIDExists    = errors.New("Product with this Product ID already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidID          = errors.New("Invalid product ID format")
	ErrInvalidQuantity    = errors.New("Please provide a valid quantity")
	ErrNegativeValue      = errors.New("prices and quantity cannot be negative")
	ErrInvalidRole        = errors.New("role must be admin or employee")
	ErrPasswordTooShort   = errors.New("Password must be at least 6 characters long")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrVersionConflict    = errors.New("the product was modified by another request; reload and retry")
)
