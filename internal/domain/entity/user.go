package entity

import "time"

// User operador del sistema.
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string // bcrypt
	Role         string // ADMINISTRADOR | TECNICO_EJECUTIVO
	Active       bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
