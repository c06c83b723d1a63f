package dto

import "time"

// LoginRequest entrada de login por nombre de usuario.
type LoginRequest struct {
	Username string `json:"nombre_usuario" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token bearer y usuario.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"tipo_token"`
	User        UserResponse `json:"usuario"`
}

// RegisterRequest alta de usuario (solo administradores).
type RegisterRequest struct {
	Username string `json:"nombre_usuario" validate:"required,min=3,max=50"`
	FullName string `json:"nombre_completo" validate:"required,max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"rol" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"nombre_usuario"`
	FullName    string     `json:"nombre_completo"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"rol"`
	Active      bool       `json:"activo"`
	CreatedAt   time.Time  `json:"fecha_creacion"`
	LastLoginAt *time.Time `json:"ultimo_acceso,omitempty"`
}
