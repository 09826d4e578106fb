package dto

import (
	"time"

	"github.com/google/uuid"
)

// LoginRequest son las credenciales del colaborador.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse devuelve el par de tokens y los datos básicos del colaborador.
type LoginResponse struct {
	Token        string              `json:"token"`
	RefreshToken string              `json:"refresh_token"`
	Colaborador  ColaboradorResponse `json:"colaborador"`
}

// RefreshRequest renueva el token de acceso.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ColaboradorRequest alta de colaborador (solo Administrador).
type ColaboradorRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Nombre   string `json:"nombre" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"required"`
}

// ColaboradorUpdateRequest edición parcial de colaborador.
type ColaboradorUpdateRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,max=150"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Rol      *string `json:"rol"`
}

// ColaboradorResponse nunca expone el hash de contraseña.
type ColaboradorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
