package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles del sistema. Administrador puede todo; los demás roles acotan
// qué acciones de producción puede ejecutar cada colaborador.
const (
	RolAdministrador = "Administrador"
	RolVentas        = "Ventas"
	RolDisenador     = "Diseñador"
	RolProductor     = "Productor"
)

// Colaborador es un usuario del sistema (vendedores, diseñadores, taller).
type Colaborador struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Nombre       string    `gorm:"size:150;not null" json:"nombre"`
	Email        string    `gorm:"size:150" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Rol          string    `gorm:"size:20;not null" json:"rol"`
	Activo       bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Colaborador) TableName() string { return "colaboradores" }

// EsAdmin es el atajo usado por los chequeos de capacidad.
func (c *Colaborador) EsAdmin() bool { return c.Rol == RolAdministrador }

// RolValido valida el rol recibido en altas/ediciones de colaboradores.
func RolValido(rol string) bool {
	switch rol {
	case RolAdministrador, RolVentas, RolDisenador, RolProductor:
		return true
	}
	return false
}
