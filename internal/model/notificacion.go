package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacion es un aviso del sistema (cotización aceptada, pago recibido,
// entrega urgente, mensaje de chat). El ID es texto porque los avisos con
// deduplicación usan una clave estable como ID; los demás llevan un uuid.
type Notificacion struct {
	ID        string     `gorm:"size:120;primaryKey" json:"id"`
	Mensaje   string     `gorm:"size:500;not null" json:"mensaje"`
	TareaID   *uuid.UUID `gorm:"type:uuid;index" json:"tarea_id,omitempty"`
	Leida     bool       `gorm:"not null;default:false" json:"leida"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (Notificacion) TableName() string { return "notificaciones" }
