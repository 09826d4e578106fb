package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto es un artículo del catálogo de la imprenta (lonas, tarjetas,
// vinilos, etc.). El precio es de referencia: cada partida de cotización
// copia su propio precio al momento de cotizar.
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre      string          `gorm:"size:150;not null;index" json:"nombre"`
	Descripcion string          `gorm:"size:500" json:"descripcion"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
	Unidad      string          `gorm:"size:30;default:'pieza'" json:"unidad"`
	Activo      bool            `gorm:"not null;default:true" json:"activo"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Producto) TableName() string { return "productos" }
