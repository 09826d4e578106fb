package model

import (
	"time"

	"github.com/google/uuid"
)

// Condición de crédito del cliente.
// "Contado": paga al momento (anticipo + finiquito).
// "Credito": cuenta corriente con días de crédito pactados.
const (
	CreditoContado = "Contado"
	CreditoCredito = "Credito"
)

// Cliente representa un cliente de la imprenta.
type Cliente struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre           string    `gorm:"size:150;not null;index" json:"nombre"`
	Email            string    `gorm:"size:150" json:"email"`
	Telefono         string    `gorm:"size:40" json:"telefono"`
	Direccion        string    `gorm:"size:250" json:"direccion"`
	CondicionCredito string    `gorm:"size:20;not null;default:'Contado'" json:"condicion_credito"`
	DiasCredito      int       `gorm:"not null;default:0" json:"dias_credito"`
	Activo           bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Cliente) TableName() string { return "clientes" }

// EsCredito indica si el cliente opera en cuenta corriente.
func (c *Cliente) EsCredito() bool { return c.CondicionCredito == CreditoCredito }
