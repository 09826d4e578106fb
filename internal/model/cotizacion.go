package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una cotización. Rechazada es terminal; Aceptada dispara la
// creación de la tarea de producción asociada.
const (
	CotizacionPendiente = "Pendiente"
	CotizacionAceptada  = "Aceptada"
	CotizacionRechazada = "Rechazada"
)

// Condición de pago de la cotización (hereda la del cliente por defecto).
const (
	PagoContado = "Contado"
	PagoCredito = "Credito"
)

// Tipos de pago aceptados al registrar un abono.
const (
	PagoTipoAnticipo  = "Anticipo"
	PagoTipoFiniquito = "Finiquito"
	PagoTipoCredito   = "Credito"
)

// Métodos de pago aceptados.
const (
	MetodoTransferencia  = "Transferencia"
	MetodoEfectivo       = "Efectivo"
	MetodoTarjetaCredito = "Tarjeta de Crédito"
	MetodoTarjetaDebito  = "Tarjeta de Débito"
)

// Cotizacion es el documento comercial raíz: partidas, IVA, pagos y el
// vínculo con el cliente y el vendedor que la generó.
type Cotizacion struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Folio           string          `gorm:"size:20;uniqueIndex;not null" json:"folio"`
	Fecha           time.Time       `gorm:"not null" json:"fecha"`
	Vence           time.Time       `gorm:"not null" json:"vence"`
	ClienteID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"cliente_id"`
	Cliente         *Cliente        `gorm:"foreignKey:ClienteID" json:"cliente,omitempty"`
	VendedorID      *uuid.UUID      `gorm:"type:uuid;index" json:"vendedor_id,omitempty"`
	Partidas        []Partida       `gorm:"foreignKey:CotizacionID;constraint:OnDelete:CASCADE" json:"partidas"`
	Pagos           []Pago          `gorm:"foreignKey:CotizacionID" json:"pagos"`
	TasaIVA         decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tasa_iva"`
	Estado          string          `gorm:"size:15;not null;default:'Pendiente';index" json:"estado"`
	CondicionPago   string          `gorm:"size:15;not null;default:'Contado'" json:"condicion_pago"`
	Notas           string          `gorm:"size:1000" json:"notas"`
	FechaAceptacion *time.Time      `json:"fecha_aceptacion,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Cotizacion) TableName() string { return "cotizaciones" }

// Partida es un renglón de la cotización. Precio y descripción se congelan
// al cotizar aunque el producto del catálogo cambie después.
type Partida struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CotizacionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"cotizacion_id"`
	ProductoID   *uuid.UUID      `gorm:"type:uuid" json:"producto_id,omitempty"`
	Descripcion  string          `gorm:"size:300;not null" json:"descripcion"`
	Detalle      string          `gorm:"size:1000" json:"detalle"`
	Cantidad     int             `gorm:"not null" json:"cantidad"`
	Precio       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
}

func (Partida) TableName() string { return "partidas" }

// Pago es un abono inmutable sobre una cotización. Nunca se edita ni se
// borra: las correcciones se hacen con pagos compensatorios.
type Pago struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CotizacionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"cotizacion_id"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Fecha        time.Time       `gorm:"not null" json:"fecha"`
	Metodo       string          `gorm:"size:25;not null" json:"metodo"`
	Tipo         string          `gorm:"size:15;not null" json:"tipo"`
	ConFactura   bool            `gorm:"not null;default:false" json:"con_factura"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (Pago) TableName() string { return "pagos" }

// MetodoPagoValido valida el método recibido al registrar un pago.
func MetodoPagoValido(m string) bool {
	switch m {
	case MetodoTransferencia, MetodoEfectivo, MetodoTarjetaCredito, MetodoTarjetaDebito:
		return true
	}
	return false
}

// TipoPagoValido valida el tipo de pago recibido.
func TipoPagoValido(t string) bool {
	switch t {
	case PagoTipoAnticipo, PagoTipoFiniquito, PagoTipoCredito:
		return true
	}
	return false
}
