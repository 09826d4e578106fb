package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartidaRequest es un renglón de cotización tal como llega del cliente.
type PartidaRequest struct {
	ProductoID  *uuid.UUID      `json:"producto_id"`
	Descripcion string          `json:"descripcion" validate:"required,max=300"`
	Detalle     string          `json:"detalle" validate:"max=1000"`
	Cantidad    int             `json:"cantidad" validate:"required,gt=0"`
	Precio      decimal.Decimal `json:"precio" validate:"required"`
}

// CotizacionRequest crea o reemplaza el contenido de una cotización.
type CotizacionRequest struct {
	ClienteID     uuid.UUID        `json:"cliente_id" validate:"required"`
	VendedorID    *uuid.UUID       `json:"vendedor_id"`
	Vence         *time.Time       `json:"vence"`
	TasaIVA       *decimal.Decimal `json:"tasa_iva"`
	CondicionPago string           `json:"condicion_pago" validate:"omitempty,oneof=Contado Credito"`
	Notas         string           `json:"notas" validate:"max=1000"`
	Partidas      []PartidaRequest `json:"partidas" validate:"required,min=1,dive"`
}

// AsignacionRequest acompaña la aceptación: sin diseñador y fecha de
// entrega una cotización no puede aceptarse.
type AsignacionRequest struct {
	DisenadorID  uuid.UUID `json:"disenador_id" validate:"required"`
	FechaEntrega time.Time `json:"fecha_entrega" validate:"required"`
}

// CambioEstadoRequest transiciona la cotización.
type CambioEstadoRequest struct {
	Estado     string             `json:"estado" validate:"required,oneof=Aceptada Rechazada"`
	Asignacion *AsignacionRequest `json:"asignacion"`
}

// CotizacionListItem resume una cotización para el listado, con el estado
// de pago derivado (Pagado / Parcial / Pendiente).
type CotizacionListItem struct {
	ID            uuid.UUID       `json:"id"`
	Folio         string          `json:"folio"`
	Fecha         time.Time       `json:"fecha"`
	ClienteID     uuid.UUID       `json:"cliente_id"`
	Estado        string          `json:"estado"`
	CondicionPago string          `json:"condicion_pago"`
	Total         decimal.Decimal `json:"total"`
	Pagado        decimal.Decimal `json:"pagado"`
	EstadoPago    string          `json:"estado_pago"`
}
