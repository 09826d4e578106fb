package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegistrarPagoRequest registra un abono sobre una cotización aceptada.
type RegistrarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto" validate:"required"`
	Metodo     string          `json:"metodo" validate:"required"`
	Tipo       string          `json:"tipo" validate:"required"`
	ConFactura bool            `json:"con_factura"`
	Fecha      *time.Time      `json:"fecha"`
}

// MontoSugeridoResponse es el monto que la caja propone por defecto:
// la mitad del total para anticipos, el saldo para todo lo demás.
type MontoSugeridoResponse struct {
	CotizacionID uuid.UUID       `json:"cotizacion_id"`
	Tipo         string          `json:"tipo"`
	Monto        decimal.Decimal `json:"monto"`
}

// AnticipoPendienteItem: cotización de contado cuya producción espera anticipo.
type AnticipoPendienteItem struct {
	TareaID       uuid.UUID       `json:"tarea_id"`
	CotizacionID  uuid.UUID       `json:"cotizacion_id"`
	Folio         string          `json:"folio"`
	ClienteNombre string          `json:"cliente_nombre"`
	Total         decimal.Decimal `json:"total"`
	Pagado        decimal.Decimal `json:"pagado"`
	MinimoInicio  decimal.Decimal `json:"minimo_inicio"`
}

// LiquidacionEntregaItem: trabajo de contado sin liquidar, aún sin entregar.
type LiquidacionEntregaItem struct {
	TareaID       uuid.UUID       `json:"tarea_id"`
	CotizacionID  uuid.UUID       `json:"cotizacion_id"`
	Folio         string          `json:"folio"`
	ClienteNombre string          `json:"cliente_nombre"`
	Estado        string          `json:"estado"`
	Total         decimal.Decimal `json:"total"`
	Saldo         decimal.Decimal `json:"saldo"`
}

// CuentaCreditoItem: cuenta por cobrar de un cliente de crédito.
type CuentaCreditoItem struct {
	CotizacionID  uuid.UUID       `json:"cotizacion_id"`
	Folio         string          `json:"folio"`
	ClienteNombre string          `json:"cliente_nombre"`
	Total         decimal.Decimal `json:"total"`
	Saldo         decimal.Decimal `json:"saldo"`
	Vencimiento   time.Time       `json:"vencimiento"`
	Estatus       string          `json:"estatus"` // Vencido | Por Vencer
}

// VentasPeriodoResponse: ingreso aceptado acumulado en el periodo.
type VentasPeriodoResponse struct {
	Periodo      string          `json:"periodo"` // dia | semana | mes | anio
	Desde        time.Time       `json:"desde"`
	Total        decimal.Decimal `json:"total"`
	Cotizaciones int             `json:"cotizaciones"`
}
