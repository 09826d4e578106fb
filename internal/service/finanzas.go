package service

import (
	"kensai/internal/model"

	"github.com/shopspring/decimal"
)

// Cálculo de dinero de cotizaciones y tareas. Todo en decimal: los montos
// nunca pasan por float64.

// ToleranciaLiquidacion: un saldo de hasta $0.05 cuenta como liquidado.
// Absorbe redondeos de transferencias sin dejar cuentas "casi pagadas".
var ToleranciaLiquidacion = decimal.NewFromFloat(0.05)

// UmbralInicioProduccion: fracción del total que dispara la producción al
// registrar un anticipo.
var UmbralInicioProduccion = decimal.NewFromFloat(0.5)

// UmbralAnticipoPendiente: fracción bajo la cual contabilidad reporta la
// tarea como "anticipo pendiente". Es deliberadamente menor al umbral de
// inicio para no reclamar anticipos apenas por debajo de la mitad.
var UmbralAnticipoPendiente = decimal.NewFromFloat(0.45)

// cien para convertir tasas porcentuales.
var cien = decimal.NewFromInt(100)

// SubtotalPartidas suma cantidad × precio de cada renglón.
func SubtotalPartidas(partidas []model.Partida) decimal.Decimal {
	total := decimal.Zero
	for _, p := range partidas {
		total = total.Add(p.Precio.Mul(decimal.NewFromInt(int64(p.Cantidad))))
	}
	return total
}

// SubtotalPartidasTarea hace lo mismo sobre la copia congelada de la tarea.
func SubtotalPartidasTarea(partidas []model.PartidaTarea) decimal.Decimal {
	total := decimal.Zero
	for _, p := range partidas {
		total = total.Add(p.Precio.Mul(decimal.NewFromInt(int64(p.Cantidad))))
	}
	return total
}

// TotalCotizacion = subtotal × (1 + tasaIVA/100).
func TotalCotizacion(c *model.Cotizacion) decimal.Decimal {
	sub := SubtotalPartidas(c.Partidas)
	return sub.Mul(decimal.NewFromInt(1).Add(c.TasaIVA.Div(cien)))
}

// TotalTarea calcula el total sobre las partidas congeladas de la tarea.
func TotalTarea(t *model.TareaProduccion) decimal.Decimal {
	sub := SubtotalPartidasTarea(t.Partidas)
	return sub.Mul(decimal.NewFromInt(1).Add(t.TasaIVA.Div(cien)))
}

// MontoPagado suma todos los pagos registrados.
func MontoPagado(c *model.Cotizacion) decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Pagos {
		total = total.Add(p.Monto)
	}
	return total
}

// Saldo = total − pagado, nunca negativo.
func Saldo(c *model.Cotizacion) decimal.Decimal {
	s := TotalCotizacion(c).Sub(MontoPagado(c))
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

// Liquidada indica si la cotización está pagada por completo, con tolerancia.
func Liquidada(c *model.Cotizacion) bool {
	return TotalCotizacion(c).Sub(MontoPagado(c)).LessThanOrEqual(ToleranciaLiquidacion)
}

// Estado de pago derivado para los listados.
const (
	PagoEstadoPagado    = "Pagado"
	PagoEstadoParcial   = "Parcial"
	PagoEstadoPendiente = "Pendiente"
)

// EstadoPago clasifica la cotización: Pendiente sin abonos, Pagado si
// liquidada, Parcial en medio. El orden importa: una cotización vacía y
// sin pagos es Pendiente, no Pagado.
func EstadoPago(c *model.Cotizacion) string {
	if !MontoPagado(c).IsPositive() {
		return PagoEstadoPendiente
	}
	if Liquidada(c) {
		return PagoEstadoPagado
	}
	return PagoEstadoParcial
}
