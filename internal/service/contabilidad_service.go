package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrMontoInvalido: los abonos son estrictamente positivos.
	ErrMontoInvalido = errors.New("el monto del pago debe ser mayor a cero")
	// ErrCotizacionNoAceptada: solo se abona sobre cotizaciones aceptadas.
	ErrCotizacionNoAceptada = errors.New("solo se registran pagos sobre cotizaciones aceptadas")
)

// Estatus de una cuenta por cobrar de crédito.
const (
	CreditoVencido   = "Vencido"
	CreditoPorVencer = "Por Vencer"
)

// Periodos del tablero de ventas.
const (
	PeriodoDia    = "dia"
	PeriodoSemana = "semana"
	PeriodoMes    = "mes"
	PeriodoAnio   = "anio"
)

// ContabilidadService registra pagos y produce las vistas de cobranza:
// anticipos pendientes, liquidaciones para entrega y cartera de créditos.
// Nunca guarda clasificaciones: todo se recalcula sobre los pagos vivos.
type ContabilidadService interface {
	RegistrarPago(ctx context.Context, cotizacionID uuid.UUID, req dto.RegistrarPagoRequest) (*model.Pago, error)
	MontoSugerido(ctx context.Context, cotizacionID uuid.UUID, tipo string) (*dto.MontoSugeridoResponse, error)
	AnticiposPendientes(ctx context.Context) ([]dto.AnticipoPendienteItem, error)
	LiquidacionesEntrega(ctx context.Context) ([]dto.LiquidacionEntregaItem, error)
	CarteraCreditos(ctx context.Context) ([]dto.CuentaCreditoItem, error)
	VentasPorPeriodo(ctx context.Context, periodo string) (*dto.VentasPeriodoResponse, error)
}

type contabilidadService struct {
	cotizaciones repository.CotizacionRepository
	tareas       repository.TareaRepository
	clientes     repository.ClienteRepository
	produccion   ProduccionService
	ahora        func() time.Time
}

func NewContabilidadService(
	cotizaciones repository.CotizacionRepository,
	tareas repository.TareaRepository,
	clientes repository.ClienteRepository,
	produccion ProduccionService,
) ContabilidadService {
	return &contabilidadService{
		cotizaciones: cotizaciones,
		tareas:       tareas,
		clientes:     clientes,
		produccion:   produccion,
		ahora:        time.Now,
	}
}

// ── Registro de pagos ─────────────────────────────────────────────────────────

// RegistrarPago agrega un abono inmutable y dispara la reconciliación del
// tablero de producción. La validación completa ocurre antes de escribir.
func (s *contabilidadService) RegistrarPago(ctx context.Context, cotizacionID uuid.UUID, req dto.RegistrarPagoRequest) (*model.Pago, error) {
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido
	}
	if !model.MetodoPagoValido(req.Metodo) {
		return nil, fmt.Errorf("método de pago inválido: %q", req.Metodo)
	}
	if !model.TipoPagoValido(req.Tipo) {
		return nil, fmt.Errorf("tipo de pago inválido: %q", req.Tipo)
	}

	cot, err := s.cotizaciones.FindByID(ctx, cotizacionID)
	if err != nil {
		return nil, err
	}
	if cot.Estado != model.CotizacionAceptada {
		return nil, ErrCotizacionNoAceptada
	}

	fecha := s.ahora()
	if req.Fecha != nil {
		fecha = *req.Fecha
	}
	pago := &model.Pago{
		ID:           uuid.New(),
		CotizacionID: cot.ID,
		Monto:        req.Monto,
		Fecha:        fecha,
		Metodo:       req.Metodo,
		Tipo:         req.Tipo,
		ConFactura:   req.ConFactura,
	}

	err = runTx(ctx, s.cotizaciones.DB(), func(tx *gorm.DB) error {
		return s.cotizaciones.AddPago(ctx, tx, pago)
	})
	if err != nil {
		return nil, err
	}

	cot.Pagos = append(cot.Pagos, *pago)
	s.produccion.AplicarPagoRegistrado(ctx, cot, req.Tipo)
	return pago, nil
}

// MontoSugerido propone el abono por defecto: mitad del total para un
// anticipo, el saldo para finiquitos y pagos de crédito.
func (s *contabilidadService) MontoSugerido(ctx context.Context, cotizacionID uuid.UUID, tipo string) (*dto.MontoSugeridoResponse, error) {
	cot, err := s.cotizaciones.FindByID(ctx, cotizacionID)
	if err != nil {
		return nil, err
	}
	monto := Saldo(cot)
	if tipo == model.PagoTipoAnticipo {
		monto = TotalCotizacion(cot).Mul(UmbralInicioProduccion)
	}
	return &dto.MontoSugeridoResponse{
		CotizacionID: cot.ID,
		Tipo:         tipo,
		Monto:        monto.Round(2),
	}, nil
}

// ── Vistas de cobranza ────────────────────────────────────────────────────────

// AnticiposPendientes: tareas de contado detenidas en PENDIENTE DE PAGO con
// menos del 45% abonado. El umbral de reporte es menor al 50% que arranca
// producción para no reclamar cuentas que están a centavos de arrancar.
func (s *contabilidadService) AnticiposPendientes(ctx context.Context) ([]dto.AnticipoPendienteItem, error) {
	tareas, err := s.tareas.ListNoEntregadas(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AnticipoPendienteItem, 0)
	for i := range tareas {
		t := &tareas[i]
		if t.Estado != model.TareaPendientePago {
			continue
		}
		cot, err := s.cotizaciones.FindByID(ctx, t.CotizacionID)
		if err != nil {
			continue
		}
		if cot.CondicionPago != model.PagoContado {
			continue
		}
		total := TotalCotizacion(cot)
		pagado := MontoPagado(cot)
		if pagado.GreaterThanOrEqual(total.Mul(UmbralAnticipoPendiente)) {
			continue
		}
		items = append(items, dto.AnticipoPendienteItem{
			TareaID:       t.ID,
			CotizacionID:  cot.ID,
			Folio:         t.Folio,
			ClienteNombre: s.nombreCliente(ctx, t.ClienteID),
			Total:         total.Round(2),
			Pagado:        pagado.Round(2),
			MinimoInicio:  total.Mul(UmbralInicioProduccion).Round(2),
		})
	}
	return items, nil
}

// LiquidacionesEntrega: trabajos de contado aún no entregados con saldo
// por encima de la tolerancia. Es la lista que caja revisa antes de soltar
// un trabajo terminado.
func (s *contabilidadService) LiquidacionesEntrega(ctx context.Context) ([]dto.LiquidacionEntregaItem, error) {
	tareas, err := s.tareas.ListNoEntregadas(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LiquidacionEntregaItem, 0)
	for i := range tareas {
		t := &tareas[i]
		cot, err := s.cotizaciones.FindByID(ctx, t.CotizacionID)
		if err != nil {
			continue
		}
		if cot.CondicionPago != model.PagoContado {
			continue
		}
		saldo := TotalCotizacion(cot).Sub(MontoPagado(cot))
		if saldo.LessThanOrEqual(ToleranciaLiquidacion) {
			continue
		}
		items = append(items, dto.LiquidacionEntregaItem{
			TareaID:       t.ID,
			CotizacionID:  cot.ID,
			Folio:         t.Folio,
			ClienteNombre: s.nombreCliente(ctx, t.ClienteID),
			Estado:        t.Estado,
			Total:         TotalCotizacion(cot).Round(2),
			Saldo:         saldo.Round(2),
		})
	}
	return items, nil
}

// CarteraCreditos: cuentas por cobrar de clientes de crédito. El
// vencimiento corre desde la fecha de la cotización más los días pactados
// y se compara por día calendario: una cuenta que vence hoy sigue
// Por Vencer hasta mañana.
func (s *contabilidadService) CarteraCreditos(ctx context.Context) ([]dto.CuentaCreditoItem, error) {
	cots, err := s.cotizaciones.List(ctx)
	if err != nil {
		return nil, err
	}
	hoy := inicioDia(s.ahora())
	items := make([]dto.CuentaCreditoItem, 0)
	for i := range cots {
		cot := &cots[i]
		if cot.Estado != model.CotizacionAceptada {
			continue
		}
		cliente, err := s.clientes.FindByID(ctx, cot.ClienteID)
		if err != nil || !cliente.EsCredito() {
			continue
		}
		saldo := TotalCotizacion(cot).Sub(MontoPagado(cot))
		if saldo.LessThanOrEqual(ToleranciaLiquidacion) {
			continue
		}
		vencimiento := inicioDia(cot.Fecha).AddDate(0, 0, cliente.DiasCredito)
		estatus := CreditoPorVencer
		if vencimiento.Before(hoy) {
			estatus = CreditoVencido
		}
		items = append(items, dto.CuentaCreditoItem{
			CotizacionID:  cot.ID,
			Folio:         cot.Folio,
			ClienteNombre: cliente.Nombre,
			Total:         TotalCotizacion(cot).Round(2),
			Saldo:         saldo.Round(2),
			Vencimiento:   vencimiento,
			Estatus:       estatus,
		})
	}
	return items, nil
}

// VentasPorPeriodo acumula el total de las cotizaciones aceptadas dentro
// del periodo, contado desde el inicio natural del día, semana, mes o año.
func (s *contabilidadService) VentasPorPeriodo(ctx context.Context, periodo string) (*dto.VentasPeriodoResponse, error) {
	desde, err := inicioPeriodo(s.ahora(), periodo)
	if err != nil {
		return nil, err
	}
	cots, err := s.cotizaciones.List(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	cuenta := 0
	for i := range cots {
		cot := &cots[i]
		if cot.Estado != model.CotizacionAceptada {
			continue
		}
		fecha := cot.Fecha
		if cot.FechaAceptacion != nil {
			fecha = *cot.FechaAceptacion
		}
		if fecha.Before(desde) {
			continue
		}
		total = total.Add(TotalCotizacion(cot))
		cuenta++
	}
	return &dto.VentasPeriodoResponse{
		Periodo:      periodo,
		Desde:        desde,
		Total:        total.Round(2),
		Cotizaciones: cuenta,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func inicioDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inicioPeriodo(now time.Time, periodo string) (time.Time, error) {
	dia := inicioDia(now)
	switch periodo {
	case PeriodoDia:
		return dia, nil
	case PeriodoSemana:
		// Semana comercial: arranca en lunes.
		offset := (int(dia.Weekday()) + 6) % 7
		return dia.AddDate(0, 0, -offset), nil
	case PeriodoMes:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case PeriodoAnio:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("periodo inválido: %q", periodo)
}

func (s *contabilidadService) nombreCliente(ctx context.Context, id uuid.UUID) string {
	cliente, err := s.clientes.FindByID(ctx, id)
	if err != nil {
		return ""
	}
	return cliente.Nombre
}
