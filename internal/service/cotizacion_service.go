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

// Valores por defecto de cotización.
var (
	tasaIVADefault = decimal.NewFromInt(16)
	vigenciaDias   = 15
)

var (
	// ErrCotizacionNoPendiente: solo las cotizaciones Pendientes se editan
	// o transicionan.
	ErrCotizacionNoPendiente = errors.New("la cotización ya fue procesada y no admite cambios")
	// ErrAsignacionRequerida: aceptar exige diseñador y fecha de entrega.
	ErrAsignacionRequerida = errors.New("para aceptar la cotización asigna diseñador y fecha de entrega")
)

// CotizacionService administra el ciclo de vida de las cotizaciones:
// creación con folio consecutivo, edición mientras están Pendientes y la
// transición a Aceptada (que crea la tarea de producción) o Rechazada.
type CotizacionService interface {
	Crear(ctx context.Context, req dto.CotizacionRequest) (*model.Cotizacion, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CotizacionRequest) (*model.Cotizacion, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambioEstadoRequest) (*model.Cotizacion, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	Listar(ctx context.Context) ([]dto.CotizacionListItem, error)
}

type cotizacionService struct {
	cotizaciones repository.CotizacionRepository
	tareas       repository.TareaRepository
	clientes     repository.ClienteRepository
	notificador  NotificacionService
	ahora        func() time.Time
}

func NewCotizacionService(
	cotizaciones repository.CotizacionRepository,
	tareas repository.TareaRepository,
	clientes repository.ClienteRepository,
	notificador NotificacionService,
) CotizacionService {
	return &cotizacionService{
		cotizaciones: cotizaciones,
		tareas:       tareas,
		clientes:     clientes,
		notificador:  notificador,
		ahora:        time.Now,
	}
}

// runTx ejecuta fn dentro de una transacción cuando hay base de datos real;
// los repositorios en memoria de las pruebas pasan db == nil.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Creación y edición ────────────────────────────────────────────────────────

func (s *cotizacionService) Crear(ctx context.Context, req dto.CotizacionRequest) (*model.Cotizacion, error) {
	cliente, err := s.clientes.FindByID(ctx, req.ClienteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errors.New("el cliente indicado no existe")
		}
		return nil, err
	}

	n, err := s.cotizaciones.NextFolio(ctx)
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el folio: %w", err)
	}

	now := s.ahora()
	c := &model.Cotizacion{
		ID:            uuid.New(),
		Folio:         fmt.Sprintf("COT-%d-%03d", now.Year(), n),
		Fecha:         now,
		Vence:         now.AddDate(0, 0, vigenciaDias),
		ClienteID:     cliente.ID,
		VendedorID:    req.VendedorID,
		TasaIVA:       tasaIVADefault,
		Estado:        model.CotizacionPendiente,
		CondicionPago: cliente.CondicionCredito,
		Notas:         req.Notas,
		Partidas:      partidasFromRequest(req.Partidas),
	}
	if req.Vence != nil {
		c.Vence = *req.Vence
	}
	if req.TasaIVA != nil {
		c.TasaIVA = *req.TasaIVA
	}
	if req.CondicionPago != "" {
		c.CondicionPago = req.CondicionPago
	}

	if err := s.cotizaciones.Create(ctx, nil, c); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Nueva cotización %s creada.", c.Folio), nil)
	return c, nil
}

func (s *cotizacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CotizacionRequest) (*model.Cotizacion, error) {
	c, err := s.cotizaciones.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Estado != model.CotizacionPendiente {
		return nil, ErrCotizacionNoPendiente
	}

	c.ClienteID = req.ClienteID
	c.VendedorID = req.VendedorID
	c.Notas = req.Notas
	if req.Vence != nil {
		c.Vence = *req.Vence
	}
	if req.TasaIVA != nil {
		c.TasaIVA = *req.TasaIVA
	}
	if req.CondicionPago != "" {
		c.CondicionPago = req.CondicionPago
	}

	nuevas := partidasFromRequest(req.Partidas)
	err = runTx(ctx, s.cotizaciones.DB(), func(tx *gorm.DB) error {
		if err := s.cotizaciones.ReplacePartidas(ctx, tx, c.ID, nuevas); err != nil {
			return err
		}
		c.Partidas = nuevas
		return s.cotizaciones.Update(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ── Transición de estado ──────────────────────────────────────────────────────

// CambiarEstado mueve una cotización Pendiente a Aceptada o Rechazada.
// Aceptar crea la tarea de producción con una copia congelada de las
// partidas, en PENDIENTE DE PAGO, con el diseñador y la fecha de entrega
// de la asignación obligatoria.
func (s *cotizacionService) CambiarEstado(ctx context.Context, id uuid.UUID, req dto.CambioEstadoRequest) (*model.Cotizacion, error) {
	c, err := s.cotizaciones.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Estado != model.CotizacionPendiente {
		return nil, ErrCotizacionNoPendiente
	}

	switch req.Estado {
	case model.CotizacionRechazada:
		c.Estado = model.CotizacionRechazada
		if err := s.cotizaciones.Update(ctx, nil, c); err != nil {
			return nil, err
		}
		s.notificador.Emitir(ctx, fmt.Sprintf("Cotización %s rechazada.", c.Folio), nil)
		return c, nil

	case model.CotizacionAceptada:
		if req.Asignacion == nil {
			return nil, ErrAsignacionRequerida
		}
		now := s.ahora()
		c.Estado = model.CotizacionAceptada
		c.FechaAceptacion = &now

		disenadorID := req.Asignacion.DisenadorID
		fechaEntrega := req.Asignacion.FechaEntrega
		tarea := &model.TareaProduccion{
			ID:           c.ID,
			CotizacionID: c.ID,
			Folio:        c.Folio,
			ClienteID:    c.ClienteID,
			TasaIVA:      c.TasaIVA,
			Estado:       model.TareaPendientePago,
			DisenadorID:  &disenadorID,
			FechaEntrega: &fechaEntrega,
			Partidas:     congelarPartidas(c.Partidas),
		}

		err = runTx(ctx, s.cotizaciones.DB(), func(tx *gorm.DB) error {
			if err := s.cotizaciones.Update(ctx, tx, c); err != nil {
				return err
			}
			return s.tareas.Create(ctx, tx, tarea)
		})
		if err != nil {
			return nil, err
		}
		s.notificador.Emitir(ctx, fmt.Sprintf("¡Cotización %s ACEPTADA!", c.Folio), &tarea.ID)
		return c, nil
	}
	return nil, fmt.Errorf("estado destino inválido: %q", req.Estado)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *cotizacionService) Obtener(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	return s.cotizaciones.FindByID(ctx, id)
}

func (s *cotizacionService) Listar(ctx context.Context) ([]dto.CotizacionListItem, error) {
	cots, err := s.cotizaciones.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotizacionListItem, 0, len(cots))
	for i := range cots {
		c := &cots[i]
		items = append(items, dto.CotizacionListItem{
			ID:            c.ID,
			Folio:         c.Folio,
			Fecha:         c.Fecha,
			ClienteID:     c.ClienteID,
			Estado:        c.Estado,
			CondicionPago: c.CondicionPago,
			Total:         TotalCotizacion(c),
			Pagado:        MontoPagado(c),
			EstadoPago:    EstadoPago(c),
		})
	}
	return items, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func partidasFromRequest(reqs []dto.PartidaRequest) []model.Partida {
	out := make([]model.Partida, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, model.Partida{
			ID:          uuid.New(),
			ProductoID:  r.ProductoID,
			Descripcion: r.Descripcion,
			Detalle:     r.Detalle,
			Cantidad:    r.Cantidad,
			Precio:      r.Precio,
		})
	}
	return out
}

// congelarPartidas copia los renglones hacia la tarea: ediciones futuras
// del catálogo o de la cotización no alteran la orden de trabajo.
func congelarPartidas(partidas []model.Partida) []model.PartidaTarea {
	out := make([]model.PartidaTarea, 0, len(partidas))
	for _, p := range partidas {
		out = append(out, model.PartidaTarea{
			ID:          uuid.New(),
			Descripcion: p.Descripcion,
			Detalle:     p.Detalle,
			Cantidad:    p.Cantidad,
			Precio:      p.Precio,
		})
	}
	return out
}
