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
	"github.com/rs/zerolog/log"
)

var (
	// ErrSaldoPendiente bloquea la entrega de trabajos sin liquidar.
	ErrSaldoPendiente = errors.New("la cotización tiene saldo pendiente; liquida antes de entregar")
	// ErrCotizacionHuerfana: la tarea no tiene cotización consultable. Ante
	// la duda el trabajo se trata como NO pagado y no se entrega.
	ErrCotizacionHuerfana = errors.New("no se encontró la cotización de la tarea; no se puede verificar el pago")
	// ErrTareaEntregada: una tarea entregada ya no se transiciona.
	ErrTareaEntregada = errors.New("la tarea ya fue entregada")
)

// ProduccionService mueve las tareas por el tablero de producción. Cada
// método valida fase y capacidad con PuedeEjecutar, sella los timestamps
// de la transición y emite la notificación correspondiente.
type ProduccionService interface {
	Listar(ctx context.Context, actor Actor) ([]model.TareaProduccion, error)
	Obtener(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error)
	ActualizarAsignacion(ctx context.Context, actor Actor, id uuid.UUID, req dto.AsignacionTareaRequest) (*model.TareaProduccion, error)
	IniciarDiseno(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error)
	EntregarDiseno(ctx context.Context, actor Actor, id uuid.UUID, req dto.EntregaDisenoRequest) (*model.TareaProduccion, error)
	DecisionCliente(ctx context.Context, actor Actor, id uuid.UUID, aprobada bool) (*model.TareaProduccion, error)
	FinalizarTaller(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error)
	MarcarEntregada(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error)
	AgregarMensaje(ctx context.Context, actor Actor, id uuid.UUID, req dto.MensajeChatRequest) (*model.MensajeChat, error)

	// AplicarPagoRegistrado reconcilia la tarea tras registrar un pago.
	// Es el único punto donde un pago mueve el tablero.
	AplicarPagoRegistrado(ctx context.Context, cot *model.Cotizacion, tipo string)
}

type produccionService struct {
	tareas       repository.TareaRepository
	cotizaciones repository.CotizacionRepository
	notificador  NotificacionService
	ahora        func() time.Time
}

func NewProduccionService(
	tareas repository.TareaRepository,
	cotizaciones repository.CotizacionRepository,
	notificador NotificacionService,
) ProduccionService {
	return &produccionService{
		tareas:       tareas,
		cotizaciones: cotizaciones,
		notificador:  notificador,
		ahora:        time.Now,
	}
}

// ── Listado ───────────────────────────────────────────────────────────────────

// Listar devuelve las tareas vivas visibles para el actor: Administrador y
// Ventas ven todo, Diseñador solo sus diseños y Productor solo su taller.
func (s *produccionService) Listar(ctx context.Context, actor Actor) ([]model.TareaProduccion, error) {
	tareas, err := s.tareas.ListNoEntregadas(ctx)
	if err != nil {
		return nil, err
	}
	switch actor.Rol {
	case model.RolDisenador:
		out := tareas[:0]
		for _, t := range tareas {
			if t.DisenadorID != nil && *t.DisenadorID == actor.ID {
				out = append(out, t)
			}
		}
		return out, nil
	case model.RolProductor:
		out := tareas[:0]
		for _, t := range tareas {
			if t.ProductorID != nil && *t.ProductorID == actor.ID {
				out = append(out, t)
			}
		}
		return out, nil
	}
	return tareas, nil
}

func (s *produccionService) Obtener(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error) {
	return s.tareas.FindByID(ctx, id)
}

// ── Transiciones ──────────────────────────────────────────────────────────────

func (s *produccionService) ActualizarAsignacion(ctx context.Context, actor Actor, id uuid.UUID, req dto.AsignacionTareaRequest) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionAsignar, t); err != nil {
		return nil, err
	}

	if req.DisenadorID != nil {
		t.DisenadorID = req.DisenadorID
	}
	if req.ProductorID != nil {
		t.ProductorID = req.ProductorID
	}
	if req.FechaEntrega != nil {
		t.FechaEntrega = req.FechaEntrega
	}

	// Completar la asignación saca la tarea de la cola de asignación.
	if t.Estado == model.TareaPendienteAsignar && t.DisenadorID != nil && t.FechaEntrega != nil {
		now := s.ahora()
		t.Estado = model.TareaDisenoEspera
		if t.FechaAsignacionDiseno == nil {
			t.FechaAsignacionDiseno = &now
		}
	}

	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Asignación de la tarea %s actualizada.", t.Folio), &t.ID)
	return t, nil
}

func (s *produccionService) IniciarDiseno(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionIniciarDiseno, t); err != nil {
		return nil, err
	}

	now := s.ahora()
	t.Estado = model.TareaDisenoProceso
	t.FechaInicioDiseno = &now

	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Diseño de %s iniciado.", t.Folio), &t.ID)
	return t, nil
}

func (s *produccionService) EntregarDiseno(ctx context.Context, actor Actor, id uuid.UUID, req dto.EntregaDisenoRequest) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionEntregarDiseno, t); err != nil {
		return nil, err
	}

	now := s.ahora()
	t.Estado = model.TareaDisenoRevision
	t.FechaEntregaDiseno = &now
	t.ArchivoNombre = &req.ArchivoNombre
	t.ArchivoURL = &req.ArchivoURL
	if req.Comentarios != "" {
		t.ComentariosEntrega = &req.Comentarios
	}

	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Diseño de %s enviado a revisión del cliente.", t.Folio), &t.ID)
	return t, nil
}

// DecisionCliente registra el veredicto del cliente sobre la propuesta.
// Aprobación sella el fin del diseño y arranca taller en el mismo acto;
// rechazo regresa a proceso, limpia la entrega y cuenta la revisión.
func (s *produccionService) DecisionCliente(ctx context.Context, actor Actor, id uuid.UUID, aprobada bool) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionDecisionCliente, t); err != nil {
		return nil, err
	}

	now := s.ahora()
	if aprobada {
		t.Estado = model.TareaTaller1
		t.FechaAprobacionCliente = &now
		t.FechaFinDiseno = &now
		t.FechaInicioTaller = &now
		if err := s.tareas.Update(ctx, nil, t); err != nil {
			return nil, err
		}
		s.notificador.Emitir(ctx, fmt.Sprintf("Cliente aprobó el diseño de %s. Pasa a taller.", t.Folio), &t.ID)
		return t, nil
	}

	t.Estado = model.TareaDisenoProceso
	t.FechaEntregaDiseno = nil
	t.Revisiones++
	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Cliente rechazó el diseño de %s. Revisión %d.", t.Folio, t.Revisiones), &t.ID)
	return t, nil
}

func (s *produccionService) FinalizarTaller(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionFinalizarTaller, t); err != nil {
		return nil, err
	}

	now := s.ahora()
	t.Estado = model.TareaListaParaEntregar
	t.FechaFinTaller = &now

	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Trabajo %s terminado en taller. Listo para entregar.", t.Folio), &t.ID)
	return t, nil
}

// MarcarEntregada cierra la tarea. La regla es dura: sin cotización
// liquidada no hay entrega, y si la cotización no aparece se asume deuda.
func (s *produccionService) MarcarEntregada(ctx context.Context, actor Actor, id uuid.UUID) (*model.TareaProduccion, error) {
	t, err := s.cargarViva(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionEntregar, t); err != nil {
		return nil, err
	}

	cot, err := s.cotizaciones.FindByID(ctx, t.CotizacionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCotizacionHuerfana
		}
		return nil, err
	}
	if !Liquidada(cot) {
		return nil, fmt.Errorf("%w (saldo: %s)", ErrSaldoPendiente, Saldo(cot).StringFixed(2))
	}

	now := s.ahora()
	actorID := actor.ID
	t.Entregada = true
	t.FechaEntregaReal = &now
	t.EntregadaPorID = &actorID

	if err := s.tareas.Update(ctx, nil, t); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Trabajo %s entregado al cliente.", t.Folio), &t.ID)
	return t, nil
}

// ── Chat ──────────────────────────────────────────────────────────────────────

func (s *produccionService) AgregarMensaje(ctx context.Context, actor Actor, id uuid.UUID, req dto.MensajeChatRequest) (*model.MensajeChat, error) {
	t, err := s.tareas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := PuedeEjecutar(actor, AccionChat, t); err != nil {
		return nil, err
	}

	m := &model.MensajeChat{
		ID:          uuid.New(),
		TareaID:     t.ID,
		RemitenteID: actor.ID,
		Remitente:   actor.Nombre,
		Mensaje:     req.Mensaje,
	}
	if err := s.tareas.AddMensaje(ctx, m); err != nil {
		return nil, err
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("%s en %s: %q", actor.Nombre, t.Folio, recortar(req.Mensaje, 30)), &t.ID)
	return m, nil
}

// ── Reconciliación de pagos ───────────────────────────────────────────────────

// AplicarPagoRegistrado es la única reacción del tablero a un pago.
//
// Anticipo: si lo pagado alcanza la mitad del total y la tarea sigue
// esperando pago o asignación, arranca producción. El chequeo de estado
// hace el disparo idempotente: pagos posteriores ya no mueven la tarea.
// Finiquito y Credito solo notifican.
func (s *produccionService) AplicarPagoRegistrado(ctx context.Context, cot *model.Cotizacion, tipo string) {
	switch tipo {
	case model.PagoTipoAnticipo:
		s.aplicarAnticipo(ctx, cot)

	case model.PagoTipoFiniquito:
		if Liquidada(cot) {
			s.notificador.Emitir(ctx, fmt.Sprintf("Cotización %s liquidada al 100%%. Lista para entrega.", cot.Folio), nil)
		} else {
			s.notificador.Emitir(ctx, fmt.Sprintf("Pago registrado en %s. Aún resta %s.", cot.Folio, Saldo(cot).StringFixed(2)), nil)
		}

	case model.PagoTipoCredito:
		s.notificador.Emitir(ctx, fmt.Sprintf("Pago de crédito registrado en %s.", cot.Folio), nil)
	}
}

func (s *produccionService) aplicarAnticipo(ctx context.Context, cot *model.Cotizacion) {
	t, err := s.tareas.FindByCotizacionID(ctx, cot.ID)
	if err != nil {
		// Sin tarea no hay nada que arrancar (cotización aún Pendiente).
		return
	}
	if t.Estado != model.TareaPendientePago && t.Estado != model.TareaPendienteAsignar {
		return
	}
	if t.Estado == model.TareaPendienteAsignar && t.FechaAsignacionDiseno != nil {
		// El umbral ya disparó; la tarea solo espera asignación manual.
		return
	}
	minimo := TotalCotizacion(cot).Mul(UmbralInicioProduccion)
	if MontoPagado(cot).LessThan(minimo) {
		return
	}

	now := s.ahora()
	if t.DisenadorID != nil && t.FechaEntrega != nil {
		t.Estado = model.TareaDisenoEspera
	} else {
		t.Estado = model.TareaPendienteAsignar
	}
	if t.FechaAsignacionDiseno == nil {
		t.FechaAsignacionDiseno = &now
	}
	if err := s.tareas.Update(ctx, nil, t); err != nil {
		log.Warn().Err(err).Str("folio", t.Folio).Msg("no se pudo arrancar producción tras el anticipo")
		return
	}
	s.notificador.Emitir(ctx, fmt.Sprintf("Anticipo de %s recibido. Producción iniciada.", cot.Folio), &t.ID)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *produccionService) cargarViva(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error) {
	t, err := s.tareas.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Entregada {
		return nil, ErrTareaEntregada
	}
	return t, nil
}

func recortar(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
