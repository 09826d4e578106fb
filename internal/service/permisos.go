package service

import (
	"errors"
	"fmt"

	"kensai/internal/model"

	"github.com/google/uuid"
)

// Actor es quien ejecuta una acción, reconstruido desde los claims del JWT.
type Actor struct {
	ID     uuid.UUID
	Nombre string
	Rol    string
}

func (a Actor) esAdmin() bool { return a.Rol == model.RolAdministrador }

// Acciones del tablero de producción. Cada endpoint mapea a exactamente
// una acción y todas pasan por PuedeEjecutar antes de tocar la tarea.
type Accion string

const (
	AccionAsignar         Accion = "asignar"
	AccionIniciarDiseno   Accion = "iniciar_diseno"
	AccionEntregarDiseno  Accion = "entregar_diseno"
	AccionDecisionCliente Accion = "decision_cliente"
	AccionFinalizarTaller Accion = "finalizar_taller"
	AccionEntregar        Accion = "entregar"
	AccionChat            Accion = "chat"
)

// ErrAccionNoPermitida envuelve todo rechazo de capacidad.
var ErrAccionNoPermitida = errors.New("acción no permitida")

// estadosPermitidos: desde qué estados puede ejecutarse cada acción.
// Una lista vacía significa "cualquier estado".
var estadosPermitidos = map[Accion][]string{
	AccionAsignar:         nil,
	AccionIniciarDiseno:   {model.TareaDisenoEspera},
	AccionEntregarDiseno:  {model.TareaDisenoProceso},
	AccionDecisionCliente: {model.TareaDisenoRevision},
	AccionFinalizarTaller: {model.TareaTaller1},
	AccionEntregar:        {model.TareaListaParaEntregar},
	AccionChat:            nil,
}

// PuedeEjecutar es el único punto de decisión de permisos y fase sobre una
// tarea. Valida primero la fase y luego la capacidad del actor.
func PuedeEjecutar(actor Actor, accion Accion, t *model.TareaProduccion) error {
	if estados := estadosPermitidos[accion]; len(estados) > 0 {
		ok := false
		for _, e := range estados {
			if t.Estado == e {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: la tarea %s está en estado %q", ErrAccionNoPermitida, t.Folio, t.Estado)
		}
	}

	if actor.esAdmin() {
		return nil
	}

	switch accion {
	case AccionAsignar:
		return fmt.Errorf("%w: solo Administrador puede asignar tareas", ErrAccionNoPermitida)

	case AccionIniciarDiseno, AccionEntregarDiseno:
		if actor.Rol == model.RolDisenador && t.DisenadorID != nil && *t.DisenadorID == actor.ID {
			return nil
		}
		return fmt.Errorf("%w: solo el diseñador asignado puede trabajar el diseño", ErrAccionNoPermitida)

	case AccionDecisionCliente:
		if actor.Rol == model.RolVentas {
			return nil
		}
		return fmt.Errorf("%w: solo Ventas registra la decisión del cliente", ErrAccionNoPermitida)

	case AccionFinalizarTaller:
		if actor.Rol == model.RolProductor && t.ProductorID != nil && *t.ProductorID == actor.ID {
			return nil
		}
		return fmt.Errorf("%w: solo el productor asignado puede cerrar taller", ErrAccionNoPermitida)

	case AccionEntregar, AccionChat:
		// Cualquier colaborador autenticado.
		return nil
	}
	return fmt.Errorf("%w: acción desconocida", ErrAccionNoPermitida)
}
