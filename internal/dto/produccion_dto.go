package dto

import (
	"time"

	"github.com/google/uuid"
)

// AsignacionTareaRequest actualiza responsables y fecha de entrega.
type AsignacionTareaRequest struct {
	DisenadorID  *uuid.UUID `json:"disenador_id"`
	ProductorID  *uuid.UUID `json:"productor_id"`
	FechaEntrega *time.Time `json:"fecha_entrega"`
}

// EntregaDisenoRequest pasa la tarea a revisión del cliente. El archivo
// de referencia es obligatorio: sin propuesta no hay nada que revisar.
type EntregaDisenoRequest struct {
	ArchivoNombre string `json:"archivo_nombre" validate:"required,max=200"`
	ArchivoURL    string `json:"archivo_url" validate:"required,max=2000"`
	Comentarios   string `json:"comentarios" validate:"max=1000"`
}

// DecisionClienteRequest registra la aprobación o rechazo de la propuesta.
type DecisionClienteRequest struct {
	Aprobada *bool `json:"aprobada" validate:"required"`
}

// MensajeChatRequest agrega un mensaje al chat de la tarea.
type MensajeChatRequest struct {
	Mensaje string `json:"mensaje" validate:"required,max=1000"`
}
