package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una tarea de producción. Los literales se muestran tal cual
// en el tablero, por eso conservan espacios y acentos.
//
// Flujo:
//
//	PENDIENTE DE PAGO → PENDIENTE DE ASIGNACIÓN → DISEÑO_ESPERA →
//	DISEÑO_PROCESO → DISEÑO_REVISION → TALLER 1 → LISTO PARA ENTREGAR
//
// Un rechazo del cliente en DISEÑO_REVISION regresa a DISEÑO_PROCESO.
// La entrega no es un estado: es la bandera Entregada, ortogonal al flujo.
const (
	TareaPendientePago     = "PENDIENTE DE PAGO"
	TareaPendienteAsignar  = "PENDIENTE DE ASIGNACIÓN"
	TareaDisenoEspera      = "DISEÑO_ESPERA"
	TareaDisenoProceso     = "DISEÑO_PROCESO"
	TareaDisenoRevision    = "DISEÑO_REVISION"
	TareaTaller1           = "TALLER 1"
	TareaListaParaEntregar = "LISTO PARA ENTREGAR"
)

// TareaProduccion es la orden de trabajo creada al aceptar una cotización.
// Comparte ID con su cotización: una cotización aceptada produce exactamente
// una tarea. Las partidas son una copia congelada de las de la cotización.
type TareaProduccion struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CotizacionID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"cotizacion_id"`
	Folio        string          `gorm:"size:20;not null;index" json:"folio"`
	ClienteID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"cliente_id"`
	Partidas     []PartidaTarea  `gorm:"foreignKey:TareaID;constraint:OnDelete:CASCADE" json:"partidas"`
	TasaIVA      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tasa_iva"`
	Estado       string          `gorm:"size:30;not null;index" json:"estado"`

	// Asignaciones y fecha comprometida de entrega.
	DisenadorID  *uuid.UUID `gorm:"type:uuid;index" json:"disenador_id,omitempty"`
	ProductorID  *uuid.UUID `gorm:"type:uuid;index" json:"productor_id,omitempty"`
	FechaEntrega *time.Time `json:"fecha_entrega,omitempty"`

	// Sellos de la fase de diseño.
	FechaAsignacionDiseno  *time.Time `json:"fecha_asignacion_diseno,omitempty"`
	FechaInicioDiseno      *time.Time `json:"fecha_inicio_diseno,omitempty"`
	FechaEntregaDiseno     *time.Time `json:"fecha_entrega_diseno,omitempty"`
	FechaAprobacionCliente *time.Time `json:"fecha_aprobacion_cliente,omitempty"`
	FechaFinDiseno         *time.Time `json:"fecha_fin_diseno,omitempty"`
	Revisiones             int        `gorm:"not null;default:0" json:"revisiones"`

	// Artefacto y comentarios que el diseñador adjunta al pasar a revisión.
	ArchivoNombre      *string `gorm:"size:200" json:"archivo_nombre,omitempty"`
	ArchivoURL         *string `gorm:"size:2000" json:"archivo_url,omitempty"`
	ComentariosEntrega *string `gorm:"size:1000" json:"comentarios_entrega,omitempty"`

	// Sellos de taller.
	FechaInicioTaller *time.Time `json:"fecha_inicio_taller,omitempty"`
	FechaFinTaller    *time.Time `json:"fecha_fin_taller,omitempty"`

	// Entrega final. Solo se marca con la cotización liquidada.
	Entregada        bool       `gorm:"not null;default:false;index" json:"entregada"`
	FechaEntregaReal *time.Time `json:"fecha_entrega_real,omitempty"`
	EntregadaPorID   *uuid.UUID `gorm:"type:uuid" json:"entregada_por_id,omitempty"`

	Chat      []MensajeChat `gorm:"foreignKey:TareaID;constraint:OnDelete:CASCADE" json:"chat"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (TareaProduccion) TableName() string { return "tareas_produccion" }

// PartidaTarea es la copia congelada de una partida al momento de aceptar.
type PartidaTarea struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TareaID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"tarea_id"`
	Descripcion string          `gorm:"size:300;not null" json:"descripcion"`
	Detalle     string          `gorm:"size:1000" json:"detalle"`
	Cantidad    int             `gorm:"not null" json:"cantidad"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"precio"`
}

func (PartidaTarea) TableName() string { return "partidas_tarea" }

// MensajeChat es un mensaje del chat de coordinación de una tarea.
// Solo se agregan mensajes, nunca se editan ni se borran.
type MensajeChat struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TareaID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tarea_id"`
	RemitenteID uuid.UUID `gorm:"type:uuid;not null" json:"remitente_id"`
	Remitente   string    `gorm:"size:150;not null" json:"remitente"`
	Mensaje     string    `gorm:"size:1000;not null" json:"mensaje"`
	CreatedAt   time.Time `json:"created_at"`
}

func (MensajeChat) TableName() string { return "mensajes_chat" }

// EstadoTareaValido valida un estado recibido desde fuera.
func EstadoTareaValido(e string) bool {
	switch e {
	case TareaPendientePago, TareaPendienteAsignar, TareaDisenoEspera,
		TareaDisenoProceso, TareaDisenoRevision, TareaTaller1, TareaListaParaEntregar:
		return true
	}
	return false
}
