package handler

import (
	"net/http"

	"kensai/internal/dto"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// ProduccionHandler expone el tablero de producción. Los permisos finos
// (quién puede mover qué tarea) viven en el servicio, no aquí.
type ProduccionHandler struct {
	produccion service.ProduccionService
}

func NewProduccionHandler(produccion service.ProduccionService) *ProduccionHandler {
	return &ProduccionHandler{produccion: produccion}
}

// Listar devuelve las tareas vivas visibles para el rol del actor.
func (h *ProduccionHandler) Listar(c *gin.Context) {
	tareas, err := h.produccion.Listar(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tareas)
}

func (h *ProduccionHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.produccion.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// ActualizarAsignacion godoc
// @Summary  Asignar diseñador, productor o fecha de entrega
// @Tags     produccion
// @Security BearerAuth
// @Param    id   path string true "ID de tarea"
// @Param    body body dto.AsignacionTareaRequest true "Asignación"
// @Success  200 {object} model.TareaProduccion
// @Failure  403 {object} apierror.APIError
// @Router   /v1/tareas/{id}/asignacion [put]
func (h *ProduccionHandler) ActualizarAsignacion(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AsignacionTareaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.produccion.ActualizarAsignacion(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ProduccionHandler) IniciarDiseno(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.produccion.IniciarDiseno(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// EntregarDiseno pasa la tarea a revisión. Exige archivo de referencia.
func (h *ProduccionHandler) EntregarDiseno(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.EntregaDisenoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.produccion.EntregarDiseno(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DecisionCliente registra aprobación (a taller) o rechazo (nueva revisión).
func (h *ProduccionHandler) DecisionCliente(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.DecisionClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.produccion.DecisionCliente(c.Request.Context(), actorFrom(c), id, *req.Aprobada)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ProduccionHandler) FinalizarTaller(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.produccion.FinalizarTaller(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// MarcarEntregada godoc
// @Summary  Entregar el trabajo al cliente
// @Description Rechazada con 409 si la cotización tiene saldo mayor a la tolerancia.
// @Tags     produccion
// @Security BearerAuth
// @Param    id path string true "ID de tarea"
// @Success  200 {object} model.TareaProduccion
// @Failure  409 {object} apierror.APIError
// @Router   /v1/tareas/{id}/entregar [post]
func (h *ProduccionHandler) MarcarEntregada(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.produccion.MarcarEntregada(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ProduccionHandler) AgregarMensaje(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.MensajeChatRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.produccion.AgregarMensaje(c.Request.Context(), actorFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}
