package handler

import (
	"net/http"

	"kensai/internal/dto"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// CotizacionHandler expone el ciclo de vida de las cotizaciones.
type CotizacionHandler struct {
	cotizaciones service.CotizacionService
}

func NewCotizacionHandler(cotizaciones service.CotizacionService) *CotizacionHandler {
	return &CotizacionHandler{cotizaciones: cotizaciones}
}

// Crear godoc
// @Summary  Crear cotización
// @Tags     cotizaciones
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body dto.CotizacionRequest true "Cotización"
// @Success  201 {object} model.Cotizacion
// @Failure  422 {object} apierror.ValidationError
// @Router   /v1/cotizaciones [post]
func (h *CotizacionHandler) Crear(c *gin.Context) {
	var req dto.CotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cot, err := h.cotizaciones.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cot)
}

func (h *CotizacionHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cot, err := h.cotizaciones.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cot)
}

// CambiarEstado godoc
// @Summary  Aceptar o rechazar una cotización
// @Description Aceptar exige asignación (diseñador + fecha de entrega) y crea la tarea de producción.
// @Tags     cotizaciones
// @Security BearerAuth
// @Param    id   path string true "ID de cotización"
// @Param    body body dto.CambioEstadoRequest true "Nuevo estado"
// @Success  200 {object} model.Cotizacion
// @Failure  409 {object} apierror.APIError
// @Router   /v1/cotizaciones/{id}/estado [put]
func (h *CotizacionHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CambioEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cot, err := h.cotizaciones.CambiarEstado(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cot)
}

func (h *CotizacionHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	cot, err := h.cotizaciones.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cot)
}

func (h *CotizacionHandler) Listar(c *gin.Context) {
	items, err := h.cotizaciones.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
