package handler

import (
	"net/http"

	"kensai/internal/apierror"
	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// ContabilidadHandler expone el registro de pagos y las vistas de cobranza.
type ContabilidadHandler struct {
	contabilidad service.ContabilidadService
}

func NewContabilidadHandler(contabilidad service.ContabilidadService) *ContabilidadHandler {
	return &ContabilidadHandler{contabilidad: contabilidad}
}

// RegistrarPago godoc
// @Summary  Registrar un pago
// @Description Agrega un abono inmutable y reconcilia la tarea de producción (un anticipo que alcanza el 50%% arranca producción).
// @Tags     contabilidad
// @Security BearerAuth
// @Param    id   path string true "ID de cotización"
// @Param    body body dto.RegistrarPagoRequest true "Pago"
// @Success  201 {object} model.Pago
// @Failure  409 {object} apierror.APIError
// @Router   /v1/cotizaciones/{id}/pagos [post]
func (h *ContabilidadHandler) RegistrarPago(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	pago, err := h.contabilidad.RegistrarPago(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pago)
}

// MontoSugerido propone el monto por defecto del siguiente abono.
func (h *ContabilidadHandler) MontoSugerido(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tipo := c.DefaultQuery("tipo", model.PagoTipoFiniquito)
	if !model.TipoPagoValido(tipo) {
		c.JSON(http.StatusBadRequest, apierror.New("Tipo de pago invalido"))
		return
	}
	resp, err := h.contabilidad.MontoSugerido(c.Request.Context(), id, tipo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContabilidadHandler) AnticiposPendientes(c *gin.Context) {
	items, err := h.contabilidad.AnticiposPendientes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContabilidadHandler) LiquidacionesEntrega(c *gin.Context) {
	items, err := h.contabilidad.LiquidacionesEntrega(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ContabilidadHandler) CarteraCreditos(c *gin.Context) {
	items, err := h.contabilidad.CarteraCreditos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// VentasPorPeriodo acumula el ingreso aceptado del periodo (dia|semana|mes|anio).
func (h *ContabilidadHandler) VentasPorPeriodo(c *gin.Context) {
	periodo := c.DefaultQuery("periodo", service.PeriodoMes)
	resp, err := h.contabilidad.VentasPorPeriodo(c.Request.Context(), periodo)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
