package handler

import (
	"net/http"

	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificacionHandler expone el buzón de avisos.
type NotificacionHandler struct {
	notificaciones service.NotificacionService
}

func NewNotificacionHandler(notificaciones service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificaciones: notificaciones}
}

func (h *NotificacionHandler) Listar(c *gin.Context) {
	avisos, err := h.notificaciones.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avisos)
}

func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	if err := h.notificaciones.MarcarLeida(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificacionHandler) MarcarTodasLeidas(c *gin.Context) {
	if err := h.notificaciones.MarcarTodasLeidas(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificacionHandler) LimpiarTodas(c *gin.Context) {
	if err := h.notificaciones.LimpiarTodas(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
