package handler

import (
	"net/http"

	"kensai/internal/dto"
	"kensai/internal/repository"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// InitHandler arma la carga inicial que el frontend pide al arrancar:
// catálogos, cotizaciones, tareas y el buzón, todo en una sola respuesta.
type InitHandler struct {
	catalogo       service.CatalogoService
	auth           service.AuthService
	cotizaciones   repository.CotizacionRepository
	tareas         repository.TareaRepository
	notificaciones service.NotificacionService
}

func NewInitHandler(
	catalogo service.CatalogoService,
	auth service.AuthService,
	cotizaciones repository.CotizacionRepository,
	tareas repository.TareaRepository,
	notificaciones service.NotificacionService,
) *InitHandler {
	return &InitHandler{
		catalogo:       catalogo,
		auth:           auth,
		cotizaciones:   cotizaciones,
		tareas:         tareas,
		notificaciones: notificaciones,
	}
}

func (h *InitHandler) Cargar(c *gin.Context) {
	ctx := c.Request.Context()

	clientes, err := h.catalogo.ListarClientes(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	productos, err := h.catalogo.ListarProductos(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	colaboradores, err := h.auth.ListarColaboradores(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	cotizaciones, err := h.cotizaciones.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	tareas, err := h.tareas.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	avisos, err := h.notificaciones.Listar(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InitResponse{
		Clientes:       clientes,
		Productos:      productos,
		Colaboradores:  colaboradores,
		Cotizaciones:   cotizaciones,
		Tareas:         tareas,
		Notificaciones: avisos,
	})
}
