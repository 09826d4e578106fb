package handler

import (
	"net/http"

	"kensai/internal/apierror"
	"kensai/internal/dto"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// SugerenciaHandler expone las sugerencias de descripciones de partida.
type SugerenciaHandler struct {
	sugerencias service.SugerenciaService
}

func NewSugerenciaHandler(sugerencias service.SugerenciaService) *SugerenciaHandler {
	return &SugerenciaHandler{sugerencias: sugerencias}
}

// Sugerir es mejor-esfuerzo: si el proveedor falla responde lista vacía.
func (h *SugerenciaHandler) Sugerir(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, apierror.New("keyword requerido"))
		return
	}
	c.JSON(http.StatusOK, dto.SugerenciaResponse{
		Descripciones: h.sugerencias.Sugerir(c.Request.Context(), keyword),
	})
}
