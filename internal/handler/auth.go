package handler

import (
	"net/http"

	"kensai/internal/dto"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler expone login, refresh y la administración de colaboradores.
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary  Iniciar sesión
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginRequest true "Credenciales"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apierror.APIError
// @Router   /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh renueva el token de acceso con un refresh token vigente.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearColaborador godoc
// @Summary  Alta de colaborador
// @Tags     colaboradores
// @Security BearerAuth
// @Param    body body dto.ColaboradorRequest true "Colaborador"
// @Success  201 {object} dto.ColaboradorResponse
// @Router   /v1/colaboradores [post]
func (h *AuthHandler) CrearColaborador(c *gin.Context) {
	var req dto.ColaboradorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.CrearColaborador(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) ActualizarColaborador(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ColaboradorUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.ActualizarColaborador(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ListarColaboradores(c *gin.Context) {
	resp, err := h.auth.ListarColaboradores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) BajaColaborador(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.auth.BajaColaborador(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
