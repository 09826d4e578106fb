package service

import (
	"context"
	"errors"
	"time"

	"kensai/internal/dto"
	"kensai/internal/model"
	"kensai/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	// ErrCredencialesInvalidas se devuelve igual para usuario inexistente y
	// contraseña incorrecta.
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	// ErrRolInvalido: el rol no pertenece al catálogo de roles.
	ErrRolInvalido = errors.New("rol inválido")
)

// AuthService autentica colaboradores y administra sus altas y bajas.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	CrearColaborador(ctx context.Context, req dto.ColaboradorRequest) (*dto.ColaboradorResponse, error)
	ActualizarColaborador(ctx context.Context, id uuid.UUID, req dto.ColaboradorUpdateRequest) (*dto.ColaboradorResponse, error)
	ListarColaboradores(ctx context.Context) ([]dto.ColaboradorResponse, error)
	BajaColaborador(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	colaboradores repository.ColaboradorRepository
	jwtSecret     []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(colaboradores repository.ColaboradorRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		colaboradores: colaboradores,
		jwtSecret:     []byte(jwtSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// ── Autenticación ─────────────────────────────────────────────────────────────

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	col, err := s.colaboradores.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(col.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(col)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	tok, err := jwt.Parse(req.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de firma inesperado")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrCredencialesInvalidas
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return nil, ErrCredencialesInvalidas
	}
	idStr, _ := claims["user_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	col, err := s.colaboradores.FindByID(ctx, id)
	if err != nil || !col.Activo {
		return nil, ErrCredencialesInvalidas
	}
	return s.emitirTokens(col)
}

func (s *authService) emitirTokens(col *model.Colaborador) (*dto.LoginResponse, error) {
	now := time.Now()
	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  col.ID.String(),
		"username": col.Username,
		"nombre":   col.Nombre,
		"rol":      col.Rol,
		"typ":      "access",
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": col.ID.String(),
		"typ":     "refresh",
		"iat":     now.Unix(),
		"exp":     now.Add(s.refreshTTL).Unix(),
	})

	accessStr, err := access.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	refreshStr, err := refresh.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:        accessStr,
		RefreshToken: refreshStr,
		Colaborador:  colaboradorResponse(col),
	}, nil
}

// ── Administración de colaboradores ───────────────────────────────────────────

func (s *authService) CrearColaborador(ctx context.Context, req dto.ColaboradorRequest) (*dto.ColaboradorResponse, error) {
	if !model.RolValido(req.Rol) {
		return nil, ErrRolInvalido
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	col := &model.Colaborador{
		ID:           uuid.New(),
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Activo:       true,
	}
	if err := s.colaboradores.Create(ctx, col); err != nil {
		return nil, err
	}
	resp := colaboradorResponse(col)
	return &resp, nil
}

func (s *authService) ActualizarColaborador(ctx context.Context, id uuid.UUID, req dto.ColaboradorUpdateRequest) (*dto.ColaboradorResponse, error) {
	col, err := s.colaboradores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		col.Nombre = *req.Nombre
	}
	if req.Email != nil {
		col.Email = *req.Email
	}
	if req.Rol != nil {
		if !model.RolValido(*req.Rol) {
			return nil, ErrRolInvalido
		}
		col.Rol = *req.Rol
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		col.PasswordHash = string(hash)
	}
	if err := s.colaboradores.Update(ctx, col); err != nil {
		return nil, err
	}
	resp := colaboradorResponse(col)
	return &resp, nil
}

func (s *authService) ListarColaboradores(ctx context.Context) ([]dto.ColaboradorResponse, error) {
	cols, err := s.colaboradores.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ColaboradorResponse, 0, len(cols))
	for i := range cols {
		out = append(out, colaboradorResponse(&cols[i]))
	}
	return out, nil
}

func (s *authService) BajaColaborador(ctx context.Context, id uuid.UUID) error {
	return s.colaboradores.Deactivate(ctx, id)
}

func colaboradorResponse(col *model.Colaborador) dto.ColaboradorResponse {
	return dto.ColaboradorResponse{
		ID:        col.ID,
		Username:  col.Username,
		Nombre:    col.Nombre,
		Email:     col.Email,
		Rol:       col.Rol,
		Activo:    col.Activo,
		CreatedAt: col.CreatedAt,
	}
}
