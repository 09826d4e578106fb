package service

import (
	"context"

	"kensai/internal/model"
	"kensai/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RetencionNotificaciones acota el buzón a los avisos más recientes.
const RetencionNotificaciones = 50

// NotificacionService emite y administra los avisos del sistema.
//
// Emitir es fire-and-forget: un fallo al persistir el aviso se registra en
// el log pero jamás hace fallar la operación de negocio que lo originó.
type NotificacionService interface {
	// Emitir crea un aviso con ID aleatorio.
	Emitir(ctx context.Context, mensaje string, tareaID *uuid.UUID)
	// EmitirConClave crea un aviso cuyo ID es la clave dada; si ya existe
	// uno con esa clave no hace nada. Devuelve true si creó el aviso.
	EmitirConClave(ctx context.Context, clave, mensaje string, tareaID *uuid.UUID) bool
	Listar(ctx context.Context) ([]model.Notificacion, error)
	MarcarLeida(ctx context.Context, id string) error
	MarcarTodasLeidas(ctx context.Context) error
	LimpiarTodas(ctx context.Context) error
}

type notificacionService struct {
	repo repository.NotificacionRepository
}

func NewNotificacionService(repo repository.NotificacionRepository) NotificacionService {
	return &notificacionService{repo: repo}
}

func (s *notificacionService) Emitir(ctx context.Context, mensaje string, tareaID *uuid.UUID) {
	s.EmitirConClave(ctx, uuid.NewString(), mensaje, tareaID)
}

func (s *notificacionService) EmitirConClave(ctx context.Context, clave, mensaje string, tareaID *uuid.UUID) bool {
	n := &model.Notificacion{
		ID:      clave,
		Mensaje: mensaje,
		TareaID: tareaID,
	}
	creada, err := s.repo.CreateIfAbsent(ctx, n)
	if err != nil {
		log.Warn().Err(err).Str("clave", clave).Msg("no se pudo emitir la notificación")
		return false
	}
	if !creada {
		return false
	}
	if err := s.repo.Trim(ctx, RetencionNotificaciones); err != nil {
		log.Warn().Err(err).Msg("no se pudo recortar el buzón de notificaciones")
	}
	return true
}

func (s *notificacionService) Listar(ctx context.Context) ([]model.Notificacion, error) {
	return s.repo.List(ctx, RetencionNotificaciones)
}

func (s *notificacionService) MarcarLeida(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *notificacionService) MarcarTodasLeidas(ctx context.Context) error {
	return s.repo.MarkAllRead(ctx)
}

func (s *notificacionService) LimpiarTodas(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
