package repository

import (
	"context"
	"errors"

	"kensai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TareaRepository maneja las tareas de producción y su chat.
type TareaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error
	Update(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error)
	FindByCotizacionID(ctx context.Context, cotizacionID uuid.UUID) (*model.TareaProduccion, error)
	List(ctx context.Context) ([]model.TareaProduccion, error)
	ListNoEntregadas(ctx context.Context) ([]model.TareaProduccion, error)
	AddMensaje(ctx context.Context, m *model.MensajeChat) error
	DB() *gorm.DB
}

type tareaRepo struct {
	db *gorm.DB
}

func NewTareaRepository(db *gorm.DB) TareaRepository {
	return &tareaRepo{db: db}
}

func (r *tareaRepo) DB() *gorm.DB { return r.db }

func (r *tareaRepo) Create(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(t).Error
}

func (r *tareaRepo) Update(ctx context.Context, tx *gorm.DB, t *model.TareaProduccion) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Save(t).Error
}

func (r *tareaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TareaProduccion, error) {
	var t model.TareaProduccion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		Preload("Chat", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tareaRepo) FindByCotizacionID(ctx context.Context, cotizacionID uuid.UUID) (*model.TareaProduccion, error) {
	var t model.TareaProduccion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		First(&t, "cotizacion_id = ?", cotizacionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tareaRepo) List(ctx context.Context) ([]model.TareaProduccion, error) {
	var out []model.TareaProduccion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *tareaRepo) ListNoEntregadas(ctx context.Context) ([]model.TareaProduccion, error) {
	var out []model.TareaProduccion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		Where("entregada = false").
		Order("fecha_entrega ASC NULLS LAST").
		Find(&out).Error
	return out, err
}

func (r *tareaRepo) AddMensaje(ctx context.Context, m *model.MensajeChat) error {
	return r.db.WithContext(ctx).Create(m).Error
}
