package repository

import (
	"context"

	"kensai/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificacionRepository maneja el buzón de avisos del sistema.
type NotificacionRepository interface {
	// CreateIfAbsent inserta el aviso salvo que ya exista uno con el mismo ID.
	// Devuelve true si insertó.
	CreateIfAbsent(ctx context.Context, n *model.Notificacion) (bool, error)
	List(ctx context.Context, limit int) ([]model.Notificacion, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	DeleteAll(ctx context.Context) error
	// Trim borra los avisos más viejos dejando solo los `keep` más recientes.
	Trim(ctx context.Context, keep int) error
}

type notificacionRepo struct {
	db *gorm.DB
}

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) CreateIfAbsent(ctx context.Context, n *model.Notificacion) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(n)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *notificacionRepo) List(ctx context.Context, limit int) ([]model.Notificacion, error) {
	var out []model.Notificacion
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *notificacionRepo) MarkRead(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&model.Notificacion{}).Where("id = ?", id).Update("leida", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificacionRepo) MarkAllRead(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).Where("leida = false").Update("leida", true).Error
}

func (r *notificacionRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Notificacion{}).Error
}

func (r *notificacionRepo) Trim(ctx context.Context, keep int) error {
	if keep <= 0 {
		return r.DeleteAll(ctx)
	}
	sub := r.db.Model(&model.Notificacion{}).
		Select("id").
		Order("created_at DESC").
		Limit(keep)
	return r.db.WithContext(ctx).
		Where("id NOT IN (?)", sub).
		Delete(&model.Notificacion{}).Error
}
