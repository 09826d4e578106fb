package repository

import (
	"context"
	"errors"

	"kensai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColaboradorRepository maneja los usuarios del sistema.
type ColaboradorRepository interface {
	Create(ctx context.Context, c *model.Colaborador) error
	Update(ctx context.Context, c *model.Colaborador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error)
	FindByUsername(ctx context.Context, username string) (*model.Colaborador, error)
	List(ctx context.Context) ([]model.Colaborador, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type colaboradorRepo struct {
	db *gorm.DB
}

func NewColaboradorRepository(db *gorm.DB) ColaboradorRepository {
	return &colaboradorRepo{db: db}
}

func (r *colaboradorRepo) Create(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *colaboradorRepo) Update(ctx context.Context, c *model.Colaborador) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *colaboradorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Colaborador, error) {
	var c model.Colaborador
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colaboradorRepo) FindByUsername(ctx context.Context, username string) (*model.Colaborador, error) {
	var c model.Colaborador
	err := r.db.WithContext(ctx).First(&c, "username = ? AND activo = true", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *colaboradorRepo) List(ctx context.Context) ([]model.Colaborador, error) {
	var out []model.Colaborador
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *colaboradorRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Colaborador{}).Where("id = ?", id).Update("activo", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
