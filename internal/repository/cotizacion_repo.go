package repository

import (
	"context"
	"errors"

	"kensai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound se devuelve cuando la entidad buscada no existe.
var ErrNotFound = errors.New("registro no encontrado")

// CotizacionRepository maneja la persistencia de cotizaciones, partidas y pagos.
type CotizacionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	Update(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context) ([]model.Cotizacion, error)
	AddPago(ctx context.Context, tx *gorm.DB, p *model.Pago) error
	ReplacePartidas(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, partidas []model.Partida) error
	NextFolio(ctx context.Context) (int64, error)
	DB() *gorm.DB
}

type cotizacionRepo struct {
	db *gorm.DB
}

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository {
	return &cotizacionRepo{db: db}
}

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func (r *cotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Save(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		Preload("Pagos").
		Preload("Cliente").
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cotizacionRepo) List(ctx context.Context) ([]model.Cotizacion, error) {
	var out []model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Partidas").
		Preload("Pagos").
		Order("fecha DESC, folio DESC").
		Find(&out).Error
	return out, err
}

func (r *cotizacionRepo) AddPago(ctx context.Context, tx *gorm.DB, p *model.Pago) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(p).Error
}

// ReplacePartidas reescribe las partidas de una cotización aún Pendiente.
func (r *cotizacionRepo) ReplacePartidas(ctx context.Context, tx *gorm.DB, cotizacionID uuid.UUID, partidas []model.Partida) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	if err := db.WithContext(ctx).Where("cotizacion_id = ?", cotizacionID).Delete(&model.Partida{}).Error; err != nil {
		return err
	}
	if len(partidas) == 0 {
		return nil
	}
	for i := range partidas {
		partidas[i].CotizacionID = cotizacionID
	}
	return db.WithContext(ctx).Create(&partidas).Error
}

// NextFolio obtiene el consecutivo de la secuencia de Postgres. El folio
// humano (COT-2026-001) se arma en el servicio.
func (r *cotizacionRepo) NextFolio(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('cotizaciones_folio_seq')").Scan(&n).Error
	return n, err
}
