package infra

import (
	"fmt"

	"kensai/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for all tables and then applies the idempotent SQL patches GORM cannot
// express (the folio sequence, mainly).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Colaborador{},
		&model.Producto{},
		&model.Cotizacion{},
		&model.Partida{},
		&model.Pago{},
		&model.TareaProduccion{},
		&model.PartidaTarea{},
		&model.MensajeChat{},
		&model.Notificacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Consecutivo de folios de cotización (COT-<año>-<n>).
		`CREATE SEQUENCE IF NOT EXISTS cotizaciones_folio_seq START 1`,
		// Índice parcial para el escaneo de entregas próximas.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_tareas_por_vencer') THEN
		    CREATE INDEX idx_tareas_por_vencer
		        ON tareas_produccion (fecha_entrega)
		        WHERE entregada = false AND fecha_entrega IS NOT NULL;
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
