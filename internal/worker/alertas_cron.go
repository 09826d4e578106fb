package worker

import (
	"context"
	"fmt"
	"time"

	"kensai/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Notificador es lo mínimo que el cron necesita del servicio de
// notificaciones: emitir con clave estable para deduplicar.
type Notificador interface {
	EmitirConClave(ctx context.Context, clave, mensaje string, tareaID *uuid.UUID) bool
}

// AlertasCronConfig wires the deadline scanner.
type AlertasCronConfig struct {
	Tareas      repository.TareaRepository
	Notificador Notificador
	Dispatcher  *Dispatcher
	AlertEmail  string
	Interval    time.Duration
}

// StartAlertasCron runs the delivery-deadline scanner on a fixed interval
// until ctx is cancelled. One scan fires immediately on start.
func StartAlertasCron(ctx context.Context, cfg AlertasCronConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	go func() {
		log.Info().Dur("interval", cfg.Interval).Msg("cron de alertas de entrega iniciado")
		EscanearVencimientos(ctx, cfg, time.Now())

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("cron de alertas detenido")
				return
			case <-ticker.C:
				EscanearVencimientos(ctx, cfg, time.Now())
			}
		}
	}()
}

// EscanearVencimientos revisa las tareas vivas cuya fecha de entrega cae
// hoy o mañana, por día calendario completo, y emite la alerta URGENTE una
// sola vez por tarea y por día: la clave del aviso fija la deduplicación,
// repetir el escaneo no duplica. Devuelve cuántas alertas nuevas emitió.
func EscanearVencimientos(ctx context.Context, cfg AlertasCronConfig, ahora time.Time) int {
	tareas, err := cfg.Tareas.ListNoEntregadas(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("escaneo de vencimientos falló")
		return 0
	}

	limite := inicioDia(ahora).AddDate(0, 0, 1)
	emitidas := 0
	for i := range tareas {
		t := &tareas[i]
		if t.FechaEntrega == nil || inicioDia(*t.FechaEntrega).After(limite) {
			continue
		}
		clave := fmt.Sprintf("alert-due-task-%s-%s", t.ID, ahora.Format("2006-01-02"))
		mensaje := fmt.Sprintf("URGENTE: Entrega de %s vence pronto.", t.Folio)
		if !cfg.Notificador.EmitirConClave(ctx, clave, mensaje, &t.ID) {
			continue
		}
		emitidas++
		cfg.Dispatcher.EnqueueAlerta(ctx, AlertaEmailPayload{
			Para:    cfg.AlertEmail,
			Asunto:  fmt.Sprintf("Entrega urgente: %s", t.Folio),
			Mensaje: mensaje,
		})
	}
	if emitidas > 0 {
		log.Info().Int("alertas", emitidas).Msg("alertas de entrega emitidas")
	}
	return emitidas
}

func inicioDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
