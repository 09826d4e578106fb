package worker

import (
	"context"

	"kensai/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaWorker delivers alert e-mails through the SMTP mailer.
type AlertaWorker struct {
	mailer *infra.Mailer
}

func NewAlertaWorker(mailer *infra.Mailer) *AlertaWorker {
	return &AlertaWorker{mailer: mailer}
}

func (w *AlertaWorker) Process(ctx context.Context, p AlertaEmailPayload) error {
	if p.Para == "" {
		log.Debug().Msg("alerta sin destinatario, descartada")
		return nil
	}
	if err := w.mailer.SendAlerta(p.Para, p.Asunto, p.Mensaje); err != nil {
		return err
	}
	log.Info().Str("para", p.Para).Str("asunto", p.Asunto).Msg("alerta enviada")
	return nil
}
