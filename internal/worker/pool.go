package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis-backed job queue. The HTTP path only enqueues; a small pool of
// goroutines consumes with BRPOP so slow SMTP servers never block requests.

const (
	// QueueAlertas holds pending alert e-mails.
	QueueAlertas = "jobs:alertas"

	maxAttempts = 3
	popTimeout  = 5 * time.Second
)

// Job is the envelope stored in Redis.
type Job struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempts  int             `json:"attempts"`
	CreatedAt time.Time       `json:"created_at"`
}

// AlertaEmailPayload is the payload of an alert e-mail job.
type AlertaEmailPayload struct {
	Para    string `json:"para"`
	Asunto  string `json:"asunto"`
	Mensaje string `json:"mensaje"`
}

// Dispatcher enqueues jobs. With a nil Redis client it degrades to a no-op
// so the core flows keep working without the async tier.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueAlerta encola el correo de alerta. Fire-and-forget: el error se
// loggea y no se propaga.
func (d *Dispatcher) EnqueueAlerta(ctx context.Context, p AlertaEmailPayload) {
	if d == nil || d.rdb == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		log.Warn().Err(err).Msg("alerta no serializable")
		return
	}
	job := Job{
		ID:        uuid.NewString(),
		Type:      "alerta_email",
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	raw, err := json.Marshal(job)
	if err != nil {
		log.Warn().Err(err).Msg("job no serializable")
		return
	}
	if err := d.rdb.LPush(ctx, QueueAlertas, raw).Err(); err != nil {
		log.Warn().Err(err).Str("queue", QueueAlertas).Msg("no se pudo encolar la alerta")
	}
}

// Handlers groups the processors the pool dispatches to.
type Handlers struct {
	Alertas *AlertaWorker
}

// StartWorkerPool launches size consumer goroutines. They stop when ctx is
// cancelled; in-flight jobs finish first.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers Handlers, size int) {
	if rdb == nil {
		log.Warn().Msg("worker pool deshabilitado: sin Redis")
		return
	}
	if size <= 0 {
		size = 1
	}
	for i := 0; i < size; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Int("workers", size).Msg("worker pool iniciado")
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := rdb.BRPop(ctx, popTimeout, QueueAlertas).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Warn().Err(err).Int("worker", id).Msg("BRPOP falló")
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Int("worker", id).Msg("job corrupto, descartado")
			continue
		}
		processJob(ctx, rdb, handlers, &job, id)
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, job *Job, workerID int) {
	var err error
	switch job.Type {
	case "alerta_email":
		var p AlertaEmailPayload
		if err = json.Unmarshal(job.Payload, &p); err == nil {
			err = handlers.Alertas.Process(ctx, p)
		}
	default:
		log.Error().Str("type", job.Type).Msg("tipo de job desconocido, a DLQ")
		SendToDLQ(ctx, rdb, job, "tipo de job desconocido")
		return
	}

	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= maxAttempts {
		log.Error().Err(err).Str("job_id", job.ID).Int("attempts", job.Attempts).Msg("job agotado, a DLQ")
		SendToDLQ(ctx, rdb, job, err.Error())
		return
	}

	raw, mErr := json.Marshal(job)
	if mErr != nil {
		SendToDLQ(ctx, rdb, job, mErr.Error())
		return
	}
	if pushErr := rdb.LPush(ctx, QueueAlertas, raw).Err(); pushErr != nil {
		log.Error().Err(pushErr).Str("job_id", job.ID).Msg("reintento no encolado")
	}
	log.Warn().Err(err).Str("job_id", job.ID).Int("worker", workerID).Int("attempt", job.Attempts).Msg("job reintentado")
}
