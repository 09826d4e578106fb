package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// QueueDLQ holds jobs that exhausted their retries, for manual inspection.
const QueueDLQ = "jobs:dlq"

// DLQEntry wraps the failed job with its last error.
type DLQEntry struct {
	Job      Job       `json:"job"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// SendToDLQ pushes the job to the dead-letter queue. A failure here is only
// logged: losing the DLQ entry must not take the worker down.
func SendToDLQ(ctx context.Context, rdb *redis.Client, job *Job, errMsg string) {
	entry := DLQEntry{Job: *job, Error: errMsg, FailedAt: time.Now()}
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("DLQ entry no serializable")
		return
	}
	if err := rdb.LPush(ctx, QueueDLQ, raw).Err(); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("no se pudo escribir a la DLQ")
	}
}
