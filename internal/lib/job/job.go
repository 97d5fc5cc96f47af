// Package job provides background label ingest using asynq.
//
// asynq is a Redis-backed job queue:
//   - producers (cmd/seed) enqueue tasks with an asynq.Client
//   - the API process runs an asynq.Server whose workers write labels
//     into the configured label store
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/model"
)

// LabelWriter persists a label record.
type LabelWriter interface {
	Upsert(ctx context.Context, label model.LabelInformation) error
}

// JobService holds the asynq client (enqueue) and server (workers).
type JobService struct {
	// Client enqueues tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
	labels LabelWriter
}

// NewJobService creates a JobService backed by the configured Redis.
//
// Worker share is split across queues by weight: critical 6, default 3, low 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers sets the store that label tasks write to.
// It must be called before Start.
func (j *JobService) InitHandlers(labels LabelWriter) {
	j.labels = labels
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskUpsertLabel, j.handleUpsertLabelTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(j.Mux())
}

// EnqueueLabel queues one label upsert.
func (j *JobService) EnqueueLabel(ctx context.Context, label model.LabelInformation) (*asynq.TaskInfo, error) {
	task, err := NewUpsertLabelTask(label)
	if err != nil {
		return nil, err
	}
	return j.Client.EnqueueContext(ctx, task)
}

// Stop waits for in-flight tasks, then closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
