// Package job runs background work on Asynq, a Redis-backed queue.
//
// The gateway enqueues tasks with an asynq.Client and processes them in the
// same process with an asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/homeauctiondeals/gateway/internal/config"
	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/rs/zerolog"
)

// Mailer sends the notification emails handled by the worker.
type Mailer interface {
	SendEnquiryNotification(ctx context.Context, to string, enquiry model.Enquiry) error
}

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	client   *asynq.Client
	server   *asynq.Server
	mailer   Mailer
	notifyTo string
	logger   *zerolog.Logger
}

// NewJobService creates a JobService using the Redis address from cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer Mailer) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: &asynqLogger{logger: logger},
		},
	)

	return &JobService{
		client:   asynq.NewClient(redisOpt),
		server:   server,
		mailer:   mailer,
		notifyTo: cfg.Integration.NotifyTo,
		logger:   logger,
	}
}

// EnqueueEnquiryNotification schedules the notification email for e.
func (j *JobService) EnqueueEnquiryNotification(ctx context.Context, e model.Enquiry) error {
	task, err := NewEnquiryNotificationTask(e)
	if err != nil {
		return fmt.Errorf("failed to build enquiry notification task: %w", err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue enquiry notification: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued enquiry notification")
	return nil
}

// Start registers task handlers and starts the worker server. It returns
// once the workers are running.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskEnquiryNotify, j.handleEnquiryNotificationTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}
	return nil
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logs through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
