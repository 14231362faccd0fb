package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"library-catalog/internal/config"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// Registrar is the part of asynq.Scheduler used to register periodic tasks.
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (entryID string, err error)
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	registrar Registrar
	jobConfig config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		registrar: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerOverdueScanJob()
}

// registerOverdueScanJob runs the overdue loan scan on OVERDUE_SCAN_CRON (daily at 8 AM by default).
func (s *Scheduler) registerOverdueScanJob() error {
	payload, err := json.Marshal(shared.OverdueScanPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeScanOverdueLoans, payload)

	_, err = s.registrar.Register(
		s.jobConfig.OverdueScanCron,
		task,
		asynq.Queue(shared.QueueLoan),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register OverdueScan job", err)
		return err
	}

	logger.Info("Registered OverdueScan job", map[string]interface{}{
		"cron": s.jobConfig.OverdueScanCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
