package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/metrics"
)

// Job is a named periodic task with a cron spec.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler runs jobs on a UTC cron until its context is cancelled.
type Scheduler struct {
	jobs   []Job
	logger *zap.Logger
}

func New(logger *zap.Logger, jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, logger: logger}
}

// Run registers all jobs and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	for _, job := range s.jobs {
		_, err := c.AddFunc(job.Spec, func() {
			if err := job.Run(ctx); err != nil {
				s.logger.Error("scheduled job failed", zap.String("job", job.Name), zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("add job %s: %w", job.Name, err)
		}
	}

	c.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")

	return nil
}

type SessionSweeper interface {
	SweepSessions(ctx context.Context) (int, error)
}

// SessionSweep removes expired web sessions and reports how many remain.
func SessionSweep(spec string, sweeper SessionSweeper, logger *zap.Logger) Job {
	return Job{
		Name: "session_sweep",
		Spec: spec,
		Run: func(ctx context.Context) error {
			active, err := sweeper.SweepSessions(ctx)
			if err != nil {
				return err
			}
			metrics.ActiveSessions.Set(float64(active))
			logger.Debug("sessions swept", zap.Int("active", active))
			return nil
		},
	}
}

type LimiterPruner interface {
	Prune(now time.Time, maxWindow time.Duration) int
}

// LimiterPrune drops rate limit entries older than maxWindow every five minutes.
func LimiterPrune(limiter LimiterPruner, maxWindow time.Duration, logger *zap.Logger) Job {
	return Job{
		Name: "limiter_prune",
		Spec: "*/5 * * * *",
		Run: func(context.Context) error {
			removed := limiter.Prune(time.Now(), maxWindow)
			logger.Debug("rate limiter pruned", zap.Int("keys_removed", removed))
			return nil
		},
	}
}

type MissionResetter interface {
	Reset() int
}

type MessageResetter interface {
	Reset()
}

// DailyReset clears unfinished bot missions and their keyboards at midnight UTC.
func DailyReset(missions MissionResetter, messages MessageResetter, logger *zap.Logger) Job {
	return Job{
		Name: "daily_reset",
		Spec: "0 0 * * *",
		Run: func(context.Context) error {
			dropped := missions.Reset()
			messages.Reset()
			logger.Info("daily missions reset", zap.Int("missions_dropped", dropped))
			return nil
		},
	}
}
