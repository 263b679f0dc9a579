package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Schedule runs job every cfg.IntervalHours hours, never two passes at once.
// It returns nil when the interval is zero. The first pass waits for the
// first interval to elapse.
func Schedule(job *Job, cfg Config, logger *zap.Logger) (*gocron.Scheduler, error) {
	if cfg.IntervalHours <= 0 {
		logger.Info("Scheduled refresh disabled")
		return nil, nil
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(cfg.IntervalHours).Hours().WaitForSchedule().Do(func() {
		logger.Info("Scheduler is triggering refresh")
		if _, err := job.Run(context.Background()); err != nil {
			logger.Error("Scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule refresh: %w", err)
	}

	logger.Info("Scheduled refresh", zap.Int("interval_hours", cfg.IntervalHours))
	s.StartAsync()
	return s, nil
}
