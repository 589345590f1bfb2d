package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-intel/internal/service"
)

const refreshTimeout = 2 * time.Minute

// StartRefreshWorker schedules periodic recomputation of the global
// dashboard view (predictive insights and alerts) so proactive alerts stay
// current between user-triggered refreshes. The returned cron must be
// stopped on shutdown.
func StartRefreshWorker(spec string, dashboard *service.Dashboard, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if _, applied := dashboard.RefreshGlobal(ctx); !applied {
			logger.Debug("scheduled dashboard refresh superseded")
			return
		}
		logger.Info("dashboard refreshed")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
