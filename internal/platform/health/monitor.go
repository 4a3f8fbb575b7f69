package health

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/adaschool/product-service/internal/platform/logger"
	"github.com/adaschool/product-service/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

const pingTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc lets a plain function act as a Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Monitor pings the data store on a cron schedule and remembers the outcome.
type Monitor struct {
	pinger    Pinger
	scheduler *cron.Cron
	healthy   atomic.Bool
	checked   atomic.Bool
}

func NewMonitor(p Pinger) *Monitor {
	return &Monitor{
		pinger:    p,
		scheduler: cron.New(cron.WithSeconds()),
	}
}

// Start runs one check immediately, then schedules the rest with spec
// (six-field cron expression).
func (m *Monitor) Start(spec string) error {
	m.Check(context.Background())
	if _, err := m.scheduler.AddFunc(spec, func() {
		m.Check(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid healthcheck schedule %q: %w", spec, err)
	}
	m.scheduler.Start()
	logger.Info("Store health monitor initialized with spec '%s'", spec)
	return nil
}

// Stop waits for a running check to finish or ctx to expire.
func (m *Monitor) Stop(ctx context.Context) error {
	select {
	case <-m.scheduler.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Monitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := m.pinger.Ping(ctx)
	healthy := err == nil
	metrics.RecordStorePing(time.Since(start), healthy)

	was := m.healthy.Swap(healthy)
	if first := !m.checked.Swap(true); first || was != healthy {
		if healthy {
			logger.Info("Store health check: store reachable")
		} else {
			logger.Error("Store health check: store unreachable", err)
		}
	}
	return healthy
}

func (m *Monitor) Healthy() bool {
	return m.healthy.Load()
}

// Handler serves the last known store state.
func (m *Monitor) Handler(c *gin.Context) {
	if !m.Healthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
