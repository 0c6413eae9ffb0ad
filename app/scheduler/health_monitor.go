// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var dependencyUp = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "linkhub_dependency_up",
		Help: "1 when the last health probe of a dependency succeeded",
	},
	[]string{"dependency"},
)

const probeTimeout = 3 * time.Second

// Probe checks one backing service.
type Probe func(ctx context.Context) error

// HealthMonitor periodically probes the database and cache so outages show up
// in logs and metrics before a request hits them.
type HealthMonitor struct {
	probes   map[string]Probe
	interval time.Duration
	log      *zap.Logger
}

// NewHealthMonitor creates a monitor that runs probes every interval.
func NewHealthMonitor(probes map[string]Probe, interval time.Duration, log *zap.Logger) *HealthMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HealthMonitor{probes: probes, interval: interval, log: log}
}

// Start runs the probes on every tick until the returned cancel is called.
func (m *HealthMonitor) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.RunOnce(ctx)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// RunOnce probes every dependency a single time.
func (m *HealthMonitor) RunOnce(ctx context.Context) {
	for name, probe := range m.probes {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := probe(probeCtx)
		cancel()

		if err != nil {
			dependencyUp.WithLabelValues(name).Set(0)
			m.log.Warn("Health probe failed", zap.String("dependency", name), zap.Error(err))
			continue
		}
		dependencyUp.WithLabelValues(name).Set(1)
	}
}
