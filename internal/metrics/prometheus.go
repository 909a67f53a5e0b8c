// Package metrics holds the Prometheus collectors of the powergeist daemon.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startTime = time.Now()

	// UptimeSeconds tracks the daemon uptime in seconds
	UptimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "powergeist",
		Name:      "uptime_seconds",
		Help:      "Time passed since powergeistd started in seconds",
	})

	// ActionsTotal counts dispatched actions (result=success/failure)
	ActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powergeist",
		Subsystem: "action",
		Name:      "total",
		Help:      "Dispatched power and volume actions",
	}, []string{"action", "result"})

	// ActionDuration observes how long a dispatch took, including tool queries
	ActionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "powergeist",
		Subsystem: "action",
		Name:      "duration_seconds",
		Help:      "Time spent dispatching an action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	// VolumeLevel is the last volume level reported by a successful volume action
	VolumeLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "powergeist",
		Subsystem: "volume",
		Name:      "level_percent",
		Help:      "Last known output volume in percent",
	})

	// HTTPRequestsTotal counts HTTP API requests by route and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powergeist",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP API requests",
	}, []string{"method", "route", "status"})

	// ControlRequestsTotal counts control socket requests by command type
	ControlRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "powergeist",
		Subsystem: "control",
		Name:      "requests_total",
		Help:      "Control socket requests",
	}, []string{"type", "status"})

	// EventSubscribers is the number of connected live event clients
	EventSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "powergeist",
		Subsystem: "events",
		Name:      "subscribers",
		Help:      "Connected websocket event subscribers",
	})
)

// StartUptime updates UptimeSeconds every interval until ctx is done.
func StartUptime(ctx context.Context, interval time.Duration) {
	UptimeSeconds.Set(time.Since(startTime).Seconds())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				UptimeSeconds.Set(time.Since(startTime).Seconds())
			}
		}
	}()
}
