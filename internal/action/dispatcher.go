package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mfulz/powergeist/interfaces"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/metrics"
	"github.com/mfulz/powergeist/internal/volume"
	"go.uber.org/zap"
)

// Dispatcher routes Requests to one platform. It keeps no state between
// calls and is safe for concurrent use once built.
type Dispatcher struct {
	platform  interfaces.Platform
	volume    *volume.Controller
	observers []Observer
	log       *zap.SugaredLogger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithObserver adds an observer that is notified after every dispatch.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) {
		d.observers = append(d.observers, o)
	}
}

// WithLogger replaces the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// NewDispatcher returns a Dispatcher for p.
func NewDispatcher(p interfaces.Platform, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		platform: p,
		volume:   volume.NewController(p.Volume()),
		log:      logging.Log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Family returns the family of the underlying platform.
func (d *Dispatcher) Family() string {
	return d.platform.Family()
}

// Dispatch performs req and reports the result. It never panics on backend
// errors; every failure becomes an Outcome with Succeeded false.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	id, ok := RequestIDFrom(ctx)
	if !ok {
		id = uuid.NewString()
	}

	start := time.Now()
	out := d.perform(ctx, req)
	elapsed := time.Since(start)

	d.record(id, req, out, elapsed)

	ev := Event{
		RequestID: id,
		Action:    req.Kind,
		Succeeded: out.Succeeded,
		Message:   out.Message,
		Volume:    out.Value,
		Time:      start,
	}
	for _, o := range d.observers {
		o(ev)
	}
	return out
}

func (d *Dispatcher) perform(ctx context.Context, req Request) Outcome {
	power := d.platform.Power()

	switch req.Kind {
	case KindShutdown:
		return powerOutcome(power.Shutdown(ctx), "Shutdown command executed", "Failed to execute shutdown")
	case KindRestart:
		return powerOutcome(power.Restart(ctx), "Restart command executed", "Failed to execute restart")
	case KindCancelShutdown:
		return powerOutcome(power.CancelShutdown(ctx), "Shutdown cancelled", "Failed to cancel shutdown")
	case KindSleep:
		return powerOutcome(power.Sleep(ctx), "Sleep command executed", "Failed to execute sleep")

	case KindVolumeGet:
		level, err := d.volume.Get(ctx)
		if err != nil {
			return failure(err, "Failed to get volume")
		}
		return levelOutcome(level, "Volume is %d%%")

	case KindVolumeSet:
		level, err := d.volume.Set(ctx, req.Level)
		if err != nil {
			return failure(err, "Failed to set volume")
		}
		return levelOutcome(level, "Volume set to %d%%")

	case KindVolumeAdjust:
		prefix, format := "Failed to increase volume", "Volume increased to %d%%"
		switch {
		case req.Delta < 0:
			prefix, format = "Failed to decrease volume", "Volume decreased to %d%%"
		case req.Delta == 0:
			format = "Volume unchanged at %d%%"
		}
		level, err := d.volume.Adjust(ctx, req.Delta)
		if err != nil {
			return failure(err, prefix)
		}
		return levelOutcome(level, format)
	}

	return Outcome{Message: ErrUnknownAction.Error(), Err: ErrUnknownAction}
}

func (d *Dispatcher) record(id string, req Request, out Outcome, elapsed time.Duration) {
	result := "success"
	if !out.Succeeded {
		result = "failure"
	}
	metrics.ActionsTotal.WithLabelValues(string(req.Kind), result).Inc()
	metrics.ActionDuration.WithLabelValues(string(req.Kind)).Observe(elapsed.Seconds())
	if out.Value != nil {
		metrics.VolumeLevel.Set(float64(*out.Value))
	}

	fields := []any{
		"request_id", id,
		"platform", d.platform.Family(),
		"action", string(req.Kind),
		"message", out.Message,
		"duration", elapsed,
	}
	if out.Value != nil {
		fields = append(fields, "volume", *out.Value)
	}
	if out.Succeeded {
		d.log.Infow("[action] "+result, fields...)
		return
	}
	d.log.Warnw("[action] "+result, append(fields, "error", out.Err)...)
}

func powerOutcome(err error, success, prefix string) Outcome {
	if err != nil {
		return failure(err, prefix)
	}
	return Outcome{Succeeded: true, Message: success}
}

func levelOutcome(level int, format string) Outcome {
	return Outcome{Succeeded: true, Message: fmt.Sprintf(format, level), Value: &level}
}

// failure builds the message of a failed Outcome. An unsupported platform
// is reported without prefix.
func failure(err error, prefix string) Outcome {
	msg := fmt.Sprintf("%s: %v", prefix, err)
	if errors.Is(err, interfaces.ErrUnsupportedPlatform) {
		msg = interfaces.ErrUnsupportedPlatform.Error()
	}
	return Outcome{Message: msg, Err: err}
}
