// Package action is the single entry point of every front end. It maps a
// logical Request onto the selected platform and normalizes the result into
// an Outcome.
package action

import (
	"context"
	"errors"
	"time"
)

// Kind names a logical action.
type Kind string

const (
	KindShutdown       Kind = "shutdown"
	KindRestart        Kind = "restart"
	KindCancelShutdown Kind = "cancel_shutdown"
	KindSleep          Kind = "sleep"
	KindVolumeGet      Kind = "volume_get"
	KindVolumeSet      Kind = "volume_set"
	KindVolumeAdjust   Kind = "volume_adjust"
)

// Request is one logical action. Level is read by KindVolumeSet, Delta by
// KindVolumeAdjust.
type Request struct {
	Kind  Kind `json:"kind"`
	Level int  `json:"level,omitempty"`
	Delta int  `json:"delta,omitempty"`
}

func Shutdown() Request       { return Request{Kind: KindShutdown} }
func Restart() Request        { return Request{Kind: KindRestart} }
func CancelShutdown() Request { return Request{Kind: KindCancelShutdown} }
func Sleep() Request          { return Request{Kind: KindSleep} }
func VolumeGet() Request      { return Request{Kind: KindVolumeGet} }

// VolumeSet requests an absolute level. Out of range values are clamped.
func VolumeSet(level int) Request {
	return Request{Kind: KindVolumeSet, Level: level}
}

// VolumeAdjust requests a relative change of the current level.
func VolumeAdjust(delta int) Request {
	return Request{Kind: KindVolumeAdjust, Delta: delta}
}

// Outcome is the uniform result of a dispatched Request.
//
// A failed Outcome always carries a non-empty Message. Value is set for
// volume actions only and holds the current or resulting level.
type Outcome struct {
	Succeeded bool   `json:"success"`
	Message   string `json:"message"`
	Value     *int   `json:"volume,omitempty"`

	// Err is the classified cause of a failure.
	Err error `json:"-"`
}

// Event is passed to observers after every dispatch.
type Event struct {
	RequestID string    `json:"id"`
	Action    Kind      `json:"action"`
	Succeeded bool      `json:"success"`
	Message   string    `json:"message"`
	Volume    *int      `json:"volume,omitempty"`
	Time      time.Time `json:"time"`
}

// Observer receives dispatch events. It is called synchronously and must
// not block.
type Observer func(Event)

// ErrUnknownAction is the cause of an Outcome for an unknown Kind.
var ErrUnknownAction = errors.New("Unknown action")

type requestIDKey struct{}

// WithRequestID stores a request id that Dispatch uses instead of
// generating one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
