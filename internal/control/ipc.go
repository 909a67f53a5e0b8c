package control

import (
	"context"
	"fmt"

	"github.com/mfulz/powergeist/dispatch"
	"github.com/mfulz/powergeist/internal/action"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/mfulz/powergeist/internal/netinfo"
	"github.com/mfulz/powergeist/protocol"
)

// Handlers binds the protocol commands to an action.Dispatcher.
type Handlers struct {
	Actions *action.Dispatcher
	// Step is the volume change used when a request carries no amount.
	Step int
	// LocalIP looks up the LAN address; defaults to netinfo.LocalIP.
	LocalIP func(ctx context.Context) (string, error)
}

// Register adds every command to d.
func (h *Handlers) Register(d *dispatch.Dispatcher) {
	if h.LocalIP == nil {
		h.LocalIP = netinfo.LocalIP
	}

	d.Register(protocol.CmdShutdown, h.simple(action.Shutdown))
	d.Register(protocol.CmdRestart, h.simple(action.Restart))
	d.Register(protocol.CmdCancelShutdown, h.simple(action.CancelShutdown))
	d.Register(protocol.CmdSleep, h.simple(action.Sleep))
	d.Register(protocol.CmdGetVolume, h.simple(action.VolumeGet))
	d.Register(protocol.CmdIncreaseVolume, h.adjust(1))
	d.Register(protocol.CmdDecreaseVolume, h.adjust(-1))
	d.Register(protocol.CmdSetVolume, h.setVolume)
	d.Register(protocol.CmdGetLocalIP, h.localIP)
	d.Register(protocol.CmdPing, h.ping)
}

func errorResponse(format string, args ...any) *protocol.Response {
	return &protocol.Response{Status: protocol.StatusError, Error: fmt.Sprintf(format, args...)}
}

func outcomeResponse(out action.Outcome) *protocol.Response {
	return &protocol.Response{
		Status: protocol.StatusOK,
		Data: protocol.Outcome{
			Success: out.Succeeded,
			Message: out.Message,
			Volume:  out.Value,
		},
	}
}

func (h *Handlers) simple(build func() action.Request) dispatch.HandlerFunc {
	return func(ctx context.Context, _ *protocol.Request) *protocol.Response {
		return outcomeResponse(h.Actions.Dispatch(ctx, build()))
	}
}

func (h *Handlers) adjust(sign int) dispatch.HandlerFunc {
	return func(ctx context.Context, req *protocol.Request) *protocol.Response {
		var payload protocol.AmountRequest
		if err := protocol.DecodeData(req.Data, &payload); err != nil {
			return errorResponse("%v", err)
		}
		if payload.Amount < 0 {
			return errorResponse("amount must not be negative")
		}
		amount := payload.Amount
		if amount == 0 {
			amount = h.Step
		}
		return outcomeResponse(h.Actions.Dispatch(ctx, action.VolumeAdjust(sign*amount)))
	}
}

func (h *Handlers) setVolume(ctx context.Context, req *protocol.Request) *protocol.Response {
	if req.Data == nil {
		return errorResponse("missing volume")
	}
	var payload protocol.SetVolumeRequest
	if err := protocol.DecodeData(req.Data, &payload); err != nil {
		return errorResponse("%v", err)
	}
	return outcomeResponse(h.Actions.Dispatch(ctx, action.VolumeSet(payload.Volume)))
}

func (h *Handlers) localIP(ctx context.Context, _ *protocol.Request) *protocol.Response {
	ip, err := h.LocalIP(ctx)
	if err != nil {
		logging.Log.Warnf("[control] local ip lookup failed: %v", err)
		ip = netinfo.Unknown
	}
	return &protocol.Response{Status: protocol.StatusOK, Data: protocol.LocalIPResponse{IP: ip}}
}

func (h *Handlers) ping(_ context.Context, _ *protocol.Request) *protocol.Response {
	return &protocol.Response{
		Status: protocol.StatusOK,
		Data:   protocol.PingResponse{Platform: h.Actions.Family(), Protocol: protocol.Version},
	}
}
