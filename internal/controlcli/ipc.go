package controlcli

import (
	"context"

	"github.com/mfulz/powergeist/protocol"
)

func (c *Client) outcome(ctx context.Context, command string, payload interface{}) (*protocol.Outcome, error) {
	var out protocol.Outcome
	if err := c.exec(ctx, command, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Shutdown sends CmdShutdown.
func (c *Client) Shutdown(ctx context.Context) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdShutdown, nil)
}

// Restart sends CmdRestart.
func (c *Client) Restart(ctx context.Context) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdRestart, nil)
}

// CancelShutdown sends CmdCancelShutdown.
func (c *Client) CancelShutdown(ctx context.Context) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdCancelShutdown, nil)
}

// Sleep sends CmdSleep.
func (c *Client) Sleep(ctx context.Context) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdSleep, nil)
}

// GetVolume sends CmdGetVolume.
func (c *Client) GetVolume(ctx context.Context) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdGetVolume, nil)
}

// SetVolume sends CmdSetVolume with the requested level.
func (c *Client) SetVolume(ctx context.Context, level int) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdSetVolume, protocol.SetVolumeRequest{Volume: level})
}

// IncreaseVolume sends CmdIncreaseVolume. An amount of 0 uses the daemon's step.
func (c *Client) IncreaseVolume(ctx context.Context, amount int) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdIncreaseVolume, protocol.AmountRequest{Amount: amount})
}

// DecreaseVolume sends CmdDecreaseVolume. An amount of 0 uses the daemon's step.
func (c *Client) DecreaseVolume(ctx context.Context, amount int) (*protocol.Outcome, error) {
	return c.outcome(ctx, protocol.CmdDecreaseVolume, protocol.AmountRequest{Amount: amount})
}

// LocalIP sends CmdGetLocalIP.
func (c *Client) LocalIP(ctx context.Context) (string, error) {
	var resp protocol.LocalIPResponse
	if err := c.exec(ctx, protocol.CmdGetLocalIP, nil, &resp); err != nil {
		return "", err
	}
	return resp.IP, nil
}

// Ping sends CmdPing.
func (c *Client) Ping(ctx context.Context) (*protocol.PingResponse, error) {
	var resp protocol.PingResponse
	if err := c.exec(ctx, protocol.CmdPing, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
