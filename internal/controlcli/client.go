// Package controlcli handles daemon communication and request encoding from powerctl.
package controlcli

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/mfulz/powergeist/protocol"
)

// DefaultTimeout bounds dialing and one request/response round trip.
const DefaultTimeout = 5 * time.Second

// Client sends requests to one powergeistd control socket.
type Client struct {
	Network string // "unix" or "tcp"
	Address string
	Timeout time.Duration
}

// New returns a Client for the given socket.
func New(network, address string) *Client {
	return &Client{Network: network, Address: address, Timeout: DefaultTimeout}
}

// SendCommand connects to the daemon, sends one request and returns the raw
// response. Responses with status "error" are returned as is.
func (c *Client) SendCommand(ctx context.Context, command string, data interface{}) (*protocol.Response, error) {
	if c.Network != "unix" && c.Network != "tcp" {
		return nil, fmt.Errorf("invalid network %q: must be unix or tcp", c.Network)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, c.Network, c.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon at %s: %w", c.Address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	req := protocol.Request{Type: command, Data: data}
	if err := protocol.WriteRequest(conn, &req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	resp, err := protocol.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	return resp, nil
}

// exec sends command and decodes the data of an "ok" response into out.
func (c *Client) exec(ctx context.Context, command string, payload, out interface{}) error {
	resp, err := c.SendCommand(ctx, command, payload)
	if err != nil {
		return err
	}
	if resp.Status != protocol.StatusOK {
		return fmt.Errorf("%s", resp.Error)
	}
	if out == nil {
		return nil
	}
	return protocol.DecodeData(resp.Data, out)
}
