// Package protocol defines the message structures and types used for communication
// between powerctl (or any desktop front end) and the powergeistd control socket.
// It can be used externally to build additional tooling or integrations.
package protocol

// Command types for Request.Type
const (
	CmdShutdown       = "shutdown"
	CmdRestart        = "restart"
	CmdCancelShutdown = "cancel_shutdown"
	CmdSleep          = "sleep"
	CmdIncreaseVolume = "increase_volume"
	CmdDecreaseVolume = "decrease_volume"
	CmdGetVolume      = "get_volume"
	CmdSetVolume      = "set_volume"
	CmdGetLocalIP     = "get_local_ip"
	CmdPing           = "system.ping"
)

// Response status values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request represents a message sent from a client to the daemon.
type Request struct {
	Type string      `json:"type"`           // e.g. "shutdown", "set_volume"
	ID   string      `json:"id,omitempty"`   // Optional client supplied request id
	Data interface{} `json:"data,omitempty"` // Optional payload
}

// Response represents a message sent from the daemon to a client.
//
// Status "error" is reserved for transport and request errors (unknown
// command, malformed payload). A dispatched action that failed is still
// Status "ok" with Outcome.Success false.
type Response struct {
	Status string      `json:"status"`          // "ok" or "error"
	Data   interface{} `json:"data,omitempty"`  // Optional result
	Error  string      `json:"error,omitempty"` // Optional error message
}

// --- Payload Types ---

// AmountRequest is the payload of increase_volume and decrease_volume.
// A zero amount means the daemon's configured step.
type AmountRequest struct {
	Amount int `json:"amount,omitempty"`
}

// SetVolumeRequest is the payload of set_volume.
type SetVolumeRequest struct {
	Volume int `json:"volume"`
}

// Outcome is the result of every power and volume command.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Volume  *int   `json:"volume,omitempty"`
}

// LocalIPResponse is the result of get_local_ip.
type LocalIPResponse struct {
	IP string `json:"ip"`
}

// Version is the protocol revision reported by system.ping.
const Version = 1

// PingResponse is the result of system.ping.
type PingResponse struct {
	Platform string `json:"platform"`
	Protocol int    `json:"protocol"`
}
