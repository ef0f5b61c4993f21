package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultSocketPath is the default Unix socket path for mpv IPC.
	DefaultSocketPath = "/tmp/caption-timeline-mpv.sock"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when nothing listens on the socket.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrPropertyUnavailable is mpv's answer for properties with no value
	// yet, such as time-pos before a file is loaded.
	ErrPropertyUnavailable = errors.New("mpv: property unavailable")

	requestID uint64
)

// ipcRequest carries either a positional []any command or a named
// map[string]any one.
type ipcRequest struct {
	Command   any    `json:"command"`
	RequestID uint64 `json:"request_id"`
}

type ipcResponse struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
	Event     string `json:"event"`
}

// Client is an mpv IPC client that communicates via Unix socket.
// Calls are serialized; events arriving between replies are skipped.
type Client struct {
	socketPath string
	conn       net.Conn
	reader     *bufio.Reader
	mu         sync.Mutex
}

// NewClient creates a new mpv IPC client.
// If socketPath is empty, DefaultSocketPath is used.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{socketPath: socketPath}
}

// Connect establishes a connection to the mpv IPC socket.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w (%s)", ErrSocketNotFound, c.socketPath)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// ConnectWait retries Connect until it succeeds or ctx ends. mpv creates its
// socket a moment after the process starts.
func (c *Client) ConnectWait(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", err, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// Close closes the connection to mpv.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// GetProperty retrieves the value of an mpv property.
func (c *Client) GetProperty(name string) (any, error) {
	return c.Command("get_property", name)
}

// SetProperty sets the value of an mpv property.
func (c *Client) SetProperty(name string, value any) error {
	_, err := c.Command("set_property", name, value)
	return err
}

// GetTimePos returns the current playback position in seconds.
func (c *Client) GetTimePos() (float64, error) {
	return c.floatProperty("time-pos")
}

// GetDuration returns the total duration of the video in seconds.
func (c *Client) GetDuration() (float64, error) {
	return c.floatProperty("duration")
}

// GetPaused returns true if playback is paused.
func (c *Client) GetPaused() (bool, error) {
	result, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: unexpected pause value type: %T", result)
	}
	return paused, nil
}

// SetPause pauses or resumes playback.
func (c *Client) SetPause(paused bool) error {
	return c.SetProperty("pause", paused)
}

// Seek jumps to an absolute position in seconds. The exact flag avoids
// snapping to keyframes, so the player lands where the editor asked.
func (c *Client) Seek(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	_, err := c.Command("seek", seconds, "absolute+exact")
	return err
}

// VideoSize returns the native width and height of the video.
func (c *Client) VideoSize() (int, int, error) {
	w, err := c.floatProperty("width")
	if err != nil {
		return 0, 0, err
	}
	h, err := c.floatProperty("height")
	if err != nil {
		return 0, 0, err
	}
	return int(w), int(h), nil
}

// ShowOverlay draws ASS event text over the video as OSD overlay id, in a
// resX by resY coordinate space.
func (c *Client) ShowOverlay(id int, assEvents string, resX, resY int) error {
	_, err := c.commandNamed(map[string]any{
		"name":   "osd-overlay",
		"id":     id,
		"format": "ass-events",
		"data":   assEvents,
		"res_x":  resX,
		"res_y":  resY,
		"z":      0,
	})
	return err
}

// HideOverlay removes OSD overlay id.
func (c *Client) HideOverlay(id int) error {
	_, err := c.commandNamed(map[string]any{
		"name":   "osd-overlay",
		"id":     id,
		"format": "none",
		"data":   "",
	})
	return err
}

// ShowText flashes a message on the OSD.
func (c *Client) ShowText(text string, d time.Duration) error {
	_, err := c.Command("show-text", text, d.Milliseconds())
	return err
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	_, err := c.Command("quit")
	return err
}

func (c *Client) floatProperty(name string) (float64, error) {
	result, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// Command sends a positional command, {"command": [name, args...]}.
func (c *Client) Command(name string, args ...any) (any, error) {
	cmd := make([]any, 0, len(args)+1)
	cmd = append(cmd, name)
	cmd = append(cmd, args...)
	return c.send(cmd)
}

// commandNamed sends a command with named arguments, which osd-overlay
// needs for its optional fields.
func (c *Client) commandNamed(args map[string]any) (any, error) {
	return c.send(args)
}

func (c *Client) send(command any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	reqID := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{Command: command, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}

	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: failed to read response: %w", err)
		}
		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil || resp.Event != "" {
			continue
		}
		if resp.RequestID != reqID {
			continue
		}
		switch resp.Error {
		case "", "success":
			return resp.Data, nil
		case "property unavailable":
			return nil, ErrPropertyUnavailable
		default:
			return nil, fmt.Errorf("mpv: %s", resp.Error)
		}
	}
}
