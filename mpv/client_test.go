package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeMpv answers IPC requests on a unix socket from a property map.
type fakeMpv struct {
	mu       sync.Mutex
	props    map[string]any
	commands [][]any
	named    []map[string]any
}

func startFake(t *testing.T, props map[string]any) (*fakeMpv, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	f := &fakeMpv{props: props}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()
	return f, path
}

func (f *fakeMpv) serve(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	enc := json.NewEncoder(conn)
	for {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return
		}
		var req struct {
			Command   json.RawMessage `json:"command"`
			RequestID uint64          `json:"request_id"`
		}
		if err := json.Unmarshal(line, &req); err != nil {
			return
		}
		// An unrelated event always precedes the reply.
		_ = enc.Encode(map[string]any{"event": "playback-restart"})

		resp := map[string]any{"request_id": req.RequestID, "error": "success"}
		var positional []any
		if err := json.Unmarshal(req.Command, &positional); err == nil {
			f.mu.Lock()
			f.commands = append(f.commands, positional)
			switch positional[0] {
			case "get_property":
				v, ok := f.props[positional[1].(string)]
				if ok {
					resp["data"] = v
				} else {
					resp["error"] = "property unavailable"
				}
			case "set_property":
				f.props[positional[1].(string)] = positional[2]
			case "cycle":
				p, _ := f.props["pause"].(bool)
				f.props["pause"] = !p
			case "seek":
				f.props["time-pos"] = positional[1]
			}
			f.mu.Unlock()
		} else {
			var named map[string]any
			_ = json.Unmarshal(req.Command, &named)
			f.mu.Lock()
			f.named = append(f.named, named)
			f.mu.Unlock()
		}
		_ = enc.Encode(resp)
	}
}

func (f *fakeMpv) prop(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.props[name]
}

func connected(t *testing.T, path string) *Client {
	t.Helper()
	c := NewClient(path)
	if err := c.Connect(); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPropertiesSkipEvents(t *testing.T) {
	_, path := startFake(t, map[string]any{"time-pos": 12.5, "duration": 60.0, "pause": true, "width": 1920.0, "height": 1080.0})
	c := connected(t, path)

	pos, err := c.GetTimePos()
	if err != nil || pos != 12.5 {
		t.Fatalf("time-pos = %v, %v", pos, err)
	}
	paused, err := c.GetPaused()
	if err != nil || !paused {
		t.Fatalf("pause = %v, %v", paused, err)
	}
	w, h, err := c.VideoSize()
	if err != nil || w != 1920 || h != 1080 {
		t.Fatalf("size = %dx%d, %v", w, h, err)
	}
}

func TestClockAdapter(t *testing.T) {
	f, path := startFake(t, map[string]any{"duration": 90.25, "pause": true})
	k := NewClock(connected(t, path))

	if ms, err := k.TimeMs(); err != nil || ms != 0 {
		t.Fatalf("time before load = %d, %v", ms, err)
	}
	if err := k.SeekMs(4_321); err != nil {
		t.Fatal(err)
	}
	if got := f.prop("time-pos"); got != 4.321 {
		t.Fatalf("seek target = %v", got)
	}
	if ms, _ := k.TimeMs(); ms != 4_321 {
		t.Fatalf("time = %d", ms)
	}
	if ms, _ := k.DurationMs(); ms != 90_250 {
		t.Fatalf("duration = %d", ms)
	}
	if err := k.Play(); err != nil {
		t.Fatal(err)
	}
	if paused, _ := k.Paused(); paused {
		t.Fatal("still paused after Play")
	}
	if err := k.Pause(); err != nil {
		t.Fatal(err)
	}
	if paused, _ := k.Paused(); !paused {
		t.Fatal("Pause did not pause")
	}
}

func TestOverlayUsesNamedArguments(t *testing.T) {
	f, path := startFake(t, map[string]any{})
	c := connected(t, path)
	if err := c.ShowOverlay(7, `{\an5\pos(960,540)}hi`, 1920, 1080); err != nil {
		t.Fatal(err)
	}
	if err := c.HideOverlay(7); err != nil {
		t.Fatal(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.named) != 2 {
		t.Fatalf("named commands = %d", len(f.named))
	}
	show := f.named[0]
	if show["name"] != "osd-overlay" || show["format"] != "ass-events" || show["res_x"] != 1920.0 || !strings.Contains(show["data"].(string), "hi") {
		t.Fatalf("show = %v", show)
	}
	if f.named[1]["format"] != "none" {
		t.Fatalf("hide = %v", f.named[1])
	}
}

func TestNotConnected(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "none.sock"))
	if _, err := c.GetTimePos(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("err = %v", err)
	}
	if err := c.Connect(); !errors.Is(err, ErrSocketNotFound) {
		t.Fatalf("connect err = %v", err)
	}
}

func TestConnectWaitGivesUp(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "none.sock"))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.ConnectWait(ctx, 10*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) || !errors.Is(err, ErrSocketNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestLaunchArgs(t *testing.T) {
	args := launchArgs("/v.mp4", LaunchOptions{SocketPath: "/tmp/s.sock", StartSeconds: 12.5})
	joined := strings.Join(args, " ")
	for _, want := range []string{"--input-ipc-server=/tmp/s.sock", "--pause", "--start=12.500"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args %q missing %q", joined, want)
		}
	}
	if args[len(args)-1] != "/v.mp4" {
		t.Fatalf("video not last: %q", args)
	}
}
