package mpv

import (
	"errors"
	"math"
)

// Clock adapts a Client to clock.MediaClock. Times cross the socket as
// seconds and are exposed as milliseconds.
type Clock struct {
	client *Client
}

// NewClock wraps c.
func NewClock(c *Client) *Clock {
	return &Clock{client: c}
}

// TimeMs returns the playback position. Before a file is loaded it reports 0.
func (k *Clock) TimeMs() (int64, error) {
	s, err := k.client.GetTimePos()
	if errors.Is(err, ErrPropertyUnavailable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return secondsToMs(s), nil
}

// DurationMs returns the video duration, 0 while unknown.
func (k *Clock) DurationMs() (int64, error) {
	s, err := k.client.GetDuration()
	if errors.Is(err, ErrPropertyUnavailable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return secondsToMs(s), nil
}

// SeekMs seeks to an absolute position.
func (k *Clock) SeekMs(ms int64) error {
	return k.client.Seek(float64(ms) / 1000)
}

// Play resumes playback.
func (k *Clock) Play() error { return k.client.SetPause(false) }

// Pause pauses playback.
func (k *Clock) Pause() error { return k.client.SetPause(true) }

// Paused reports whether playback is paused.
func (k *Clock) Paused() (bool, error) { return k.client.GetPaused() }

func secondsToMs(s float64) int64 {
	return int64(math.Round(s * 1000))
}
