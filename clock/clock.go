// Package clock abstracts the media element that drives caption time.
//
// The player is the authority on "now"; the editor samples it on every tick
// and can also drive it with seeks. Playhead keeps that two-way binding from
// feeding back on itself.
package clock

import "sync"

// MediaClock is the subset of a media player the editor needs.
type MediaClock interface {
	TimeMs() (int64, error)
	DurationMs() (int64, error)
	SeekMs(ms int64) error
	Play() error
	Pause() error
	Paused() (bool, error)
}

// Fake is an in-memory MediaClock for tests and headless use.
type Fake struct {
	mu       sync.Mutex
	now      int64
	duration int64
	paused   bool
	seeks    []int64
}

// NewFake returns a paused fake clock with the given duration.
func NewFake(durationMs int64) *Fake {
	return &Fake{duration: durationMs, paused: true}
}

// TimeMs returns the fake's current time.
func (f *Fake) TimeMs() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now, nil
}

// DurationMs returns the configured duration.
func (f *Fake) DurationMs() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration, nil
}

// SeekMs jumps to ms, clamped to [0, duration], and records the request.
func (f *Fake) SeekMs(ms int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, ms)
	f.now = clamp(ms, 0, f.duration)
	return nil
}

// Play resumes the fake.
func (f *Fake) Play() error {
	f.mu.Lock()
	f.paused = false
	f.mu.Unlock()
	return nil
}

// Pause pauses the fake.
func (f *Fake) Pause() error {
	f.mu.Lock()
	f.paused = true
	f.mu.Unlock()
	return nil
}

// Paused reports the play state.
func (f *Fake) Paused() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, nil
}

// Advance moves time forward as playback would, without recording a seek.
func (f *Fake) Advance(deltaMs int64) {
	f.mu.Lock()
	f.now = clamp(f.now+deltaMs, 0, f.duration)
	f.mu.Unlock()
}

// Seeks returns every seek requested so far.
func (f *Fake) Seeks() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.seeks))
	copy(out, f.seeks)
	return out
}

func clamp(v, lo, hi int64) int64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
