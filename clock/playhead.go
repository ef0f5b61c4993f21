package clock

import (
	"errors"
	"fmt"
)

// ErrNoClock is returned by play controls when no media clock is bound.
var ErrNoClock = errors.New("no media clock")

// DefaultEchoToleranceMs is how close a tick must land to a pending seek to be
// treated as that seek's echo.
const DefaultEchoToleranceMs int64 = 60

// maxStaleTicks bounds how many off-target readings are ignored after a seek.
const maxStaleTicks = 3

// Listener is notified when the playhead moves because of the player.
type Listener func(nowMs int64)

// Playhead is the editor's single source of temporal truth.
//
// Seek updates the playhead immediately and drives the clock. The next tick
// that reports the seek target is absorbed, so a write to the clock is never
// re-read as an external time change. Only ticks that move the time on their
// own reach the listeners.
type Playhead struct {
	clock     MediaClock
	now       int64
	pending   int64
	hasSeek   bool
	stale     int
	tolerance int64
	listeners map[int]Listener
	nextID    int
}

// NewPlayhead binds a playhead to clock.
func NewPlayhead(c MediaClock) *Playhead {
	return &Playhead{
		clock:     c,
		tolerance: DefaultEchoToleranceMs,
		listeners: make(map[int]Listener),
	}
}

// Now returns the current playhead time in milliseconds.
func (p *Playhead) Now() int64 {
	return p.now
}

// Clock returns the bound media clock.
func (p *Playhead) Clock() MediaClock {
	return p.clock
}

// Seek moves the playhead to ms and drives the clock there.
func (p *Playhead) Seek(ms int64) error {
	if ms < 0 {
		ms = 0
	}
	p.now = ms
	p.pending = ms
	p.hasSeek = true
	p.stale = maxStaleTicks
	if p.clock == nil {
		return nil
	}
	if err := p.clock.SeekMs(ms); err != nil {
		p.hasSeek = false
		return fmt.Errorf("seek to %dms: %w", ms, err)
	}
	return nil
}

// TogglePlay pauses a playing clock or resumes a paused one and returns the
// new paused state.
func (p *Playhead) TogglePlay() (bool, error) {
	if p.clock == nil {
		return false, ErrNoClock
	}
	paused, err := p.clock.Paused()
	if err != nil {
		return false, fmt.Errorf("read pause state: %w", err)
	}
	if paused {
		err = p.clock.Play()
	} else {
		err = p.clock.Pause()
	}
	if err != nil {
		return paused, fmt.Errorf("toggle playback: %w", err)
	}
	return !paused, nil
}

// Paused reports the clock's play state. Without a clock it is always paused.
func (p *Playhead) Paused() bool {
	if p.clock == nil {
		return true
	}
	paused, err := p.clock.Paused()
	return err != nil || paused
}

// Sync samples the clock and applies the reading. It returns true when the
// playhead moved because of the player.
func (p *Playhead) Sync() (bool, error) {
	if p.clock == nil {
		return false, nil
	}
	ms, err := p.clock.TimeMs()
	if err != nil {
		return false, fmt.Errorf("read clock: %w", err)
	}
	return p.Tick(ms), nil
}

// Tick applies a time reading from the player.
func (p *Playhead) Tick(ms int64) bool {
	if p.hasSeek {
		if abs(ms-p.pending) <= p.tolerance {
			p.hasSeek = false
			return false
		}
		// The player has not caught up with the seek yet.
		if p.stale > 0 {
			p.stale--
			return false
		}
		p.hasSeek = false
	}
	if ms == p.now {
		return false
	}
	p.now = ms
	for _, l := range p.listeners {
		l(ms)
	}
	return true
}

// OnChange registers l for external time changes and returns its remover.
func (p *Playhead) OnChange(l Listener) (remove func()) {
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	return func() { delete(p.listeners, id) }
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
