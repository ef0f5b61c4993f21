package drag

import "math"

// DefaultScrubQuantumMs is the smallest change a scrub move must make to
// issue another seek.
const DefaultScrubQuantumMs int64 = 50

// Track is the on-screen extent of the scrub bar.
type Track struct {
	Left  float64
	Width float64
}

// Seeker is what a scrub drives. clock.Playhead satisfies it.
type Seeker interface {
	Seek(ms int64) error
}

// PositionToMs maps pointer x on track to a media time in [0, durationMs].
func PositionToMs(x float64, track Track, durationMs int64) int64 {
	if track.Width <= 0 || durationMs <= 0 {
		return 0
	}
	frac := (x - track.Left) / track.Width
	frac = math.Max(0, math.Min(1, frac))
	return int64(math.Round(frac * float64(durationMs)))
}

// Scrubber seeks continuously while the pointer is held on the track.
// It is independent of the timeline drag.
type Scrubber struct {
	seeker   Seeker
	source   Source
	track    Track
	duration int64
	quantum  int64

	dragging    bool
	last        int64
	unsubscribe func()
	err         error
}

// NewScrubber wires a scrub controller.
func NewScrubber(seeker Seeker, source Source, track Track, durationMs int64) *Scrubber {
	return &Scrubber{
		seeker:   seeker,
		source:   source,
		track:    track,
		duration: durationMs,
		quantum:  DefaultScrubQuantumMs,
	}
}

// SetTrack updates the bar geometry, e.g. after a resize.
func (s *Scrubber) SetTrack(t Track) { s.track = t }

// SetDuration updates the media duration once the player knows it.
func (s *Scrubber) SetDuration(ms int64) { s.duration = ms }

// SetQuantum changes the move threshold. Zero seeks on every move.
func (s *Scrubber) SetQuantum(ms int64) {
	if ms < 0 {
		ms = 0
	}
	s.quantum = ms
}

// Dragging reports whether a scrub is in progress.
func (s *Scrubber) Dragging() bool { return s.dragging }

// Err returns the last seek error, if any.
func (s *Scrubber) Err() error { return s.err }

// Down starts a scrub at x and seeks there immediately.
func (s *Scrubber) Down(x float64) {
	if s.dragging {
		return
	}
	s.dragging = true
	s.seek(PositionToMs(x, s.track, s.duration))
	if s.source != nil {
		s.unsubscribe = s.source.Subscribe(s.handle)
	}
}

func (s *Scrubber) handle(ev PointerEvent) {
	if !s.dragging {
		return
	}
	switch ev.Kind {
	case PointerMove:
		s.Move(ev.X)
	case PointerUp, PointerCancel:
		s.dragging = false
		if s.unsubscribe != nil {
			s.unsubscribe()
			s.unsubscribe = nil
		}
	}
}

// Move seeks to x unless it lands within the quantum of the last seek.
func (s *Scrubber) Move(x float64) {
	if !s.dragging {
		return
	}
	ms := PositionToMs(x, s.track, s.duration)
	if d := ms - s.last; d < s.quantum && -d < s.quantum {
		return
	}
	s.seek(ms)
}

func (s *Scrubber) seek(ms int64) {
	s.last = ms
	if s.seeker == nil {
		return
	}
	s.err = s.seeker.Seek(ms)
}
