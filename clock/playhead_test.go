package clock

import (
	"errors"
	"testing"
)

func TestSeekEchoIsAbsorbed(t *testing.T) {
	fake := NewFake(10_000)
	p := NewPlayhead(fake)
	var notified []int64
	p.OnChange(func(ms int64) { notified = append(notified, ms) })

	if err := p.Seek(4_000); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if p.Now() != 4_000 {
		t.Fatalf("now = %d after seek", p.Now())
	}
	moved, err := p.Sync()
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if moved || len(notified) != 0 {
		t.Fatalf("seek echo was re-broadcast: moved=%v notified=%v", moved, notified)
	}
	if got := fake.Seeks(); len(got) != 1 || got[0] != 4_000 {
		t.Fatalf("clock seeks = %v", got)
	}
}

func TestPlaybackTicksNotifyListeners(t *testing.T) {
	fake := NewFake(10_000)
	p := NewPlayhead(fake)
	var notified []int64
	remove := p.OnChange(func(ms int64) { notified = append(notified, ms) })

	fake.Advance(250)
	if moved, _ := p.Sync(); !moved {
		t.Fatal("expected playback tick to move playhead")
	}
	if p.Now() != 250 || len(notified) != 1 || notified[0] != 250 {
		t.Fatalf("now=%d notified=%v", p.Now(), notified)
	}

	remove()
	fake.Advance(250)
	p.Sync()
	if len(notified) != 1 {
		t.Fatalf("removed listener still notified: %v", notified)
	}
}

func TestStaleTicksAfterSeekAreIgnored(t *testing.T) {
	p := NewPlayhead(NewFake(10_000))
	p.Tick(5_000)
	if err := p.Seek(1_000); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if p.Tick(5_100) {
		t.Fatal("stale reading from before the seek moved the playhead")
	}
	if p.Now() != 1_000 {
		t.Fatalf("now = %d, want 1000", p.Now())
	}
	if p.Tick(1_020) {
		t.Fatal("echo of seek should be absorbed")
	}
	if !p.Tick(1_300) {
		t.Fatal("playback after the echo should move the playhead")
	}
}

func TestSeekClampsNegative(t *testing.T) {
	fake := NewFake(1_000)
	p := NewPlayhead(fake)
	if err := p.Seek(-50); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if p.Now() != 0 {
		t.Fatalf("now = %d", p.Now())
	}
}

func TestTogglePlay(t *testing.T) {
	fake := NewFake(10_000)
	p := NewPlayhead(fake)

	paused, err := p.TogglePlay()
	if err != nil || paused || p.Paused() {
		t.Fatalf("first toggle: paused=%v err=%v", paused, err)
	}
	paused, err = p.TogglePlay()
	if err != nil || !paused || !p.Paused() {
		t.Fatalf("second toggle: paused=%v err=%v", paused, err)
	}

	empty := NewPlayhead(nil)
	if _, err := empty.TogglePlay(); !errors.Is(err, ErrNoClock) {
		t.Errorf("err = %v, want ErrNoClock", err)
	}
	if !empty.Paused() {
		t.Error("a playhead without a clock is paused")
	}
}
