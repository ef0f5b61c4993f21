// Package persist sends editor state to a backing store without blocking
// the editor.
//
// Saves are fire-and-forget: a failure is logged and dropped, and the local
// edit that caused it is kept. Text and style edits go through a debounce
// queue keyed by kind, so a burst of keystrokes costs one save.
package persist

import (
	"context"
	"errors"
	"sync"

	"github.com/user/caption-timeline-cli/transcript"
)

// Kind identifies one of the independently saved values.
type Kind string

const (
	KindTranscript   Kind = "transcript"
	KindLyricPreset  Kind = "lyric-preset"
	KindLayoutPreset Kind = "layout-preset"
)

// ErrClosed is reported for saves attempted after Close.
var ErrClosed = errors.New("persist: gateway closed")

// Store replaces whole values in durable storage. Every call is an
// idempotent replace, never a patch.
type Store interface {
	SaveTranscript(ctx context.Context, t transcript.Transcript) error
	SaveLyricPreset(ctx context.Context, presetID string) error
	SaveLayoutPreset(ctx context.Context, presetID string) error
}

// MemoryStore keeps the last saved values in memory. It backs dry runs and
// tests.
type MemoryStore struct {
	mu           sync.Mutex
	transcript   transcript.Transcript
	lyricPreset  string
	layoutPreset string
	calls        map[Kind]int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{calls: make(map[Kind]int)}
}

func (m *MemoryStore) SaveTranscript(_ context.Context, t transcript.Transcript) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transcript = t.Clone()
	m.calls[KindTranscript]++
	return nil
}

func (m *MemoryStore) SaveLyricPreset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lyricPreset = id
	m.calls[KindLyricPreset]++
	return nil
}

func (m *MemoryStore) SaveLayoutPreset(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layoutPreset = id
	m.calls[KindLayoutPreset]++
	return nil
}

// Transcript returns the last saved transcript.
func (m *MemoryStore) Transcript() transcript.Transcript {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transcript.Clone()
}

// Presets returns the last saved lyric and layout preset ids.
func (m *MemoryStore) Presets() (lyric, layout string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lyricPreset, m.layoutPreset
}

// Calls returns how many saves of kind reached the store.
func (m *MemoryStore) Calls(kind Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[kind]
}
