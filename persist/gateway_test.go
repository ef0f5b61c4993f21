package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/user/caption-timeline-cli/transcript"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func words(texts ...string) transcript.Transcript {
	ws := make([]transcript.Word, len(texts))
	for i, s := range texts {
		ws[i] = transcript.Word{Text: s, Start: int64(i * 100), End: int64(i*100 + 100)}
	}
	return transcript.Transcript{{Start: 0, End: int64(len(texts) * 100), Words: ws}}
}

func TestQueueCoalescesUntilFlush(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: time.Hour, Logger: quietLogger()})

	g.QueueTranscript(words("a"))
	g.QueueTranscript(words("a", "b"))
	g.QueueTranscript(words("a", "b", "c"))
	if got := g.Status().Pending; got != 1 {
		t.Fatalf("pending = %d, want 1", got)
	}
	if store.Calls(KindTranscript) != 0 {
		t.Fatal("queued save sent before the debounce elapsed")
	}

	g.Flush()
	g.Wait()
	if store.Calls(KindTranscript) != 1 {
		t.Fatalf("calls = %d, want 1", store.Calls(KindTranscript))
	}
	if got := store.Transcript().TotalWords(); got != 3 {
		t.Fatalf("saved %d words, want the latest value", got)
	}
}

func TestQueueKindsAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: time.Hour, Logger: quietLogger()})
	g.QueueTranscript(words("x"))
	g.QueueLyricPreset("fire")
	g.QueueLayoutPreset("karaoke")
	if g.Status().Pending != 3 {
		t.Fatalf("pending = %d", g.Status().Pending)
	}
	g.Close()
	lyric, layout := store.Presets()
	if lyric != "fire" || layout != "karaoke" || store.Calls(KindTranscript) != 1 {
		t.Fatalf("lyric=%q layout=%q transcripts=%d", lyric, layout, store.Calls(KindTranscript))
	}
}

func TestDebounceFires(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: 10 * time.Millisecond, Logger: quietLogger()})
	g.QueueTranscript(words("a"))
	g.QueueTranscript(words("a", "b"))

	deadline := time.Now().Add(2 * time.Second)
	for store.Calls(KindTranscript) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("debounced save never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
	g.Wait()
	if store.Calls(KindTranscript) != 1 || store.Transcript().TotalWords() != 2 {
		t.Fatalf("calls=%d words=%d", store.Calls(KindTranscript), store.Transcript().TotalWords())
	}
}

func TestImmediateSaveSupersedesQueued(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: time.Hour, Logger: quietLogger()})
	g.QueueTranscript(words("stale"))
	g.SaveTranscript(words("fresh", "value"))
	g.Wait()
	g.Flush()
	g.Wait()
	if store.Calls(KindTranscript) != 1 {
		t.Fatalf("calls = %d, want 1", store.Calls(KindTranscript))
	}
	if store.Transcript()[0].Words[0].Text != "fresh" {
		t.Fatal("queued value overwrote the newer immediate save")
	}
}

func TestSaveIsolatedFromLaterEdits(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: time.Hour, Logger: quietLogger()})
	tr := words("orig")
	g.QueueTranscript(tr)
	tr[0].Words[0].Text = "mutated"
	g.Close()
	if store.Transcript()[0].Words[0].Text != "orig" {
		t.Fatal("gateway saved a value changed after the call")
	}
}

type failingStore struct {
	mu       sync.Mutex
	attempts int
	failFor  int
}

func (f *failingStore) SaveTranscript(context.Context, transcript.Transcript) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failFor {
		return errors.New("backend unavailable")
	}
	return nil
}
func (f *failingStore) SaveLyricPreset(context.Context, string) error  { return nil }
func (f *failingStore) SaveLayoutPreset(context.Context, string) error { return nil }

func TestFailureIsSwallowedWithoutRetry(t *testing.T) {
	store := &failingStore{failFor: 10}
	g := NewGateway(store, Options{Logger: quietLogger()})
	g.SaveTranscript(words("a"))
	g.Wait()
	st := g.Status()
	if store.attempts != 1 || st.Failed != 1 || st.LastError == nil {
		t.Fatalf("attempts=%d status=%+v", store.attempts, st)
	}
}

func TestFixedRetryPolicy(t *testing.T) {
	store := &failingStore{failFor: 2}
	g := NewGateway(store, Options{Logger: quietLogger(), Policy: FixedRetry{Attempts: 3, Delay: time.Millisecond}})
	g.SaveTranscript(words("a"))
	g.Wait()
	st := g.Status()
	if store.attempts != 3 || st.Saved != 1 || st.Failed != 0 {
		t.Fatalf("attempts=%d status=%+v", store.attempts, st)
	}
}

func TestPolicyFor(t *testing.T) {
	if _, ok := PolicyFor(0, time.Second).(NoRetry); !ok {
		t.Fatal("zero attempts should mean no retry")
	}
	p := PolicyFor(2, time.Second)
	if _, ok := p.Retry(KindTranscript, 2, nil); !ok {
		t.Fatal("second failure should retry")
	}
	if _, ok := p.Retry(KindTranscript, 3, nil); ok {
		t.Fatal("third failure should give up")
	}
}

func TestTimeoutReachesStore(t *testing.T) {
	var deadline bool
	store := storeFunc(func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	})
	g := NewGateway(store, Options{Timeout: time.Second, Logger: quietLogger()})
	g.SaveLyricPreset("x")
	g.Wait()
	if !deadline {
		t.Fatal("save context has no deadline")
	}
}

type storeFunc func(ctx context.Context) error

func (f storeFunc) SaveTranscript(ctx context.Context, _ transcript.Transcript) error { return f(ctx) }
func (f storeFunc) SaveLyricPreset(ctx context.Context, _ string) error               { return f(ctx) }
func (f storeFunc) SaveLayoutPreset(ctx context.Context, _ string) error              { return f(ctx) }

func TestClosedGatewayDropsSaves(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Logger: quietLogger()})
	g.Close()
	g.SaveLyricPreset("late")
	g.QueueLayoutPreset("late")
	g.Wait()
	if store.Calls(KindLyricPreset) != 0 || g.Status().Pending != 0 {
		t.Fatal("closed gateway accepted a save")
	}
}

func TestStaleTimerKeepsRequeuedSave(t *testing.T) {
	store := NewMemoryStore()
	g := NewGateway(store, Options{Debounce: time.Hour, Logger: quietLogger()})

	g.QueueTranscript(words("a"))
	g.mu.Lock()
	first := g.gens[KindTranscript]
	g.mu.Unlock()
	g.QueueTranscript(words("a", "b"))

	// The first timer callback runs after the second queue call took over.
	g.fire(KindTranscript, first)
	g.Wait()
	if store.Calls(KindTranscript) != 0 {
		t.Fatal("a replaced timer sent the save early")
	}
	g.mu.Lock()
	_, hasTimer := g.timers[KindTranscript]
	g.mu.Unlock()
	if g.Status().Pending != 1 || !hasTimer {
		t.Fatalf("pending = %d, timer = %v", g.Status().Pending, hasTimer)
	}

	g.Close()
	if store.Calls(KindTranscript) != 1 || store.Transcript().TotalWords() != 2 {
		t.Fatalf("calls = %d, words = %d", store.Calls(KindTranscript), store.Transcript().TotalWords())
	}
}
