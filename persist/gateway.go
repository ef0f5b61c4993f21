package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/user/caption-timeline-cli/transcript"
)

// DefaultDebounce is the quiet period after which a queued save is sent.
const DefaultDebounce = 500 * time.Millisecond

// Options configure a Gateway.
type Options struct {
	Debounce time.Duration
	// Timeout bounds a single save attempt. Zero means no limit.
	Timeout time.Duration
	Policy  FailurePolicy
	Logger  *slog.Logger
}

// Status is a snapshot of the gateway for display.
type Status struct {
	Pending   int
	InFlight  int
	Saved     int
	Failed    int
	LastError error
	LastSaved time.Time
}

type job func(ctx context.Context) error

// Gateway is the editor's only path to the Store.
//
// Saves run on their own goroutines and are never awaited by callers.
// In-flight saves are not cancelled when a newer value is sent, so two saves
// of the same kind may complete out of order.
type Gateway struct {
	store  Store
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	pending map[Kind]job
	timers  map[Kind]*time.Timer
	// gens numbers queue calls per kind; fire ignores older numbers.
	gens     map[Kind]uint64
	closed   bool
	inFlight int
	status   Status

	wg sync.WaitGroup
}

// NewGateway wraps store.
func NewGateway(store Store, opts Options) *Gateway {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Policy == nil {
		opts.Policy = NoRetry{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		store:   store,
		opts:    opts,
		logger:  logger.With("component", "persist"),
		pending: make(map[Kind]job),
		timers:  make(map[Kind]*time.Timer),
		gens:    make(map[Kind]uint64),
	}
}

// SaveTranscript sends t now. A queued transcript save is superseded.
func (g *Gateway) SaveTranscript(t transcript.Transcript) {
	t = t.Clone()
	g.send(KindTranscript, func(ctx context.Context) error { return g.store.SaveTranscript(ctx, t) })
}

// SaveLyricPreset sends the lyric preset id now.
func (g *Gateway) SaveLyricPreset(id string) {
	g.send(KindLyricPreset, func(ctx context.Context) error { return g.store.SaveLyricPreset(ctx, id) })
}

// SaveLayoutPreset sends the layout preset id now.
func (g *Gateway) SaveLayoutPreset(id string) {
	g.send(KindLayoutPreset, func(ctx context.Context) error { return g.store.SaveLayoutPreset(ctx, id) })
}

// QueueTranscript schedules t to be saved once edits pause for the
// debounce period. Only the latest queued value is sent.
func (g *Gateway) QueueTranscript(t transcript.Transcript) {
	t = t.Clone()
	g.queue(KindTranscript, func(ctx context.Context) error { return g.store.SaveTranscript(ctx, t) })
}

// QueueLyricPreset debounces a lyric preset save.
func (g *Gateway) QueueLyricPreset(id string) {
	g.queue(KindLyricPreset, func(ctx context.Context) error { return g.store.SaveLyricPreset(ctx, id) })
}

// QueueLayoutPreset debounces a layout preset save.
func (g *Gateway) QueueLayoutPreset(id string) {
	g.queue(KindLayoutPreset, func(ctx context.Context) error { return g.store.SaveLayoutPreset(ctx, id) })
}

func (g *Gateway) queue(kind Kind, j job) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		g.logger.Warn("save dropped", "kind", kind, "error", ErrClosed)
		return
	}
	g.pending[kind] = j
	if t, ok := g.timers[kind]; ok {
		t.Stop()
	}
	g.gens[kind]++
	gen := g.gens[kind]
	g.timers[kind] = time.AfterFunc(g.opts.Debounce, func() { g.fire(kind, gen) })
	g.status.Pending = len(g.pending)
}

func (g *Gateway) fire(kind Kind, gen uint64) {
	g.mu.Lock()
	if g.gens[kind] != gen {
		g.mu.Unlock()
		return
	}
	j, ok := g.pending[kind]
	delete(g.pending, kind)
	delete(g.timers, kind)
	g.status.Pending = len(g.pending)
	g.mu.Unlock()
	if ok {
		g.send(kind, j)
	}
}

func (g *Gateway) send(kind Kind, j job) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		g.logger.Warn("save dropped", "kind", kind, "error", ErrClosed)
		return
	}
	if t, ok := g.timers[kind]; ok {
		t.Stop()
		delete(g.timers, kind)
		delete(g.pending, kind)
		g.status.Pending = len(g.pending)
	}
	g.inFlight++
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		err := g.run(kind, j)
		g.mu.Lock()
		g.inFlight--
		if err != nil {
			g.status.Failed++
			g.status.LastError = err
		} else {
			g.status.Saved++
			g.status.LastSaved = time.Now()
		}
		g.mu.Unlock()
	}()
}

func (g *Gateway) run(kind Kind, j job) error {
	for attempt := 1; ; attempt++ {
		err := g.attempt(j)
		if err == nil {
			g.logger.Debug("saved", "kind", kind, "attempt", attempt)
			return nil
		}
		delay, retry := g.opts.Policy.Retry(kind, attempt, err)
		if !retry {
			g.logger.Error("save failed", "kind", kind, "attempt", attempt, "error", err)
			return err
		}
		g.logger.Warn("save failed, retrying", "kind", kind, "attempt", attempt, "delay", delay, "error", err)
		time.Sleep(delay)
	}
}

func (g *Gateway) attempt(j job) error {
	ctx := context.Background()
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	return j(ctx)
}

// Flush sends every queued save immediately.
func (g *Gateway) Flush() {
	g.mu.Lock()
	jobs := make(map[Kind]job, len(g.pending))
	for kind, j := range g.pending {
		jobs[kind] = j
		if t, ok := g.timers[kind]; ok {
			t.Stop()
		}
	}
	g.pending = make(map[Kind]job)
	g.timers = make(map[Kind]*time.Timer)
	g.status.Pending = 0
	g.mu.Unlock()

	for _, kind := range []Kind{KindTranscript, KindLyricPreset, KindLayoutPreset} {
		if j, ok := jobs[kind]; ok {
			g.send(kind, j)
		}
	}
}

// Wait blocks until every save sent so far has finished.
func (g *Gateway) Wait() {
	g.wg.Wait()
}

// Close flushes queued saves, waits for them, and rejects later saves.
func (g *Gateway) Close() {
	g.Flush()
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.Wait()
}

// Status returns a snapshot of the gateway counters.
func (g *Gateway) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	s := g.status
	s.InFlight = g.inFlight
	return s
}
