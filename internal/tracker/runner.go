package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TaskKind identifies an async tracker call.
type TaskKind uint8

const (
	TaskCreate TaskKind = iota + 1
	TaskPop
)

// String returns the task name for logs.
func (k TaskKind) String() string {
	switch k {
	case TaskCreate:
		return "create"
	case TaskPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Completion is the result of an async tracker call.
// Generation is the zone session the call was issued in.
type Completion struct {
	Generation uint64
	Kind       TaskKind
	ZoneKey    int
	TrackerID  uint16
	Session    Session
	Err        error
}

// Runner issues tracker calls off the tick goroutine and posts their results
// to Completions. Results are drained by the tick goroutine at the start of
// the next tick.
type Runner struct {
	svc         Service
	timeout     time.Duration
	completions chan Completion

	mu     sync.Mutex
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a runner with the given completion buffer size.
func NewRunner(svc Service, timeout time.Duration, buffer int) *Runner {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if buffer <= 0 {
		buffer = 16
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		svc:         svc,
		timeout:     timeout,
		completions: make(chan Completion, buffer),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Completions returns the channel results are posted to.
func (r *Runner) Completions() <-chan Completion {
	return r.completions
}

// Generation returns the current session generation.
func (r *Runner) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Cancel abandons every in-flight call and starts a new generation.
// Returns the new generation.
func (r *Runner) Cancel() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancel()
	r.ctx, r.cancel = context.WithCancel(context.Background())
	r.gen++
	return r.gen
}

// CreateTracker requests a new tracker instance for zoneKey.
func (r *Runner) CreateTracker(zoneKey int) {
	r.spawn(Completion{Kind: TaskCreate, ZoneKey: zoneKey}, func(ctx context.Context, c *Completion) {
		c.Session, c.Err = r.svc.CreateTracker(ctx, zoneKey)
	})
}

// Pop requests a pop of trackerID on session.
func (r *Runner) Pop(trackerID uint16, session Session) {
	r.spawn(Completion{Kind: TaskPop, TrackerID: trackerID, Session: session}, func(ctx context.Context, c *Completion) {
		c.Err = r.svc.Pop(ctx, trackerID, session)
	})
}

// Close cancels in-flight calls and waits for them to return.
func (r *Runner) Close() {
	r.mu.Lock()
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) spawn(c Completion, call func(ctx context.Context, c *Completion)) {
	r.mu.Lock()
	parent, gen := r.ctx, r.gen
	r.mu.Unlock()

	c.Generation = gen
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(parent, r.timeout)
		defer cancel()
		call(ctx, &c)

		if parent.Err() != nil {
			slog.Debug("tracker call abandoned", "task", c.Kind, "generation", c.Generation)
			return
		}
		select {
		case r.completions <- c:
		default:
			slog.Warn("tracker completion dropped, queue full", "task", c.Kind)
		}
	}()
}
