package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Applied-cycle markers are kept long enough to outlive any stuck buffer an
// operator is likely to resume.
const cycleRetention = 7 * 24 * time.Hour

type FlushReport struct {
	CycleID string `json:"cycle_id"`
	Entries int    `json:"entries"`
	Rolls   int64  `json:"rolls"`
	// Replayed is set when the merge had already been applied by an earlier,
	// interrupted attempt at the same cycle.
	Replayed bool `json:"replayed"`
}

type BufferStatus struct {
	Pending bool   `json:"pending"`
	CycleID string `json:"cycle_id,omitempty"`
	Entries int    `json:"entries"`
	Rolls   int64  `json:"rolls"`
}

type FlushSettings struct {
	Every       time.Duration
	Timeout     time.Duration
	ResumeStale bool
}

// Flusher moves ephemeral counters into the durable aggregate:
// rotate active -> buffer, read + merge the buffer, clear the buffer.
type Flusher struct {
	log      *zap.Logger
	counters CounterStore
	writer   AggregateWriter
	settings FlushSettings
	newID    func() string
	now      func() time.Time

	busy     sync.Mutex
	running  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	done     chan struct{}
}

func NewFlusher(log *zap.Logger, counters CounterStore, w AggregateWriter, settings FlushSettings) *Flusher {
	if settings.Every <= 0 {
		settings.Every = time.Minute
	}
	if settings.Timeout <= 0 {
		settings.Timeout = 30 * time.Second
	}
	return &Flusher{
		log:      log,
		counters: counters,
		writer:   w,
		settings: settings,
		newID:    uuid.NewString,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Flush runs one full cycle. A buffer left by an unfinished cycle makes it
// fail with ErrFlushInProgress and touch nothing.
func (f *Flusher) Flush(ctx context.Context) (FlushReport, error) {
	if !f.busy.TryLock() {
		return FlushReport{}, &CycleError{Phase: PhaseRotate, Err: ErrFlushInProgress}
	}
	defer f.busy.Unlock()

	if err := f.counters.Rotate(ctx); err != nil {
		return FlushReport{}, &CycleError{Phase: PhaseRotate, Err: err}
	}
	return f.drain(ctx)
}

// Resume finishes a cycle whose buffer is still in place.
func (f *Flusher) Resume(ctx context.Context) (FlushReport, error) {
	if !f.busy.TryLock() {
		return FlushReport{}, &CycleError{Phase: PhaseRead, Err: ErrFlushInProgress}
	}
	defer f.busy.Unlock()
	return f.drain(ctx)
}

func (f *Flusher) drain(ctx context.Context) (FlushReport, error) {
	buf, err := f.counters.ReadBuffer(ctx, f.newID())
	if err != nil {
		return FlushReport{}, &CycleError{Phase: PhaseRead, Err: err}
	}
	rep := FlushReport{CycleID: buf.CycleID, Entries: len(buf.Rows), Rolls: buf.Rolls()}

	if len(buf.Rows) > 0 {
		applied, err := f.writer.ApplyCycle(ctx, buf.CycleID, buf.Rows)
		if err != nil {
			return rep, &CycleError{Phase: PhaseMerge, CycleID: buf.CycleID, Err: err}
		}
		rep.Replayed = !applied
	}

	// Only after the merge is durable.
	if err := f.counters.ClearBuffer(ctx, buf.CycleID); err != nil {
		return rep, &CycleError{Phase: PhaseClear, CycleID: buf.CycleID, Err: err}
	}

	if n, err := f.writer.PruneCycles(ctx, f.now().Add(-cycleRetention)); err != nil {
		f.log.Warn("prune applied cycles", zap.Error(err))
	} else if n > 0 {
		f.log.Debug("pruned applied cycles", zap.Int64("count", n))
	}
	return rep, nil
}

func (f *Flusher) Pending(ctx context.Context) (BufferStatus, error) {
	buf, err := f.counters.PeekBuffer(ctx)
	if errors.Is(err, ErrNoBuffer) {
		return BufferStatus{}, nil
	}
	if err != nil {
		return BufferStatus{}, err
	}
	return BufferStatus{Pending: true, CycleID: buf.CycleID, Entries: len(buf.Rows), Rolls: buf.Rolls()}, nil
}

func (f *Flusher) Run(ctx context.Context) {
	f.running.Store(true)
	defer close(f.done)

	t := time.NewTicker(f.settings.Every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stopCh:
			return
		case <-t.C:
			_, _ = f.cycle(ctx)
		}
	}
}

// cycle is one scheduled run, bounded by settings.Timeout so a stuck store
// fails the cycle instead of holding up the next tick.
func (f *Flusher) cycle(parent context.Context) (FlushReport, error) {
	ctx, cancel := context.WithTimeout(parent, f.settings.Timeout)
	defer cancel()

	rep, err := f.Flush(ctx)
	if errors.Is(err, ErrFlushInProgress) && f.settings.ResumeStale {
		f.log.Warn("stale buffer found, resuming it")
		rep, err = f.Resume(ctx)
	}
	f.report(rep, err)
	return rep, err
}

// Stop ends Run and makes one last best-effort cycle.
func (f *Flusher) Stop(ctx context.Context) {
	f.stopOnce.Do(func() { close(f.stopCh) })
	if f.running.Load() {
		select {
		case <-f.done:
		case <-ctx.Done():
			return
		}
	}
	cctx, cancel := context.WithTimeout(ctx, f.settings.Timeout)
	defer cancel()
	rep, err := f.Flush(cctx)
	f.report(rep, err)
}

func (f *Flusher) report(rep FlushReport, err error) {
	switch {
	case err == nil:
		f.log.Info("flush cycle complete",
			zap.String("cycle_id", rep.CycleID),
			zap.Int("entries", rep.Entries),
			zap.Int64("rolls", rep.Rolls),
			zap.Bool("replayed", rep.Replayed),
		)
	case errors.Is(err, ErrNothingToFlush):
		f.log.Debug("nothing to flush")
	case errors.Is(err, ErrFlushInProgress):
		f.log.Warn("flush refused: a previous cycle left its buffer; inspect it and resume manually", zap.Error(err))
	default:
		f.log.Error("flush cycle failed", zap.Error(err))
	}
}
