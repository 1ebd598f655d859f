package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Recorder is the StatsSink backed by a CounterStore. Writes happen in the
// background; a failed write is logged and dropped.
type Recorder struct {
	log      *zap.Logger
	store    CounterStore
	timeout  time.Duration
	wg       sync.WaitGroup
	failures atomic.Int64
}

func NewRecorder(log *zap.Logger, store CounterStore, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Recorder{log: log, store: store, timeout: timeout}
}

// Tally groups rolls by face.
func Tally(rolls []int) map[int]int64 {
	t := make(map[int]int64, len(rolls))
	for _, r := range rolls {
		t[r]++
	}
	return t
}

func (r *Recorder) Record(die int, rolls []int) {
	if len(rolls) == 0 {
		return
	}
	tally := Tally(rolls)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.store.IncrFaces(ctx, die, tally); err != nil {
			r.failures.Add(1)
			r.log.Warn("record roll stats failed", zap.Int("die", die), zap.Int("faces", len(tally)), zap.Error(err))
		}
	}()
}

// Failures returns how many background writes have failed so far.
func (r *Recorder) Failures() int64 { return r.failures.Load() }

// Wait blocks until in-flight writes finish or ctx is done.
func (r *Recorder) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
