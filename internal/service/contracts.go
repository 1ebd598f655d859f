package service

//go:generate mockgen -source=contracts.go -destination=mock_contracts.go -package=service

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
)

type RollerPort interface {
	RollNotation(ctx context.Context, notation string) (dice.RollResult, error)
	Roll(ctx context.Context, in dice.RollInstruction) (dice.RollResult, error)
}

type FlusherPort interface {
	Flush(ctx context.Context) (FlushReport, error)
	Resume(ctx context.Context) (FlushReport, error)
	Pending(ctx context.Context) (BufferStatus, error)
}

type StatsReaderPort interface {
	ListStats(ctx context.Context) ([]entity.Stat, error)
}

// StatsSink accepts the faces of a finished roll. Record must not block the caller.
type StatsSink interface {
	Record(die int, rolls []int)
}

// CounterStore holds ephemeral per-(die,face) counters plus the single buffer slot
// used by a flush cycle.
type CounterStore interface {
	// IncrFaces adds tally[face] to the active counter of every (die, face).
	IncrFaces(ctx context.Context, die int, tally map[int]int64) error
	// Rotate moves the active counters into the buffer. ErrFlushInProgress if a
	// buffer exists, ErrNothingToFlush if there are no active counters.
	Rotate(ctx context.Context) error
	// ReadBuffer stamps the buffer with cycleID unless it already carries a stamp,
	// then returns its content. ErrNoBuffer if there is none.
	ReadBuffer(ctx context.Context, cycleID string) (Buffer, error)
	// PeekBuffer returns the buffer without stamping it.
	PeekBuffer(ctx context.Context) (Buffer, error)
	// ClearBuffer deletes the buffer if it is stamped with cycleID, ErrBufferChanged otherwise.
	ClearBuffer(ctx context.Context, cycleID string) error
}

// AggregateWriter persists durable (die, roll) counters.
type AggregateWriter interface {
	// ApplyCycle adds every row in one transaction and records cycleID as applied.
	// It returns false, applying nothing, when cycleID was applied before.
	ApplyCycle(ctx context.Context, cycleID string, rows []AggregateRow) (bool, error)
	// PruneCycles drops applied markers recorded before olderThan.
	PruneCycles(ctx context.Context, olderThan time.Time) (int64, error)
}

// AggregateRow is a pending increment of a single (die, roll) counter.
type AggregateRow struct {
	Die   int
	Roll  int
	Count int64
}

// Buffer is the content of the ephemeral buffer slot.
type Buffer struct {
	CycleID string
	Rows    []AggregateRow
}

func (b Buffer) Rolls() int64 {
	var n int64
	for _, r := range b.Rows {
		n += r.Count
	}
	return n
}
