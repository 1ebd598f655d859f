package service

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrFlushInProgress  = errors.New("flush in progress: buffer already exists")
	ErrNothingToFlush   = errors.New("nothing to flush")
	ErrNoBuffer         = errors.New("no buffer to resume")
	ErrBufferChanged    = errors.New("buffer belongs to another cycle")
)

// Phase names a step of a flush cycle.
type Phase string

const (
	PhaseRotate Phase = "rotate"
	PhaseRead   Phase = "read"
	PhaseMerge  Phase = "merge"
	PhaseClear  Phase = "clear"
)

// CycleError reports where a flush cycle stopped. The buffer is never deleted
// before PhaseClear succeeds.
type CycleError struct {
	Phase   Phase
	CycleID string
	Err     error
}

func (e *CycleError) Error() string {
	if e.CycleID == "" {
		return fmt.Sprintf("flush %s: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("flush %s (cycle %s): %v", e.Phase, e.CycleID, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }
