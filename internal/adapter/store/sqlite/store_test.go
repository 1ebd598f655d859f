package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "stats.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func counts(t *testing.T, s *Store) map[[2]int]int64 {
	t.Helper()
	stats, err := s.ListStats(context.Background())
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	out := make(map[[2]int]int64, len(stats))
	for _, st := range stats {
		out[[2]int{st.Die, st.Roll}] = st.RollCount
	}
	return out
}

func TestStore_ApplyCycle_CreatesAndIncrements(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	applied, err := s.ApplyCycle(ctx, "c1", []service.AggregateRow{{Die: 8, Roll: 5, Count: 3}, {Die: 8, Roll: 2, Count: 1}})
	if err != nil || !applied {
		t.Fatalf("apply c1: applied=%v err=%v", applied, err)
	}
	got := counts(t, s)
	if got[[2]int{8, 5}] != 3 || got[[2]int{8, 2}] != 1 || len(got) != 2 {
		t.Fatalf("after c1: %v", got)
	}

	applied, err = s.ApplyCycle(ctx, "c2", []service.AggregateRow{{Die: 8, Roll: 5, Count: 4}, {Die: 20, Roll: 1, Count: 1}})
	if err != nil || !applied {
		t.Fatalf("apply c2: applied=%v err=%v", applied, err)
	}
	got = counts(t, s)
	if got[[2]int{8, 5}] != 7 || got[[2]int{8, 2}] != 1 || got[[2]int{20, 1}] != 1 {
		t.Fatalf("after c2: %v", got)
	}
}

func TestStore_ApplyCycle_ReplayIsNoop(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rows := []service.AggregateRow{{Die: 6, Roll: 6, Count: 2}}

	if applied, err := s.ApplyCycle(ctx, "same", rows); err != nil || !applied {
		t.Fatalf("first apply: applied=%v err=%v", applied, err)
	}
	applied, err := s.ApplyCycle(ctx, "same", rows)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if applied {
		t.Fatalf("replay must report applied=false")
	}
	if got := counts(t, s)[[2]int{6, 6}]; got != 2 {
		t.Fatalf("replay double counted: %d", got)
	}
}

func TestStore_ListStats_OrderAndTimestamps(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rows := []service.AggregateRow{{Die: 20, Roll: 3, Count: 1}, {Die: 4, Roll: 4, Count: 2}, {Die: 4, Roll: 1, Count: 5}}
	if _, err := s.ApplyCycle(context.Background(), "c", rows); err != nil {
		t.Fatalf("apply: %v", err)
	}

	stats, err := s.ListStats(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []entity.Stat{
		{Die: 4, Roll: 1, RollCount: 5, UpdatedAt: fixed},
		{Die: 4, Roll: 4, RollCount: 2, UpdatedAt: fixed},
		{Die: 20, Roll: 3, RollCount: 1, UpdatedAt: fixed},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v", stats)
	}
	for i := range want {
		got := stats[i]
		if got.Die != want[i].Die || got.Roll != want[i].Roll || got.RollCount != want[i].RollCount || !got.UpdatedAt.Equal(want[i].UpdatedAt) {
			t.Fatalf("stat %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestStore_PruneCycles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	if _, err := s.ApplyCycle(ctx, "old", []service.AggregateRow{{Die: 4, Roll: 1, Count: 1}}); err != nil {
		t.Fatalf("apply old: %v", err)
	}
	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	if _, err := s.ApplyCycle(ctx, "new", []service.AggregateRow{{Die: 4, Roll: 1, Count: 1}}); err != nil {
		t.Fatalf("apply new: %v", err)
	}

	n, err := s.PruneCycles(ctx, base.Add(24*time.Hour))
	if err != nil || n != 1 {
		t.Fatalf("prune: n=%d err=%v", n, err)
	}
	// "old" is forgotten, so it applies again; "new" is still remembered.
	if applied, _ := s.ApplyCycle(ctx, "new", []service.AggregateRow{{Die: 4, Roll: 1, Count: 1}}); applied {
		t.Fatalf("new marker should still exist")
	}
	if applied, _ := s.ApplyCycle(ctx, "old", []service.AggregateRow{{Die: 4, Roll: 1, Count: 1}}); !applied {
		t.Fatalf("old marker should have been pruned")
	}
}
