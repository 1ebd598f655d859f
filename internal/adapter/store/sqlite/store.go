// Package sqlite is the embedded durable store for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS roll_stats (
	die INTEGER NOT NULL,
	roll INTEGER NOT NULL,
	roll_count INTEGER NOT NULL DEFAULT 0,
	updated_at_utc_ns INTEGER NOT NULL,
	PRIMARY KEY (die, roll)
);

CREATE TABLE IF NOT EXISTS roll_stat_cycles (
	cycle_id TEXT PRIMARY KEY,
	applied_at_utc_ns INTEGER NOT NULL
);
`

type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

func New(path string, log *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Store{db: db, log: log, now: time.Now}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// ApplyCycle implements service.AggregateWriter
func (s *Store) ApplyCycle(ctx context.Context, cycleID string, rows []service.AggregateRow) (applied bool, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable(err)
	}
	defer func() {
		if !applied {
			_ = tx.Rollback()
		}
	}()

	now := s.now().UTC().UnixNano()
	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO roll_stat_cycles (cycle_id, applied_at_utc_ns) VALUES (?, ?)`, cycleID, now)
	if err != nil {
		return false, fmt.Errorf("mark cycle: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return false, err
	} else if n == 0 {
		s.log.Info("cycle already applied", zap.String("cycle_id", cycleID))
		return false, nil
	}

	if len(rows) > 0 {
		q, args := upsertSQL(rows, now)
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return false, fmt.Errorf("upsert roll stats: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, unavailable(err)
	}
	return true, nil
}

func upsertSQL(rows []service.AggregateRow, now int64) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO roll_stats (die, roll, roll_count, updated_at_utc_ns) VALUES ")
	args := make([]any, 0, len(rows)*4)
	for i, r := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?,?,?,?)")
		args = append(args, r.Die, r.Roll, r.Count, now)
	}
	b.WriteString(" ON CONFLICT (die, roll) DO UPDATE SET roll_count = roll_count + excluded.roll_count, updated_at_utc_ns = excluded.updated_at_utc_ns")
	return b.String(), args
}

// PruneCycles implements service.AggregateWriter
func (s *Store) PruneCycles(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM roll_stat_cycles WHERE applied_at_utc_ns < ?`, olderThan.UTC().UnixNano())
	if err != nil {
		return 0, unavailable(err)
	}
	return res.RowsAffected()
}

// ListStats implements service.StatsReaderPort
func (s *Store) ListStats(ctx context.Context) ([]entity.Stat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT die, roll, roll_count, updated_at_utc_ns FROM roll_stats ORDER BY die, roll`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	var out []entity.Stat
	for rows.Next() {
		var st entity.Stat
		var ns int64
		if err := rows.Scan(&st.Die, &st.Roll, &st.RollCount, &ns); err != nil {
			return nil, err
		}
		st.UpdatedAt = time.Unix(0, ns).UTC()
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }

func unavailable(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("sqlite: %w: %w", service.ErrStoreUnavailable, err)
}
