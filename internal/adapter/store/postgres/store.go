package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS roll_stats (
	die        SMALLINT    NOT NULL,
	roll       SMALLINT    NOT NULL,
	roll_count BIGINT      NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (die, roll)
);
CREATE TABLE IF NOT EXISTS roll_stat_cycles (
	cycle_id   TEXT        PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	_, err := s.pool.Exec(ctx, ddl)
	return wrap(err)
}

// ApplyCycle implements service.AggregateWriter
func (s *Store) ApplyCycle(ctx context.Context, cycleID string, rows []service.AggregateRow) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, wrap(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `INSERT INTO roll_stat_cycles (cycle_id) VALUES ($1) ON CONFLICT (cycle_id) DO NOTHING`, cycleID)
	if err != nil {
		return false, wrap(err)
	}
	if tag.RowsAffected() == 0 {
		s.log.Info("cycle already applied", zap.String("cycle_id", cycleID))
		return false, nil
	}

	if len(rows) > 0 {
		sql, args := upsertSQL(rows)
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return false, wrap(err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, wrap(err)
	}
	return true, nil
}

// upsertSQL builds one multi-row upsert. Rows sharing (die, roll) are summed
// first; Postgres refuses to update the same row twice in one statement.
func upsertSQL(rows []service.AggregateRow) (string, []any) {
	rows = sumRows(rows)
	var b strings.Builder
	b.WriteString("INSERT INTO roll_stats (die, roll, roll_count, updated_at) VALUES ")
	args := make([]any, 0, len(rows)*3)
	for i, r := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		o := i*3 + 1
		fmt.Fprintf(&b, "($%d,$%d,$%d,now())", o, o+1, o+2)
		args = append(args, int16(r.Die), int16(r.Roll), r.Count)
	}
	b.WriteString(" ON CONFLICT (die, roll) DO UPDATE SET roll_count = roll_stats.roll_count + EXCLUDED.roll_count, updated_at = EXCLUDED.updated_at")
	return b.String(), args
}

func sumRows(rows []service.AggregateRow) []service.AggregateRow {
	idx := make(map[[2]int]int, len(rows))
	out := make([]service.AggregateRow, 0, len(rows))
	for _, r := range rows {
		k := [2]int{r.Die, r.Roll}
		if i, ok := idx[k]; ok {
			out[i].Count += r.Count
			continue
		}
		idx[k] = len(out)
		out = append(out, r)
	}
	return out
}

// PruneCycles implements service.AggregateWriter
func (s *Store) PruneCycles(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM roll_stat_cycles WHERE applied_at < $1`, olderThan)
	if err != nil {
		return 0, wrap(err)
	}
	return tag.RowsAffected(), nil
}

// ListStats implements service.StatsReaderPort
func (s *Store) ListStats(ctx context.Context) ([]entity.Stat, error) {
	const q = `SELECT die, roll, roll_count, updated_at FROM roll_stats ORDER BY die, roll`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	var out []entity.Stat
	for rows.Next() {
		var die, roll int16
		var st entity.Stat
		if err := rows.Scan(&die, &roll, &st.RollCount, &st.UpdatedAt); err != nil {
			return nil, err
		}
		st.Die, st.Roll = int(die), int(roll)
		st.UpdatedAt = st.UpdatedAt.UTC()
		out = append(out, st)
	}
	return out, wrap(rows.Err())
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// wrap marks connection-level failures as service.ErrStoreUnavailable; errors
// reported by the server itself and context errors are returned as they are.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return fmt.Errorf("postgres: %w: %w", service.ErrStoreUnavailable, err)
}
