package app

import (
	"context"
	"fmt"

	redisstore "github.com/dayanaadylkhanova/dice-roller/internal/adapter/store/redis"
	"github.com/dayanaadylkhanova/dice-roller/internal/adapter/store/postgres"
	"github.com/dayanaadylkhanova/dice-roller/internal/adapter/store/sqlite"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/dayanaadylkhanova/dice-roller/pkg/config"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DurableStore is what both durable backends provide.
type DurableStore interface {
	service.AggregateWriter
	service.StatsReaderPort
	Init(ctx context.Context) error
	Close() error
}

type Stores struct {
	Counters *redisstore.Store
	Durable  DurableStore
}

// OpenStores connects the ephemeral and durable stores and prepares the durable schema.
func OpenStores(ctx context.Context, cfg config.Config, log *zap.Logger) (*Stores, error) {
	drv, dsn, err := cfg.Database()
	if err != nil {
		return nil, err
	}

	var durable DurableStore
	switch drv {
	case config.DriverPostgres:
		durable, err = postgres.New(dsn, log.Named("postgres"))
	case config.DriverSQLite:
		durable, err = sqlite.New(dsn, log.Named("sqlite"))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", drv, err)
	}
	if err := durable.Init(ctx); err != nil {
		_ = durable.Close()
		return nil, fmt.Errorf("init %s: %w", drv, err)
	}

	counters, err := redisstore.New(cfg.RedisURL, cfg.StatsKey, log.Named("redis"))
	if err != nil {
		_ = durable.Close()
		return nil, err
	}
	if err := counters.Ping(ctx); err != nil {
		// Rolls are still served without Redis; the flusher retries on schedule.
		log.Warn("redis not reachable at startup", zap.Error(err))
	}

	return &Stores{Counters: counters, Durable: durable}, nil
}

func (s *Stores) NewFlusher(cfg config.Config, log *zap.Logger) *service.Flusher {
	return service.NewFlusher(log.Named("flusher"), s.Counters, s.Durable, service.FlushSettings{
		Every:       cfg.FlushEvery,
		Timeout:     cfg.FlushTimeout,
		ResumeStale: cfg.FlushResumeStale,
	})
}

func (s *Stores) Close() error {
	return multierr.Combine(s.Counters.Close(), s.Durable.Close())
}
