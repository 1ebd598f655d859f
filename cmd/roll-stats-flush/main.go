// Command roll-stats-flush runs a single flush cycle and exits. It is meant for
// cron-style scheduling when roller-api runs with FLUSH_ENABLED=false, and for
// resuming a buffer left behind by a crashed cycle (-resume).
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/dayanaadylkhanova/dice-roller/internal/app"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/dayanaadylkhanova/dice-roller/pkg/config"
	"github.com/dayanaadylkhanova/dice-roller/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	resume := flag.Bool("resume", false, "finish the cycle whose buffer is still pending instead of starting a new one")
	flag.Parse()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("can't parse app config: %v", err)
	}
	zl := logger.NewJSON(cfg.LogLevel).With(zap.String("app", "roll-stats-flush"))

	code := run(cfg, zl, *resume)
	_ = zl.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, zl *zap.Logger, resume bool) int {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.FlushTimeout)
	defer cancel()

	stores, err := app.OpenStores(ctx, *cfg, zl)
	if err != nil {
		zl.Error("can't open stores", zap.Error(err))
		return 1
	}
	defer func() {
		if err := stores.Close(); err != nil {
			zl.Warn("close stores", zap.Error(err))
		}
	}()

	fl := stores.NewFlusher(*cfg, zl)
	var rep service.FlushReport
	if resume {
		rep, err = fl.Resume(ctx)
	} else {
		rep, err = fl.Flush(ctx)
	}

	switch {
	case err == nil:
		zl.Info("flush done",
			zap.String("cycle_id", rep.CycleID),
			zap.Int("entries", rep.Entries),
			zap.Int64("rolls", rep.Rolls),
			zap.Bool("replayed", rep.Replayed),
		)
		return 0
	case errors.Is(err, service.ErrNothingToFlush):
		zl.Info("nothing to flush")
		return 0
	case errors.Is(err, service.ErrFlushInProgress):
		st, perr := fl.Pending(ctx)
		zl.Error("a buffer from an earlier cycle is pending; rerun with -resume once no other flush is running",
			zap.Error(err), zap.Bool("pending", st.Pending), zap.String("cycle_id", st.CycleID),
			zap.Int64("rolls", st.Rolls), zap.NamedError("pending_error", perr))
		return 2
	default:
		zl.Error("flush failed", zap.Error(err))
		return 1
	}
}
