package app

import (
	"context"
	"errors"
	"net/http"

	http_server "github.com/dayanaadylkhanova/dice-roller/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/dayanaadylkhanova/dice-roller/pkg/config"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

// Fields describes the build for log records.
func (i *AppInfo) Fields() []zap.Field {
	if i == nil {
		return nil
	}
	return []zap.Field{
		zap.String("app", i.Name),
		zap.String("release", i.Release),
		zap.String("commit", i.Commit),
		zap.String("build_time", i.BuildTime),
	}
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	stores   *Stores
	recorder *service.Recorder
	flusher  *service.Flusher
	server   *http_server.Server
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	// 1) Stores (Redis counters + durable aggregate)
	stores, err := OpenStores(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	// 2) Roller + counter sink
	rec := service.NewRecorder(log.Named("recorder"), stores.Counters, cfg.RecordTimeout)
	roller := service.NewRoller(log.Named("roller"), dice.NewGenerator(dice.NewPoolSource()), rec)

	// 3) Flusher
	fl := stores.NewFlusher(cfg, log)

	// 4) HTTP server (ports: RollerPort + StatsReaderPort + FlusherPort)
	srv := http_server.NewServer(log, cfg.ListenAddr, roller, stores.Durable, fl)

	return &App{
		cfg:      cfg,
		info:     info,
		log:      log,
		stores:   stores,
		recorder: rec,
		flusher:  fl,
		server:   srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logStartup()

	// Start background flush
	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.cfg.FlushEnabled {
		go a.flusher.Run(bgCtx)
	} else {
		a.log.Info("scheduled flush disabled")
	}

	// Start HTTP
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		// graceful
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server", zap.Error(err))
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	// Graceful shutdown: stop taking rolls, drain pending counter writes,
	// then let the flusher make its last cycle.
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()
	errs := multierr.Combine(
		a.server.Shutdown(shutdownCtx),
		a.recorder.Wait(shutdownCtx),
	)
	if a.cfg.FlushEnabled {
		a.flusher.Stop(shutdownCtx)
	}
	errs = multierr.Append(errs, a.stores.Close())

	if errs != nil && errors.Is(runErr, ErrAppShutdownNormal) {
		a.log.Warn("shutdown", zap.Error(errs))
		return ErrAppShutdownWithError
	}
	return runErr
}

func (a *App) logStartup() {
	fields := append(a.info.Fields(),
		zap.String("listen_addr", a.cfg.ListenAddr),
		zap.Bool("flush_enabled", a.cfg.FlushEnabled),
		zap.Duration("flush_every", a.cfg.FlushEvery),
	)
	a.log.Info("starting", fields...)
}
