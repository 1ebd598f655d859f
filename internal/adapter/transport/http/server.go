package http_server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"github.com/dayanaadylkhanova/dice-roller/internal/entity"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	log     *zap.Logger
	addr    string
	roller  service.RollerPort
	stats   service.StatsReaderPort
	flusher service.FlusherPort
	httpSrv *http.Server
}

func NewServer(log *zap.Logger, addr string, roller service.RollerPort, stats service.StatsReaderPort, flusher service.FlusherPort) *Server {
	s := &Server{log: log, addr: addr, roller: roller, stats: stats, flusher: flusher}
	s.httpSrv = &http.Server{Addr: addr, Handler: s.routes(), ReadHeaderTimeout: 5 * time.Second}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(zapLogger(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Route("/roll", func(r chi.Router) {
		r.Get("/", s.handleRollNotation())
		r.Post("/", s.handleRoll())
	})
	r.Route("/stats", func(r chi.Router) {
		r.Get("/", s.handleStats())
		r.Get("/pending", s.handlePending())
		r.Post("/flush", s.handleFlush())
	})
	return r
}

func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

func (s *Server) Start() error {
	s.log.Info("http listen", zap.String("addr", s.addr))
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func zapLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

func (s *Server) handleRollNotation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notation := r.URL.Query().Get("roll")
		res, err := s.roller.RollNotation(r.Context(), notation)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleRoll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in dice.RollInstruction
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, entity.ErrorResponse{Kind: "invalid_request", Message: "invalid JSON"})
			return
		}
		res, err := s.roller.Roll(r.Context(), in)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.stats.ListStats(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		if stats == nil {
			stats = []entity.Stat{}
		}
		writeJSON(w, http.StatusOK, entity.StatsResponse{Stats: stats})
	}
}

func (s *Server) handlePending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.flusher.Pending(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleFlush() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resume, _ := strconv.ParseBool(r.URL.Query().Get("resume"))
		var (
			rep service.FlushReport
			err error
		)
		if resume {
			rep, err = s.flusher.Resume(r.Context())
		} else {
			rep, err = s.flusher.Flush(r.Context())
		}
		if errors.Is(err, service.ErrNothingToFlush) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var de *dice.Error
	switch {
	case errors.As(err, &de):
		writeJSON(w, http.StatusBadRequest, entity.ErrorResponse{Kind: string(de.Kind), Message: de.Message})
	case errors.Is(err, service.ErrFlushInProgress):
		writeJSON(w, http.StatusConflict, entity.ErrorResponse{Kind: "flush_in_progress", Message: err.Error()})
	case errors.Is(err, service.ErrNoBuffer):
		writeJSON(w, http.StatusNotFound, entity.ErrorResponse{Kind: "no_buffer", Message: err.Error()})
	case errors.Is(err, service.ErrStoreUnavailable), errors.Is(err, dice.ErrSourceUnavailable):
		s.log.Error("dependency unavailable", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, entity.ErrorResponse{Kind: "unavailable", Message: "service unavailable"})
	default:
		s.log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, entity.ErrorResponse{Kind: "internal", Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
