package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"go.uber.org/zap"

	"github.com/SamsoftComputers/catsdk/internal/chat"
	"github.com/SamsoftComputers/catsdk/internal/completion"
	"github.com/SamsoftComputers/catsdk/internal/config"
	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/observability"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/rpc/agentwatch"
	"github.com/SamsoftComputers/catsdk/internal/rpc/model"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server hosts the engine endpoints: chat, completion, agent watch streams,
// plus health and metrics.
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	state   *engine.State
	chat    *chat.Engine
	compl   *completion.Engine
	watch   *agentwatch.Service
	metrics *observability.Metrics
}

// NewServer constructs a daemon instance.
func NewServer(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	state := engine.NewState(engine.Options{
		ModelID:       cfg.Model.ID,
		Temperature:   cfg.Model.Temperature,
		TopP:          cfg.Model.TopP,
		ContextWindow: cfg.Model.ContextWindow,
		HistoryLimit:  cfg.Model.HistoryLimit,
	})

	src := pacing.NewSource(cfg.Model.Seed)
	var pacer pacing.Pacer = pacing.Zero{}
	if cfg.Latency.Enabled {
		pacer = pacing.NewReal(src)
	}

	metrics := observability.NewMetrics()

	chatEngine := chat.New(state, pacer, src, chat.WithLatency(
		time.Duration(cfg.Latency.ChatMinMS)*time.Millisecond,
		time.Duration(cfg.Latency.ChatMaxMS)*time.Millisecond,
	))
	complEngine := completion.New(state, pacer, completion.WithLatency(
		time.Duration(cfg.Latency.CompletionMinMS)*time.Millisecond,
		time.Duration(cfg.Latency.CompletionMaxMS)*time.Millisecond,
	))

	watch := agentwatch.NewService(cfg.Agent, pacer, cfg.Model.Seed, logger, metrics)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		state:   state,
		chat:    chatEngine,
		compl:   complEngine,
		watch:   watch,
		metrics: metrics,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/metrics", s.metricsHandler)
	mux.HandleFunc("/engine/status", s.statusHandler)
	mux.Handle("/engine/chat", model.NewChatHandler(s.chat, s.metrics))
	mux.Handle("/engine/complete", model.NewCompleteHandler(s.compl, s.cfg.Model.ID, s.metrics))

	switch strings.ToLower(strings.TrimSpace(s.cfg.Server.Transport)) {
	case "ndjson":
		mux.Handle("/agent/watch", agentwatch.NewHandler(s.watch, s.metrics))
	default:
		path, handler := agentwatch.NewConnectHandler(s.watch, s.metrics)
		mux.Handle(path, handler)
		// keep legacy NDJSON path available during migration
		mux.Handle("/agent/watch", agentwatch.NewHandler(s.watch, s.metrics))
	}

	handler := http.Handler(mux)
	if strings.ToLower(strings.TrimSpace(s.cfg.Server.Transport)) != "ndjson" {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	server := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting catsdk daemon",
			zap.String("addr", s.cfg.Server.Addr),
			zap.String("model", s.cfg.Model.ID))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down catsdk daemon")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.state.Status())
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.Server.MetricsEnabled {
		http.NotFound(w, r)
		return
	}

	promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
