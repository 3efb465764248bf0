package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/auth"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// DirectiveHandler handles one raw directive. *skill.Service implements it.
type DirectiveHandler interface {
	HandleJSON(ctx context.Context, body []byte) (*alexa.Response, error)
}

// HealthChecker is an optional dependency reported by /health.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Logger   *logging.Logger
	Handler  DirectiveHandler
	Tokens   auth.Validator // guards the WebSocket feed; defaults to auth.AcceptAll
	MQTT     HealthChecker  // optional
	InfluxDB HealthChecker  // optional
	Version  string
}

// Server is the HTTP API server.
//
// It is created with New and started with Start. Register Observer() with
// the skill service so metrics and the WebSocket feed see every response.
type Server struct {
	cfg       config.APIConfig
	wsCfg     config.WebSocketConfig
	logger    *logging.Logger
	handler   DirectiveHandler
	tokens    auth.Validator
	mqtt      HealthChecker
	influx    HealthChecker
	version   string
	startTime time.Time
	metrics   *directiveMetrics
	feed      *Feed
	server    *http.Server
	cancel    context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If the logger or directive handler is missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Handler == nil {
		return nil, fmt.Errorf("directive handler is required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		logger:    deps.Logger,
		handler:   deps.Handler,
		tokens:    deps.Tokens,
		mqtt:      deps.MQTT,
		influx:    deps.InfluxDB,
		version:   deps.Version,
		startTime: time.Now(),
		metrics:   newDirectiveMetrics(),
		feed:      NewFeed(deps.WS, deps.Logger),
	}
	if s.tokens == nil {
		s.tokens = auth.AcceptAll{}
	}
	return s, nil
}

// Observer returns the skill.Observer that feeds the directive counters
// and the live feed.
func (s *Server) Observer() skill.Observer {
	return skill.ObserverFunc(func(_ context.Context, o skill.Outcome) {
		s.metrics.record(o)
		if s.wsCfg.Enabled {
			s.feed.PublishOutcome(o)
		}
	})
}

// Start begins listening for HTTP connections in a background goroutine.
//
// Parameters:
//   - ctx: Parent context for the live feed; Close stops the listener
//
// Returns:
//   - error: Always nil; listener failures are logged
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)
	go s.feed.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to 10 seconds for
// in-flight requests.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck reports whether the server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
