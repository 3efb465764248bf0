package skill

import (
	"context"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/auth"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

// DependentServiceName is reported when the controller fails.
const DependentServiceName = "Cortex controller"

// Controller sends one command to the device controller and returns the
// raw reply body. *cortex.Client implements it.
type Controller interface {
	Send(ctx context.Context, cmd cortex.Command) (string, error)
}

// Reachability reports whether an endpoint can currently be commanded.
type Reachability interface {
	Reachable(ctx context.Context, endpointID string) bool
}

// AlwaysReachable treats every endpoint as online. The controller offers
// no cheap liveness check per object.
type AlwaysReachable struct{}

// Reachable always returns true.
func (AlwaysReachable) Reachable(context.Context, string) bool { return true }

// Logger is the logging interface used by the service.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Outcome describes one handled directive.
type Outcome struct {
	Namespace  string
	Name       string
	EndpointID string
	Response   *alexa.Response

	// Err is the controller failure behind a DependentServiceUnavailable
	// or UnsupportedTarget response, nil otherwise.
	Err error

	Duration time.Duration
}

// Observer is told about every response the service produces.
// Observe must not block for long; it runs on the request path.
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, o Outcome)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, o Outcome) { f(ctx, o) }

// Options configures a Service.
type Options struct {
	// Controller is required.
	Controller Controller

	// Tokens validates bearer tokens. Defaults to auth.AcceptAll.
	Tokens auth.Validator

	// Reachability defaults to AlwaysReachable.
	Reachability Reachability

	// Logger is optional.
	Logger Logger

	// Observers are notified after each response, in order.
	Observers []Observer
}

// Service handles directives.
//
// Thread Safety: Handle is safe for concurrent use. AddObserver must not be
// called concurrently with Handle.
type Service struct {
	controller Controller
	tokens     auth.Validator
	reach      Reachability
	logger     Logger
	observers  []Observer
}

// New creates a Service.
//
// Returns:
//   - *Service: Ready to handle directives
//   - error: ErrNoController if opts.Controller is nil
func New(opts Options) (*Service, error) {
	if opts.Controller == nil {
		return nil, ErrNoController
	}

	s := &Service{
		controller: opts.Controller,
		tokens:     opts.Tokens,
		reach:      opts.Reachability,
		logger:     opts.Logger,
		observers:  append([]Observer(nil), opts.Observers...),
	}
	if s.tokens == nil {
		s.tokens = auth.AcceptAll{}
	}
	if s.reach == nil {
		s.reach = AlwaysReachable{}
	}
	return s, nil
}

// AddObserver registers o to be told about future responses.
func (s *Service) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(l Logger) {
	s.logger = l
}

func (s *Service) notify(ctx context.Context, o Outcome) {
	for _, obs := range s.observers {
		obs.Observe(ctx, o)
	}
}

func (s *Service) logDebug(msg string, keysAndValues ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, keysAndValues...)
	}
}

func (s *Service) logInfo(msg string, keysAndValues ...any) {
	if s.logger != nil {
		s.logger.Info(msg, keysAndValues...)
	}
}

func (s *Service) logWarn(msg string, keysAndValues ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, keysAndValues...)
	}
}

func (s *Service) logError(msg string, keysAndValues ...any) {
	if s.logger != nil {
		s.logger.Error(msg, keysAndValues...)
	}
}
