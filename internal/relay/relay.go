package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// Broker is the part of the MQTT client the relay uses. *mqtt.Client
// implements it.
type Broker interface {
	Topics() mqtt.Topics
	QoS() byte
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// Handler handles one raw directive. *skill.Service implements it.
type Handler interface {
	HandleJSON(ctx context.Context, body []byte) (*alexa.Response, error)
}

// Logger is the logging interface used by the relay.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// ErrorMessage is published when a directive produced no response.
type ErrorMessage struct {
	Error string `json:"error"`
}

// EventMessage is published for every produced response.
type EventMessage struct {
	Namespace  string          `json:"namespace"`
	Name       string          `json:"name"`
	EndpointID string          `json:"endpointId,omitempty"`
	DurationMS int64           `json:"durationMs"`
	Response   *alexa.Response `json:"response"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Relay connects the broker to the directive handler.
type Relay struct {
	broker  Broker
	handler Handler
	logger  Logger

	mu      sync.Mutex
	ctx     context.Context
	started bool
}

// New creates a Relay.
func New(broker Broker, handler Handler) *Relay {
	return &Relay{broker: broker, handler: handler}
}

// SetLogger sets the logger for the relay.
func (r *Relay) SetLogger(l Logger) {
	r.logger = l
}

// Start subscribes to the directive topic. ctx bounds every directive
// handled until Stop.
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	r.ctx = ctx
	r.mu.Unlock()

	topic := r.broker.Topics().AllDirectives()
	if err := r.broker.Subscribe(topic, r.broker.QoS(), r.handleMessage); err != nil {
		return fmt.Errorf("subscribing to directives: %w", err)
	}

	r.mu.Lock()
	r.started = true
	r.mu.Unlock()

	r.logInfo("directive relay started", "topic", topic)
	return nil
}

// Stop unsubscribes from the directive topic.
func (r *Relay) Stop() error {
	r.mu.Lock()
	started := r.started
	r.started = false
	r.mu.Unlock()

	if !started {
		return ErrNotStarted
	}
	if err := r.broker.Unsubscribe(r.broker.Topics().AllDirectives()); err != nil {
		return fmt.Errorf("unsubscribing from directives: %w", err)
	}
	return nil
}

func (r *Relay) baseContext() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// handleMessage is the MessageHandler for directive topics.
func (r *Relay) handleMessage(topic string, payload []byte) error {
	topics := r.broker.Topics()
	id := topics.RequestID(topic)
	if id == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, topic)
	}

	r.logDebug("directive received", "request_id", id, "bytes", len(payload))

	var reply any
	resp, err := r.handler.HandleJSON(r.baseContext(), payload)
	if err != nil {
		r.logWarn("directive rejected", "request_id", id, "error", err)
		reply = ErrorMessage{Error: err.Error()}
	} else {
		reply = resp
	}

	if err := r.publishJSON(topics.Response(id), reply); err != nil {
		return fmt.Errorf("publishing response %s: %w", id, err)
	}
	return nil
}

// Observe implements skill.Observer by publishing an event.
func (r *Relay) Observe(_ context.Context, o skill.Outcome) {
	name := o.Response.Name()
	if name == "" {
		return
	}

	msg := EventMessage{
		Namespace:  o.Namespace,
		Name:       o.Name,
		EndpointID: o.EndpointID,
		DurationMS: o.Duration.Milliseconds(),
		Response:   o.Response,
		Timestamp:  time.Now().UTC(),
	}
	if err := r.publishJSON(r.broker.Topics().Event(name), msg); err != nil {
		r.logWarn("event publish failed", "event", name, "error", err)
	}
}

func (r *Relay) publishJSON(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return r.broker.Publish(topic, data, r.broker.QoS(), false)
}

func (r *Relay) logDebug(msg string, keysAndValues ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, keysAndValues...)
	}
}

func (r *Relay) logInfo(msg string, keysAndValues ...any) {
	if r.logger != nil {
		r.logger.Info(msg, keysAndValues...)
	}
}

func (r *Relay) logWarn(msg string, keysAndValues ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, keysAndValues...)
	}
}
