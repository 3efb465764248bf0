package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
)

func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "cortexbridge-test",
		},
		QoS:         1,
		TopicPrefix: "test/cortex",
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
}

func (l *recordingLogger) Error(msg string, _ ...any) { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.record(msg) }

func (l *recordingLogger) has(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func TestDisconnectedClient_RejectsOperations(t *testing.T) {
	c := newClient(testConfig())

	noop := func(string, []byte) error { return nil }

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"publish", func() error { return c.Publish("t", []byte("x"), 1, false) }, ErrNotConnected},
		{"publish json", func() error { return c.PublishJSON("t", map[string]string{"a": "b"}) }, ErrNotConnected},
		{"publish empty topic", func() error { return c.Publish("", nil, 1, false) }, ErrInvalidTopic},
		{"publish bad qos", func() error { return c.Publish("t", nil, 3, false) }, ErrInvalidQoS},
		{"publish oversize", func() error { return c.Publish("t", make([]byte, maxPayloadSize+1), 0, false) }, ErrPublishFailed},
		{"subscribe", func() error { return c.Subscribe("t", 1, noop) }, ErrNotConnected},
		{"subscribe nil handler", func() error { return c.Subscribe("t", 1, nil) }, ErrSubscribeFailed},
		{"subscribe bad qos", func() error { return c.Subscribe("t", 5, noop) }, ErrInvalidQoS},
		{"unsubscribe", func() error { return c.Unsubscribe("t") }, ErrNotConnected},
		{"unsubscribe empty topic", func() error { return c.Unsubscribe("") }, ErrInvalidTopic},
		{"health check", func() error { return c.HealthCheck(context.Background()) }, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if c.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", c.SubscriptionCount())
	}
}

func TestClient_CloseWithoutConnect(t *testing.T) {
	c := newClient(testConfig())
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestClient_HealthCheckCancelled(t *testing.T) {
	c := newClient(testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}

func TestClient_TopicsUsePrefix(t *testing.T) {
	c := newClient(testConfig())
	if got := c.Topics().Status(); got != "test/cortex/status" {
		t.Errorf("Topics().Status() = %q", got)
	}
	if c.QoS() != 1 {
		t.Errorf("QoS() = %d, want 1", c.QoS())
	}
}

func TestClient_DispatchRecoversPanics(t *testing.T) {
	c := newClient(testConfig())
	logger := &recordingLogger{}
	c.SetLogger(logger)

	c.dispatch(func(string, []byte) error { panic("boom") }, "t", nil)
	if !logger.has("MQTT handler panic recovered") {
		t.Error("panic was not logged")
	}

	c.dispatch(func(string, []byte) error { return errors.New("bad payload") }, "t", nil)
	if !logger.has("MQTT handler returned error") {
		t.Error("handler error was not logged")
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = "bridge"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)
	if len(opts.Servers) != 1 || opts.Servers[0].String() != "tcp://127.0.0.1:1883" {
		t.Errorf("Servers = %v, want tcp://127.0.0.1:1883", opts.Servers)
	}
	if opts.ClientID != "cortexbridge-test" {
		t.Errorf("ClientID = %q", opts.ClientID)
	}
	if opts.Username != "bridge" || opts.Password != "secret" {
		t.Errorf("credentials = %q/%q", opts.Username, opts.Password)
	}
	if !opts.AutoReconnect || !opts.CleanSession {
		t.Error("expected auto-reconnect and clean session")
	}
	if opts.Order {
		t.Error("expected unordered message delivery")
	}

	cfg.Broker.TLS = true
	opts = buildClientOptions(cfg)
	if !strings.HasPrefix(opts.Servers[0].String(), "ssl://") {
		t.Errorf("TLS server = %v, want ssl scheme", opts.Servers[0])
	}
	if opts.TLSConfig == nil {
		t.Error("TLSConfig not set")
	}
}

func TestConfigureLWT(t *testing.T) {
	opts := buildClientOptions(testConfig())
	configureLWT(opts, NewTopics("test/cortex"), "cortexbridge-test")

	if !opts.WillEnabled || !opts.WillRetained {
		t.Fatal("LWT should be enabled and retained")
	}
	if opts.WillTopic != "test/cortex/status" {
		t.Errorf("WillTopic = %q", opts.WillTopic)
	}

	var msg StatusMessage
	if err := json.Unmarshal(opts.WillPayload, &msg); err != nil {
		t.Fatalf("WillPayload is not JSON: %v", err)
	}
	if msg.Status != StatusOffline || msg.ClientID != "cortexbridge-test" {
		t.Errorf("WillPayload = %+v", msg)
	}
}
