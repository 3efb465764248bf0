package cortex

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/infrastructure/config"
)

// recordingLogger captures debug messages.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}

// newTestClient points a Client at srv using the given credentials.
func newTestClient(t *testing.T, srv *httptest.Server, user, pass string) *Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parsing server URL: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("splitting host: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing port: %v", err)
	}
	return NewClient(config.ControllerConfig{
		Host:           host,
		Port:           port,
		Scheme:         "http",
		Username:       user,
		Password:       pass,
		TimeoutSeconds: 5,
	})
}

func TestClient_SendBuildsRequest(t *testing.T) {
	var (
		gotMethod, gotPath, gotQuery string
		gotUser, gotPass             string
		gotAuth                      bool
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUser, gotPass, gotAuth = r.BasicAuth()
		_, _ = w.Write([]byte(`{"CortexAPI":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "alexa", "s3cret")
	body, err := c.Send(context.Background(), TurnOn("1001"))
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if body != `{"CortexAPI":{}}` {
		t.Errorf("body = %q", body)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/api/v1/Objects.json/1001" {
		t.Errorf("path = %s, want /api/v1/Objects.json/1001", gotPath)
	}
	if gotQuery != "5=1" {
		t.Errorf("query = %s, want 5=1", gotQuery)
	}
	if !gotAuth || gotUser != "alexa" || gotPass != "s3cret" {
		t.Errorf("basic auth = %v %q/%q", gotAuth, gotUser, gotPass)
	}
}

func TestClient_SendWithoutCredentials(t *testing.T) {
	var gotAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, _, gotAuth = r.BasicAuth()
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "", "")
	if _, err := c.Send(context.Background(), ListObjects()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAuth {
		t.Error("basic auth sent without credentials")
	}
}

func TestClient_SendUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, "u", "p")
	_, err := c.Send(context.Background(), ListObjects())

	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("error = %v, want ErrUnexpectedStatus", err)
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
}

func TestClient_SendConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestClient(t, srv, "", "")
	srv.Close()

	_, err := c.Send(context.Background(), ListObjects())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
	if errors.Is(err, ErrUnexpectedStatus) {
		t.Error("connection failure reported as status error")
	}
}

func TestClient_SendHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv, "", "")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Send(ctx, ListObjects())
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error = %v, want ErrTransport", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded in chain", err)
	}
}

func TestClient_LogsRequestAndReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	logger := &recordingLogger{}
	c := newTestClient(t, srv, "", "")
	c.SetLogger(logger)

	if _, err := c.Send(context.Background(), ListObjects()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.messages) != 2 {
		t.Fatalf("logged %v, want request and reply", logger.messages)
	}
	if logger.messages[0] != "controller request" || logger.messages[1] != "controller reply" {
		t.Errorf("messages = %v", logger.messages)
	}
}

func TestNewClient_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ControllerConfig
		want string
	}{
		{"default scheme", config.ControllerConfig{Host: "192.168.1.20", Port: 80}, "http://192.168.1.20:80"},
		{"https", config.ControllerConfig{Host: "cortex.local", Port: 8443, Scheme: "https"}, "https://cortex.local:8443"},
		{"ipv6", config.ControllerConfig{Host: "::1", Port: 80}, "http://[::1]:80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewClient(tt.cfg).BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := NewClient(config.ControllerConfig{Host: "h", Port: 1}, WithHTTPClient(hc), WithLogger(&recordingLogger{}))
	if c.httpClient != hc {
		t.Error("WithHTTPClient not applied")
	}
	if c.logger == nil {
		t.Error("WithLogger not applied")
	}
}
