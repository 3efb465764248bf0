package skill

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/nerrad567/cortex-voice-bridge/internal/alexa"
	"github.com/nerrad567/cortex-voice-bridge/internal/bridges/cortex"
)

// mockController records commands and answers from canned replies keyed by
// command path. Paths without a reply answer "{}".
type mockController struct {
	mu       sync.Mutex
	sent     []cortex.Command
	replies  map[string]string
	failures map[string]error
}

func newMockController() *mockController {
	return &mockController{
		replies:  make(map[string]string),
		failures: make(map[string]error),
	}
}

func (m *mockController) Send(_ context.Context, cmd cortex.Command) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, cmd)
	if err, ok := m.failures[cmd.Path]; ok {
		return "", err
	}
	if body, ok := m.replies[cmd.Path]; ok {
		return body, nil
	}
	return "{}", nil
}

func (m *mockController) reply(path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[path] = body
}

func (m *mockController) fail(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = err
}

func (m *mockController) commands() []cortex.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]cortex.Command(nil), m.sent...)
}

// rejectAll fails every token.
type rejectAll struct{}

func (rejectAll) Validate(context.Context, string) error { return errors.New("rejected") }

// offline reports every endpoint unreachable.
type offline struct{}

func (offline) Reachable(context.Context, string) bool { return false }

// recordingObserver keeps every outcome.
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recordingObserver) Observe(_ context.Context, o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

var errConnRefused = errors.New("connection refused")

func newTestService(t *testing.T, ctrl Controller, opts ...func(*Options)) *Service {
	o := Options{Controller: ctrl}
	for _, fn := range opts {
		fn(&o)
	}
	t.Helper()
	s, err := New(o)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

// errorName returns the name of a normalized error response, or "".
func errorName(resp *alexa.Response) string {
	if resp == nil || !resp.IsError() {
		return ""
	}
	return resp.Header.Name
}
