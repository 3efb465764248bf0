package api

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/nerrad567/cortex-voice-bridge/internal/skill"
)

// SystemMetrics represents the complete system metrics response.
type SystemMetrics struct {
	Timestamp     string           `json:"timestamp"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Runtime       RuntimeMetrics   `json:"runtime"`
	Feed          FeedMetrics      `json:"feed"`
	Directives    DirectiveMetrics `json:"directives"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// FeedMetrics contains live feed statistics.
type FeedMetrics struct {
	Subscribers int `json:"subscribers"`
}

// DirectiveMetrics counts handled directives.
type DirectiveMetrics struct {
	Handled           uint64            `json:"handled"`
	Rejected          uint64            `json:"rejected"`
	ControllerErrors  uint64            `json:"controller_errors"`
	ByDirective       map[string]uint64 `json:"by_directive"`
	ByResponse        map[string]uint64 `json:"by_response"`
	AverageDurationMS float64           `json:"average_duration_ms"`
}

// directiveMetrics accumulates counters from outcomes.
type directiveMetrics struct {
	mu            sync.Mutex
	handled       uint64
	rejected      uint64
	controllerErr uint64
	byDirective   map[string]uint64
	byResponse    map[string]uint64
	totalDuration time.Duration
}

func newDirectiveMetrics() *directiveMetrics {
	return &directiveMetrics{
		byDirective: make(map[string]uint64),
		byResponse:  make(map[string]uint64),
	}
}

func (m *directiveMetrics) record(o skill.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handled++
	m.byDirective[o.Namespace+"."+o.Name]++
	if name := o.Response.Name(); name != "" {
		m.byResponse[name]++
	}
	if o.Err != nil {
		m.controllerErr++
	}
	m.totalDuration += o.Duration
}

func (m *directiveMetrics) recordRejected() {
	m.mu.Lock()
	m.rejected++
	m.mu.Unlock()
}

// snapshot copies the counters.
func (m *directiveMetrics) snapshot() DirectiveMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := DirectiveMetrics{
		Handled:          m.handled,
		Rejected:         m.rejected,
		ControllerErrors: m.controllerErr,
		ByDirective:      make(map[string]uint64, len(m.byDirective)),
		ByResponse:       make(map[string]uint64, len(m.byResponse)),
	}
	for k, v := range m.byDirective {
		out.ByDirective[k] = v
	}
	for k, v := range m.byResponse {
		out.ByResponse[k] = v
	}
	if m.handled > 0 {
		out.AverageDurationMS = float64(m.totalDuration.Milliseconds()) / float64(m.handled)
	}
	return out
}

// handleMetrics returns runtime and directive metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	writeJSON(w, http.StatusOK, SystemMetrics{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(memStats.Alloc) / 1024 / 1024,
			MemoryTotalMB: float64(memStats.TotalAlloc) / 1024 / 1024,
			NumGC:         memStats.NumGC,
		},
		Feed: FeedMetrics{
			Subscribers: s.feed.Subscribers(),
		},
		Directives: s.metrics.snapshot(),
	})
}
