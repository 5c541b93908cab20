// Package perfmon keeps per-route request metrics in memory.
package perfmon

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouteMetrics is a point-in-time copy of one route's counters.
type RouteMetrics struct {
	Route         string        `json:"route"`
	Count         int64         `json:"count"`
	Errors        int64         `json:"errors"`
	TotalDuration time.Duration `json:"total_duration_ns"`
	MaxDuration   time.Duration `json:"max_duration_ns"`
	AvgDuration   time.Duration `json:"avg_duration_ns"`
}

type Monitor struct {
	mu      sync.Mutex
	metrics map[string]*RouteMetrics
}

func NewMonitor() *Monitor {
	return &Monitor{metrics: make(map[string]*RouteMetrics)}
}

// Record adds one observation. failed counts towards Errors.
func (m *Monitor) Record(route string, d time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rm, ok := m.metrics[route]
	if !ok {
		rm = &RouteMetrics{Route: route}
		m.metrics[route] = rm
	}
	rm.Count++
	rm.TotalDuration += d
	if d > rm.MaxDuration {
		rm.MaxDuration = d
	}
	if failed {
		rm.Errors++
	}
}

// Snapshot returns a copy of all metrics sorted by route.
func (m *Monitor) Snapshot() []RouteMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]RouteMetrics, 0, len(m.metrics))
	for _, rm := range m.metrics {
		c := *rm
		if c.Count > 0 {
			c.AvgDuration = c.TotalDuration / time.Duration(c.Count)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Route < out[j].Route })
	return out
}

func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = make(map[string]*RouteMetrics)
}

// Middleware records every request under "METHOD /route/{pattern}". 5xx
// responses count as errors.
func (m *Monitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Record(r.Method+" "+route, time.Since(start), status >= http.StatusInternalServerError)
	})
}
