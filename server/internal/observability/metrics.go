package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates per-endpoint request metrics.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	// Endpoint-specific metrics
	endpointMetrics map[string]*EndpointMetrics

	// Duration histogram data (simplified for internal use)
	durations    []time.Duration
	maxDurations int
}

// EndpointMetrics represents metrics for a specific endpoint.
type EndpointMetrics struct {
	requestCount  atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000 // Default to keeping last 1000 durations
	}
	return &Metrics{
		endpointMetrics: make(map[string]*EndpointMetrics),
		durations:       make([]time.Duration, 0, maxDurations),
		maxDurations:    maxDurations,
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request.
func (m *Metrics) RecordRequest(endpoint string) {
	m.requestTotal.Add(1)
	m.getEndpointMetrics(endpoint).requestCount.Add(1)
}

// RecordFailure records a failed request.
func (m *Metrics) RecordFailure(endpoint string) {
	m.requestFailed.Add(1)
	m.getEndpointMetrics(endpoint).errorCount.Add(1)
}

// RecordDuration records a request duration.
func (m *Metrics) RecordDuration(endpoint string, duration time.Duration) {
	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		// Remove oldest duration (FIFO)
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()

	m.getEndpointMetrics(endpoint).totalDuration.Add(duration.Milliseconds())
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

// getEndpointMetrics gets or creates metrics for an endpoint.
func (m *Metrics) getEndpointMetrics(endpoint string) *EndpointMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	em, ok := m.endpointMetrics[endpoint]
	if !ok {
		em = &EndpointMetrics{}
		m.endpointMetrics[endpoint] = em
	}
	return em
}

// PercentileDurationMs returns the given percentile of recorded durations
// in milliseconds. p must be in (0, 100].
func (m *Metrics) PercentileDurationMs(p float64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.durations) == 0 || p <= 0 || p > 100 {
		return 0
	}

	sorted := make([]time.Duration, len(m.durations))
	copy(sorted, m.durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted))*p/100) - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx].Milliseconds()
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)

	m.mu.Lock()
	m.endpointMetrics = make(map[string]*EndpointMetrics)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	endpointSnapshots := make(map[string]*EndpointMetricsSnapshot, len(m.endpointMetrics))
	for endpoint, em := range m.endpointMetrics {
		count := em.requestCount.Load()
		var avg int64
		if count > 0 {
			avg = em.totalDuration.Load() / count
		}
		endpointSnapshots[endpoint] = &EndpointMetricsSnapshot{
			RequestCount:    count,
			TotalDuration:   em.totalDuration.Load(),
			ErrorCount:      em.errorCount.Load(),
			AverageDuration: avg,
		}
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		Endpoints:     endpointSnapshots,
		DurationCount: len(m.durations),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64
	RequestFailed int64
	Endpoints     map[string]*EndpointMetricsSnapshot
	DurationCount int
}

// EndpointMetricsSnapshot represents metrics for a specific endpoint.
type EndpointMetricsSnapshot struct {
	RequestCount    int64
	TotalDuration   int64
	ErrorCount      int64
	AverageDuration int64
}
