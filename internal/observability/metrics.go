package observability

import (
	"strconv"
	"sync"
	"time"
)

// RequestStat aggregates request outcomes for one path/method/status key.
type RequestStat struct {
	Count        int64
	TotalLatency time.Duration
}

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requests     map[string]RequestStat
	errorCount   map[string]int64
	authFailures map[string]int64
	authzDenials map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:     make(map[string]RequestStat),
		errorCount:   make(map[string]int64),
		authFailures: make(map[string]int64),
		authzDenials: make(map[string]int64),
	}
}

// RecordRequest counts the request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat := m.requests[key]
	stat.Count++
	stat.TotalLatency += duration
	m.requests[key] = stat
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, kind string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + kind
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAuthFailure counts authentication failures by internal kind.
func (m *Metrics) RecordAuthFailure(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authFailures[kind]++
}

// RecordAuthzDenial counts authorization denials by path.
func (m *Metrics) RecordAuthzDenial(path string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authzDenials[path]++
}

// Requests returns a snapshot of request counters keyed by
// path|method|status.
func (m *Metrics) Requests() map[string]RequestStat {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[string]RequestStat, len(m.requests))
	for k, v := range m.requests {
		snapshot[k] = v
	}
	return snapshot
}

// AuthFailures returns a snapshot of authentication failure counters.
func (m *Metrics) AuthFailures() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[string]int64, len(m.authFailures))
	for k, v := range m.authFailures {
		snapshot[k] = v
	}
	return snapshot
}
