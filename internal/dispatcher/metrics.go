package dispatcher

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dshills/keystorm-inflection/internal/dispatcher/handler"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actions map[string]*ActionMetrics
	panics  uint64
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	StatusCounts  map[handler.ResultStatus]uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastStatus    handler.ResultStatus
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actions: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records a dispatch event.
func (m *Metrics) RecordDispatch(actionName string, duration time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	am := m.actions[actionName]
	if am == nil {
		am = &ActionMetrics{
			Name:         actionName,
			StatusCounts: make(map[handler.ResultStatus]uint64),
		}
		m.actions[actionName] = am
	}

	am.DispatchCount++
	am.StatusCounts[status]++
	am.TotalDuration += duration
	am.LastStatus = status
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.panics
}

// ActionStats returns a copy of the metrics for a specific action, or nil.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actions[actionName]
	if am == nil {
		return nil
	}
	return am.clone()
}

// Snapshot returns copies of all action metrics sorted by name.
func (m *Metrics) Snapshot() []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ActionMetrics, 0, len(m.actions))
	for _, am := range m.actions {
		out = append(out, am.clone())
	}
	slices.SortFunc(out, func(a, b *ActionMetrics) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Count returns how many dispatches of the action ended with status.
func (am *ActionMetrics) Count(status handler.ResultStatus) uint64 {
	return am.StatusCounts[status]
}

// AverageDuration returns the average duration for the action.
func (am *ActionMetrics) AverageDuration() time.Duration {
	if am.DispatchCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.DispatchCount)
}

func (am *ActionMetrics) clone() *ActionMetrics {
	c := *am
	c.StatusCounts = make(map[handler.ResultStatus]uint64, len(am.StatusCounts))
	for k, v := range am.StatusCounts {
		c.StatusCounts[k] = v
	}
	return &c
}
