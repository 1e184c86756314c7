package reconciler

import (
	"sort"
	"sync"
	"time"

	"docsync/internal/document"
	"docsync/pkg/logging"
)

// Metrics tracks reconciliation outcomes per lifecycle kind.
//
// A Metrics instance belongs to one Reconciler. The Lambda handler builds a
// Reconciler per invocation, so counters never leak across invocations there;
// the CLI reports them at the end of a run.
type Metrics struct {
	mu sync.RWMutex

	kinds map[document.LifecycleKind]*kindMetrics

	selfHeals        int64
	duplicateContent int64
}

// kindMetrics holds counters for one lifecycle kind.
type kindMetrics struct {
	Attempts      int64
	Successes     int64
	Failures      int64
	LastAttemptAt time.Time
	LastFailureAt time.Time
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		kinds: make(map[document.LifecycleKind]*kindMetrics),
	}
}

// getOrCreate returns existing metrics for a kind or creates new ones.
// Callers must hold the write lock.
func (m *Metrics) getOrCreate(kind document.LifecycleKind) *kindMetrics {
	if km, exists := m.kinds[kind]; exists {
		return km
	}
	km := &kindMetrics{}
	m.kinds[kind] = km
	return km
}

// RecordAttempt records the start of a reconciliation.
func (m *Metrics) RecordAttempt(kind document.LifecycleKind, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	km := m.getOrCreate(kind)
	km.Attempts++
	km.LastAttemptAt = time.Now()

	logging.Debug("ReconcilerMetrics", "%s attempt for %s", kind, name)
}

// RecordSuccess records a successful reconciliation.
func (m *Metrics) RecordSuccess(kind document.LifecycleKind, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getOrCreate(kind).Successes++

	logging.Debug("ReconcilerMetrics", "%s success for %s", kind, name)
}

// RecordFailure records a failed reconciliation.
func (m *Metrics) RecordFailure(kind document.LifecycleKind, name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	km := m.getOrCreate(kind)
	km.Failures++
	km.LastFailureAt = time.Now()

	logging.Debug("ReconcilerMetrics", "%s failure for %s: %v (failures: %d)", kind, name, err, km.Failures)
}

// RecordSelfHeal records that a vanished document was recreated during an update.
func (m *Metrics) RecordSelfHeal(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selfHeals++

	logging.Debug("ReconcilerMetrics", "Self-heal recreated %s (self-heals: %d)", name, m.selfHeals)
}

// RecordDuplicateContent records an update that was absorbed because the
// content already existed as a version.
func (m *Metrics) RecordDuplicateContent(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duplicateContent++

	logging.Debug("ReconcilerMetrics", "Duplicate content absorbed for %s (duplicates: %d)", name, m.duplicateContent)
}

// MetricsSummary is a read-only snapshot of Metrics.
type MetricsSummary struct {
	TotalAttempts    int64            `json:"total_attempts" yaml:"totalAttempts"`
	TotalSuccesses   int64            `json:"total_successes" yaml:"totalSuccesses"`
	TotalFailures    int64            `json:"total_failures" yaml:"totalFailures"`
	SelfHeals        int64            `json:"self_heals" yaml:"selfHeals"`
	DuplicateContent int64            `json:"duplicate_content" yaml:"duplicateContent"`
	FailureRate      float64          `json:"failure_rate" yaml:"failureRate"`
	PerKind          []KindMetricView `json:"per_kind" yaml:"perKind"`
}

// KindMetricView is a read-only view of the counters of one lifecycle kind.
type KindMetricView struct {
	Kind          document.LifecycleKind `json:"kind" yaml:"kind"`
	Attempts      int64                  `json:"attempts" yaml:"attempts"`
	Successes     int64                  `json:"successes" yaml:"successes"`
	Failures      int64                  `json:"failures" yaml:"failures"`
	LastAttemptAt time.Time              `json:"last_attempt_at,omitempty" yaml:"lastAttemptAt,omitempty"`
	LastFailureAt time.Time              `json:"last_failure_at,omitempty" yaml:"lastFailureAt,omitempty"`
}

// Summary returns a snapshot of all counters. PerKind is sorted by kind.
func (m *Metrics) Summary() MetricsSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := MetricsSummary{
		SelfHeals:        m.selfHeals,
		DuplicateContent: m.duplicateContent,
		PerKind:          make([]KindMetricView, 0, len(m.kinds)),
	}

	for kind, km := range m.kinds {
		summary.TotalAttempts += km.Attempts
		summary.TotalSuccesses += km.Successes
		summary.TotalFailures += km.Failures
		summary.PerKind = append(summary.PerKind, KindMetricView{
			Kind:          kind,
			Attempts:      km.Attempts,
			Successes:     km.Successes,
			Failures:      km.Failures,
			LastAttemptAt: km.LastAttemptAt,
			LastFailureAt: km.LastFailureAt,
		})
	}
	sort.Slice(summary.PerKind, func(i, j int) bool {
		return summary.PerKind[i].Kind < summary.PerKind[j].Kind
	})

	if summary.TotalAttempts > 0 {
		summary.FailureRate = float64(summary.TotalFailures) / float64(summary.TotalAttempts)
	}
	return summary
}
