package reconciler

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"docsync/internal/document"
	"docsync/pkg/logging"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Summary(t *testing.T) {
	m := NewMetrics()

	m.RecordAttempt(document.KindUpdate, "doc1")
	m.RecordSuccess(document.KindUpdate, "doc1")
	m.RecordAttempt(document.KindCreate, "doc2")
	m.RecordFailure(document.KindCreate, "doc2", errors.New("boom"))
	m.RecordSelfHeal("doc1")
	m.RecordDuplicateContent("doc1")

	s := m.Summary()
	assert.Equal(t, int64(2), s.TotalAttempts)
	assert.Equal(t, int64(1), s.TotalSuccesses)
	assert.Equal(t, int64(1), s.TotalFailures)
	assert.Equal(t, int64(1), s.SelfHeals)
	assert.Equal(t, int64(1), s.DuplicateContent)
	assert.InDelta(t, 0.5, s.FailureRate, 0.0001)

	if assert.Len(t, s.PerKind, 2) {
		assert.Equal(t, document.KindCreate, s.PerKind[0].Kind)
		assert.Equal(t, int64(1), s.PerKind[0].Failures)
		assert.False(t, s.PerKind[0].LastFailureAt.IsZero())
		assert.Equal(t, document.KindUpdate, s.PerKind[1].Kind)
		assert.Equal(t, int64(1), s.PerKind[1].Successes)
	}
}

func TestMetrics_AbsorbedEventsLogDocumentName(t *testing.T) {
	var buf bytes.Buffer
	logging.InitForCLI(logging.LevelDebug, &buf)
	defer logging.InitForCLI(logging.LevelInfo, io.Discard)

	m := NewMetrics()
	m.RecordSelfHeal("healed-doc")
	m.RecordDuplicateContent("dup-doc")

	out := buf.String()
	assert.Contains(t, out, "healed-doc")
	assert.Contains(t, out, "dup-doc")
}

func TestMetrics_EmptySummary(t *testing.T) {
	s := NewMetrics().Summary()
	assert.Zero(t, s.TotalAttempts)
	assert.Zero(t, s.FailureRate)
	assert.Empty(t, s.PerKind)
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordAttempt(document.KindDelete, "doc")
			m.RecordSuccess(document.KindDelete, "doc")
			_ = m.Summary()
		}()
	}
	wg.Wait()

	s := m.Summary()
	assert.Equal(t, int64(50), s.TotalAttempts)
	assert.Equal(t, int64(50), s.TotalSuccesses)
}
