package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDispatchCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordDispatch("t1", "ok", 25*time.Millisecond)
	m.RecordDispatch("t1", "ok", 10*time.Millisecond)
	m.RecordDispatch("t1", "handler_error", time.Millisecond)

	if got := testutil.ToFloat64(m.DispatchTotal.WithLabelValues("t1", "ok")); got != 2 {
		t.Errorf("ok turns = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DispatchTotal.WithLabelValues("t1", "handler_error")); got != 1 {
		t.Errorf("handler_error turns = %v, want 1", got)
	}
}

func TestNilMetricsNoPanic(t *testing.T) {
	var m *Metrics
	m.RecordDispatch("t1", "ok", time.Second)
	m.RecordOutbound("console", "ok")
	m.RecordReset("expired")
	m.SetQueueDepth(3)
}

func TestQueueDepthGauge(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SetQueueDepth(7)
	if got := testutil.ToFloat64(m.QueueDepth); got != 7 {
		t.Errorf("queue depth = %v, want 7", got)
	}
}
