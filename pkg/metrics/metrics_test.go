package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/wb_records/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	t.Helper()
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestPipelineCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	beforeReceived := testutil.ToFloat64(metrics.MessagesReceived.WithLabelValues("events"))
	beforeWritten := testutil.ToFloat64(metrics.RecordsWritten.WithLabelValues("events"))
	beforeFailed := testutil.ToFloat64(metrics.ParseFailures.WithLabelValues("events", "decode"))

	metrics.MessagesReceived.WithLabelValues("events").Inc()
	metrics.RecordsWritten.WithLabelValues("events").Add(3)
	metrics.ParseFailures.WithLabelValues("events", "decode").Inc()

	if got := testutil.ToFloat64(metrics.MessagesReceived.WithLabelValues("events")); got != beforeReceived+1 {
		t.Fatalf("MessagesReceived: got=%v want=%v", got, beforeReceived+1)
	}
	if got := testutil.ToFloat64(metrics.RecordsWritten.WithLabelValues("events")); got != beforeWritten+3 {
		t.Fatalf("RecordsWritten: got=%v want=%v", got, beforeWritten+3)
	}
	if got := testutil.ToFloat64(metrics.ParseFailures.WithLabelValues("events", "decode")); got != beforeFailed+1 {
		t.Fatalf("ParseFailures: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestAcknowledgments_ByModeAndResult(t *testing.T) {
	metrics.MustRegister()

	okBefore := testutil.ToFloat64(metrics.Acknowledgments.WithLabelValues("cumulative", "ok"))
	errBefore := testutil.ToFloat64(metrics.Acknowledgments.WithLabelValues("cumulative", "error"))

	metrics.Acknowledgments.WithLabelValues("cumulative", "ok").Inc()

	if got := testutil.ToFloat64(metrics.Acknowledgments.WithLabelValues("cumulative", "ok")); got != okBefore+1 {
		t.Fatalf("Acknowledgments(ok): got=%v want=%v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(metrics.Acknowledgments.WithLabelValues("cumulative", "error")); got != errBefore {
		t.Fatalf("Acknowledgments(error): got=%v want=%v", got, errBefore)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CacheSize)

	metrics.CacheSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CacheSize.Set(cur) // вернуть как было
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur {
		t.Fatalf("CacheSize restore: got=%v want=%v", got, cur)
	}
}
