package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_messages_received_total",
			Help: "Number of messages pulled from the topic",
		},
		[]string{"topic"},
	)
	RecordsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_written_total",
			Help: "Number of records written into committed output units",
		},
		[]string{"topic"},
	)
	ParseFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_parse_failures_total",
			Help: "Number of messages routed to the failure output",
		},
		[]string{"topic", "reason"}, // schema|writer|decode|output
	)
	UnitsTransferred = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_units_transferred_total",
			Help: "Number of committed output units by relationship",
		},
		[]string{"relationship"},
	)
	Acknowledgments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_acknowledgments_total",
			Help: "Broker acknowledgments by mode and result",
		},
		[]string{"mode", "result"}, // mode: single|cumulative; result: ok|error
	)
)

var (
	BatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "records_batch_duration_seconds",
			Help:    "Time spent processing one batch of messages",
			Buckets: prometheus.DefBuckets,
		},
	)
	AckQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "records_ack_queue_depth",
			Help: "Number of asynchronous acknowledgments waiting for a worker",
		},
	)
	KafkaOutstanding = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "records_kafka_outstanding_messages",
			Help: "Number of messages received from the broker but not yet committed",
		},
	)
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

// MustRegister регистрирует коллекторы в глобальном реестре.
// Повторный вызов безопасен: уже зарегистрированные коллекторы пропускаются.
func MustRegister() {
	collectors := []prometheus.Collector{
		MessagesReceived, RecordsWritten, ParseFailures, UnitsTransferred, Acknowledgments,
		BatchDuration, AckQueueDepth, KafkaOutstanding, CacheOps, CacheSize,
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			panic(err)
		}
	}
}
