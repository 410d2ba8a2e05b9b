package schedule

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks pipeline execution for Prometheus scraping.
type Metrics struct {
	registry      prometheus.Registerer
	batchesTotal  *prometheus.CounterVec
	topicsTotal   *prometheus.CounterVec
	batchDuration prometheus.Histogram
	queueRejected prometheus.Counter
}

// InitMetrics registers the pipeline metrics on reg, falling back to the
// default registerer when reg is nil.
func InitMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		registry: reg,
		batchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "batches_total",
				Help:      "Total number of executed batches",
			},
			[]string{"status"},
		),
		topicsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "topics_total",
				Help:      "Total number of processed topics",
			},
			[]string{"status"},
		),
		batchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "batch_duration_seconds",
				Help:      "Duration of batch executions",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
		),
		queueRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fires_rejected_total",
				Help:      "Trigger fires rejected because a batch was in flight",
			},
		),
	}

	reg.MustRegister(
		m.batchesTotal,
		m.topicsTotal,
		m.batchDuration,
		m.queueRejected,
	)

	return m
}

// RecordBatch records one finished batch and its per-topic outcomes.
func (m *Metrics) RecordBatch(res BatchResult, duration time.Duration) {
	status := "success"
	if res.FailedCount > 0 {
		status = "partial"
	}
	if res.SuccessCount == 0 && res.FailedCount > 0 {
		status = "failed"
	}
	m.batchesTotal.WithLabelValues(status).Inc()
	m.topicsTotal.WithLabelValues("success").Add(float64(res.SuccessCount))
	m.topicsTotal.WithLabelValues("failed").Add(float64(res.FailedCount))
	m.batchDuration.Observe(duration.Seconds())
}

// RecordRejectedFire counts a trigger fire dropped due to a running batch.
func (m *Metrics) RecordRejectedFire() {
	m.queueRejected.Inc()
}
