package mailqueue

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type queueMetrics struct {
	queued        metric.Int64Counter
	sent          metric.Int64Counter
	failed        metric.Int64Counter
	cleared       metric.Int64Counter
	depth         metric.Int64Gauge
	drainDuration metric.Float64Histogram
}

func newQueueMetrics(provider metric.MeterProvider) (queueMetrics, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter("mailout.mailqueue")

	var (
		metrics queueMetrics
		err     error
	)

	metrics.queued, err = meter.Int64Counter(
		"mailqueue.messages.queued",
		metric.WithDescription("Number of messages accepted into the queue"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.messages.queued counter: %w", err)
	}

	metrics.sent, err = meter.Int64Counter(
		"mailqueue.messages.sent",
		metric.WithDescription("Number of messages delivered during drains"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.messages.sent counter: %w", err)
	}

	metrics.failed, err = meter.Int64Counter(
		"mailqueue.messages.failed_permanent",
		metric.WithDescription("Number of messages evicted after exhausting their attempt budget"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.messages.failed_permanent counter: %w", err)
	}

	metrics.cleared, err = meter.Int64Counter(
		"mailqueue.messages.cleared",
		metric.WithDescription("Number of messages dropped by explicit clear calls"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.messages.cleared counter: %w", err)
	}

	metrics.depth, err = meter.Int64Gauge(
		"mailqueue.depth",
		metric.WithDescription("Number of messages currently queued"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.depth gauge: %w", err)
	}

	metrics.drainDuration, err = meter.Float64Histogram(
		"mailqueue.drain.duration",
		metric.WithDescription("Time taken per drain pass"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return queueMetrics{}, fmt.Errorf("create mailqueue.drain.duration histogram: %w", err)
	}

	return metrics, nil
}
