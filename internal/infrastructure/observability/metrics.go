package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics.
type Metrics struct {
	meter metric.Meter

	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPRequestsActive  metric.Int64UpDownCounter

	// Interaction processing metrics
	InteractionsTotal        metric.Int64Counter
	InteractionDuration      metric.Float64Histogram
	InteractionsIgnoredTotal metric.Int64Counter

	// System event queue metrics
	EventsEnqueuedTotal metric.Int64Counter
	EventsDroppedTotal  metric.Int64Counter

	// UI update metrics
	UIUpdatesTotal metric.Int64Counter

	// Repository metrics
	RepositoryOperationsTotal   metric.Int64Counter
	RepositoryOperationDuration metric.Float64Histogram
}

// NewMetrics creates and registers all application metrics.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}

	var err error

	// HTTP metrics
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http.server.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_total: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_request_duration: %w", err)
	}

	m.HTTPRequestsActive, err = meter.Int64UpDownCounter(
		"http.server.requests.active",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{requests}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http_requests_active: %w", err)
	}

	// Interaction processing metrics
	m.InteractionsTotal, err = meter.Int64Counter(
		"interactions.processed.total",
		metric.WithDescription("Total number of Slack interactions processed"),
		metric.WithUnit("{interactions}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interactions_processed_total: %w", err)
	}

	m.InteractionDuration, err = meter.Float64Histogram(
		"interactions.processing.duration",
		metric.WithDescription("Interaction processing duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interaction_processing_duration: %w", err)
	}

	m.InteractionsIgnoredTotal, err = meter.Int64Counter(
		"interactions.ignored.total",
		metric.WithDescription("Total number of interactions ignored by the action prefix filter"),
		metric.WithUnit("{interactions}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating interactions_ignored_total: %w", err)
	}

	// System event queue metrics
	m.EventsEnqueuedTotal, err = meter.Int64Counter(
		"events.enqueued.total",
		metric.WithDescription("Total number of system events enqueued"),
		metric.WithUnit("{events}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events_enqueued_total: %w", err)
	}

	m.EventsDroppedTotal, err = meter.Int64Counter(
		"events.dropped.total",
		metric.WithDescription("Total number of system events dropped by slow subscribers"),
		metric.WithUnit("{events}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events_dropped_total: %w", err)
	}

	// UI update metrics
	m.UIUpdatesTotal, err = meter.Int64Counter(
		"ui.updates.total",
		metric.WithDescription("Total number of message UI update attempts"),
		metric.WithUnit("{updates}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ui_updates_total: %w", err)
	}

	// Repository metrics
	m.RepositoryOperationsTotal, err = meter.Int64Counter(
		"repository.operations.total",
		metric.WithDescription("Total number of repository operations"),
		metric.WithUnit("{operations}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating repository_operations_total: %w", err)
	}

	m.RepositoryOperationDuration, err = meter.Float64Histogram(
		"repository.operation.duration",
		metric.WithDescription("Repository operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating repository_operation_duration: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records HTTP request metrics.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordInteraction records interaction processing metrics.
func (m *Metrics) RecordInteraction(ctx context.Context, interactionType, outcome string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("interaction.type", interactionType),
		attribute.String("outcome", outcome),
	}

	m.InteractionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.InteractionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordInteractionIgnored records an interaction skipped by the prefix filter.
func (m *Metrics) RecordInteractionIgnored(ctx context.Context, interactionType string) {
	m.InteractionsIgnoredTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("interaction.type", interactionType),
	))
}

// RecordEventEnqueued records a system event enqueue.
func (m *Metrics) RecordEventEnqueued(ctx context.Context, sessionKey string) {
	m.EventsEnqueuedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("session.key", sessionKey),
	))
}

// RecordEventsDropped records events dropped by a slow subscriber.
func (m *Metrics) RecordEventsDropped(ctx context.Context, subscriber string, count int64) {
	if count <= 0 {
		return
	}
	m.EventsDroppedTotal.Add(ctx, count, metric.WithAttributes(
		attribute.String("subscriber", subscriber),
	))
}

// RecordUIUpdate records a message UI update attempt by outcome.
func (m *Metrics) RecordUIUpdate(ctx context.Context, outcome string) {
	m.UIUpdatesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordRepositoryOperation records repository operation metrics.
func (m *Metrics) RecordRepositoryOperation(ctx context.Context, operation, entity string, duration time.Duration, success bool) {
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("entity", entity),
		attribute.Bool("success", success),
	}

	m.RepositoryOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.RepositoryOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
