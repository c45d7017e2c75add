// Package otel records checktype invocation outcomes into OpenTelemetry.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ygrebnov/checktype"
)

// Observer records contract checks into OpenTelemetry metrics and spans.
type Observer struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	violations  metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewObserver creates an observer bound to the provided meter and tracer.
// A nil tracer disables spans.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		"checktype.invocations",
		metric.WithDescription("Number of checked invocations"),
	)
	if err != nil {
		return nil, err
	}
	violations, err := meter.Int64Counter(
		"checktype.violations",
		metric.WithDescription("Number of contract violations"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"checktype.duration",
		metric.WithDescription("Checked invocation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Observer{
		tracer:      tracer,
		invocations: invocations,
		violations:  violations,
		duration:    duration,
	}, nil
}

// ObserveInvoke records one invocation.
func (o *Observer) ObserveInvoke(observation checktype.InvokeObservation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("callable", observation.Callable),
		attribute.String("outcome", string(observation.Outcome)),
	}

	ctx := context.Background()
	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.duration.Record(ctx, observation.Duration.Seconds(), options)

	if observation.Outcome.Violation() {
		o.violations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("callable", observation.Callable),
			attribute.String("stage", observation.Stage.String()),
		))
	}

	if o.tracer == nil {
		return
	}
	spanAttrs := append(attrs[:len(attrs):len(attrs)],
		attribute.String("call_id", observation.CallID),
		attribute.String("stage", observation.Stage.String()),
	)
	if observation.Param != "" {
		spanAttrs = append(spanAttrs, attribute.String("param", observation.Param))
	}
	if observation.Declared != "" {
		spanAttrs = append(spanAttrs,
			attribute.String("declared", observation.Declared),
			attribute.String("observed", observation.Observed),
		)
	}
	end := time.Now()
	_, span := o.tracer.Start(ctx, "checktype.invoke",
		trace.WithTimestamp(end.Add(-observation.Duration)),
		trace.WithAttributes(spanAttrs...),
	)
	if observation.Outcome != checktype.OutcomeOK {
		span.SetStatus(codes.Error, string(observation.Outcome))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

var _ checktype.Observer = (*Observer)(nil)
