package hsm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// tracerName identifies this instrumentation library to the tracer provider.
const tracerName = "github.com/sandrogort/state-surf/hsm"

// startDispatchSpan creates a span covering one event dispatch, including
// every host callback it triggers. The caller is responsible for calling
// span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startDispatchSpan(
	ctx context.Context,
	machineID string,
	chart string,
	state State,
	event Event,
) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "hsm.dispatch")
	span.SetAttributes(
		attribute.String("hsm.machine_id", machineID),
		attribute.String("hsm.chart", chart),
		attribute.String("hsm.state.before", string(state)),
		attribute.String("hsm.event", string(event)),
	)

	return ctx, span
}

// noopSpan returns a span that records nothing, used when tracing is
// disabled on the machine.
func noopSpan() trace.Span {
	_, span := noop.NewTracerProvider().Tracer(tracerName).Start(context.Background(), "")

	return span
}
