package tracing

import (
	"context"
	"net/http"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestInjectAndExtract(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	req, err := http.NewRequest(http.MethodPost, "http://tasks.local/tasks", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	InjectToHTTPRequest(ctx, req)

	if got := req.Header.Get("traceparent"); got != "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01" {
		t.Errorf("traceparent = %q", got)
	}

	extracted := trace.SpanContextFromContext(ExtractFromHTTPRequest(context.Background(), req))
	if extracted.TraceID() != traceID || !extracted.IsRemote() {
		t.Errorf("extracted span context = %+v", extracted)
	}
}
