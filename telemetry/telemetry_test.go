package telemetry

import (
	"context"
	"testing"
)

func TestInitTracerDisabledWithoutCollector(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), "upwork-analytics", "")
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}

	_, span := GetTracer("test").Start(context.Background(), "noop")
	defer span.End()
	if span.SpanContext().IsSampled() {
		t.Fatal("span sampled without a configured provider")
	}
}
