package otel_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	oteltrace "go.opentelemetry.io/otel/trace"

	"taghazout/config"
	"taghazout/infras/otel"
)

func TestNew_DisabledStillOpensSpans(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "taghazout-test"

	tracer := otel.New(cfg)
	t.Cleanup(func() { otel.Shutdown(context.Background(), tracer) })

	ctx, scope := tracer.NewScope(context.Background(), "service", "service.Test")
	defer scope.End()

	assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid())

	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{"price": int64(1200), "rating": 4.5, "tags": []string{"surf"}, "other": struct{}{}})
		scope.AddEvent("quoted")
		scope.TraceIfError(nil)
		scope.TraceError(errors.New("boom"))
	})
}
