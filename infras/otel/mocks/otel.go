package mocks

import (
	"context"
	"sync"

	"taghazout/infras/otel"
)

// Otel is a no-op tracer that remembers the span names it was asked to open.
type Otel struct {
	mu    sync.Mutex
	spans []string
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, NewScope()
}

// Spans returns the span names opened so far, in order.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

func NewOtel() *Otel {
	return &Otel{}
}

type scope struct{}

func (scope) End()                           {}
func (scope) TraceError(_ error)             {}
func (scope) TraceIfError(_ error)           {}
func (scope) AddEvent(_ string)              {}
func (scope) SetAttribute(_ string, _ any)   {}
func (scope) SetAttributes(_ map[string]any) {}

func NewScope() otel.Scope {
	return scope{}
}
