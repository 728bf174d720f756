package repository

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"taghazout/infras/otel"
	"taghazout/shared/constant"
)

// MemoryStore keeps records in a slice guarded by a RWMutex. It serves the
// embedded seed catalog and stands in for Postgres in tests. An optional delay
// emulates network latency and honours context cancellation.
type MemoryStore[T any] struct {
	mu            sync.RWMutex
	items         []T
	fields        map[string][]int
	entity        string
	primaryColumn string
	delay         time.Duration
	otel          otel.Otel
}

func NewMemoryStore[T any](entity, primaryColumn string, seed []T, delay time.Duration, otl otel.Otel) *MemoryStore[T] {
	var zero T

	fields := make(map[string][]int)
	fieldIndexes(reflect.TypeOf(zero), nil, fields)

	return &MemoryStore[T]{
		items:         slices.Clone(seed),
		fields:        fields,
		entity:        entity,
		primaryColumn: primaryColumn,
		delay:         delay,
		otel:          otl,
	}
}

func (m *MemoryStore[T]) wait(ctx context.Context, op string) (context.Context, otel.Scope, error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, m.entity, op))

	if m.delay <= 0 {
		return ctx, scope, ctx.Err()
	}

	timer := time.NewTimer(m.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		scope.TraceError(ctx.Err())

		return ctx, scope, fmt.Errorf("%s.%s cancelled: %w", m.entity, op, ctx.Err())
	case <-timer.C:
		return ctx, scope, nil
	}
}

func (m *MemoryStore[T]) Insert(ctx context.Context, model T) error {
	return m.InsertBulk(ctx, []T{model})
}

func (m *MemoryStore[T]) InsertBulk(ctx context.Context, models []T) error {
	_, scope, err := m.wait(ctx, "InsertBulk")
	defer scope.End()

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = append(m.items, models...)

	return nil
}

func (m *MemoryStore[T]) FindAll(ctx context.Context) ([]T, error) {
	_, scope, err := m.wait(ctx, "FindAll")
	defer scope.End()

	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, len(m.items))
	copy(out, m.items)

	return out, nil
}

func (m *MemoryStore[T]) FindBy(ctx context.Context, column string, value any) (T, bool, error) {
	var zero T

	_, scope, err := m.wait(ctx, "FindBy")
	defer scope.End()

	if err != nil {
		return zero, false, err
	}

	index, ok := m.fields[column]
	if !ok {
		return zero, false, fmt.Errorf("unknown column %q (%s)", column, m.entity)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, item := range m.items {
		if equal(reflect.ValueOf(item).FieldByIndex(index), value) {
			return item, true, nil
		}
	}

	return zero, false, nil
}

func (m *MemoryStore[T]) Update(ctx context.Context, id string, fields map[string]any) error {
	_, scope, err := m.wait(ctx, "Update")
	defer scope.End()

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pos := m.position(id)
	if pos < 0 {
		return ErrNotFound
	}

	item := reflect.ValueOf(&m.items[pos]).Elem()

	updated := reflect.New(item.Type()).Elem()
	updated.Set(item)

	for column, value := range fields {
		index, ok := m.fields[column]
		if !ok {
			return fmt.Errorf("unknown column %q (%s)", column, m.entity)
		}

		if err := assign(updated.FieldByIndex(index), value); err != nil {
			return fmt.Errorf("column %q (%s): %w", column, m.entity, err)
		}
	}

	item.Set(updated)

	return nil
}

func (m *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	_, scope, err := m.wait(ctx, "Delete")
	defer scope.End()

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pos := m.position(id)
	if pos < 0 {
		return ErrNotFound
	}

	m.items = slices.Delete(m.items, pos, pos+1)

	return nil
}

// position must be called with the lock held.
func (m *MemoryStore[T]) position(id string) int {
	index := m.fields[m.primaryColumn]

	return slices.IndexFunc(m.items, func(item T) bool {
		return equal(reflect.ValueOf(item).FieldByIndex(index), id)
	})
}

func fieldIndexes(t reflect.Type, prefix []int, out map[string][]int) {
	for i := range t.NumField() {
		field := t.Field(i)
		index := append(slices.Clone(prefix), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			fieldIndexes(field.Type, index, out)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			out[tag] = index
		}
	}
}

func equal(field reflect.Value, value any) bool {
	for field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return value == nil
		}

		field = field.Elem()
	}

	target := reflect.ValueOf(value)
	if !target.IsValid() {
		return false
	}

	if target.Type() != field.Type() {
		if !convertible(target.Type(), field.Type()) {
			return false
		}

		target = target.Convert(field.Type())
	}

	return reflect.DeepEqual(field.Interface(), target.Interface())
}

func assign(field reflect.Value, value any) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))

		return nil
	}

	src := reflect.ValueOf(value)

	switch {
	case src.Type().AssignableTo(field.Type()):
		field.Set(src)
	case field.Kind() == reflect.Pointer && src.Type().AssignableTo(field.Type().Elem()):
		ptr := reflect.New(field.Type().Elem())
		ptr.Elem().Set(src)
		field.Set(ptr)
	case convertible(src.Type(), field.Type()):
		field.Set(src.Convert(field.Type()))
	default:
		return fmt.Errorf("cannot assign %s to %s", src.Type(), field.Type())
	}

	return nil
}

// convertible rejects the integer to string conversion reflect would otherwise allow.
func convertible(from, to reflect.Type) bool {
	if (to.Kind() == reflect.String) != (from.Kind() == reflect.String) {
		return false
	}

	return from.ConvertibleTo(to)
}
