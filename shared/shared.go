package shared

import (
	"context"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"taghazout/shared/cache"
	"taghazout/shared/constant"
	"taghazout/shared/timezone"
)

const cacheKeySeparator = ":"

// TransformFields converts the non-zero `db`-tagged fields of a patch struct into
// an update map. Pointer fields are dereferenced so the map holds plain values.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

// BuildCacheKey joins the entity prefix and parts into a namespaced key.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery keys a list response on its query parameters. Keys are
// sorted so equivalent queries share an entry regardless of parameter order.
func BuildCacheKeyWithQuery(prefix, operation string, query url.Values) string {
	keys := slices.Sorted(maps.Keys(query))

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		values := slices.Clone(query[k])
		slices.Sort(values)
		parts = append(parts, fmt.Sprintf("%s=%s", k, strings.Join(values, ",")))
	}

	return BuildCacheKey(prefix, operation, strings.Join(parts, "&"))
}

// InvalidateCaches clears every key under each prefix. Failures are logged only,
// a stale entry expires with its TTL anyway.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := c.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
