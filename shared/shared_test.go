package shared_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"taghazout/shared"
	"taghazout/shared/cache/mocks"
	"taghazout/shared/constant"
)

func TestTransformFields(t *testing.T) {
	title := "Surf & Yoga"
	featured := true

	type patch struct {
		Title    *string `db:"title"`
		Price    int64   `db:"price"`
		Featured *bool   `db:"featured"`
		Location string  `db:"location"`
		Note     string
	}

	fields := shared.TransformFields(patch{Title: &title, Price: 9900, Featured: &featured, Note: "x"}, "dashboard")

	assert.Equal(t, "Surf & Yoga", fields["title"])
	assert.Equal(t, int64(9900), fields["price"])
	assert.Equal(t, true, fields["featured"])
	assert.NotContains(t, fields, "location")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "dashboard", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "listing:slug:surf-camp", shared.BuildCacheKey("listing", "slug", "surf-camp"))
	assert.Equal(t, "listing", shared.BuildCacheKey("listing"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	a := shared.BuildCacheKeyWithQuery("listing", "list", url.Values{"sort": {"price"}, "q": {"surf"}})
	b := shared.BuildCacheKeyWithQuery("listing", "list", url.Values{"q": {"surf"}, "sort": {"price"}})

	assert.Equal(t, "listing:list:q=surf&sort=price", a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, shared.BuildCacheKeyWithQuery("listing", "list", url.Values{"q": {"surf"}}))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := mocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "listing:*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "package:*").Return(errors.New("redis down"))

	assert.NotPanics(t, func() {
		shared.InvalidateCaches(context.Background(), mockCache, "listing", "package")
	})
}
