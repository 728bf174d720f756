package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"taghazout/config"
	"taghazout/infras/otel/mocks"
	"taghazout/internal/catalog"
	blogMocks "taghazout/internal/domains/blog/mocks"
	"taghazout/internal/domains/blog/model"
	"taghazout/internal/domains/blog/service"
	"taghazout/shared/cache"
	cacheMocks "taghazout/shared/cache/mocks"
	gDto "taghazout/shared/dto"
	"taghazout/shared/failure"
	"taghazout/shared/i18n"
	"taghazout/shared/timezone"
)

func post(id, category string, month time.Month) model.Post {
	return model.Post{
		ID:          id,
		Slug:        id,
		Title:       i18n.Text{"en": "Post " + id, "ar": "مقال " + id},
		Excerpt:     i18n.Text{"en": "About " + category},
		Content:     i18n.Text{"en": "Body of " + id},
		Category:    category,
		PublishedAt: time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newService(t *testing.T) (service.Blog, *blogMocks.MockPost, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := blogMocks.NewMockPost(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel(), nil), mockRepo, mockCache
}

func TestBlogService_GetAll(t *testing.T) {
	tests := []struct {
		name     string
		criteria catalog.Criteria
		params   gDto.QueryParams
		wantIDs  []string
		total    int
	}{
		{name: "newest first", params: gDto.QueryParams{Page: 1, Limit: 10}, wantIDs: []string{"c", "b", "a"}, total: 3},
		{name: "category filter", criteria: catalog.Criteria{Category: "surf"}, params: gDto.QueryParams{Page: 1, Limit: 10}, wantIDs: []string{"c", "a"}, total: 2},
		{name: "text filter", criteria: catalog.Criteria{Query: "food"}, params: gDto.QueryParams{Page: 1, Limit: 10}, wantIDs: []string{"b"}, total: 1},
		{name: "second page", params: gDto.QueryParams{Page: 2, Limit: 2}, wantIDs: []string{"a"}, total: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)

			mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
			mockRepo.EXPECT().FindAll(gomock.Any()).Return([]model.Post{
				post("a", "surf", time.January),
				post("b", "food", time.March),
				post("c", "surf", time.May),
			}, nil)
			mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil).AnyTimes()

			res, err := svc.GetAll(context.Background(), catalog.Query{Criteria: tt.criteria, Params: tt.params})

			time.Sleep(10 * time.Millisecond)

			require.NoError(t, err)

			got := make([]string, 0, len(res.Posts))
			for _, p := range res.Posts {
				got = append(got, p.ID)
			}

			assert.Equal(t, tt.wantIDs, got)
			assert.Equal(t, tt.total, res.Total)
		})
	}
}

func TestBlogService_GetBySlug(t *testing.T) {
	t.Run("arabic with english fallback", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), "post:get:a:ar", gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().GetBySlug(gomock.Any(), "a").Return(post("a", "surf", time.January), true, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		ctx := i18n.WithLocale(context.Background(), i18n.NewLocale("ar"))
		res, err := svc.GetBySlug(ctx, "a")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "مقال a", res.Title)
		assert.Equal(t, "Body of a", res.Content)
		assert.Equal(t, timezone.Format(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), time.RFC3339), res.PublishedAt)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newService(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		mockRepo.EXPECT().GetBySlug(gomock.Any(), "x").Return(model.Post{}, false, nil)

		_, err := svc.GetBySlug(context.Background(), "x")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
