package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"taghazout/config"
	"taghazout/infras/catalogapi"
	"taghazout/infras/otel/mocks"
	"taghazout/shared/dto"
)

type remoteItem struct {
	ID string `json:"id"`
}

// remoteCatalog serves total items split into pages of the requested limit.
func remoteCatalog(t *testing.T, total int, failPage int) *catalogapi.Client {
	t.Helper()

	items := make([]remoteItem, total)
	for i := range items {
		items[i] = remoteItem{ID: "item-" + strconv.Itoa(i+1)}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := dto.QueryParams{}
		params.FromRequest(r, true)

		if params.Page == failPage {
			w.WriteHeader(http.StatusBadRequest)

			return
		}

		page, meta := dto.Paginate(items, params)

		_ = json.NewEncoder(w).Encode(catalogapi.Page[remoteItem]{Data: page, Meta: meta})
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Catalog.APIBaseURL = server.URL
	cfg.Catalog.APIRequestsPerSec = 1000

	client, err := catalogapi.New(cfg, mocks.NewOtel())
	assert.NoError(t, err)

	return client
}

type sink struct {
	mu    sync.Mutex
	items []remoteItem
	err   error
}

func (s *sink) store(_ context.Context, models []remoteItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	s.items = append(s.items, models...)

	return nil
}

func (s *sink) ids() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.items))
	for _, item := range s.items {
		ids = append(ids, item.ID)
	}

	slices.Sort(ids)

	return ids
}

func TestCopyResource_CopiesEveryPage(t *testing.T) {
	client := remoteCatalog(t, 23, 0)
	c := newCopier(client, 3, 5)
	out := &sink{}

	copied, err := copyResource(context.Background(), c, catalogapi.ResourceListings, out.store)

	assert.NoError(t, err)
	assert.Equal(t, int64(23), copied)
	assert.Len(t, out.ids(), 23)
	assert.Contains(t, out.ids(), "item-1")
	assert.Contains(t, out.ids(), "item-23")
}

func TestCopyResource_SinglePage(t *testing.T) {
	client := remoteCatalog(t, 4, 0)
	out := &sink{}

	copied, err := copyResource(context.Background(), newCopier(client, 2, 10), catalogapi.ResourcePosts, out.store)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), copied)
}

func TestCopyResource_EmptyCatalog(t *testing.T) {
	client := remoteCatalog(t, 0, 0)
	out := &sink{}

	copied, err := copyResource(context.Background(), newCopier(client, 2, 10), catalogapi.ResourcePackages, out.store)

	assert.NoError(t, err)
	assert.Zero(t, copied)
	assert.Empty(t, out.ids())
}

func TestCopyResource_PermanentPageFailure(t *testing.T) {
	client := remoteCatalog(t, 12, 2)
	out := &sink{}

	_, err := copyResource(context.Background(), newCopier(client, 1, 5), catalogapi.ResourceListings, out.store)

	var statusErr *catalogapi.StatusError

	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
}

func TestCopyResource_StoreFailure(t *testing.T) {
	client := remoteCatalog(t, 3, 0)
	out := &sink{err: errors.New("duplicate key")}

	err := run(context.Background(), newCopier(client, 1, 5), catalogapi.ResourceListings, out.store)

	assert.ErrorContains(t, err, "failed to store listings page 1")
	assert.Empty(t, out.ids())
}
