package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/models"
	"github.com/krono-coffee/ordering-client/pkg/session"
)

const menuJSON = `[
	{"id":1,"name":"Espresso","price":3.50,"category":"Coffee","is_available":true},
	{"id":2,"name":"Cappuccino","price":4.75,"category":"Coffee","is_available":true},
	{"id":4,"name":"Croissant","price":3.25,"category":"Pastries","is_available":true},
	{"id":5,"name":"Green Tea","price":3.00,"category":"Tea","is_available":false}
]`

func newCache(t *testing.T, handler http.HandlerFunc) *Cache {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := session.NewFileStore(filepath.Join(t.TempDir(), "token"))
	return NewCache(api.NewClient(server.URL, store))
}

func TestRefreshAndFilter(t *testing.T) {
	cache := newCache(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/menu/menu", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "the menu is public")
		_, _ = w.Write([]byte(menuJSON))
	})

	require.NoError(t, cache.Refresh(context.Background()))
	require.Len(t, cache.Items(), 4)

	coffee := cache.FilteredBy("Coffee")
	require.Len(t, coffee, 2)
	assert.Equal(t, "Espresso", coffee[0].Name, "server order is preserved")
	assert.Equal(t, "Cappuccino", coffee[1].Name)

	assert.Len(t, cache.FilteredBy(CategoryAll), 4)
	assert.Empty(t, cache.FilteredBy("Smoothies"))
}

func TestCategoriesSortedAndRecomputed(t *testing.T) {
	responses := []string{menuJSON, `[{"id":9,"name":"Matcha","price":4.00,"category":"Tea","is_available":true}]`}
	cache := newCache(t, func(w http.ResponseWriter, r *http.Request) {
		body := responses[0]
		if len(responses) > 1 {
			responses = responses[1:]
		}
		_, _ = w.Write([]byte(body))
	})

	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, []string{"Coffee", "Pastries", "Tea"}, cache.Categories())

	// A refresh that shrinks the category set must be reflected, not
	// served from a stale derived list.
	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, []string{"Tea"}, cache.Categories())
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	fail := false
	cache := newCache(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"maintenance"}`))
			return
		}
		_, _ = w.Write([]byte(menuJSON))
	})

	require.NoError(t, cache.Refresh(context.Background()))
	require.Len(t, cache.Items(), 4)

	fail = true
	err := cache.Refresh(context.Background())
	var remote *api.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, "maintenance", remote.Message)
	assert.Len(t, cache.Items(), 4, "a failed refresh leaves the old snapshot visible")
}

func TestItem(t *testing.T) {
	cache := newCache(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/menu/menu/4", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":4,"name":"Croissant","price":3.25,"category":"Pastries","is_available":true}`))
	})

	item, err := cache.Item(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Croissant", item.Name)
	assert.Equal(t, "3.25", item.Price.StringFixed(2))
}

func TestAdminCallsRequireCredential(t *testing.T) {
	called := false
	cache := newCache(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := cache.Create(context.Background(), models.CreateMenuItemRequest{
		Name:     "Flat White",
		Price:    decimal.RequireFromString("4.25"),
		Category: "Coffee",
	})
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	_, err = cache.SetAvailability(context.Background(), 4, false)
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	_, err = cache.Offers(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.False(t, called)
}
