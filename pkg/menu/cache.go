package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/models"
)

// CategoryAll selects every item regardless of category.
const CategoryAll = "all"

// Cache holds the last fetched menu snapshot. It is a disposable view
// cache, rebuildable from the service at any time, and is owned by a
// single event loop (not safe for concurrent use).
type Cache struct {
	client *api.Client
	items  []models.MenuItem
}

func NewCache(client *api.Client) *Cache {
	return &Cache{client: client}
}

// Refresh fetches the full menu and replaces the snapshot wholesale. On
// failure the previous snapshot stays visible; there is no partial update.
func (c *Cache) Refresh(ctx context.Context) error {
	raw, err := c.client.Request(ctx, http.MethodGet, "/menu/menu", nil, false, api.EncodingJSON)
	if err != nil {
		return err
	}
	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decode menu: %w", err)
	}
	c.items = items
	return nil
}

// Items returns the current snapshot in server response order.
func (c *Cache) Items() []models.MenuItem {
	items := make([]models.MenuItem, len(c.items))
	copy(items, c.items)
	return items
}

// FilteredBy returns the snapshot narrowed to one category, preserving
// server order. CategoryAll returns every item.
func (c *Cache) FilteredBy(category string) []models.MenuItem {
	if category == CategoryAll {
		return c.Items()
	}
	var filtered []models.MenuItem
	for _, item := range c.items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Categories returns the distinct sorted category set of the current
// snapshot. It is recomputed on every call so a refresh that drops or
// adds categories is reflected immediately.
func (c *Cache) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Item fetches a single menu item by id directly from the service.
func (c *Cache) Item(ctx context.Context, id int64) (models.MenuItem, error) {
	raw, err := c.client.Request(ctx, http.MethodGet, fmt.Sprintf("/menu/menu/%d", id), nil, false, api.EncodingJSON)
	if err != nil {
		return models.MenuItem{}, err
	}
	var item models.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.MenuItem{}, fmt.Errorf("decode menu item: %w", err)
	}
	return item, nil
}
