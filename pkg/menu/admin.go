package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/models"
)

// Create adds a new menu item. The server enforces the admin role; the UI
// gates the affordance with Session.CanManageMenu.
func (c *Cache) Create(ctx context.Context, req models.CreateMenuItemRequest) (models.MenuItem, error) {
	raw, err := c.client.Request(ctx, http.MethodPost, "/admin/menu", req, true, api.EncodingJSON)
	if err != nil {
		return models.MenuItem{}, err
	}
	var item models.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.MenuItem{}, fmt.Errorf("decode created item: %w", err)
	}
	return item, nil
}

// SetAvailability toggles whether a menu item can be ordered. The cached
// snapshot is not touched; callers refresh to observe the change.
func (c *Cache) SetAvailability(ctx context.Context, id int64, available bool) (models.MenuItem, error) {
	path := fmt.Sprintf("/admin/menu/%d/availability?is_available=%t", id, available)
	raw, err := c.client.Request(ctx, http.MethodPut, path, nil, true, api.EncodingJSON)
	if err != nil {
		return models.MenuItem{}, err
	}
	var item models.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.MenuItem{}, fmt.Errorf("decode updated item: %w", err)
	}
	return item, nil
}
