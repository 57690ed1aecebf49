package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/models"
)

// Offers lists the current promotions. Not cached: promotions are
// time-bounded and always fetched fresh.
func (c *Cache) Offers(ctx context.Context) ([]models.Offer, error) {
	raw, err := c.client.Request(ctx, http.MethodGet, "/offers/", nil, true, api.EncodingJSON)
	if err != nil {
		return nil, err
	}
	var offers []models.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return offers, nil
}
