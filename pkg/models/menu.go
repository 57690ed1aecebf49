package models

import "github.com/shopspring/decimal"

func init() {
	// The ordering service speaks plain JSON numbers for prices and totals.
	decimal.MarshalJSONWithoutQuotes = true
}

// MenuItem represents one entry of the café menu as returned by the
// ordering service. The cached menu is replaced wholesale on every fetch;
// items are never merged incrementally.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
}

type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
}
