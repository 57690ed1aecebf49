package models

import "time"

// Offer is a time-bounded promotion, optionally tied to a single menu item.
type Offer struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	DiscountPercentage float64   `json:"discount_percentage"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	MenuItemID         int64     `json:"menu_item_id,omitempty"`
}

func (o *Offer) IsActive(now time.Time) bool {
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}
