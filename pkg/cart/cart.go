package cart

import (
	"github.com/shopspring/decimal"

	"github.com/krono-coffee/ordering-client/pkg/models"
	"github.com/krono-coffee/ordering-client/pkg/session"
)

// Cart holds the menu items a user has selected. Lines keep the order in
// which items were first added; there is at most one line per item id.
// Cart is owned by a single event loop and is not safe for concurrent use.
type Cart struct {
	lines []models.CartLine
}

func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the given menu item. An existing line for the
// same id gets its quantity incremented and keeps the unit price captured
// when the item was first added, even if the menu price changed since.
func (c *Cart) AddItem(item models.MenuItem) {
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
}

// RemoveItem deletes the whole line for the given item id, regardless of
// quantity. Removing an absent id is a no-op.
func (c *Cart) RemoveItem(itemID int64) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the current lines in display order.
func (c *Cart) Lines() []models.CartLine {
	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Total recomputes the sum of line subtotals; it is never cached apart
// from the lines themselves.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// IsUsable reports whether the given identity may check out this cart.
// While false the lines are kept, not dropped, so a role change does not
// silently lose the selection.
func (c *Cart) IsUsable(identity session.Identity) bool {
	return identity.CanCheckout()
}

// Clear empties the cart. Called only after a confirmed order placement
// or an explicit logout.
func (c *Cart) Clear() {
	c.lines = nil
}
