package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krono-coffee/ordering-client/pkg/models"
	"github.com/krono-coffee/ordering-client/pkg/session"
)

func latte() models.MenuItem {
	return models.MenuItem{
		ID:          1,
		Name:        "Latte",
		Price:       decimal.RequireFromString("4.50"),
		Category:    "Coffee",
		IsAvailable: true,
	}
}

func croissant() models.MenuItem {
	return models.MenuItem{
		ID:          4,
		Name:        "Croissant",
		Price:       decimal.RequireFromString("3.25"),
		Category:    "Pastries",
		IsAvailable: true,
	}
}

func TestAddSameItemTwiceIncrements(t *testing.T) {
	c := New()
	c.AddItem(latte())
	c.AddItem(latte())

	lines := c.Lines()
	require.Len(t, lines, 1, "at most one line per item id")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "9.00", lines[0].Subtotal().StringFixed(2))
	assert.Equal(t, "9.00", c.Total().StringFixed(2))
}

func TestAddKeepsCapturedPrice(t *testing.T) {
	c := New()
	c.AddItem(latte())

	// The menu price changes between adds; the line keeps the price
	// captured when the item first entered the cart.
	repriced := latte()
	repriced.Price = decimal.RequireFromString("5.75")
	c.AddItem(repriced)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "4.50", lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "9.00", c.Total().StringFixed(2))
}

func TestRemoveDeletesWholeLine(t *testing.T) {
	c := New()
	c.AddItem(latte())
	c.AddItem(latte())
	c.AddItem(croissant())

	c.RemoveItem(1)
	lines := c.Lines()
	require.Len(t, lines, 1, "removal deletes the line, not one unit")
	assert.Equal(t, int64(4), lines[0].ItemID)

	c.RemoveItem(99)
	assert.Equal(t, 1, c.Len(), "removing an absent id is a no-op")
}

func TestTotalMatchesLines(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero(), "empty cart totals zero")

	c.AddItem(latte())
	c.AddItem(croissant())
	c.AddItem(croissant())
	c.AddItem(latte())
	c.RemoveItem(4)
	c.AddItem(latte())

	want := decimal.Zero
	for _, line := range c.Lines() {
		want = want.Add(line.Subtotal())
	}
	assert.True(t, c.Total().Equal(want))
	assert.Equal(t, "13.50", c.Total().StringFixed(2))
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(latte())
	c.Clear()
	assert.Zero(t, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestIsUsableGatesOnRole(t *testing.T) {
	c := New()
	c.AddItem(latte())

	assert.True(t, c.IsUsable(session.Identity{Subject: "a", Role: models.RoleClient}))
	assert.False(t, c.IsUsable(session.Identity{Subject: "b", Role: models.RoleEmployee}))
	assert.False(t, c.IsUsable(session.Identity{Subject: "c", Role: models.RoleAdmin}))

	// Unusable does not mean emptied: the selection survives role churn.
	assert.Equal(t, 1, c.Len())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(latte())

	lines := c.Lines()
	lines[0].Quantity = 42

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
