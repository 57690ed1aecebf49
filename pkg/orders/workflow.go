package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/cart"
	"github.com/krono-coffee/ordering-client/pkg/models"
)

var (
	// ErrEmptyCart is returned by Submit before any network call when the
	// cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidStatus is returned by SetStatus for transitions the client
	// never requests (only completed and cancelled are allowed).
	ErrInvalidStatus = errors.New("invalid order status")
)

// Workflow composes the cart and the API client into the order
// operations. It keeps no authoritative order state of its own.
type Workflow struct {
	client *api.Client
}

func NewWorkflow(client *api.Client) *Workflow {
	return &Workflow{client: client}
}

// Receipt wraps the server's confirmation together with the total the
// cart computed locally. The server total is the one to display; a
// mismatch is flagged rather than silently papered over.
type Receipt struct {
	models.OrderReceipt
	LocalTotal    decimal.Decimal
	TotalMismatch bool
}

// Submit places an order built from the cart lines. The caller clears
// the cart only after a successful return; on any error the cart is
// untouched.
func (w *Workflow) Submit(ctx context.Context, c *cart.Cart) (*Receipt, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := models.CreateOrderRequest{
		Items: make([]models.OrderItem, 0, len(lines)),
		Total: c.Total(),
	}
	for _, line := range lines {
		req.Items = append(req.Items, models.OrderItem{
			MenuItemID:   line.ItemID,
			Name:         line.Name,
			Quantity:     line.Quantity,
			PriceAtOrder: line.UnitPrice,
		})
	}

	raw, err := w.client.Request(ctx, http.MethodPost, "/orders/", req, true, api.EncodingJSON)
	if err != nil {
		return nil, err
	}
	var echoed models.OrderReceipt
	if err := json.Unmarshal(raw, &echoed); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}

	receipt := &Receipt{OrderReceipt: echoed, LocalTotal: req.Total}
	if !echoed.Total.Equal(req.Total) {
		receipt.TotalMismatch = true
		log.Printf("Warning: order %d total mismatch: server %s, local %s",
			echoed.OrderID, echoed.Total.StringFixed(2), req.Total.StringFixed(2))
	}
	return receipt, nil
}

// ListAll fetches every order for the staff dashboard. The server is the
// authority on who may call this; a 403 surfaces as a RemoteError.
func (w *Workflow) ListAll(ctx context.Context) ([]models.Order, error) {
	raw, err := w.client.Request(ctx, http.MethodGet, "/orders/all", nil, true, api.EncodingJSON)
	if err != nil {
		return nil, err
	}
	var list []models.Order
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return list, nil
}

// MyOrders fetches the authenticated customer's own order history.
func (w *Workflow) MyOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := w.client.Request(ctx, http.MethodGet, "/orders/me", nil, true, api.EncodingJSON)
	if err != nil {
		return nil, err
	}
	var list []models.Order
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return list, nil
}

// SetStatus asks the server to transition one order. There is no local
// optimistic update: callers re-run ListAll to observe the new state.
func (w *Workflow) SetStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	if status != models.StatusCompleted && status != models.StatusCancelled {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	path := fmt.Sprintf("/orders/%d/status", orderID)
	_, err := w.client.Request(ctx, http.MethodPut, path, models.UpdateOrderStatusRequest{Status: status}, true, api.EncodingJSON)
	return err
}
