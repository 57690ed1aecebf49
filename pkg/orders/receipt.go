package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/krono-coffee/ordering-client/pkg/models"
)

// FormatReceipt renders a confirmed order as plain text for whatever
// surface displays it. The total shown is the server's echoed one.
func FormatReceipt(r *Receipt, customer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n", r.OrderID)
	if customer != "" {
		fmt.Fprintf(&b, "Customer: %s\n", customer)
	}
	fmt.Fprintf(&b, "Date: %s\n", r.Timestamp.Local().Format("2006-01-02 15:04"))
	b.WriteString(strings.Repeat("-", 32) + "\n")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%s x%d  $%s\n", item.Name, item.Quantity, lineTotal(item))
	}
	b.WriteString(strings.Repeat("-", 32) + "\n")
	fmt.Fprintf(&b, "Total: $%s\n", r.Total.StringFixed(2))
	if r.TotalMismatch {
		fmt.Fprintf(&b, "Note: locally computed total was $%s; the charged total above is the server's.\n",
			r.LocalTotal.StringFixed(2))
	}
	b.WriteString("Thank you for your order at Krono Coffee!\n")
	return b.String()
}

func lineTotal(item models.OrderItem) string {
	return item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
}
