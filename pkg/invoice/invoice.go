// Package invoice defines the gateway the pipeline uses to create invoices
// with the payments provider, and the reference it gets back. The invoice
// itself is owned by the provider; this system only keeps the reference.
package invoice

import (
	"context"
	"fmt"

	"orderdesk/order"
)

// Invoice is the provider's reference to a created invoice. OrderID is set
// only by the order-then-invoice call sequence.
type Invoice struct {
	ID        string `json:"invoiceId"`
	PublicURL string `json:"invoiceUrl"`
	OrderID   string `json:"orderId,omitempty"`
}

// Gateway creates an invoice for an accepted order.
type Gateway interface {
	CreateInvoice(ctx context.Context, o order.Order) (Invoice, error)
}

// ProviderError reports a rejected provider call. Detail carries the
// provider's response body for server-side logging; handlers must not echo
// it to clients.
type ProviderError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("square: %s: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("square: %s: %s", e.Op, e.Detail)
}
