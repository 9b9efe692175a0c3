// Package square implements invoice.Gateway against the Square REST API.
// Two call sequences are supported, selected by Config.Flow:
//
//   - FlowCustomer: create a customer record, then an invoice carrying the
//     cart line items directly.
//   - FlowOrder: create an order from the cart line items, then an invoice
//     referencing the order, delivered to the customer by email.
//
// Every call carries a fresh idempotency token. Calls run through a circuit
// breaker; a tripped breaker or rejected call surfaces as ProviderError and
// is never retried here.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"orderdesk/order"
	"orderdesk/pkg/invoice"
)

const (
	sandboxURL    = "https://connect.squareupsandbox.com"
	productionURL = "https://connect.squareup.com"
	apiVersion    = "2025-01-23"

	invoiceTitle       = "New Order"
	invoiceDescription = "Order created from website checkout."

	// Payment is due this many calendar days after the call.
	dueDays = 7
)

// Flow selects the call sequence.
type Flow string

const (
	FlowCustomer Flow = "customer"
	FlowOrder    Flow = "order"
)

// Config holds the Square connection settings. BaseURL overrides the
// environment-derived endpoint and exists for tests.
type Config struct {
	AccessToken string
	LocationID  string
	Environment string
	Flow        Flow
	BaseURL     string
}

// Client talks to the Square REST API.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	now     func() time.Time
	newKey  func() string
}

// New creates a Square client with an explicit request timeout.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = sandboxURL
		if cfg.Environment == "production" {
			base = productionURL
		}
	}
	return &Client{
		cfg:     cfg,
		baseURL: base,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{Name: "square"}),
		now:     time.Now,
		newKey:  uuid.NewString,
	}
}

// CreateInvoice runs the configured call sequence for the given order.
func (c *Client) CreateInvoice(ctx context.Context, o order.Order) (invoice.Invoice, error) {
	if c.cfg.Flow == FlowOrder {
		return c.orderThenInvoice(ctx, o)
	}
	return c.customerThenInvoice(ctx, o)
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type lineItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	BasePriceMoney money  `json:"base_price_money"`
}

type paymentRequest struct {
	RequestType string `json:"request_type"`
	DueDate     string `json:"due_date"`
}

type recipient struct {
	GivenName    string `json:"given_name"`
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

type address struct {
	AddressLine1 string `json:"address_line_1"`
}

type invoiceRef struct {
	Invoice struct {
		ID        string `json:"id"`
		PublicURL string `json:"public_url"`
	} `json:"invoice"`
}

func (c *Client) customerThenInvoice(ctx context.Context, o order.Order) (invoice.Invoice, error) {
	var created struct {
		Customer struct {
			ID string `json:"id"`
		} `json:"customer"`
	}
	customerBody := map[string]any{
		"idempotency_key": c.newKey(),
		"given_name":      o.Customer.Name,
		"email_address":   o.Customer.Email,
	}
	if o.Customer.Phone != "" {
		customerBody["phone_number"] = o.Customer.Phone
	}
	if o.Customer.Address != "" {
		customerBody["address"] = address{AddressLine1: o.Customer.Address}
	}
	if err := c.post(ctx, "create customer", "/v2/customers", customerBody, &created); err != nil {
		return invoice.Invoice{}, err
	}

	items, err := c.lineItems(o.Items)
	if err != nil {
		return invoice.Invoice{}, err
	}
	invoiceBody := map[string]any{
		"idempotency_key": c.newKey(),
		"invoice": map[string]any{
			"location_id":      c.cfg.LocationID,
			"customer_id":      created.Customer.ID,
			"line_items":       items,
			"payment_requests": []paymentRequest{c.balanceRequest()},
			"title":            invoiceTitle,
			"description":      invoiceDescription,
		},
	}
	var ref invoiceRef
	if err := c.post(ctx, "create invoice", "/v2/invoices", invoiceBody, &ref); err != nil {
		return invoice.Invoice{}, err
	}
	return invoice.Invoice{ID: ref.Invoice.ID, PublicURL: ref.Invoice.PublicURL}, nil
}

func (c *Client) orderThenInvoice(ctx context.Context, o order.Order) (invoice.Invoice, error) {
	items, err := c.lineItems(o.Items)
	if err != nil {
		return invoice.Invoice{}, err
	}
	var created struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	orderBody := map[string]any{
		"idempotency_key": c.newKey(),
		"order": map[string]any{
			"location_id": c.cfg.LocationID,
			"line_items":  items,
		},
	}
	if err := c.post(ctx, "create order", "/v2/orders", orderBody, &created); err != nil {
		return invoice.Invoice{}, err
	}

	invoiceBody := map[string]any{
		"idempotency_key": c.newKey(),
		"invoice": map[string]any{
			"location_id": c.cfg.LocationID,
			"order_id":    created.Order.ID,
			"primary_recipient": recipient{
				GivenName:    o.Customer.Name,
				EmailAddress: o.Customer.Email,
				PhoneNumber:  o.Customer.Phone,
			},
			"delivery_method":  "EMAIL",
			"payment_requests": []paymentRequest{c.balanceRequest()},
			"title":            invoiceTitle,
			"description":      invoiceDescription,
		},
	}
	var ref invoiceRef
	if err := c.post(ctx, "create invoice", "/v2/invoices", invoiceBody, &ref); err != nil {
		return invoice.Invoice{}, err
	}
	return invoice.Invoice{ID: ref.Invoice.ID, PublicURL: ref.Invoice.PublicURL, OrderID: created.Order.ID}, nil
}

func (c *Client) lineItems(items []order.CartItem) ([]lineItem, error) {
	out := make([]lineItem, 0, len(items))
	for _, item := range items {
		unit, err := order.MinorUnits(item.Price)
		if err != nil {
			return nil, &invoice.ProviderError{Op: "build line items", Detail: err.Error()}
		}
		out = append(out, lineItem{
			Name:           item.Name,
			Quantity:       strconv.Itoa(item.Quantity),
			BasePriceMoney: money{Amount: unit, Currency: order.Currency},
		})
	}
	return out, nil
}

// balanceRequest builds the 7-day balance-due payment request. The due date
// is a calendar date with no time component.
func (c *Client) balanceRequest() paymentRequest {
	return paymentRequest{
		RequestType: "BALANCE",
		DueDate:     c.now().AddDate(0, 0, dueDays).Format("2006-01-02"),
	}
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &invoice.ProviderError{Op: op, Detail: err.Error()}
	}
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Square-Version", apiVersion)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &invoice.ProviderError{
				Op:         op,
				StatusCode: resp.StatusCode,
				Detail:     strings.TrimSpace(string(data)),
			}
		}
		return data, nil
	})
	if err != nil {
		var perr *invoice.ProviderError
		if errors.As(err, &perr) {
			return perr
		}
		return &invoice.ProviderError{Op: op, Detail: err.Error()}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &invoice.ProviderError{Op: op, Detail: "decoding response: " + err.Error()}
	}
	return nil
}
