// Package order holds the domain types for a storefront cart submission
// and the rules that turn one into a billable order.
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a single line of the submitted cart. Price is a decimal so
// request payloads may carry it as either a JSON number or a string.
type CartItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CustomerInfo identifies the person placing the order. Email is required;
// the other fields depend on the delivery path.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is one accepted cart submission. Orders are transient: they live for
// a single request/response cycle and are never persisted.
type Order struct {
	Number    string       `json:"orderNumber"`
	Customer  CustomerInfo `json:"customer"`
	Items     []CartItem   `json:"items"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Request is the inbound payload. The storefront shipped two generations of
// the checkout form with different field spellings; both are accepted.
type Request struct {
	Name            string     `json:"name"`
	CustomerName    string     `json:"customerName"`
	Email           string     `json:"email"`
	CustomerEmail   string     `json:"customerEmail"`
	Phone           string     `json:"phone"`
	CustomerPhone   string     `json:"customerPhone"`
	Address         string     `json:"address"`
	CustomerAddress string     `json:"customerAddress"`
	Cart            []CartItem `json:"cart"`
	CartItems       []CartItem `json:"cartItems"`
}

// Customer coalesces the two field spellings into one CustomerInfo.
func (r Request) Customer() CustomerInfo {
	return CustomerInfo{
		Name:    coalesce(r.Name, r.CustomerName),
		Email:   coalesce(r.Email, r.CustomerEmail),
		Phone:   coalesce(r.Phone, r.CustomerPhone),
		Address: coalesce(r.Address, r.CustomerAddress),
	}
}

// Items returns whichever cart field the client populated.
func (r Request) Items() []CartItem {
	if len(r.Cart) > 0 {
		return r.Cart
	}
	return r.CartItems
}

// New builds an Order from an already validated request.
func New(number string, r Request, now time.Time) Order {
	return Order{
		Number:    number,
		Customer:  r.Customer(),
		Items:     r.Items(),
		CreatedAt: now,
	}
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
