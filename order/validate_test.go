package order

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validRequest() Request {
	return Request{
		Name:  "Asha Patel",
		Email: "asha@example.com",
		Cart: []CartItem{
			{Name: "Samosa", Quantity: 2, Price: decimal.RequireFromString("3.5")},
		},
	}
}

func TestValidateRequest(t *testing.T) {
	if err := ValidateRequest(validRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestValidateRequestFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"missing name", func(r *Request) { r.Name = "" }, "name"},
		{"missing email", func(r *Request) { r.Email = "" }, "email"},
		{"empty cart", func(r *Request) { r.Cart = nil }, "cart"},
		{"unnamed item", func(r *Request) { r.Cart[0].Name = "" }, "cart[0].name"},
		{"zero quantity", func(r *Request) { r.Cart[0].Quantity = 0 }, "cart[0].quantity"},
		{"negative price", func(r *Request) { r.Cart[0].Price = decimal.RequireFromString("-1") }, "cart[0].price"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(&req)
			err := ValidateRequest(req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != c.field {
				t.Fatalf("field = %q, want %q", verr.Field, c.field)
			}
		})
	}
}

func TestRequestAlternateSpellings(t *testing.T) {
	payload := `{
		"customerName": "Asha Patel",
		"customerEmail": "asha@example.com",
		"customerPhone": "555-0100",
		"customerAddress": "12 Main St",
		"cartItems": [{"name": "Samosa", "quantity": 2, "price": "3.5"}]
	}`
	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := ValidateRequest(req); err != nil {
		t.Fatalf("alternate spelling rejected: %v", err)
	}
	c := req.Customer()
	if c.Name != "Asha Patel" || c.Email != "asha@example.com" || c.Phone != "555-0100" {
		t.Fatalf("unexpected customer: %+v", c)
	}
	if len(req.Items()) != 1 || req.Items()[0].Name != "Samosa" {
		t.Fatalf("unexpected items: %+v", req.Items())
	}
}

func TestRequestNumericAndStringPrices(t *testing.T) {
	var req Request
	payload := `{"name":"A","email":"a@b.c","cart":[{"name":"Samosa","quantity":1,"price":3.5},{"name":"Naan","quantity":1,"price":"2.99"}]}`
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.Cart[0].Price.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("numeric price = %s", req.Cart[0].Price)
	}
	if !req.Cart[1].Price.Equal(decimal.RequireFromString("2.99")) {
		t.Fatalf("string price = %s", req.Cart[1].Price)
	}
}
