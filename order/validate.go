package order

import "fmt"

// ValidationError reports the first missing or invalid field of a request.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid field: %s", e.Field)
}

// ValidateRequest checks that the customer and cart are complete enough to
// bill. It has no side effects and makes no network calls.
func ValidateRequest(r Request) error {
	c := r.Customer()
	if c.Name == "" {
		return &ValidationError{Field: "name"}
	}
	if c.Email == "" {
		return &ValidationError{Field: "email"}
	}
	items := r.Items()
	if len(items) == 0 {
		return &ValidationError{Field: "cart"}
	}
	for i, item := range items {
		if item.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("cart[%d].name", i)}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Field: fmt.Sprintf("cart[%d].quantity", i)}
		}
		if item.Price.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("cart[%d].price", i)}
		}
	}
	return nil
}
