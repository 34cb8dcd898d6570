package models

import (
	"github.com/shopspring/decimal"

	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// SelectedProduct is one cart line.
type SelectedProduct struct {
	ProductID id.ProductID    `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is quantity times unit price.
func (p SelectedProduct) LineTotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Cart is the marketplace selection carried to the consultation checkpoint.
type Cart struct {
	Products []SelectedProduct `json:"products"`
	Total    decimal.Decimal   `json:"total"`
}

// SumProducts adds up line totals.
func SumProducts(products []SelectedProduct) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.LineTotal())
	}
	return total
}

// NewCart validates products and derives the total.
func NewCart(products []SelectedProduct) (*Cart, error) {
	if len(products) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one product is required")
	}
	seen := make(map[id.ProductID]struct{}, len(products))
	for _, p := range products {
		if p.ProductID == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "product_id is required")
		}
		if _, dup := seen[p.ProductID]; dup {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "duplicate product "+p.ProductID.String())
		}
		seen[p.ProductID] = struct{}{}
		if p.Quantity <= 0 {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "quantity must be positive")
		}
		if !p.UnitPrice.IsPositive() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "unit_price must be positive")
		}
	}
	return &Cart{Products: products, Total: SumProducts(products)}, nil
}

// Complete reports whether the cart may back a payment intent: products are
// present and the stored total equals the sum of line items.
func (c *Cart) Complete() bool {
	if c == nil || len(c.Products) == 0 || !c.Total.IsPositive() {
		return false
	}
	return SumProducts(c.Products).Equal(c.Total)
}
