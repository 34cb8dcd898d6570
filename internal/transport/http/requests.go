package httptransport

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/wizard"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

type PostcodeRequest struct {
	Postcode string `json:"postcode"`
}

func (r *PostcodeRequest) Validate() error {
	r.Postcode = strings.TrimSpace(r.Postcode)
	if r.Postcode == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "postcode is required")
	}
	return nil
}

// AnswerRequest carries one step's form. Field validation happens when the
// answers are applied to the draft.
type AnswerRequest struct {
	wizard.Answers
}

func (r *AnswerRequest) Validate() error { return nil }

type CodeRequest struct {
	Code string `json:"code"`
}

func (r *CodeRequest) Validate() error {
	r.Code = strings.TrimSpace(r.Code)
	if r.Code == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "code is required")
	}
	return nil
}

type CartProduct struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartRequest replaces the selection. A client-side total is not accepted.
type CartRequest struct {
	Products []CartProduct `json:"products"`

	selected []models.SelectedProduct
}

func (r *CartRequest) Validate() error {
	if len(r.Products) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "at least one product is required")
	}
	r.selected = make([]models.SelectedProduct, 0, len(r.Products))
	for _, p := range r.Products {
		productID, err := id.ParseProductID(p.ProductID)
		if err != nil {
			return err
		}
		r.selected = append(r.selected, models.SelectedProduct{
			ProductID: productID,
			Name:      strings.TrimSpace(p.Name),
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}
	return nil
}

const maxDeclineReason = 500

type DeclineRequest struct {
	Reason string `json:"reason"`
}

func (r *DeclineRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if utf8.RuneCountInString(r.Reason) > maxDeclineReason {
		return dErrors.New(dErrors.CodeInvalidInput, "reason is too long")
	}
	return nil
}

type StatusRequest struct {
	Status string `json:"status"`

	parsed lifecycle.Status
}

func (r *StatusRequest) Validate() error {
	status, err := lifecycle.ParseStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsed = status
	return nil
}
