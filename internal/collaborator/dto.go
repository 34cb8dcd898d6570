package collaborator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"rxintake/internal/identity"
	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// Identity resolving party wire format.

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resolveResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
}

type verifyResponse struct {
	Token string `json:"token"`
}

var resolveStatuses = map[string]identity.Outcome{
	"first_time":   identity.OutcomeNewUser,
	"known_device": identity.OutcomeKnownDevice,
	"otp_required": identity.OutcomeOTPRequired,
}

func (r resolveResponse) toDomain() (*identity.ResolveResult, error) {
	outcome, ok := resolveStatuses[strings.ToLower(strings.TrimSpace(r.Status))]
	if !ok {
		return nil, invalid("identity status " + r.Status)
	}
	if outcome == identity.OutcomeKnownDevice && r.Token == "" {
		return nil, invalid("known device without token")
	}
	return &identity.ResolveResult{Outcome: outcome, Token: r.Token}, nil
}

// Request-processing API wire format.

type submitRequest struct {
	FullName                string `json:"full_name"`
	Email                   string `json:"email"`
	Phone                   string `json:"phone"`
	Street                  string `json:"street,omitempty"`
	City                    string `json:"city,omitempty"`
	Postcode                string `json:"postcode"`
	PharmacyEmail           string `json:"pharmacy_email,omitempty"`
	ConsultationType        string `json:"consultation_type"`
	DeliveryMethod          string `json:"delivery_method"`
	Condition               string `json:"condition"`
	SymptomOnset            string `json:"symptom_onset"`
	SymptomFrequency        string `json:"symptom_frequency"`
	PreviousTreatment       string `json:"previous_treatment"`
	PastPrescriptionGermany string `json:"past_prescription_germany"`
	PositiveEffect          string `json:"positive_effect"`
}

func newSubmitRequest(d *models.Draft) submitRequest {
	return submitRequest{
		FullName:                d.FullName,
		Email:                   d.Email,
		Phone:                   d.Phone,
		Street:                  d.Street,
		City:                    d.City,
		Postcode:                d.Postcode,
		PharmacyEmail:           d.PharmacyEmail,
		ConsultationType:        string(d.ConsultationType),
		DeliveryMethod:          string(d.DeliveryMethod),
		Condition:               d.Condition,
		SymptomOnset:            string(d.SymptomOnset),
		SymptomFrequency:        string(d.SymptomFrequency),
		PreviousTreatment:       string(d.PreviousTreatment),
		PastPrescriptionGermany: string(d.PastPrescriptionGermany),
		PositiveEffect:          string(d.PositiveEffect),
	}
}

type submitResponse struct {
	RequestID  string `json:"request_id"`
	PharmacyID string `json:"pharmacy_id"`
	PatientID  string `json:"patient_id"`
	Status     string `json:"status"`
}

func (r submitResponse) toDomain(now time.Time) (*models.PendingRequest, error) {
	requestID, err := id.ParseRequestID(r.RequestID)
	if err != nil {
		return nil, invalidErr(err, "request_id")
	}
	if requestID.IsLocal() {
		return nil, invalid("request_id uses the local prefix")
	}
	pending := &models.PendingRequest{ID: requestID, CreatedAt: now}
	if r.PharmacyID != "" {
		if pending.PharmacyID, err = id.ParsePharmacyID(r.PharmacyID); err != nil {
			return nil, invalidErr(err, "pharmacy_id")
		}
	}
	if r.PatientID != "" {
		if pending.PatientID, err = id.ParsePatientID(r.PatientID); err != nil {
			return nil, invalidErr(err, "patient_id")
		}
	}
	return pending, nil
}

type productDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type finalizeRequest struct {
	Products   []productDTO    `json:"products"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newFinalizeRequest(products []lifecycle.Product, total decimal.Decimal) finalizeRequest {
	req := finalizeRequest{Products: make([]productDTO, 0, len(products)), TotalPrice: total}
	for _, p := range products {
		req.Products = append(req.Products, productDTO{
			ProductID: p.ProductID.String(),
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}
	return req
}

type requestDTO struct {
	ID               string          `json:"id"`
	PatientID        string          `json:"patient_id"`
	PharmacyID       string          `json:"pharmacy_id"`
	Status           string          `json:"status"`
	Products         []productDTO    `json:"products"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	Condition        string          `json:"condition"`
	SymptomOnset     string          `json:"symptom_onset"`
	SymptomFrequency string          `json:"symptom_frequency"`
	DeclineReason    string          `json:"decline_reason"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (d requestDTO) toDomain() (*lifecycle.Request, error) {
	requestID, err := id.ParseRequestID(d.ID)
	if err != nil {
		return nil, invalidErr(err, "id")
	}
	status, err := lifecycle.ParseStatus(d.Status)
	if err != nil {
		return nil, invalidErr(err, "status")
	}
	r := &lifecycle.Request{
		ID:               requestID,
		Status:           status,
		TotalPrice:       d.TotalPrice,
		Condition:        d.Condition,
		SymptomOnset:     d.SymptomOnset,
		SymptomFrequency: d.SymptomFrequency,
		DeclineReason:    d.DeclineReason,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	if d.PatientID != "" {
		if r.PatientID, err = id.ParsePatientID(d.PatientID); err != nil {
			return nil, invalidErr(err, "patient_id")
		}
	}
	if d.PharmacyID != "" {
		if r.PharmacyID, err = id.ParsePharmacyID(d.PharmacyID); err != nil {
			return nil, invalidErr(err, "pharmacy_id")
		}
	}
	for _, p := range d.Products {
		productID, err := id.ParseProductID(p.ProductID)
		if err != nil {
			return nil, invalidErr(err, "product_id")
		}
		if p.Quantity <= 0 || p.UnitPrice.IsNegative() {
			return nil, invalid("product line " + p.ProductID)
		}
		r.Products = append(r.Products, lifecycle.Product{
			ProductID: productID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}
	return r, nil
}

func toRequests(dtos []requestDTO) ([]lifecycle.Request, error) {
	out := make([]lifecycle.Request, 0, len(dtos))
	for _, d := range dtos {
		r, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

type declineRequest struct {
	Reason string `json:"reason,omitempty"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type intentRequest struct {
	RequestID string `json:"request_id"`
}

type intentResponse struct {
	IntentID     string          `json:"intent_id"`
	ClientSecret string          `json:"client_secret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

func (r intentResponse) toDomain(checkpoint payment.Checkpoint, requestID id.RequestID, now time.Time) (*payment.Intent, error) {
	intentID, err := id.ParsePaymentIntentID(r.IntentID)
	if err != nil {
		return nil, invalidErr(err, "intent_id")
	}
	if r.ClientSecret == "" {
		return nil, invalid("client_secret")
	}
	if !r.Amount.IsPositive() {
		return nil, invalid("amount")
	}
	return &payment.Intent{
		ID:           intentID,
		RequestID:    requestID,
		Checkpoint:   checkpoint,
		ClientSecret: r.ClientSecret,
		Amount:       r.Amount,
		Currency:     strings.ToUpper(strings.TrimSpace(r.Currency)),
		CreatedAt:    now,
	}, nil
}

type intentStatusResponse struct {
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

func (r intentStatusResponse) toDomain() (*payment.IntentState, error) {
	status := payment.IntentStatus(strings.ToLower(strings.TrimSpace(r.Status)))
	if !status.IsValid() {
		return nil, invalid("intent status " + r.Status)
	}
	return &payment.IntentState{Status: status, FailureReason: r.FailureReason}, nil
}

func invalid(field string) error {
	return dErrors.New(dErrors.CodeInternal, "collaborator returned an invalid "+field)
}

func invalidErr(err error, field string) error {
	return dErrors.Wrap(err, dErrors.CodeInternal, "collaborator returned an invalid "+field)
}
