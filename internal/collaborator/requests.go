package collaborator

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"rxintake/internal/intake/models"
	"rxintake/internal/lifecycle"
	"rxintake/internal/payment"
	id "rxintake/pkg/domain"
	"rxintake/pkg/requestcontext"
)

// RequestsClient talks to the request-processing API. It serves the
// lifecycle tracker, the payment gate and intake submission.
type RequestsClient struct {
	client *Client
}

func NewRequestsClient(baseURL string, opts ...Option) (*RequestsClient, error) {
	c, err := newClient("requests_api", baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &RequestsClient{client: c}, nil
}

// Submit creates the treatment request from a completed draft. An empty
// token submits as a first-time patient.
func (c *RequestsClient) Submit(ctx context.Context, draft *models.Draft, token string) (*models.PendingRequest, error) {
	var resp submitResponse
	err := c.client.do(ctx, call{
		op:     "submit",
		method: http.MethodPost,
		path:   "/requests",
		body:   newSubmitRequest(draft),
		bearer: token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(requestcontext.Now(ctx))
}

func (c *RequestsClient) Finalize(ctx context.Context, requestID id.RequestID, products []lifecycle.Product, total decimal.Decimal, token string) (*lifecycle.Request, error) {
	return c.request(ctx, call{
		op:     "finalize",
		method: http.MethodPost,
		path:   "/requests/" + requestID.String() + "/finalize",
		body:   newFinalizeRequest(products, total),
		bearer: token,
	})
}

func (c *RequestsClient) GetRequest(ctx context.Context, requestID id.RequestID) (*lifecycle.Request, error) {
	return c.request(ctx, call{op: "get_request", method: http.MethodGet, path: "/requests/" + requestID.String()})
}

func (c *RequestsClient) Approve(ctx context.Context, requestID id.RequestID) (*lifecycle.Request, error) {
	return c.request(ctx, call{op: "approve", method: http.MethodPost, path: "/requests/" + requestID.String() + "/approve"})
}

func (c *RequestsClient) Decline(ctx context.Context, requestID id.RequestID, reason string) (*lifecycle.Request, error) {
	return c.request(ctx, call{
		op:     "decline",
		method: http.MethodPost,
		path:   "/requests/" + requestID.String() + "/decline",
		body:   declineRequest{Reason: reason},
	})
}

func (c *RequestsClient) UpdateStatus(ctx context.Context, requestID id.RequestID, status lifecycle.Status) (*lifecycle.Request, error) {
	return c.request(ctx, call{
		op:     "update_status",
		method: http.MethodPost,
		path:   "/requests/" + requestID.String() + "/status",
		body:   statusRequest{Status: status.String()},
	})
}

func (c *RequestsClient) ListClinicianRequests(ctx context.Context) ([]lifecycle.Request, error) {
	var resp []requestDTO
	if err := c.client.do(ctx, call{op: "list_clinician", method: http.MethodGet, path: "/clinician/requests"}, &resp); err != nil {
		return nil, err
	}
	return toRequests(resp)
}

func (c *RequestsClient) ListPharmacyOrders(ctx context.Context, pharmacyID id.PharmacyID) ([]lifecycle.Request, error) {
	var resp []requestDTO
	err := c.client.do(ctx, call{
		op:     "list_pharmacy",
		method: http.MethodGet,
		path:   "/pharmacies/" + pharmacyID.String() + "/orders",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return toRequests(resp)
}

// CreateIntent asks the processor for a charge intent at checkpoint.
func (c *RequestsClient) CreateIntent(ctx context.Context, checkpoint payment.Checkpoint, requestID id.RequestID, idempotencyKey string) (*payment.Intent, error) {
	var resp intentResponse
	err := c.client.do(ctx, call{
		op:             "create_intent",
		method:         http.MethodPost,
		path:           "/payments/" + string(checkpoint),
		body:           intentRequest{RequestID: requestID.String()},
		idempotencyKey: idempotencyKey,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain(checkpoint, requestID, requestcontext.Now(ctx))
}

func (c *RequestsClient) IntentStatus(ctx context.Context, intentID id.PaymentIntentID) (*payment.IntentState, error) {
	var resp intentStatusResponse
	err := c.client.do(ctx, call{op: "intent_status", method: http.MethodGet, path: "/payments/" + intentID.String()}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// CancelIntent voids an intent that was never offered to the user.
func (c *RequestsClient) CancelIntent(ctx context.Context, intentID id.PaymentIntentID) error {
	return c.client.do(ctx, call{op: "cancel_intent", method: http.MethodPost, path: "/payments/" + intentID.String() + "/cancel"}, nil)
}

func (c *RequestsClient) request(ctx context.Context, cl call) (*lifecycle.Request, error) {
	var resp requestDTO
	if err := c.client.do(ctx, cl, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}
