package collaborator

import (
	"context"
	"net/http"

	"rxintake/internal/identity"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
)

// IdentityClient talks to the identity resolving party. The caller's client
// IP and User-Agent are forwarded so device trust is judged on the browser,
// not on this service.
type IdentityClient struct {
	client *Client
}

func NewIdentityClient(baseURL string, opts ...Option) (*IdentityClient, error) {
	c, err := newClient("identity_api", baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &IdentityClient{client: c}, nil
}

func (c *IdentityClient) Resolve(ctx context.Context, email id.Email) (*identity.ResolveResult, error) {
	var resp resolveResponse
	err := c.client.do(ctx, call{
		op:     "resolve",
		method: http.MethodPost,
		path:   "/identity/resolve",
		body:   emailRequest{Email: email.String()},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// Verify returns the token issued for a correct code. Wrong and expired codes
// come back as CodeInvalidCode and CodeCodeExpired.
func (c *IdentityClient) Verify(ctx context.Context, email id.Email, code string) (string, error) {
	var resp verifyResponse
	err := c.client.do(ctx, call{
		op:     "verify",
		method: http.MethodPost,
		path:   "/identity/verify",
		body:   verifyRequest{Email: email.String(), Code: code},
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", dErrors.New(dErrors.CodeInternal, "collaborator returned an invalid token")
	}
	return resp.Token, nil
}

func (c *IdentityClient) Resend(ctx context.Context, email id.Email) error {
	return c.client.do(ctx, call{
		op:     "resend",
		method: http.MethodPost,
		path:   "/identity/resend",
		body:   emailRequest{Email: email.String()},
	}, nil)
}
