package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rxintake/internal/identity/authority"
	"rxintake/internal/identity/authority/handler/mocks"
	id "rxintake/pkg/domain"
	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type AuthorityHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestAuthorityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthorityHandlerSuite))
}

func (s *AuthorityHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *AuthorityHandlerSuite) TestResolve() {
	s.Run("known device returns the token", func() {
		s.service.EXPECT().Resolve(gomock.Any(), id.Email("jane@example.com")).
			Return(&authority.ResolveResult{Status: authority.StatusKnownDevice, Token: "tok"}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/resolve",
			map[string]string{"email": "Jane@Example.com"}))

		testutil.AssertStatusOK(s.T(), rr)
		resp := testutil.UnmarshalResponse[ResolveResponse](s.T(), rr)
		s.Equal(authority.StatusKnownDevice, resp.Status)
		s.Equal("tok", resp.Token)
	})

	s.Run("first time omits the token", func() {
		s.service.EXPECT().Resolve(gomock.Any(), gomock.Any()).
			Return(&authority.ResolveResult{Status: authority.StatusFirstTime}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/resolve",
			map[string]string{"email": "new@example.com"}))

		testutil.AssertStatusOK(s.T(), rr)
		s.NotContains(rr.Body.String(), "token")
	})

	s.Run("malformed email never reaches the service", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/resolve",
			map[string]string{"email": "not-an-email"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func (s *AuthorityHandlerSuite) TestVerify() {
	body := map[string]string{"email": "jane@example.com", "code": "123456"}

	s.Run("success", func() {
		s.service.EXPECT().Verify(gomock.Any(), id.Email("jane@example.com"), "123456").
			Return(&authority.VerifyResult{Token: "tok"}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/verify", body))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "token", "tok")
	})

	s.Run("wrong code is 401 invalid_code", func() {
		s.service.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidCode, "invalid code"))
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/verify", body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "invalid_code")
	})

	s.Run("expired code is 410 code_expired", func() {
		s.service.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeCodeExpired, "code expired, request a new one"))
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/verify", body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusGone, "code_expired")
	})

	s.Run("five digit code is rejected locally", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/verify",
			map[string]string{"email": "jane@example.com", "code": "12345"}))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})
}

func (s *AuthorityHandlerSuite) TestResend() {
	s.service.EXPECT().Resend(gomock.Any(), id.Email("jane@example.com")).Return(nil)
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/identity/resend",
		map[string]string{"email": "jane@example.com"}))
	testutil.AssertStatus(s.T(), rr, http.StatusAccepted)
}
