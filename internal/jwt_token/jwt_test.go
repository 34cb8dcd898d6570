package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rxintake/pkg/domain-errors"
)

var jwtService = NewJWTService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var email = "jana@example.com"
var patientID = "pat-1001"
var device = "fp-abc"
var expiresIn = time.Hour

func Test_GenerateIdentityToken(t *testing.T) {
	token, err := jwtService.GenerateIdentityToken(email, patientID, device, time.Now(), expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, patientID, claims.PatientID)
	assert.Equal(t, patientID, claims.Subject)
	assert.Equal(t, device, claims.Device)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateIdentityToken(email, patientID, device, time.Now().Add(-2*time.Hour), expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_WrongSigningKey(t *testing.T) {
	other := NewJWTService("other-key", "test-issuer", "test-audience")
	token, err := other.GenerateIdentityToken(email, patientID, device, time.Now(), expiresIn)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateTokenForEmail(t *testing.T) {
	token, err := jwtService.GenerateIdentityToken(email, patientID, device, time.Now(), expiresIn)
	require.NoError(t, err)

	claims, err := jwtService.ValidateTokenForEmail(token, email)
	require.NoError(t, err)
	assert.Equal(t, email, claims.Email)

	_, err = jwtService.ValidateTokenForEmail(token, "someone.else@example.com")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeReauthRequired))
}
