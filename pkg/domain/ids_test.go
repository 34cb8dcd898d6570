package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rxintake/pkg/domain-errors"
)

// TestParseSessionID_Invariants validates the parsing invariant:
// "session IDs must be valid, non-empty, non-nil UUIDs"
func TestParseSessionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSessionID(uuid.Nil.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be nil")
	})

	t.Run("rejects malformed value", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts and round-trips a valid UUID", func(t *testing.T) {
		raw := uuid.NewString()
		id, err := ParseSessionID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, id.String())
		assert.False(t, id.IsNil())
	})
}

func TestParseRequestID(t *testing.T) {
	t.Run("accepts collaborator identifiers", func(t *testing.T) {
		for _, raw := range []string{"42", "req_01HZX", "a.b:c-d"} {
			id, err := ParseRequestID(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, raw, id.String())
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id, err := ParseRequestID("  42 ")
		require.NoError(t, err)
		assert.Equal(t, RequestID("42"), id)
	})

	t.Run("rejects empty, oversized and injected values", func(t *testing.T) {
		for _, raw := range []string{"", "   ", strings.Repeat("a", 65), "42; DROP TABLE", "../etc"} {
			_, err := ParseRequestID(raw)
			require.Error(t, err, raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("local identifiers are recognised", func(t *testing.T) {
		local := NewLocalRequestID()
		assert.True(t, local.IsLocal())
		parsed, err := ParseRequestID(local.String())
		require.NoError(t, err)
		assert.True(t, parsed.IsLocal())
		assert.False(t, RequestID("42").IsLocal())
	})
}

func TestParseEmail(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		email, err := ParseEmail("  Jane.Doe@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, Email("jane.doe@example.com"), email)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		for _, raw := range []string{"", "jane", "jane@", "@example.com", "jane doe@example.com"} {
			_, err := ParseEmail(raw)
			require.Error(t, err, raw)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestParsePostcode(t *testing.T) {
	_, err := ParsePostcode("10115")
	require.NoError(t, err)

	for _, raw := range []string{"", "1011", "101155", "1O115"} {
		_, err := ParsePostcode(raw)
		assert.Error(t, err, raw)
	}
}
