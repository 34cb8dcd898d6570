package lifecycle

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/sentinel"
)

var allStatuses = []Status{
	StatusPending, StatusApproved, StatusDeclined, StatusPaid,
	StatusProcessing, StatusReady, StatusPickedUp, StatusDelivered,
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		role Role
		code dErrors.Code
	}{
		{"clinician approves", StatusPending, StatusApproved, RoleClinician, ""},
		{"clinician declines", StatusPending, StatusDeclined, RoleClinician, ""},
		{"payment marks paid", StatusApproved, StatusPaid, RolePayment, ""},
		{"pharmacy starts processing", StatusPaid, StatusProcessing, RolePharmacy, ""},
		{"pharmacy marks delivered", StatusPickedUp, StatusDelivered, RolePharmacy, ""},
		{"pending cannot skip to processing", StatusPending, StatusProcessing, RolePharmacy, dErrors.CodeInvalidTransition},
		{"paid cannot skip to picked up", StatusPaid, StatusPickedUp, RolePharmacy, dErrors.CodeInvalidTransition},
		{"approved alone does not grant paid to the pharmacy", StatusApproved, StatusPaid, RolePharmacy, dErrors.CodeForbidden},
		{"pharmacy cannot approve", StatusPending, StatusApproved, RolePharmacy, dErrors.CodeForbidden},
		{"declined is terminal", StatusDeclined, StatusProcessing, RolePharmacy, dErrors.CodeInvalidTransition},
		{"delivered is terminal", StatusDelivered, StatusPending, RoleClinician, dErrors.CodeInvalidTransition},
		{"no self loop", StatusReady, StatusReady, RolePharmacy, dErrors.CodeInvalidTransition},
		{"unknown status", Status("SHIPPED"), StatusReady, RolePharmacy, dErrors.CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.role)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestReconcile(t *testing.T) {
	t.Run("forward observation is accepted even across several edges", func(t *testing.T) {
		got, err := Reconcile(StatusPaid, StatusReady)
		require.NoError(t, err)
		assert.Equal(t, StatusReady, got)
	})

	t.Run("same status is accepted", func(t *testing.T) {
		got, err := Reconcile(StatusApproved, StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, got)
	})

	t.Run("backward observation is stale", func(t *testing.T) {
		got, err := Reconcile(StatusPaid, StatusApproved)
		assert.True(t, errors.Is(err, sentinel.ErrStale))
		assert.Equal(t, StatusPaid, got)
	})

	t.Run("cross branch observation is stale", func(t *testing.T) {
		_, err := Reconcile(StatusDeclined, StatusPaid)
		assert.True(t, errors.Is(err, sentinel.ErrStale))
		_, err = Reconcile(StatusApproved, StatusDeclined)
		assert.True(t, errors.Is(err, sentinel.ErrStale))
	})

	t.Run("unknown baseline takes the observation", func(t *testing.T) {
		got, err := Reconcile("", StatusReady)
		require.NoError(t, err)
		assert.Equal(t, StatusReady, got)
	})
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus(" picked_up ")
	require.NoError(t, err)
	assert.Equal(t, StatusPickedUp, st)

	_, err = ParseStatus("shipped")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// Any sequence of statuses the tracker accepts, whether through transitions or
// reconciliation of arbitrary observations, follows the canonical order.
func TestAcceptedSequencesFollowCanonicalOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	roles := []Role{RoleClinician, RolePayment, RolePharmacy, RolePatient}

	for range 500 {
		current := StatusPending
		seq := []Status{current}
		for range 20 {
			candidate := allStatuses[rng.IntN(len(allStatuses))]
			if rng.IntN(2) == 0 {
				if CanTransition(current, candidate, roles[rng.IntN(len(roles))]) != nil {
					continue
				}
			} else {
				next, err := Reconcile(current, candidate)
				if err != nil || next == current {
					continue
				}
			}
			current = candidate
			seq = append(seq, current)
		}
		require.True(t, IsSubsequence(seq), "sequence %v", seq)
	}
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, IsSubsequence([]Status{StatusPending, StatusApproved, StatusReady, StatusDelivered}))
	assert.True(t, IsSubsequence([]Status{StatusPending, StatusDeclined}))
	assert.False(t, IsSubsequence([]Status{StatusPending, StatusDeclined, StatusPaid}))
	assert.False(t, IsSubsequence([]Status{StatusApproved}))
	assert.False(t, IsSubsequence([]Status{StatusPending, StatusReady, StatusProcessing}))
}
