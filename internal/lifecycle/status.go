package lifecycle

import (
	"fmt"
	"strings"

	dErrors "rxintake/pkg/domain-errors"
	"rxintake/pkg/platform/sentinel"
)

// Status is the authoritative stage of a submitted treatment request.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusDeclined   Status = "DECLINED"
	StatusPaid       Status = "PAID"
	StatusProcessing Status = "PROCESSING"
	StatusReady      Status = "READY"
	StatusPickedUp   Status = "PICKED_UP"
	StatusDelivered  Status = "DELIVERED"
)

// Role names the party allowed to drive an edge.
type Role string

const (
	RoleClinician Role = "clinician"
	RolePayment   Role = "payment"
	RolePharmacy  Role = "pharmacy"
	RolePatient   Role = "patient"
)

type edge struct {
	to   Status
	role Role
}

// graph is the complete set of permitted transitions. Anything not listed,
// including self loops, is rejected.
var graph = map[Status][]edge{
	StatusPending:    {{StatusApproved, RoleClinician}, {StatusDeclined, RoleClinician}},
	StatusApproved:   {{StatusPaid, RolePayment}},
	StatusPaid:       {{StatusProcessing, RolePharmacy}},
	StatusProcessing: {{StatusReady, RolePharmacy}},
	StatusReady:      {{StatusPickedUp, RolePharmacy}},
	StatusPickedUp:   {{StatusDelivered, RolePharmacy}},
}

// rank is the position along the canonical order. APPROVED and DECLINED share
// a rank; they are the only branch.
var rank = map[Status]int{
	StatusPending:    0,
	StatusApproved:   1,
	StatusDeclined:   1,
	StatusPaid:       2,
	StatusProcessing: 3,
	StatusReady:      4,
	StatusPickedUp:   5,
	StatusDelivered:  6,
}

// ParseStatus accepts the collaborator's status spelling, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := rank[st]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown status %q", s))
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	_, ok := rank[s]
	return ok
}

// IsTerminal reports whether no edge leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusDeclined || s == StatusDelivered
}

// Next lists the statuses role may move s to.
func (s Status) Next(role Role) []Status {
	var out []Status
	for _, e := range graph[s] {
		if e.role == role {
			out = append(out, e.to)
		}
	}
	return out
}

// CanTransition checks that from→to is a defined edge driven by role.
func CanTransition(from, to Status, role Role) error {
	if !from.IsValid() || !to.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown status")
	}
	if from.IsTerminal() {
		return dErrors.New(dErrors.CodeInvalidTransition, fmt.Sprintf("request is %s; no further transitions", from))
	}
	for _, e := range graph[from] {
		if e.to != to {
			continue
		}
		if e.role != role {
			return dErrors.New(dErrors.CodeForbidden, fmt.Sprintf("%s cannot move a request to %s", role, to))
		}
		return nil
	}
	return dErrors.New(dErrors.CodeInvalidTransition, fmt.Sprintf("cannot move from %s to %s", from, to))
}

// Reachable reports whether to can be reached from from by following zero or
// more edges.
func Reachable(from, to Status) bool {
	if from == to {
		return true
	}
	for _, e := range graph[from] {
		if Reachable(e.to, to) {
			return true
		}
	}
	return false
}

// Reconcile decides whether an observed status may replace the known one.
// Forward observations are accepted even when they skip edges the caller did
// not witness. Backward or cross-branch observations are stale.
func Reconcile(known, observed Status) (Status, error) {
	if !observed.IsValid() {
		return known, dErrors.New(dErrors.CodeInvalidInput, "unknown observed status")
	}
	if known == "" || Reachable(known, observed) {
		return observed, nil
	}
	return known, dErrors.Wrap(sentinel.ErrStale, dErrors.CodeConflict,
		fmt.Sprintf("observed %s is behind known %s", observed, known))
}

// IsSubsequence reports whether seq follows the canonical order with each
// step a defined edge, starting at PENDING.
func IsSubsequence(seq []Status) bool {
	if len(seq) == 0 {
		return true
	}
	if seq[0] != StatusPending {
		return false
	}
	for i := 1; i < len(seq); i++ {
		prev, cur := seq[i-1], seq[i]
		if rank[cur] <= rank[prev] || !Reachable(prev, cur) {
			return false
		}
	}
	return true
}
