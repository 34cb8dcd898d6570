package lifecycle

import (
	"slices"

	id "rxintake/pkg/domain"
)

// Item is a request together with the transitions the viewing role may take.
type Item struct {
	Request Request  `json:"request"`
	Actions []Status `json:"actions"`
}

type ClinicianView struct {
	Actionable []Item    `json:"actionable"`
	History    []Request `json:"history"`
}

type PharmacyView struct {
	PharmacyID id.PharmacyID `json:"pharmacy_id"`
	Actionable []Item        `json:"actionable"`
	History    []Request     `json:"history"`
}

// PatientView is the patient's own request. CanPayProduct is true only while
// the request is APPROVED and no optimistic payment is awaiting confirmation.
type PatientView struct {
	Request       Request `json:"request"`
	Degraded      bool    `json:"degraded"`
	CanPayProduct bool    `json:"can_pay_product"`
	Terminal      bool    `json:"terminal"`
}

var pharmacyActionable = []Status{StatusPaid, StatusApproved, StatusProcessing, StatusReady, StatusPickedUp}

// ProjectClinician splits requests into the review queue and history.
func ProjectClinician(requests []Request) ClinicianView {
	view := ClinicianView{Actionable: []Item{}, History: []Request{}}
	for _, r := range requests {
		if r.Status == StatusPending {
			view.Actionable = append(view.Actionable, Item{Request: r, Actions: r.Status.Next(RoleClinician)})
			continue
		}
		view.History = append(view.History, r)
	}
	return view
}

// ProjectPharmacy keeps only orders assigned to pharmacyID. PENDING and
// DECLINED requests are not visible to pharmacies at all.
func ProjectPharmacy(pharmacyID id.PharmacyID, requests []Request) PharmacyView {
	view := PharmacyView{PharmacyID: pharmacyID, Actionable: []Item{}, History: []Request{}}
	for _, r := range requests {
		if r.PharmacyID != pharmacyID {
			continue
		}
		switch {
		case slices.Contains(pharmacyActionable, r.Status):
			view.Actionable = append(view.Actionable, Item{Request: r, Actions: r.Status.Next(RolePharmacy)})
		case r.Status == StatusDelivered:
			view.History = append(view.History, r)
		}
	}
	return view
}

func ProjectPatient(r Request, degraded bool) PatientView {
	return PatientView{
		Request:       r,
		Degraded:      degraded,
		CanPayProduct: !degraded && r.Status == StatusApproved && !r.PendingReconcile,
		Terminal:      r.Status.IsTerminal(),
	}
}
