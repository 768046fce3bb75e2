package billview

import "billsplit/internal/models"

// ViewState is the explicit view-model state: the selected filter and which
// bills are expanded. It is decoupled from any presentation layer.
type ViewState struct {
	selected Filter
	expanded map[string]bool
}

// NewViewState starts with the "all" filter and everything collapsed.
func NewViewState() *ViewState {
	return &ViewState{selected: FilterAll, expanded: make(map[string]bool)}
}

// Selected returns the active filter.
func (v *ViewState) Selected() Filter {
	return v.selected
}

// Select switches the active filter. The caller re-applies it against the
// already-loaded collection; no request is issued.
func (v *ViewState) Select(f Filter) {
	v.selected = f
}

// Toggle flips the expanded state of a bill.
func (v *ViewState) Toggle(billID string) {
	if v.expanded[billID] {
		delete(v.expanded, billID)
		return
	}
	v.expanded[billID] = true
}

// Expanded reports whether a bill is expanded.
func (v *ViewState) Expanded(billID string) bool {
	return v.expanded[billID]
}

// CreatorStatus returns the aggregate payment tier of a bill, which is shown
// only to the bill's creator. For anyone else ok is false; other participants
// see their own share status only.
func CreatorStatus(b *models.Bill, caller string) (status models.PaymentStatus, ok bool) {
	if caller != b.Creator {
		return 0, false
	}
	return b.Status(), true
}
