// Package billview derives the rendered bill view from a loaded collection:
// filtering, expand/collapse state and the creator-only status tier.
// Everything here is pure; no collaborator requests are issued.
package billview

import (
	"fmt"

	"billsplit/internal/models"
)

// Filter selects which bills of the loaded collection are shown.
// Exactly one filter is active at a time.
type Filter string

const (
	// FilterAll shows every loaded bill.
	FilterAll Filter = "all"
	// FilterUnpaidMe shows bills where the caller's own share is unpaid.
	// Bills the caller holds no share on are excluded.
	FilterUnpaidMe Filter = "unpaid-me"
	// FilterMyBills shows bills the caller created.
	FilterMyBills Filter = "my-bills"
	// FilterUnpaidAny shows bills with at least one unpaid share.
	FilterUnpaidAny Filter = "unpaid-any"
)

// ParseFilter validates a filter name.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterUnpaidMe, FilterMyBills, FilterUnpaidAny:
		return Filter(s), nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Match reports whether the bill passes the filter for the given caller.
func (f Filter) Match(b *models.Bill, caller string) bool {
	switch f {
	case FilterUnpaidMe:
		s := b.ShareFor(caller)
		return s != nil && !s.IsPaid
	case FilterMyBills:
		return b.Creator == caller
	case FilterUnpaidAny:
		return b.PaidCount() < len(b.Shares)
	default:
		return true
	}
}

// Apply narrows the collection to the bills passing the filter. The input
// slice is not modified; switching filters re-applies against the same
// loaded collection without a new request.
func (f Filter) Apply(bills []*models.Bill, caller string) []*models.Bill {
	out := make([]*models.Bill, 0, len(bills))
	for _, b := range bills {
		if f.Match(b, caller) {
			out = append(out, b)
		}
	}
	return out
}
