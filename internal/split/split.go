// Package split computes per-participant share amounts for a bill.
//
// All arithmetic happens in integer cents so that the sum of the allocated
// shares reconstructs the effective payable total exactly. Remainder cents
// from a non-terminating division are handed to the earliest participants in
// order, which keeps the allocation deterministic.
package split

import (
	"fmt"
	"math"
	"strings"
)

// DiscountRate is the fraction of the amount payable when the discount flag
// is set.
const DiscountRate = 0.75

// ShareAmount is one participant's computed portion.
type ShareAmount struct {
	Username string
	Amount   float64
}

// Participants normalizes the requested participant list: entries are
// trimmed, empties and duplicates dropped, and the creator appended if not
// already present. Order of first appearance is preserved.
func Participants(creator string, requested []string) []string {
	seen := make(map[string]bool, len(requested)+1)
	out := make([]string, 0, len(requested)+1)
	for _, p := range requested {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	if !seen[creator] {
		out = append(out, creator)
	}
	return out
}

// EffectiveCents returns the payable total in cents: the amount, reduced to
// 75% when discounted, rounded half-up to the nearest cent.
func EffectiveCents(amount float64, discount bool) int64 {
	cents := int64(math.Round(amount * 100))
	if discount {
		cents = int64(math.Round(float64(cents) * DiscountRate))
	}
	return cents
}

// Distribute divides the bill amount evenly across the participant set.
// The creator is always included, even if absent from requested. The returned
// shares are in participant order, are non-negative, differ pairwise by at
// most one cent, and sum exactly to the effective total.
func Distribute(amount float64, creator string, requested []string, discount bool) ([]ShareAmount, error) {
	creator = strings.TrimSpace(creator)
	if creator == "" {
		return nil, fmt.Errorf("creator required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	participants := Participants(creator, requested)
	n := int64(len(participants))

	total := EffectiveCents(amount, discount)
	base := total / n
	extra := total % n

	shares := make([]ShareAmount, n)
	for i, p := range participants {
		cents := base
		if int64(i) < extra {
			cents++
		}
		shares[i] = ShareAmount{Username: p, Amount: float64(cents) / 100}
	}
	return shares, nil
}
