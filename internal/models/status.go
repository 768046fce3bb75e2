package models

// PaymentStatus is the aggregate settlement tier of a bill, derived from its
// shares and never stored.
type PaymentStatus int

const (
	// StatusOutstanding: half or fewer of the shares are paid.
	StatusOutstanding PaymentStatus = iota
	// StatusMajorityPaid: strictly more than half of the shares are paid,
	// but not all of them.
	StatusMajorityPaid
	// StatusSettled: every share is paid.
	StatusSettled
)

func (s PaymentStatus) String() string {
	switch s {
	case StatusSettled:
		return "settled"
	case StatusMajorityPaid:
		return "majority-paid"
	default:
		return "outstanding"
	}
}

// PaidCount returns how many shares of the bill are paid.
func (b *Bill) PaidCount() int {
	paid := 0
	for i := range b.Shares {
		if b.Shares[i].IsPaid {
			paid++
		}
	}
	return paid
}

// Status derives the aggregate settlement tier. The majority boundary is
// strict: with 4 shares, 2 paid is still outstanding.
func (b *Bill) Status() PaymentStatus {
	total := len(b.Shares)
	if total == 0 {
		return StatusOutstanding
	}
	paid := b.PaidCount()
	switch {
	case paid == total:
		return StatusSettled
	case paid*2 > total:
		return StatusMajorityPaid
	default:
		return StatusOutstanding
	}
}
