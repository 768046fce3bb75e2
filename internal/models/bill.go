package models

// Bill represents a shared expense split among participants.
// A bill always has at least one share, and every share's username is unique
// within the bill. The creator always holds a share, even when they did not
// name themselves as a participant.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `json:"id"`

	// Creator is the username of the user who created the bill.
	Creator string `json:"creator"`

	// Amount is the full bill amount before any discount.
	Amount float64 `json:"amount"`

	// Date is the calendar date of the expense (YYYY-MM-DD).
	Date string `json:"date"`

	// Description is an optional free-form note. Defaults to empty.
	Description string `json:"description"`

	// Discount marks bills settled at 75% of the amount.
	Discount bool `json:"discount"`

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64 `json:"created_at"`

	// DueAt is the Unix timestamp by which shares should be paid.
	// Assigned by the service at creation time, never client-supplied.
	DueAt int64 `json:"due_at"`

	// Shares is the ordered list of per-participant obligations.
	Shares []Share `json:"shares"`
}

// Share is one participant's portion of a bill.
type Share struct {
	// ID is the unique identifier for the share (UUID format).
	ID string `json:"id"`

	// Username identifies the participant who owes this share.
	// Usernames are never purged from historical shares, even after the
	// referenced user is deleted.
	Username string `json:"username"`

	// Amount is this participant's portion, fixed at bill creation.
	Amount float64 `json:"share_amount"`

	// IsPaid records whether the share has been settled. Transitions
	// false to true exactly once.
	IsPaid bool `json:"is_paid"`

	// PaidAt is the Unix timestamp of payment, zero while unpaid.
	PaidAt int64 `json:"paid_at,omitempty"`
}

// EffectiveTotal returns the payable total for the bill: the full amount, or
// 75% of it when the discount flag is set.
func (b *Bill) EffectiveTotal() float64 {
	if b.Discount {
		return b.Amount * 0.75
	}
	return b.Amount
}

// ShareFor returns the share owned by username, or nil if the user has no
// share on this bill.
func (b *Bill) ShareFor(username string) *Share {
	for i := range b.Shares {
		if b.Shares[i].Username == username {
			return &b.Shares[i]
		}
	}
	return nil
}
