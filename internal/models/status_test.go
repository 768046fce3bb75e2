package models

import "testing"

func billWithPaid(paid, total int) *Bill {
	b := &Bill{}
	for i := 0; i < total; i++ {
		b.Shares = append(b.Shares, Share{Username: string(rune('a' + i)), IsPaid: i < paid})
	}
	return b
}

func TestBillStatus(t *testing.T) {
	tests := []struct {
		name        string
		paid, total int
		want        PaymentStatus
	}{
		{"no shares paid", 0, 3, StatusOutstanding},
		{"exactly half is not a majority", 2, 4, StatusOutstanding},
		{"strict majority", 3, 4, StatusMajorityPaid},
		{"all but one of two", 1, 2, StatusOutstanding},
		{"two of three", 2, 3, StatusMajorityPaid},
		{"all paid", 4, 4, StatusSettled},
		{"single paid share", 1, 1, StatusSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := billWithPaid(tt.paid, tt.total).Status(); got != tt.want {
				t.Errorf("Status() with %d/%d paid = %v, want %v", tt.paid, tt.total, got, tt.want)
			}
		})
	}
}

func TestShareFor(t *testing.T) {
	b := &Bill{Shares: []Share{{Username: "alice"}, {Username: "bob", IsPaid: true}}}

	if s := b.ShareFor("bob"); s == nil || !s.IsPaid {
		t.Errorf("ShareFor(bob) = %+v, want bob's paid share", s)
	}
	if s := b.ShareFor("carol"); s != nil {
		t.Errorf("ShareFor(carol) = %+v, want nil", s)
	}
}

func TestEffectiveTotal(t *testing.T) {
	plain := &Bill{Amount: 100}
	if got := plain.EffectiveTotal(); got != 100 {
		t.Errorf("EffectiveTotal() = %v, want 100", got)
	}
	discounted := &Bill{Amount: 100, Discount: true}
	if got := discounted.EffectiveTotal(); got != 75 {
		t.Errorf("discounted EffectiveTotal() = %v, want 75", got)
	}
}
